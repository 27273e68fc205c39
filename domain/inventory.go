package domain

import "time"

type ExpirationStatus string

const (
	StatusFresh        ExpirationStatus = "Fresh"
	StatusExpiringSoon ExpirationStatus = "ExpiringSoon"
	StatusExpired      ExpirationStatus = "Expired"

	// ExpiringSoonDays is the inclusive upper bound, in days, of the ExpiringSoon window.
	ExpiringSoonDays = 30
)

var (
	MessageSuccessAddInventoryItem    = "inventory item created successfully"
	MessageSuccessUpdateInventoryItem = "inventory item updated successfully"
	MessageSuccessDeleteInventoryItem = "inventory item deleted successfully"
	MessageSuccessGetInventoryItems   = "inventory items retrieved successfully"
	MessageSuccessGetInventoryItem    = "inventory item retrieved successfully"
	MessageSuccessGetInventoryStats   = "inventory statistics retrieved successfully"
	MessageSuccessUploadItemImage     = "inventory item image uploaded successfully"

	MessageFailedAddInventoryItem    = "failed to create inventory item"
	MessageFailedUpdateInventoryItem = "failed to update inventory item"
	MessageFailedDeleteInventoryItem = "failed to delete inventory item"
	MessageFailedGetInventoryItems   = "failed to fetch inventory items"
	MessageFailedGetInventoryItem    = "failed to fetch inventory item"
	MessageFailedGetInventoryStats   = "failed to fetch inventory statistics"
	MessageFailedUploadItemImage     = "failed to upload inventory item image"

	ErrInventoryItemNotFound = NewError(ErrNotFound, "inventory item not found")
	ErrInvalidExpiryDate     = NewError(ErrInvalidInput, "invalid expiration date")
	ErrInvalidQuantity       = NewError(ErrInvalidInput, "quantity must be a non-negative integer")
	ErrInvalidImageFormat    = NewError(ErrInvalidInput, "invalid image format")
)

type (
	AddInventoryItemRequest struct {
		Name           string `json:"name" validate:"required"`
		Quantity       *int   `json:"quantity" validate:"required,min=0"`
		ExpirationDate string `json:"expiration_date" validate:"omitempty,date"`
	}

	UpdateInventoryItemRequest struct {
		Name           *string `json:"name" validate:"omitempty,min=1"`
		Quantity       *int    `json:"quantity" validate:"omitempty,min=0"`
		ExpirationDate *string `json:"expiration_date" validate:"omitempty,date"`
	}

	InventoryItemResponse struct {
		ID               uint             `json:"id"`
		HomeID           uint             `json:"home_id"`
		Name             string           `json:"name"`
		Quantity         int              `json:"quantity"`
		ExpirationDate   *time.Time       `json:"expiration_date,omitempty"`
		ExpirationStatus ExpirationStatus `json:"expiration_status"`
		DaysUntilExpiry  *int             `json:"days_until_expiration,omitempty"`
		ImageURL         string           `json:"image_url,omitempty"`
		CreatedAt        time.Time        `json:"created_at"`
		UpdatedAt        time.Time        `json:"updated_at"`
	}

	InventoryStatsResponse struct {
		TotalItems        int `json:"total_items"`
		TotalQuantity     int `json:"total_quantity"`
		FreshItems        int `json:"fresh_items"`
		ExpiringSoonItems int `json:"expiring_soon_items"`
		ExpiredItems      int `json:"expired_items"`
		UndatedItems      int `json:"undated_items"`
	}
)
