package domain

import "time"

var (
	MessageSuccessGetRecommendedItems   = "recommended inventory items retrieved successfully"
	MessageSuccessGetRecommendedItem    = "recommended inventory item retrieved successfully"
	MessageSuccessCreateRecommendedItem = "recommended inventory item created successfully"
	MessageSuccessUpdateRecommendedItem = "recommended inventory item updated successfully"
	MessageSuccessDeleteRecommendedItem = "recommended inventory item deleted successfully"
	MessageSuccessCreateFromRecommended = "inventory item created from recommendation"
	MessageSuccessGetCoverage           = "recommendation coverage retrieved successfully"
	MessageFailedGetRecommendedItems    = "failed to fetch recommended inventory items"
	MessageFailedGetRecommendedItem     = "failed to fetch recommended inventory item"
	MessageFailedCreateRecommendedItem  = "failed to create recommended inventory item"
	MessageFailedUpdateRecommendedItem  = "failed to update recommended inventory item"
	MessageFailedDeleteRecommendedItem  = "failed to delete recommended inventory item"
	MessageFailedCreateFromRecommended  = "failed to create inventory item from recommendation"
	MessageFailedGetCoverage            = "failed to fetch recommendation coverage"

	ErrRecommendedItemNotFound = NewError(ErrNotFound, "recommended inventory item not found")
)

type (
	CreateRecommendedItemRequest struct {
		Name        string `json:"name" validate:"required,max=255"`
		Description string `json:"description" validate:"required,max=1000"`
		ExpiresIn   int    `json:"expires_in" validate:"required,min=1"`
		Quantity    int    `json:"quantity" validate:"required,min=1"`
		IsOptional  *bool  `json:"is_optional"`
	}

	UpdateRecommendedItemRequest struct {
		Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
		Description *string `json:"description" validate:"omitempty,min=1,max=1000"`
		ExpiresIn   *int    `json:"expires_in" validate:"omitempty,min=1"`
		Quantity    *int    `json:"quantity" validate:"omitempty,min=1"`
		IsOptional  *bool   `json:"is_optional"`
	}

	// CreateFromRecommendationRequest materializes a catalog entry into a home.
	// Absent overrides fall back to the catalog's quantity and now+expires_in.
	CreateFromRecommendationRequest struct {
		HomeID               uint    `json:"home_id" validate:"required,min=1"`
		Quantity             *int    `json:"quantity" validate:"omitempty,min=0"`
		CustomExpirationDate *string `json:"custom_expiration_date" validate:"omitempty,date"`
	}

	RecommendedItemResponse struct {
		ID          uint      `json:"id"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		Quantity    int       `json:"quantity"`
		ExpiresIn   int       `json:"expires_in"`
		IsOptional  bool      `json:"is_optional"`
		CreatedAt   time.Time `json:"created_at"`
		UpdatedAt   time.Time `json:"updated_at"`
	}

	CoverageResponse struct {
		Followed   []RecommendedItemResponse `json:"followed"`
		Unfollowed []RecommendedItemResponse `json:"unfollowed"`
	}
)
