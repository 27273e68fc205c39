package domain

import "time"

var (
	MessageSuccessGetHomes         = "homes retrieved successfully"
	MessageSuccessGetHome          = "home retrieved successfully"
	MessageSuccessCreateHome       = "home created successfully"
	MessageSuccessUpdateHome       = "home updated successfully"
	MessageSuccessDeleteHome       = "home deleted successfully"
	MessageSuccessGrantAccess      = "access granted successfully"
	MessageSuccessUpdateHomeAccess = "home access updated successfully"
	MessageSuccessRevokeAccess     = "home access revoked successfully"
	MessageFailedGetHomes          = "failed to fetch homes"
	MessageFailedGetHome           = "failed to fetch home"
	MessageFailedCreateHome        = "failed to create home"
	MessageFailedUpdateHome        = "failed to update home"
	MessageFailedDeleteHome        = "failed to delete home"
	MessageFailedGrantAccess       = "failed to grant home access"
	MessageFailedUpdateHomeAccess  = "failed to update home access"
	MessageFailedRevokeAccess      = "failed to revoke home access"

	ErrHomeNotFound         = NewError(ErrNotFound, "home not found or access denied")
	ErrHomeAccessDenied     = NewError(ErrForbidden, "access denied to this home")
	ErrHomeManageDenied     = NewError(ErrForbidden, "access denied or home not found")
	ErrHomeOwnerOnly        = NewError(ErrForbidden, "only the home owner may do this")
	ErrGranteeNotFound      = NewError(ErrNotFound, "user not found")
	ErrGrantToOwner         = NewError(ErrConflict, "cannot grant access to home owner")
	ErrAccessAlreadyGranted = NewError(ErrConflict, "user already has access to this home")
	ErrHomeAccessNotFound   = NewError(ErrNotFound, "home access not found")
	ErrInvalidHomeRole      = NewError(ErrInvalidInput, "role must be ADMIN or MEMBER")
)

type (
	CreateHomeRequest struct {
		Name             string `json:"name" validate:"required"`
		NumberOfAdults   *int   `json:"number_of_adults" validate:"omitempty,min=1"`
		NumberOfChildren *int   `json:"number_of_children" validate:"omitempty,min=0"`
		NumberOfPets     *int   `json:"number_of_pets" validate:"omitempty,min=0"`
	}

	UpdateHomeRequest struct {
		Name             *string `json:"name" validate:"omitempty,min=1"`
		NumberOfAdults   *int    `json:"number_of_adults" validate:"omitempty,min=1"`
		NumberOfChildren *int    `json:"number_of_children" validate:"omitempty,min=0"`
		NumberOfPets     *int    `json:"number_of_pets" validate:"omitempty,min=0"`
	}

	GrantAccessRequest struct {
		UserID uint   `json:"user_id" validate:"required,min=1"`
		Role   string `json:"role" validate:"omitempty,oneof=ADMIN MEMBER"`
	}

	UpdateHomeAccessRequest struct {
		Role string `json:"role" validate:"required,oneof=ADMIN MEMBER"`
	}

	HomeAccessResponse struct {
		ID        uint        `json:"id"`
		UserID    uint        `json:"user_id"`
		HomeID    uint        `json:"home_id"`
		Role      string      `json:"role"`
		User      UserSummary `json:"user"`
		CreatedAt time.Time   `json:"created_at"`
	}

	HomeResponse struct {
		ID               uint                 `json:"id"`
		Name             string               `json:"name"`
		NumberOfAdults   int                  `json:"number_of_adults"`
		NumberOfChildren int                  `json:"number_of_children"`
		NumberOfPets     int                  `json:"number_of_pets"`
		Owner            UserSummary          `json:"owner"`
		HomeAccesses     []HomeAccessResponse `json:"home_accesses"`
		InventoryCount   int64                `json:"inventory_count"`
		CreatedAt        time.Time            `json:"created_at"`
		UpdatedAt        time.Time            `json:"updated_at"`
	}
)
