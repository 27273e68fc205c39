package domain

import "time"

var (
	MessageSuccessRegister   = "user registered successfully"
	MessageSuccessLogin      = "authentication successful"
	MessageSuccessRefresh    = "token refreshed successfully"
	MessageSuccessGetUser    = "user retrieved successfully"
	MessageSuccessGetUsers   = "users retrieved successfully"
	MessageSuccessCreateUser = "user created successfully"
	MessageSuccessUpdateUser = "user updated successfully"
	MessageSuccessDeleteUser = "user deleted successfully"
	MessageFailedRegister    = "registration failed"
	MessageFailedLogin       = "authentication failed"
	MessageFailedRefresh     = "token refresh failed"
	MessageFailedGetUser     = "failed to get user"
	MessageFailedGetUsers    = "failed to fetch users"
	MessageFailedCreateUser  = "failed to create user"
	MessageFailedUpdateUser  = "failed to update user"
	MessageFailedDeleteUser  = "failed to delete user"

	ErrUserNotFound       = NewError(ErrNotFound, "user not found")
	ErrEmailAlreadyExists = NewError(ErrConflict, "email already exists")
	ErrInvalidCredentials = NewError(ErrUnauthorized, "invalid credentials")
	ErrUserOwnsHomes      = NewError(ErrConflict, "user still owns homes")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	UpdateUserRequest struct {
		Name          *string `json:"name" validate:"omitempty,min=1"`
		Email         *string `json:"email" validate:"omitempty,email"`
		Password      *string `json:"password" validate:"omitempty,min=6"`
		DefaultHomeID *uint   `json:"default_home_id" validate:"omitempty,min=1"`
	}

	UserResponse struct {
		ID            uint      `json:"id"`
		Name          string    `json:"name"`
		Email         string    `json:"email"`
		Role          string    `json:"role"`
		DefaultHomeID *uint     `json:"default_home_id,omitempty"`
		CreatedAt     time.Time `json:"created_at"`
		UpdatedAt     time.Time `json:"updated_at"`
	}

	AuthResponse struct {
		User  UserResponse `json:"user"`
		Token string       `json:"token"`
	}

	TokenResponse struct {
		Token string `json:"token"`
	}

	// UserSummary is the public projection embedded in home responses.
	UserSummary struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
)
