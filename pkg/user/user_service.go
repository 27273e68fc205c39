package user

import (
	"context"
	"errors"
	"strings"

	"preben-prepper/domain"
	"preben-prepper/entities"
	"preben-prepper/internal/utils"
	"preben-prepper/pkg/access"
	"preben-prepper/pkg/jwt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error)
		RefreshToken(ctx context.Context, userID uint) (domain.TokenResponse, error)
		Me(ctx context.Context, userID uint) (domain.UserResponse, error)

		GetUsers(ctx context.Context) ([]domain.UserResponse, error)
		GetUser(ctx context.Context, userID uint) (domain.UserResponse, error)
		CreateUser(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		UpdateUser(ctx context.Context, requesterID uint, requesterRole string, userID uint, req domain.UpdateUserRequest) (domain.UserResponse, error)
		DeleteUser(ctx context.Context, requesterID uint, requesterRole string, userID uint) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		access         access.AccessChecker
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, checker access.AccessChecker) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		access:         checker,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	user, err := s.createUser(ctx, req)
	if err != nil {
		return domain.AuthResponse{}, err
	}
	return s.authResponse(user)
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.AuthResponse{}, domain.ErrInvalidCredentials
		}
		return domain.AuthResponse{}, err
	}

	if !utils.VerifyPassword(user.Password, req.Password) {
		return domain.AuthResponse{}, domain.ErrInvalidCredentials
	}
	return s.authResponse(user)
}

func (s *userService) RefreshToken(ctx context.Context, userID uint) (domain.TokenResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return domain.TokenResponse{}, err
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID, user.Email, user.Role)
	if err != nil {
		return domain.TokenResponse{}, err
	}
	return domain.TokenResponse{Token: token}, nil
}

func (s *userService) Me(ctx context.Context, userID uint) (domain.UserResponse, error) {
	return s.GetUser(ctx, userID)
}

func (s *userService) GetUsers(ctx context.Context) ([]domain.UserResponse, error) {
	users, err := s.userRepository.GetUsers(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.UserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, ToUserResponse(u))
	}
	return res, nil
}

func (s *userService) GetUser(ctx context.Context, userID uint) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return ToUserResponse(user), nil
}

func (s *userService) CreateUser(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	user, err := s.createUser(ctx, req)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return ToUserResponse(user), nil
}

func (s *userService) UpdateUser(ctx context.Context, requesterID uint, requesterRole string, userID uint, req domain.UpdateUserRequest) (domain.UserResponse, error) {
	if requesterID != userID && requesterRole != domain.RoleAdmin {
		return domain.UserResponse{}, domain.ErrUserNotAllowed
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return domain.UserResponse{}, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		user.Name = strings.TrimSpace(*req.Name)
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != user.Email {
			existing, err := s.userRepository.GetUserByEmail(ctx, email)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return domain.UserResponse{}, err
			}
			if existing != nil && existing.ID != user.ID {
				return domain.UserResponse{}, domain.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}

	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return domain.UserResponse{}, err
		}
		user.Password = hash
	}

	if req.DefaultHomeID != nil {
		if err := access.RequireAccess(ctx, s.access, user.ID, *req.DefaultHomeID); err != nil {
			return domain.UserResponse{}, err
		}
		homeID := *req.DefaultHomeID
		user.DefaultHomeID = &homeID
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}
	return ToUserResponse(user), nil
}

// DeleteUser refuses while the user still owns homes; those must be deleted first.
func (s *userService) DeleteUser(ctx context.Context, requesterID uint, requesterRole string, userID uint) error {
	if requesterID != userID && requesterRole != domain.RoleAdmin {
		return domain.ErrUserNotAllowed
	}

	if _, err := s.userRepository.GetUserByID(ctx, userID); err != nil {
		return err
	}

	owned, err := s.userRepository.CountOwnedHomes(ctx, userID)
	if err != nil {
		return err
	}
	if owned > 0 {
		return domain.ErrUserOwnsHomes
	}
	return s.userRepository.DeleteUser(ctx, userID)
}

func (s *userService) createUser(ctx context.Context, req domain.RegisterRequest) (*entities.User, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.userRepository.GetUserByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: hash,
		Role:     domain.RoleUser,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) authResponse(user *entities.User) (domain.AuthResponse, error) {
	token, err := s.jwtService.GenerateTokenUser(user.ID, user.Email, user.Role)
	if err != nil {
		return domain.AuthResponse{}, err
	}
	return domain.AuthResponse{User: ToUserResponse(user), Token: token}, nil
}

func ToUserResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Role:          user.Role,
		DefaultHomeID: user.DefaultHomeID,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}
