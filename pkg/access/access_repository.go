package access

import (
	"context"
	"errors"

	"preben-prepper/domain"
	"preben-prepper/entities"

	"gorm.io/gorm"
)

type (
	AccessRepository interface {
		GetHomeByID(ctx context.Context, homeID uint) (*entities.Home, error)
		GetHomeAccess(ctx context.Context, userID, homeID uint) (*entities.HomeAccess, error)
		UserExists(ctx context.Context, userID uint) (bool, error)
		CreateHomeAccess(ctx context.Context, access *entities.HomeAccess) error
		UpdateHomeAccess(ctx context.Context, access *entities.HomeAccess) error
		DeleteHomeAccess(ctx context.Context, userID, homeID uint) error
	}

	accessRepository struct {
		db *gorm.DB
	}
)

func NewAccessRepository(db *gorm.DB) AccessRepository {
	return &accessRepository{db: db}
}

// GetHomeByID returns (nil, nil) when the home does not exist.
func (r *accessRepository) GetHomeByID(ctx context.Context, homeID uint) (*entities.Home, error) {
	var home entities.Home
	if err := r.db.WithContext(ctx).Where("id = ?", homeID).First(&home).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &home, nil
}

// GetHomeAccess returns (nil, nil) when no grant exists for the pair.
func (r *accessRepository) GetHomeAccess(ctx context.Context, userID, homeID uint) (*entities.HomeAccess, error) {
	var access entities.HomeAccess
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND home_id = ?", userID, homeID).
		Preload("User").
		First(&access).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &access, nil
}

func (r *accessRepository) UserExists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *accessRepository) CreateHomeAccess(ctx context.Context, access *entities.HomeAccess) error {
	err := r.db.WithContext(ctx).Create(access).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrAccessAlreadyGranted
	}
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Preload("User").First(access, access.ID).Error
}

func (r *accessRepository) UpdateHomeAccess(ctx context.Context, access *entities.HomeAccess) error {
	return r.db.WithContext(ctx).Model(access).Update("role", access.Role).Error
}

func (r *accessRepository) DeleteHomeAccess(ctx context.Context, userID, homeID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND home_id = ?", userID, homeID).
		Delete(&entities.HomeAccess{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrHomeAccessNotFound
	}
	return nil
}
