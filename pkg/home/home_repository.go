package home

import (
	"context"
	"errors"

	"preben-prepper/domain"
	"preben-prepper/entities"

	"gorm.io/gorm"
)

type (
	HomeRepository interface {
		GetAccessibleHomes(ctx context.Context, userID uint) ([]*entities.Home, error)
		GetHomeByID(ctx context.Context, homeID uint) (*entities.Home, error)
		CountInventoryItems(ctx context.Context, homeIDs ...uint) (map[uint]int64, error)
		CreateHome(ctx context.Context, home *entities.Home) error
		UpdateHome(ctx context.Context, home *entities.Home) error
		DeleteHome(ctx context.Context, homeID uint) (imageURLs []string, err error)
	}

	homeRepository struct {
		db *gorm.DB
	}
)

func NewHomeRepository(db *gorm.DB) HomeRepository {
	return &homeRepository{db: db}
}

func (r *homeRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Owner").
		Preload("HomeAccesses", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Preload("HomeAccesses.User")
}

// GetAccessibleHomes returns homes userID owns or holds a grant for, newest first.
func (r *homeRepository) GetAccessibleHomes(ctx context.Context, userID uint) ([]*entities.Home, error) {
	granted := r.db.Model(&entities.HomeAccess{}).Select("home_id").Where("user_id = ?", userID)

	var homes []*entities.Home
	if err := r.preloaded(ctx).
		Where("owner_id = ? OR id IN (?)", userID, granted).
		Order("created_at DESC, id DESC").
		Find(&homes).Error; err != nil {
		return nil, err
	}
	return homes, nil
}

func (r *homeRepository) GetHomeByID(ctx context.Context, homeID uint) (*entities.Home, error) {
	var home entities.Home
	if err := r.preloaded(ctx).Where("id = ?", homeID).First(&home).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrHomeNotFound
		}
		return nil, err
	}
	return &home, nil
}

func (r *homeRepository) CountInventoryItems(ctx context.Context, homeIDs ...uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(homeIDs))
	if len(homeIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		HomeID uint
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.InventoryItem{}).
		Select("home_id, COUNT(*) AS count").
		Where("home_id IN ?", homeIDs).
		Group("home_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.HomeID] = row.Count
	}
	return counts, nil
}

func (r *homeRepository) CreateHome(ctx context.Context, home *entities.Home) error {
	return r.db.WithContext(ctx).Create(home).Error
}

func (r *homeRepository) UpdateHome(ctx context.Context, home *entities.Home) error {
	return r.db.WithContext(ctx).
		Model(home).
		Select("name", "number_of_adults", "number_of_children", "number_of_pets").
		Updates(home).Error
}

// DeleteHome removes the home together with its items and grants, and clears
// it as anyone's default home. It returns the image links of the deleted items.
func (r *homeRepository) DeleteHome(ctx context.Context, homeID uint) ([]string, error) {
	var imageURLs []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.InventoryItem{}).
			Where("home_id = ? AND image_url <> ''", homeID).
			Pluck("image_url", &imageURLs).Error; err != nil {
			return err
		}
		if err := tx.Where("home_id = ?", homeID).Delete(&entities.InventoryItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("home_id = ?", homeID).Delete(&entities.HomeAccess{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&entities.User{}).
			Where("default_home_id = ?", homeID).
			Update("default_home_id", nil).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", homeID).Delete(&entities.Home{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrHomeNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return imageURLs, nil
}
