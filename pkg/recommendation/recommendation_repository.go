package recommendation

import (
	"context"
	"errors"

	"preben-prepper/domain"
	"preben-prepper/entities"

	"gorm.io/gorm"
)

type (
	RecommendationRepository interface {
		GetRecommendedItems(ctx context.Context, includeOptional bool) ([]*entities.RecommendedInventoryItem, error)
		GetAllRecommendedItems(ctx context.Context) ([]*entities.RecommendedInventoryItem, error)
		GetRecommendedItemByID(ctx context.Context, id uint) (*entities.RecommendedInventoryItem, error)
		GetRecommendedItemByName(ctx context.Context, name string) (*entities.RecommendedInventoryItem, error)
		CreateRecommendedItem(ctx context.Context, item *entities.RecommendedInventoryItem) error
		UpdateRecommendedItem(ctx context.Context, item *entities.RecommendedInventoryItem) error
		DeleteRecommendedItem(ctx context.Context, id uint) error
	}

	recommendationRepository struct {
		db *gorm.DB
	}
)

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

// GetRecommendedItems lists essentials before optional items, then by name.
func (r *recommendationRepository) GetRecommendedItems(ctx context.Context, includeOptional bool) ([]*entities.RecommendedInventoryItem, error) {
	var items []*entities.RecommendedInventoryItem
	query := r.db.WithContext(ctx).Model(&entities.RecommendedInventoryItem{})
	if !includeOptional {
		query = query.Where("is_optional = ?", false)
	}
	if err := query.Order("is_optional ASC, name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *recommendationRepository) GetAllRecommendedItems(ctx context.Context) ([]*entities.RecommendedInventoryItem, error) {
	var items []*entities.RecommendedInventoryItem
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *recommendationRepository) GetRecommendedItemByID(ctx context.Context, id uint) (*entities.RecommendedInventoryItem, error) {
	var item entities.RecommendedInventoryItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecommendedItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *recommendationRepository) GetRecommendedItemByName(ctx context.Context, name string) (*entities.RecommendedInventoryItem, error) {
	var item entities.RecommendedInventoryItem
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecommendedItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *recommendationRepository) CreateRecommendedItem(ctx context.Context, item *entities.RecommendedInventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *recommendationRepository) UpdateRecommendedItem(ctx context.Context, item *entities.RecommendedInventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *recommendationRepository) DeleteRecommendedItem(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.RecommendedInventoryItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrRecommendedItemNotFound
	}
	return nil
}
