package inventory

import (
	"context"
	"errors"

	"preben-prepper/domain"
	"preben-prepper/entities"

	"gorm.io/gorm"
)

type (
	InventoryRepository interface {
		CreateInventoryItem(ctx context.Context, item *entities.InventoryItem) error
		GetInventoryItem(ctx context.Context, homeID, itemID uint) (*entities.InventoryItem, error)
		ListInventoryItems(ctx context.Context, homeID uint) ([]*entities.InventoryItem, error)
		UpdateInventoryItem(ctx context.Context, item *entities.InventoryItem) error
		DeleteInventoryItem(ctx context.Context, homeID, itemID uint) error
	}

	inventoryRepository struct {
		db *gorm.DB
	}
)

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) CreateInventoryItem(ctx context.Context, item *entities.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetInventoryItem only finds items belonging to homeID; an item id from
// another home is reported as not found.
func (r *inventoryRepository) GetInventoryItem(ctx context.Context, homeID, itemID uint) (*entities.InventoryItem, error) {
	var item entities.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("id = ? AND home_id = ?", itemID, homeID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInventoryItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) ListInventoryItems(ctx context.Context, homeID uint) ([]*entities.InventoryItem, error) {
	var items []*entities.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("home_id = ?", homeID).
		Order("created_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *inventoryRepository) UpdateInventoryItem(ctx context.Context, item *entities.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *inventoryRepository) DeleteInventoryItem(ctx context.Context, homeID, itemID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND home_id = ?", itemID, homeID).
		Delete(&entities.InventoryItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInventoryItemNotFound
	}
	return nil
}
