package inventory

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"
	"strings"
	"time"

	"preben-prepper/domain"
	"preben-prepper/entities"
	"preben-prepper/internal/utils"
	"preben-prepper/internal/utils/storage"
	"preben-prepper/pkg/access"

	"github.com/sirupsen/logrus"
)

type (
	InventoryService interface {
		GetInventoryItems(ctx context.Context, userID, homeID uint) ([]domain.InventoryItemResponse, error)
		GetInventoryItem(ctx context.Context, userID, homeID, itemID uint) (domain.InventoryItemResponse, error)
		AddInventoryItem(ctx context.Context, userID, homeID uint, req domain.AddInventoryItemRequest) (domain.InventoryItemResponse, error)
		UpdateInventoryItem(ctx context.Context, userID, homeID, itemID uint, req domain.UpdateInventoryItemRequest) (domain.InventoryItemResponse, error)
		DeleteInventoryItem(ctx context.Context, userID, homeID, itemID uint) error
		GetExpiringItems(ctx context.Context, userID, homeID uint) ([]domain.InventoryItemResponse, error)
		GetInventoryStats(ctx context.Context, userID, homeID uint) (domain.InventoryStatsResponse, error)
		UploadItemImage(ctx context.Context, userID, homeID, itemID uint, image *multipart.FileHeader) (domain.InventoryItemResponse, error)
	}

	inventoryService struct {
		inventoryRepository InventoryRepository
		access              access.AccessChecker
		s3                  storage.AwsS3
		log                 *logrus.Logger
		now                 func() time.Time
	}
)

func NewInventoryService(
	inventoryRepository InventoryRepository,
	checker access.AccessChecker,
	s3 storage.AwsS3,
	log *logrus.Logger,
) InventoryService {
	return &inventoryService{
		inventoryRepository: inventoryRepository,
		access:              checker,
		s3:                  s3,
		log:                 log,
		now:                 time.Now,
	}
}

func (s *inventoryService) GetInventoryItems(ctx context.Context, userID, homeID uint) ([]domain.InventoryItemResponse, error) {
	if err := access.RequireAccess(ctx, s.access, userID, homeID); err != nil {
		return nil, err
	}

	items, err := s.inventoryRepository.ListInventoryItems(ctx, homeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	res := make([]domain.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		res = append(res, ToInventoryItemResponse(item, now))
	}
	return res, nil
}

func (s *inventoryService) GetInventoryItem(ctx context.Context, userID, homeID, itemID uint) (domain.InventoryItemResponse, error) {
	if err := access.RequireAccess(ctx, s.access, userID, homeID); err != nil {
		return domain.InventoryItemResponse{}, err
	}

	item, err := s.inventoryRepository.GetInventoryItem(ctx, homeID, itemID)
	if err != nil {
		return domain.InventoryItemResponse{}, err
	}
	return ToInventoryItemResponse(item, s.now()), nil
}

func (s *inventoryService) AddInventoryItem(ctx context.Context, userID, homeID uint, req domain.AddInventoryItemRequest) (domain.InventoryItemResponse, error) {
	if err := access.RequireAccess(ctx, s.access, userID, homeID); err != nil {
		return domain.InventoryItemResponse{}, err
	}

	if req.Quantity == nil || *req.Quantity < 0 {
		return domain.InventoryItemResponse{}, domain.ErrInvalidQuantity
	}

	item := &entities.InventoryItem{
		HomeID:   homeID,
		Name:     strings.TrimSpace(req.Name),
		Quantity: *req.Quantity,
	}

	if req.ExpirationDate != "" {
		exp, err := utils.ParseDate(req.ExpirationDate)
		if err != nil {
			return domain.InventoryItemResponse{}, domain.ErrInvalidExpiryDate
		}
		item.ExpirationDate = &exp
	}

	if err := s.inventoryRepository.CreateInventoryItem(ctx, item); err != nil {
		return domain.InventoryItemResponse{}, err
	}
	return ToInventoryItemResponse(item, s.now()), nil
}

func (s *inventoryService) UpdateInventoryItem(ctx context.Context, userID, homeID, itemID uint, req domain.UpdateInventoryItemRequest) (domain.InventoryItemResponse, error) {
	if err := access.RequireAccess(ctx, s.access, userID, homeID); err != nil {
		return domain.InventoryItemResponse{}, err
	}

	item, err := s.inventoryRepository.GetInventoryItem(ctx, homeID, itemID)
	if err != nil {
		return domain.InventoryItemResponse{}, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		item.Name = strings.TrimSpace(*req.Name)
	}

	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return domain.InventoryItemResponse{}, domain.ErrInvalidQuantity
		}
		item.Quantity = *req.Quantity
	}

	// an empty string clears the date, an absent field leaves it alone
	if req.ExpirationDate != nil {
		if *req.ExpirationDate == "" {
			item.ExpirationDate = nil
		} else {
			exp, err := utils.ParseDate(*req.ExpirationDate)
			if err != nil {
				return domain.InventoryItemResponse{}, domain.ErrInvalidExpiryDate
			}
			item.ExpirationDate = &exp
		}
	}

	if err := s.inventoryRepository.UpdateInventoryItem(ctx, item); err != nil {
		return domain.InventoryItemResponse{}, err
	}
	return ToInventoryItemResponse(item, s.now()), nil
}

func (s *inventoryService) DeleteInventoryItem(ctx context.Context, userID, homeID, itemID uint) error {
	if err := access.RequireAccess(ctx, s.access, userID, homeID); err != nil {
		return err
	}

	item, err := s.inventoryRepository.GetInventoryItem(ctx, homeID, itemID)
	if err != nil {
		return err
	}

	if err := s.inventoryRepository.DeleteInventoryItem(ctx, homeID, itemID); err != nil {
		return err
	}

	s.deleteImage(ctx, item.ImageURL)
	return nil
}

// GetExpiringItems returns expired and expiring-soon items, soonest first.
// Items without an expiration date are never included.
func (s *inventoryService) GetExpiringItems(ctx context.Context, userID, homeID uint) ([]domain.InventoryItemResponse, error) {
	if err := access.RequireAccess(ctx, s.access, userID, homeID); err != nil {
		return nil, err
	}

	items, err := s.inventoryRepository.ListInventoryItems(ctx, homeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	res := make([]domain.InventoryItemResponse, 0)
	for _, item := range items {
		if item.ExpirationDate == nil {
			continue
		}
		if Classify(item.ExpirationDate, now) == domain.StatusFresh {
			continue
		}
		res = append(res, ToInventoryItemResponse(item, now))
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].ExpirationDate.Before(*res[j].ExpirationDate)
	})
	return res, nil
}

func (s *inventoryService) GetInventoryStats(ctx context.Context, userID, homeID uint) (domain.InventoryStatsResponse, error) {
	if err := access.RequireAccess(ctx, s.access, userID, homeID); err != nil {
		return domain.InventoryStatsResponse{}, err
	}

	items, err := s.inventoryRepository.ListInventoryItems(ctx, homeID)
	if err != nil {
		return domain.InventoryStatsResponse{}, err
	}

	now := s.now()
	var stats domain.InventoryStatsResponse
	for _, item := range items {
		stats.TotalItems++
		stats.TotalQuantity += item.Quantity

		if item.ExpirationDate == nil {
			stats.UndatedItems++
			continue
		}
		switch Classify(item.ExpirationDate, now) {
		case domain.StatusExpired:
			stats.ExpiredItems++
		case domain.StatusExpiringSoon:
			stats.ExpiringSoonItems++
		default:
			stats.FreshItems++
		}
	}
	return stats, nil
}

func (s *inventoryService) UploadItemImage(ctx context.Context, userID, homeID, itemID uint, image *multipart.FileHeader) (domain.InventoryItemResponse, error) {
	if err := access.RequireAccess(ctx, s.access, userID, homeID); err != nil {
		return domain.InventoryItemResponse{}, err
	}

	if image == nil || !storage.AllowImage(image.Filename) {
		return domain.InventoryItemResponse{}, domain.ErrInvalidImageFormat
	}

	item, err := s.inventoryRepository.GetInventoryItem(ctx, homeID, itemID)
	if err != nil {
		return domain.InventoryItemResponse{}, err
	}

	link, err := s.s3.UploadFile(ctx, image, fmt.Sprintf("homes/%d/items", homeID))
	if err != nil {
		return domain.InventoryItemResponse{}, err
	}

	previous := item.ImageURL
	item.ImageURL = link
	if err := s.inventoryRepository.UpdateInventoryItem(ctx, item); err != nil {
		return domain.InventoryItemResponse{}, err
	}

	s.deleteImage(ctx, previous)
	return ToInventoryItemResponse(item, s.now()), nil
}

func (s *inventoryService) deleteImage(ctx context.Context, link string) {
	if err := storage.DeleteByLink(ctx, s.s3, link); err != nil {
		s.log.WithError(err).WithField("image_url", link).Warn("failed to delete item image")
	}
}

func ToInventoryItemResponse(item *entities.InventoryItem, now time.Time) domain.InventoryItemResponse {
	res := domain.InventoryItemResponse{
		ID:               item.ID,
		HomeID:           item.HomeID,
		Name:             item.Name,
		Quantity:         item.Quantity,
		ExpirationDate:   item.ExpirationDate,
		ExpirationStatus: Classify(item.ExpirationDate, now),
		ImageURL:         item.ImageURL,
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}
	if item.ExpirationDate != nil {
		days := DaysUntilExpiration(*item.ExpirationDate, now)
		res.DaysUntilExpiry = &days
	}
	return res
}
