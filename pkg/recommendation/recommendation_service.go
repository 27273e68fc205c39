package recommendation

import (
	"context"
	"strings"
	"time"

	"preben-prepper/domain"
	"preben-prepper/entities"
	"preben-prepper/internal/utils"
	"preben-prepper/pkg/access"
	"preben-prepper/pkg/inventory"
)

type (
	RecommendationService interface {
		GetRecommendedItems(ctx context.Context, includeOptional bool) ([]domain.RecommendedItemResponse, error)
		CreateFromRecommendation(ctx context.Context, userID, recommendedItemID uint, req domain.CreateFromRecommendationRequest) (domain.InventoryItemResponse, error)
		GetCoverage(ctx context.Context, userID *uint, homeID uint) (domain.CoverageResponse, error)

		GetAllRecommendedItems(ctx context.Context) ([]domain.RecommendedItemResponse, error)
		GetRecommendedItem(ctx context.Context, id uint) (domain.RecommendedItemResponse, error)
		CreateRecommendedItem(ctx context.Context, req domain.CreateRecommendedItemRequest) (domain.RecommendedItemResponse, error)
		UpdateRecommendedItem(ctx context.Context, id uint, req domain.UpdateRecommendedItemRequest) (domain.RecommendedItemResponse, error)
		DeleteRecommendedItem(ctx context.Context, id uint) error
	}

	recommendationService struct {
		recommendationRepository RecommendationRepository
		inventoryRepository      inventory.InventoryRepository
		access                   access.AccessChecker
		now                      func() time.Time
	}
)

func NewRecommendationService(
	recommendationRepository RecommendationRepository,
	inventoryRepository inventory.InventoryRepository,
	checker access.AccessChecker,
) RecommendationService {
	return &recommendationService{
		recommendationRepository: recommendationRepository,
		inventoryRepository:      inventoryRepository,
		access:                   checker,
		now:                      time.Now,
	}
}

func (s *recommendationService) GetRecommendedItems(ctx context.Context, includeOptional bool) ([]domain.RecommendedItemResponse, error) {
	items, err := s.recommendationRepository.GetRecommendedItems(ctx, includeOptional)
	if err != nil {
		return nil, err
	}
	return toRecommendedItemResponses(items), nil
}

// CreateFromRecommendation copies a catalog entry into a home as a new
// inventory item. The catalog entry itself is left untouched.
func (s *recommendationService) CreateFromRecommendation(ctx context.Context, userID, recommendedItemID uint, req domain.CreateFromRecommendationRequest) (domain.InventoryItemResponse, error) {
	if err := access.RequireAccess(ctx, s.access, userID, req.HomeID); err != nil {
		return domain.InventoryItemResponse{}, err
	}

	rec, err := s.recommendationRepository.GetRecommendedItemByID(ctx, recommendedItemID)
	if err != nil {
		return domain.InventoryItemResponse{}, err
	}

	quantity := rec.Quantity
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return domain.InventoryItemResponse{}, domain.ErrInvalidQuantity
		}
		quantity = *req.Quantity
	}

	now := s.now()
	expiration := now.AddDate(0, 0, rec.ExpiresIn)
	if req.CustomExpirationDate != nil && *req.CustomExpirationDate != "" {
		expiration, err = utils.ParseDate(*req.CustomExpirationDate)
		if err != nil {
			return domain.InventoryItemResponse{}, domain.ErrInvalidExpiryDate
		}
	}

	item := &entities.InventoryItem{
		HomeID:         req.HomeID,
		Name:           rec.Name,
		Quantity:       quantity,
		ExpirationDate: &expiration,
	}
	if err := s.inventoryRepository.CreateInventoryItem(ctx, item); err != nil {
		return domain.InventoryItemResponse{}, err
	}
	return inventory.ToInventoryItemResponse(item, now), nil
}

// GetCoverage reconciles the whole catalog against homeID's inventory.
// Anonymous callers (nil userID) get an empty partition.
func (s *recommendationService) GetCoverage(ctx context.Context, userID *uint, homeID uint) (domain.CoverageResponse, error) {
	empty := domain.CoverageResponse{
		Followed:   []domain.RecommendedItemResponse{},
		Unfollowed: []domain.RecommendedItemResponse{},
	}
	if userID == nil {
		return empty, nil
	}

	if err := access.RequireAccess(ctx, s.access, *userID, homeID); err != nil {
		return empty, err
	}

	items, err := s.inventoryRepository.ListInventoryItems(ctx, homeID)
	if err != nil {
		return empty, err
	}

	catalog, err := s.recommendationRepository.GetRecommendedItems(ctx, true)
	if err != nil {
		return empty, err
	}

	p := Reconcile(items, catalog)
	return domain.CoverageResponse{
		Followed:   toRecommendedItemResponses(p.Followed),
		Unfollowed: toRecommendedItemResponses(p.Unfollowed),
	}, nil
}

func (s *recommendationService) GetAllRecommendedItems(ctx context.Context) ([]domain.RecommendedItemResponse, error) {
	items, err := s.recommendationRepository.GetAllRecommendedItems(ctx)
	if err != nil {
		return nil, err
	}
	return toRecommendedItemResponses(items), nil
}

func (s *recommendationService) GetRecommendedItem(ctx context.Context, id uint) (domain.RecommendedItemResponse, error) {
	item, err := s.recommendationRepository.GetRecommendedItemByID(ctx, id)
	if err != nil {
		return domain.RecommendedItemResponse{}, err
	}
	return ToRecommendedItemResponse(item), nil
}

func (s *recommendationService) CreateRecommendedItem(ctx context.Context, req domain.CreateRecommendedItemRequest) (domain.RecommendedItemResponse, error) {
	item := &entities.RecommendedInventoryItem{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Quantity:    req.Quantity,
		ExpiresIn:   req.ExpiresIn,
	}
	if req.IsOptional != nil {
		item.IsOptional = *req.IsOptional
	}

	if err := s.recommendationRepository.CreateRecommendedItem(ctx, item); err != nil {
		return domain.RecommendedItemResponse{}, err
	}
	return ToRecommendedItemResponse(item), nil
}

func (s *recommendationService) UpdateRecommendedItem(ctx context.Context, id uint, req domain.UpdateRecommendedItemRequest) (domain.RecommendedItemResponse, error) {
	item, err := s.recommendationRepository.GetRecommendedItemByID(ctx, id)
	if err != nil {
		return domain.RecommendedItemResponse{}, err
	}

	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.ExpiresIn != nil {
		item.ExpiresIn = *req.ExpiresIn
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.IsOptional != nil {
		item.IsOptional = *req.IsOptional
	}

	if err := s.recommendationRepository.UpdateRecommendedItem(ctx, item); err != nil {
		return domain.RecommendedItemResponse{}, err
	}
	return ToRecommendedItemResponse(item), nil
}

func (s *recommendationService) DeleteRecommendedItem(ctx context.Context, id uint) error {
	return s.recommendationRepository.DeleteRecommendedItem(ctx, id)
}

func ToRecommendedItemResponse(item *entities.RecommendedInventoryItem) domain.RecommendedItemResponse {
	return domain.RecommendedItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Quantity:    item.Quantity,
		ExpiresIn:   item.ExpiresIn,
		IsOptional:  item.IsOptional,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func toRecommendedItemResponses(items []*entities.RecommendedInventoryItem) []domain.RecommendedItemResponse {
	res := make([]domain.RecommendedItemResponse, 0, len(items))
	for _, item := range items {
		res = append(res, ToRecommendedItemResponse(item))
	}
	return res
}
