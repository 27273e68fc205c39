package home

import (
	"context"
	"strings"

	"preben-prepper/domain"
	"preben-prepper/entities"
	"preben-prepper/internal/utils/storage"
	"preben-prepper/pkg/access"

	"github.com/sirupsen/logrus"
)

type (
	HomeService interface {
		GetHomes(ctx context.Context, userID uint) ([]domain.HomeResponse, error)
		GetHome(ctx context.Context, userID, homeID uint) (domain.HomeResponse, error)
		CreateHome(ctx context.Context, userID uint, req domain.CreateHomeRequest) (domain.HomeResponse, error)
		UpdateHome(ctx context.Context, userID, homeID uint, req domain.UpdateHomeRequest) (domain.HomeResponse, error)
		DeleteHome(ctx context.Context, userID, homeID uint) error
	}

	homeService struct {
		homeRepository HomeRepository
		access         access.AccessService
		s3             storage.AwsS3
		log            *logrus.Logger
	}
)

func NewHomeService(
	homeRepository HomeRepository,
	accessService access.AccessService,
	s3 storage.AwsS3,
	log *logrus.Logger,
) HomeService {
	return &homeService{
		homeRepository: homeRepository,
		access:         accessService,
		s3:             s3,
		log:            log,
	}
}

func (s *homeService) GetHomes(ctx context.Context, userID uint) ([]domain.HomeResponse, error) {
	homes, err := s.homeRepository.GetAccessibleHomes(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(homes))
	for _, h := range homes {
		ids = append(ids, h.ID)
	}
	counts, err := s.homeRepository.CountInventoryItems(ctx, ids...)
	if err != nil {
		return nil, err
	}

	res := make([]domain.HomeResponse, 0, len(homes))
	for _, h := range homes {
		res = append(res, ToHomeResponse(h, counts[h.ID]))
	}
	return res, nil
}

// GetHome hides homes the caller cannot see behind the same NotFound as a
// missing id.
func (s *homeService) GetHome(ctx context.Context, userID, homeID uint) (domain.HomeResponse, error) {
	ok, err := s.access.HasAccess(ctx, userID, homeID)
	if err != nil {
		return domain.HomeResponse{}, err
	}
	if !ok {
		return domain.HomeResponse{}, domain.ErrHomeNotFound
	}
	return s.load(ctx, homeID)
}

func (s *homeService) CreateHome(ctx context.Context, userID uint, req domain.CreateHomeRequest) (domain.HomeResponse, error) {
	home := &entities.Home{
		Name:           strings.TrimSpace(req.Name),
		NumberOfAdults: 2,
		OwnerID:        userID,
	}
	if req.NumberOfAdults != nil {
		home.NumberOfAdults = *req.NumberOfAdults
	}
	if req.NumberOfChildren != nil {
		home.NumberOfChildren = *req.NumberOfChildren
	}
	if req.NumberOfPets != nil {
		home.NumberOfPets = *req.NumberOfPets
	}

	if err := s.homeRepository.CreateHome(ctx, home); err != nil {
		return domain.HomeResponse{}, err
	}
	return s.load(ctx, home.ID)
}

func (s *homeService) UpdateHome(ctx context.Context, userID, homeID uint, req domain.UpdateHomeRequest) (domain.HomeResponse, error) {
	ok, err := s.access.CanManage(ctx, userID, homeID)
	if err != nil {
		return domain.HomeResponse{}, err
	}
	if !ok {
		return domain.HomeResponse{}, domain.ErrHomeNotFound
	}

	home, err := s.homeRepository.GetHomeByID(ctx, homeID)
	if err != nil {
		return domain.HomeResponse{}, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		home.Name = strings.TrimSpace(*req.Name)
	}
	if req.NumberOfAdults != nil {
		home.NumberOfAdults = *req.NumberOfAdults
	}
	if req.NumberOfChildren != nil {
		home.NumberOfChildren = *req.NumberOfChildren
	}
	if req.NumberOfPets != nil {
		home.NumberOfPets = *req.NumberOfPets
	}

	if err := s.homeRepository.UpdateHome(ctx, home); err != nil {
		return domain.HomeResponse{}, err
	}
	return s.load(ctx, homeID)
}

func (s *homeService) DeleteHome(ctx context.Context, userID, homeID uint) error {
	ok, err := s.access.HasAccess(ctx, userID, homeID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrHomeNotFound
	}

	home, err := s.homeRepository.GetHomeByID(ctx, homeID)
	if err != nil {
		return err
	}
	if home.OwnerID != userID {
		return domain.ErrHomeOwnerOnly
	}
	imageURLs, err := s.homeRepository.DeleteHome(ctx, homeID)
	if err != nil {
		return err
	}

	for _, link := range imageURLs {
		if err := storage.DeleteByLink(ctx, s.s3, link); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"home_id":   homeID,
				"image_url": link,
			}).Warn("failed to delete item image")
		}
	}
	return nil
}

func (s *homeService) load(ctx context.Context, homeID uint) (domain.HomeResponse, error) {
	home, err := s.homeRepository.GetHomeByID(ctx, homeID)
	if err != nil {
		return domain.HomeResponse{}, err
	}
	counts, err := s.homeRepository.CountInventoryItems(ctx, homeID)
	if err != nil {
		return domain.HomeResponse{}, err
	}
	return ToHomeResponse(home, counts[homeID]), nil
}

func ToHomeResponse(home *entities.Home, inventoryCount int64) domain.HomeResponse {
	res := domain.HomeResponse{
		ID:               home.ID,
		Name:             home.Name,
		NumberOfAdults:   home.NumberOfAdults,
		NumberOfChildren: home.NumberOfChildren,
		NumberOfPets:     home.NumberOfPets,
		Owner:            domain.UserSummary{ID: home.OwnerID},
		HomeAccesses:     make([]domain.HomeAccessResponse, 0, len(home.HomeAccesses)),
		InventoryCount:   inventoryCount,
		CreatedAt:        home.CreatedAt,
		UpdatedAt:        home.UpdatedAt,
	}
	if home.Owner != nil {
		res.Owner.Name = home.Owner.Name
		res.Owner.Email = home.Owner.Email
	}
	for _, grant := range home.HomeAccesses {
		res.HomeAccesses = append(res.HomeAccesses, access.ToHomeAccessResponse(grant))
	}
	return res
}
