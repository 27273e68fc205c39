// Package access decides who may touch a home's inventory.
//
// A user has access to a home when they own it or hold a HomeAccess row for
// it. Both ADMIN and MEMBER grant full inventory read/write; only ADMIN (and
// the owner) may manage who else has access.
package access

import (
	"context"

	"preben-prepper/domain"
	"preben-prepper/entities"
)

type (
	// AccessChecker is the single predicate every inventory operation goes through.
	AccessChecker interface {
		HasAccess(ctx context.Context, userID, homeID uint) (bool, error)
	}

	AccessService interface {
		AccessChecker
		CanManage(ctx context.Context, userID, homeID uint) (bool, error)
		GrantAccess(ctx context.Context, requesterID, homeID uint, req domain.GrantAccessRequest) (domain.HomeAccessResponse, error)
		UpdateAccessRole(ctx context.Context, requesterID, homeID, userID uint, req domain.UpdateHomeAccessRequest) (domain.HomeAccessResponse, error)
		RevokeAccess(ctx context.Context, requesterID, homeID, userID uint) error
	}

	accessService struct {
		accessRepository AccessRepository
	}
)

func NewAccessService(accessRepository AccessRepository) AccessService {
	return &accessService{accessRepository: accessRepository}
}

// RequireAccess turns a negative HasAccess answer into ErrHomeAccessDenied.
func RequireAccess(ctx context.Context, checker AccessChecker, userID, homeID uint) error {
	ok, err := checker.HasAccess(ctx, userID, homeID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrHomeAccessDenied
	}
	return nil
}

func (s *accessService) HasAccess(ctx context.Context, userID, homeID uint) (bool, error) {
	home, err := s.accessRepository.GetHomeByID(ctx, homeID)
	if err != nil || home == nil {
		return false, err
	}
	if home.OwnerID == userID {
		return true, nil
	}

	grant, err := s.accessRepository.GetHomeAccess(ctx, userID, homeID)
	if err != nil {
		return false, err
	}
	return grant != nil, nil
}

func (s *accessService) CanManage(ctx context.Context, userID, homeID uint) (bool, error) {
	_, ok, err := s.managedHome(ctx, userID, homeID)
	return ok, err
}

// managedHome loads the home and reports whether userID is its owner or an ADMIN accessor.
func (s *accessService) managedHome(ctx context.Context, userID, homeID uint) (*entities.Home, bool, error) {
	home, err := s.accessRepository.GetHomeByID(ctx, homeID)
	if err != nil || home == nil {
		return nil, false, err
	}
	if home.OwnerID == userID {
		return home, true, nil
	}

	grant, err := s.accessRepository.GetHomeAccess(ctx, userID, homeID)
	if err != nil {
		return nil, false, err
	}
	return home, grant != nil && grant.Role == entities.HomeRoleAdmin, nil
}

func (s *accessService) GrantAccess(ctx context.Context, requesterID, homeID uint, req domain.GrantAccessRequest) (domain.HomeAccessResponse, error) {
	role := entities.HomeRoleMember
	if req.Role != "" {
		role = entities.HomeRole(req.Role)
	}
	if !role.Valid() {
		return domain.HomeAccessResponse{}, domain.ErrInvalidHomeRole
	}
	if req.UserID == 0 {
		return domain.HomeAccessResponse{}, domain.ErrParseID
	}

	home, ok, err := s.managedHome(ctx, requesterID, homeID)
	if err != nil {
		return domain.HomeAccessResponse{}, err
	}
	if !ok {
		return domain.HomeAccessResponse{}, domain.ErrHomeManageDenied
	}

	exists, err := s.accessRepository.UserExists(ctx, req.UserID)
	if err != nil {
		return domain.HomeAccessResponse{}, err
	}
	if !exists {
		return domain.HomeAccessResponse{}, domain.ErrGranteeNotFound
	}

	if home.OwnerID == req.UserID {
		return domain.HomeAccessResponse{}, domain.ErrGrantToOwner
	}

	existing, err := s.accessRepository.GetHomeAccess(ctx, req.UserID, homeID)
	if err != nil {
		return domain.HomeAccessResponse{}, err
	}
	if existing != nil {
		return domain.HomeAccessResponse{}, domain.ErrAccessAlreadyGranted
	}

	grant := &entities.HomeAccess{
		UserID: req.UserID,
		HomeID: homeID,
		Role:   role,
	}
	if err := s.accessRepository.CreateHomeAccess(ctx, grant); err != nil {
		return domain.HomeAccessResponse{}, err
	}

	return ToHomeAccessResponse(grant), nil
}

func (s *accessService) UpdateAccessRole(ctx context.Context, requesterID, homeID, userID uint, req domain.UpdateHomeAccessRequest) (domain.HomeAccessResponse, error) {
	role := entities.HomeRole(req.Role)
	if !role.Valid() {
		return domain.HomeAccessResponse{}, domain.ErrInvalidHomeRole
	}

	_, ok, err := s.managedHome(ctx, requesterID, homeID)
	if err != nil {
		return domain.HomeAccessResponse{}, err
	}
	if !ok {
		return domain.HomeAccessResponse{}, domain.ErrHomeManageDenied
	}

	grant, err := s.accessRepository.GetHomeAccess(ctx, userID, homeID)
	if err != nil {
		return domain.HomeAccessResponse{}, err
	}
	if grant == nil {
		return domain.HomeAccessResponse{}, domain.ErrHomeAccessNotFound
	}

	grant.Role = role
	if err := s.accessRepository.UpdateHomeAccess(ctx, grant); err != nil {
		return domain.HomeAccessResponse{}, err
	}
	return ToHomeAccessResponse(grant), nil
}

// RevokeAccess removes userID's grant. Managers may revoke anyone; an
// accessor may always remove their own grant.
func (s *accessService) RevokeAccess(ctx context.Context, requesterID, homeID, userID uint) error {
	if requesterID != userID {
		_, ok, err := s.managedHome(ctx, requesterID, homeID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrHomeManageDenied
		}
	}
	return s.accessRepository.DeleteHomeAccess(ctx, userID, homeID)
}

func ToHomeAccessResponse(grant *entities.HomeAccess) domain.HomeAccessResponse {
	res := domain.HomeAccessResponse{
		ID:        grant.ID,
		UserID:    grant.UserID,
		HomeID:    grant.HomeID,
		Role:      string(grant.Role),
		CreatedAt: grant.CreatedAt,
	}
	if grant.User != nil {
		res.User = domain.UserSummary{
			ID:    grant.User.ID,
			Name:  grant.User.Name,
			Email: grant.User.Email,
		}
	}
	return res
}
