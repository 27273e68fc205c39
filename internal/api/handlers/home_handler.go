package handlers

import (
	"context"

	"preben-prepper/domain"
	"preben-prepper/internal/api/presenters"
	"preben-prepper/internal/utils/mailing"
	"preben-prepper/pkg/access"
	"preben-prepper/pkg/events"
	"preben-prepper/pkg/home"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	HomeHandler interface {
		GetHomes(c *fiber.Ctx) error
		GetHome(c *fiber.Ctx) error
		CreateHome(c *fiber.Ctx) error
		UpdateHome(c *fiber.Ctx) error
		DeleteHome(c *fiber.Ctx) error

		GrantAccess(c *fiber.Ctx) error
		UpdateAccess(c *fiber.Ctx) error
		RevokeAccess(c *fiber.Ctx) error
	}

	homeHandler struct {
		homeService   home.HomeService
		accessService access.AccessService
		mailer        mailing.Mailer
		mailConfig    mailing.MailConfig
		publisher     events.Publisher
		log           *logrus.Logger
		validator     *validator.Validate
	}
)

func NewHomeHandler(
	homeService home.HomeService,
	accessService access.AccessService,
	mailer mailing.Mailer,
	publisher events.Publisher,
	log *logrus.Logger,
	validator *validator.Validate,
) HomeHandler {
	return &homeHandler{
		homeService:   homeService,
		accessService: accessService,
		mailer:        mailer,
		mailConfig:    mailing.LoadMailConfig(),
		publisher:     publisher,
		log:           log,
		validator:     validator,
	}
}

func (h *homeHandler) GetHomes(c *fiber.Ctx) error {
	userID, _, _ := currentUser(c)

	res, err := h.homeService.GetHomes(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetHomes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetHomes)
}

func (h *homeHandler) GetHome(c *fiber.Ctx) error {
	userID, _, _ := currentUser(c)
	homeID, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}

	res, err := h.homeService.GetHome(c.Context(), userID, homeID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetHome, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetHome)
}

func (h *homeHandler) CreateHome(c *fiber.Ctx) error {
	userID, _, _ := currentUser(c)
	req := new(domain.CreateHomeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateHome, err)
	}

	res, err := h.homeService.CreateHome(c.Context(), userID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCreateHome, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateHome)
}

func (h *homeHandler) UpdateHome(c *fiber.Ctx) error {
	userID, _, _ := currentUser(c)
	homeID, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}

	req := new(domain.UpdateHomeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateHome, err)
	}

	res, err := h.homeService.UpdateHome(c.Context(), userID, homeID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUpdateHome, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateHome)
}

func (h *homeHandler) DeleteHome(c *fiber.Ctx) error {
	userID, _, _ := currentUser(c)
	homeID, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}

	if err := h.homeService.DeleteHome(c.Context(), userID, homeID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDeleteHome, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusNoContent, domain.MessageSuccessDeleteHome)
}

func (h *homeHandler) GrantAccess(c *fiber.Ctx) error {
	userID, _, _ := currentUser(c)
	homeID, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}

	req := new(domain.GrantAccessRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGrantAccess, err)
	}

	res, err := h.accessService.GrantAccess(c.Context(), userID, homeID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGrantAccess, err)
	}

	grantedBy, _ := c.Locals("email").(string)
	h.notifyGrant(c.UserContext(), res, userID, grantedBy)

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessGrantAccess)
}

// notifyGrant mails the grantee and publishes home.access.granted. Failures
// are logged only.
func (h *homeHandler) notifyGrant(ctx context.Context, grant domain.HomeAccessResponse, granterID uint, grantedBy string) {
	fields := logrus.Fields{"home_id": grant.HomeID, "user_id": grant.UserID}

	if err := h.publisher.Publish(ctx, events.HomeAccessGranted, events.HomeAccessEvent{
		HomeID:    grant.HomeID,
		UserID:    grant.UserID,
		Role:      grant.Role,
		GrantedBy: granterID,
	}); err != nil {
		h.log.WithFields(fields).WithError(err).Warn("publish access granted event")
	}

	if grant.User.Email == "" {
		return
	}

	homeName := ""
	if res, err := h.homeService.GetHome(ctx, grant.UserID, grant.HomeID); err == nil {
		homeName = res.Name
	}

	body, err := mailing.AccessGrantedBody(mailing.AccessGrantedMail{
		GranteeName: grant.User.Name,
		GrantedBy:   grantedBy,
		HomeName:    homeName,
		HomeID:      grant.HomeID,
		Role:        grant.Role,
		AppURL:      h.mailConfig.AppURL,
	})
	if err != nil {
		h.log.WithFields(fields).WithError(err).Warn("render access granted mail")
		return
	}
	if err := h.mailer.SendMail(grant.User.Email, "You have been given access to "+homeName, body); err != nil {
		h.log.WithFields(fields).WithError(err).Warn("send access granted mail")
	}
}

func (h *homeHandler) UpdateAccess(c *fiber.Ctx) error {
	requesterID, _, _ := currentUser(c)
	homeID, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}
	userID, err := paramID(c, "userId")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}

	req := new(domain.UpdateHomeAccessRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateHomeAccess, err)
	}

	res, err := h.accessService.UpdateAccessRole(c.Context(), requesterID, homeID, userID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUpdateHomeAccess, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateHomeAccess)
}

func (h *homeHandler) RevokeAccess(c *fiber.Ctx) error {
	requesterID, _, _ := currentUser(c)
	homeID, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}
	userID, err := paramID(c, "userId")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}

	if err := h.accessService.RevokeAccess(c.Context(), requesterID, homeID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedRevokeAccess, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusNoContent, domain.MessageSuccessRevokeAccess)
}
