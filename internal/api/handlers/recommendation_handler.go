package handlers

import (
	"preben-prepper/domain"
	"preben-prepper/internal/api/presenters"
	"preben-prepper/pkg/events"
	"preben-prepper/pkg/recommendation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	RecommendationHandler interface {
		GetRecommendedItems(c *fiber.Ctx) error
		CreateInventoryFromRecommendation(c *fiber.Ctx) error
		GetCoverage(c *fiber.Ctx) error

		// admin catalog
		GetAllRecommendedItems(c *fiber.Ctx) error
		GetRecommendedItem(c *fiber.Ctx) error
		CreateRecommendedItem(c *fiber.Ctx) error
		UpdateRecommendedItem(c *fiber.Ctx) error
		DeleteRecommendedItem(c *fiber.Ctx) error
	}

	recommendationHandler struct {
		recommendationService recommendation.RecommendationService
		publisher             events.Publisher
		log                   *logrus.Logger
		validator             *validator.Validate
	}
)

func NewRecommendationHandler(
	recommendationService recommendation.RecommendationService,
	publisher events.Publisher,
	log *logrus.Logger,
	validator *validator.Validate,
) RecommendationHandler {
	return &recommendationHandler{
		recommendationService: recommendationService,
		publisher:             publisher,
		log:                   log,
		validator:             validator,
	}
}

func (h *recommendationHandler) GetRecommendedItems(c *fiber.Ctx) error {
	includeOptional := c.QueryBool("includeOptional", true)

	res, err := h.recommendationService.GetRecommendedItems(c.Context(), includeOptional)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecommendedItems, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecommendedItems)
}

func (h *recommendationHandler) CreateInventoryFromRecommendation(c *fiber.Ctx) error {
	userID, _, _ := currentUser(c)
	recID, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}

	req := new(domain.CreateFromRecommendationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateFromRecommended, err)
	}

	res, err := h.recommendationService.CreateFromRecommendation(c.Context(), userID, recID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCreateFromRecommended, err)
	}

	publishItemEvent(c.UserContext(), h.publisher, h.log, events.InventoryItemCreated, res, userID, &recID)
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateFromRecommended)
}

func (h *recommendationHandler) GetCoverage(c *fiber.Ctx) error {
	homeID, err := queryID(c, "homeId")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}

	var userID *uint
	if id, _, ok := currentUser(c); ok {
		userID = &id
	}

	res, err := h.recommendationService.GetCoverage(c.Context(), userID, homeID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetCoverage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCoverage)
}

func (h *recommendationHandler) GetAllRecommendedItems(c *fiber.Ctx) error {
	res, err := h.recommendationService.GetAllRecommendedItems(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecommendedItems, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecommendedItems)
}

func (h *recommendationHandler) GetRecommendedItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}

	res, err := h.recommendationService.GetRecommendedItem(c.Context(), id)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecommendedItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecommendedItem)
}

func (h *recommendationHandler) CreateRecommendedItem(c *fiber.Ctx) error {
	req := new(domain.CreateRecommendedItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecommendedItem, err)
	}

	res, err := h.recommendationService.CreateRecommendedItem(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCreateRecommendedItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecommendedItem)
}

func (h *recommendationHandler) UpdateRecommendedItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}

	req := new(domain.UpdateRecommendedItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecommendedItem, err)
	}

	res, err := h.recommendationService.UpdateRecommendedItem(c.Context(), id, *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUpdateRecommendedItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecommendedItem)
}

func (h *recommendationHandler) DeleteRecommendedItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}

	if err := h.recommendationService.DeleteRecommendedItem(c.Context(), id); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDeleteRecommendedItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusNoContent, domain.MessageSuccessDeleteRecommendedItem)
}
