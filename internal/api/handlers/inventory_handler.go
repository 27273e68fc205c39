package handlers

import (
	"context"

	"preben-prepper/domain"
	"preben-prepper/internal/api/presenters"
	"preben-prepper/pkg/events"
	"preben-prepper/pkg/inventory"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	InventoryHandler interface {
		GetInventoryItems(c *fiber.Ctx) error
		GetInventoryItem(c *fiber.Ctx) error
		AddInventoryItem(c *fiber.Ctx) error
		UpdateInventoryItem(c *fiber.Ctx) error
		DeleteInventoryItem(c *fiber.Ctx) error
		GetExpiringItems(c *fiber.Ctx) error
		GetInventoryStats(c *fiber.Ctx) error
		UploadItemImage(c *fiber.Ctx) error
	}

	inventoryHandler struct {
		inventoryService inventory.InventoryService
		publisher        events.Publisher
		log              *logrus.Logger
		validator        *validator.Validate
	}
)

func NewInventoryHandler(
	inventoryService inventory.InventoryService,
	publisher events.Publisher,
	log *logrus.Logger,
	validator *validator.Validate,
) InventoryHandler {
	return &inventoryHandler{
		inventoryService: inventoryService,
		publisher:        publisher,
		log:              log,
		validator:        validator,
	}
}

func (h *inventoryHandler) GetInventoryItems(c *fiber.Ctx) error {
	userID, _, _ := currentUser(c)
	homeID, err := paramID(c, "homeId")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}

	res, err := h.inventoryService.GetInventoryItems(c.Context(), userID, homeID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetInventoryItems, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetInventoryItems)
}

func (h *inventoryHandler) GetInventoryItem(c *fiber.Ctx) error {
	userID, _, _ := currentUser(c)
	homeID, itemID, err := itemParams(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}

	res, err := h.inventoryService.GetInventoryItem(c.Context(), userID, homeID, itemID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetInventoryItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetInventoryItem)
}

func (h *inventoryHandler) AddInventoryItem(c *fiber.Ctx) error {
	userID, _, _ := currentUser(c)
	homeID, err := paramID(c, "homeId")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}

	req := new(domain.AddInventoryItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddInventoryItem, err)
	}

	res, err := h.inventoryService.AddInventoryItem(c.Context(), userID, homeID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedAddInventoryItem, err)
	}

	publishItemEvent(c.UserContext(), h.publisher, h.log, events.InventoryItemCreated, res, userID, nil)
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddInventoryItem)
}

func (h *inventoryHandler) UpdateInventoryItem(c *fiber.Ctx) error {
	userID, _, _ := currentUser(c)
	homeID, itemID, err := itemParams(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}

	req := new(domain.UpdateInventoryItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateInventoryItem, err)
	}

	res, err := h.inventoryService.UpdateInventoryItem(c.Context(), userID, homeID, itemID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUpdateInventoryItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateInventoryItem)
}

func (h *inventoryHandler) DeleteInventoryItem(c *fiber.Ctx) error {
	userID, _, _ := currentUser(c)
	homeID, itemID, err := itemParams(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}

	if err := h.inventoryService.DeleteInventoryItem(c.Context(), userID, homeID, itemID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDeleteInventoryItem, err)
	}

	publishItemEvent(c.UserContext(), h.publisher, h.log, events.InventoryItemDeleted,
		domain.InventoryItemResponse{ID: itemID, HomeID: homeID}, userID, nil)
	return presenters.SuccessResponse(c, nil, fiber.StatusNoContent, domain.MessageSuccessDeleteInventoryItem)
}

func (h *inventoryHandler) GetExpiringItems(c *fiber.Ctx) error {
	userID, _, _ := currentUser(c)
	homeID, err := paramID(c, "homeId")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}

	res, err := h.inventoryService.GetExpiringItems(c.Context(), userID, homeID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetInventoryItems, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetInventoryItems)
}

func (h *inventoryHandler) GetInventoryStats(c *fiber.Ctx) error {
	userID, _, _ := currentUser(c)
	homeID, err := paramID(c, "homeId")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}

	res, err := h.inventoryService.GetInventoryStats(c.Context(), userID, homeID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetInventoryStats, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetInventoryStats)
}

func (h *inventoryHandler) UploadItemImage(c *fiber.Ctx) error {
	userID, _, _ := currentUser(c)
	homeID, itemID, err := itemParams(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadItemImage, domain.ErrInvalidImageFormat)
	}

	res, err := h.inventoryService.UploadItemImage(c.Context(), userID, homeID, itemID, file)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUploadItemImage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadItemImage)
}

func itemParams(c *fiber.Ctx) (homeID, itemID uint, err error) {
	if homeID, err = paramID(c, "homeId"); err != nil {
		return 0, 0, err
	}
	if itemID, err = paramID(c, "id"); err != nil {
		return 0, 0, err
	}
	return homeID, itemID, nil
}

func publishItemEvent(
	ctx context.Context,
	publisher events.Publisher,
	log *logrus.Logger,
	routingKey string,
	item domain.InventoryItemResponse,
	actorID uint,
	recommendedItemID *uint,
) {
	err := publisher.Publish(ctx, routingKey, events.InventoryItemEvent{
		ItemID:            item.ID,
		HomeID:            item.HomeID,
		Name:              item.Name,
		Quantity:          item.Quantity,
		Expiration:        item.ExpirationDate,
		ActorID:           actorID,
		RecommendedItemID: recommendedItemID,
	})
	if err != nil {
		log.WithFields(logrus.Fields{"event": routingKey, "item_id": item.ID, "home_id": item.HomeID}).
			WithError(err).Warn("publish inventory event")
	}
}
