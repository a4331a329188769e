package handlers

import (
	"github.com/gofiber/fiber/v2"

	"musiclancer/internal/models"
	"musiclancer/internal/services"
)

type PurchaseSubscriptionRequest struct {
	PlanID uint `json:"planId" validate:"required"`
}

type VerifySubscriptionRequest struct {
	Status string `json:"status" validate:"required,oneof=verified failed"`
}

type SubscriptionHandler struct {
	subscriptions *services.SubscriptionService
	quotas        *services.QuotaService
}

func NewSubscriptionHandler(subscriptions *services.SubscriptionService, quotas *services.QuotaService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions, quotas: quotas}
}

// ListPlans returns the purchasable subscription plans.
func (h *SubscriptionHandler) ListPlans(c *fiber.Ctx) error {
	plans, err := h.subscriptions.ListPlans()
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, plans)
}

// Purchase starts a pending subscription and returns the UPI request for it.
func (h *SubscriptionHandler) Purchase(c *fiber.Ctx) error {
	req := new(PurchaseSubscriptionRequest)
	if err := c.BodyParser(req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err.Error())
	}

	result, err := h.subscriptions.Purchase(currentUserID(c), req.PlanID)
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusCreated, "Complete the payment to activate your subscription", result)
}

// SubmitTransactionRef records the UPI reference for a pending purchase.
func (h *SubscriptionHandler) SubmitTransactionRef(c *fiber.Ctx) error {
	subscriptionID, err := paramInt64(c, "subscriptionId")
	if err != nil {
		return respondValidation(c, "Invalid subscription id")
	}

	req := new(SubmitTransactionRequest)
	if err := c.BodyParser(req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err.Error())
	}

	sub, err := h.subscriptions.SubmitTransactionRef(currentUserID(c), subscriptionID, req.TransactionID)
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Transaction reference submitted. Awaiting verification.", sub)
}

// ListMine returns the caller's subscriptions, active first.
func (h *SubscriptionHandler) ListMine(c *fiber.Ctx) error {
	subs, err := h.subscriptions.ListForUser(currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, subs)
}

// Quota reports the caller's remaining post and bid allowance.
func (h *SubscriptionHandler) Quota(c *fiber.Ctx) error {
	userID := currentUserID(c)

	posts, err := h.quotas.CheckPostQuota(userID)
	if err != nil {
		return respondError(c, err)
	}
	bids, err := h.quotas.CheckBidQuota(userID)
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, fiber.StatusOK, fiber.Map{
		"posts": posts,
		"bids":  bids,
	})
}

// AdminVerify marks a subscription purchase verified or failed.
func (h *SubscriptionHandler) AdminVerify(c *fiber.Ctx) error {
	subscriptionID, err := paramInt64(c, "subscriptionId")
	if err != nil {
		return respondValidation(c, "Invalid subscription id")
	}

	req := new(VerifySubscriptionRequest)
	if err := c.BodyParser(req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err.Error())
	}

	sub, err := h.subscriptions.AdminVerify(subscriptionID, models.SubscriptionStatus(req.Status))
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Subscription updated", sub)
}
