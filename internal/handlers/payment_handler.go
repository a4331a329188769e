package handlers

import (
	"github.com/gofiber/fiber/v2"

	"musiclancer/internal/models"
	"musiclancer/internal/services"
)

type SubmitTransactionRequest struct {
	TransactionID string `json:"transactionId" validate:"required"`
}

type VerifyPaymentRequest struct {
	Status string `json:"status" validate:"required,oneof=verified released"`
}

type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// GetForProject returns the escrow payment for a project along with a fresh
// UPI collection request.
func (h *PaymentHandler) GetForProject(c *fiber.Ctx) error {
	projectID, err := paramInt64(c, "projectId")
	if err != nil {
		return respondValidation(c, "Invalid project id")
	}

	details, err := h.payments.GetForProject(currentUserID(c), projectID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, details)
}

// SubmitTransactionRef records the UPI transaction reference the owner
// entered after paying. Verification stays with the admin.
func (h *PaymentHandler) SubmitTransactionRef(c *fiber.Ctx) error {
	paymentID, err := paramInt64(c, "paymentId")
	if err != nil {
		return respondValidation(c, "Invalid payment id")
	}

	req := new(SubmitTransactionRequest)
	if err := c.BodyParser(req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err.Error())
	}

	payment, err := h.payments.SubmitTransactionRef(currentUserID(c), paymentID, req.TransactionID)
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Transaction reference submitted. Awaiting verification.", payment)
}

// ListPending returns the admin verification queue.
func (h *PaymentHandler) ListPending(c *fiber.Ctx) error {
	payments, err := h.payments.ListPending()
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, payments)
}

// AdminVerify moves a payment forward to verified or released.
func (h *PaymentHandler) AdminVerify(c *fiber.Ctx) error {
	paymentID, err := paramInt64(c, "paymentId")
	if err != nil {
		return respondValidation(c, "Invalid payment id")
	}

	req := new(VerifyPaymentRequest)
	if err := c.BodyParser(req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err.Error())
	}

	payment, err := h.payments.AdminVerify(paymentID, models.PaymentStatus(req.Status))
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Payment updated", payment)
}
