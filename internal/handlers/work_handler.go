package handlers

import (
	"github.com/gofiber/fiber/v2"

	"musiclancer/internal/services"
)

type WorkCommentRequest struct {
	Comment string `json:"comment" validate:"required"`
}

type RaiseDisputeRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type ResolveDisputeRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accepted rejected"`
	Reason   string `json:"reason" validate:"required"`
}

type WorkHandler struct {
	work    *services.WorkService
	storage *services.StorageService
}

func NewWorkHandler(work *services.WorkService, storage *services.StorageService) *WorkHandler {
	return &WorkHandler{work: work, storage: storage}
}

// Submit uploads a deliverable and records a new work attempt. The file
// arrives as multipart form data under the "file" key.
func (h *WorkHandler) Submit(c *fiber.Ctx) error {
	projectID, err := paramInt64(c, "projectId")
	if err != nil {
		return respondValidation(c, "Invalid project id")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return respondValidation(c, "Work file is required")
	}

	upload, err := h.storage.UploadWorkFile(c.Context(), file, projectID)
	if err != nil {
		return respondError(c, err)
	}

	work, err := h.work.Submit(currentUserID(c), projectID, upload.URL)
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusCreated, "Work submitted for review", work)
}

// WorkOrder returns the engagement summary for a verified payment.
func (h *WorkHandler) WorkOrder(c *fiber.Ctx) error {
	paymentID, err := paramInt64(c, "paymentId")
	if err != nil {
		return respondValidation(c, "Invalid payment id")
	}

	order, err := h.work.GetWorkOrder(currentUserID(c), paymentID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, order)
}

// ListForProject returns the submission history visible to the owner or the
// assigned bidder.
func (h *WorkHandler) ListForProject(c *fiber.Ctx) error {
	projectID, err := paramInt64(c, "projectId")
	if err != nil {
		return respondValidation(c, "Invalid project id")
	}

	works, err := h.work.ListForProject(currentUserID(c), projectID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, works)
}

// Accept marks the submission accepted and completes the project.
func (h *WorkHandler) Accept(c *fiber.Ctx) error {
	workID, err := paramInt64(c, "workId")
	if err != nil {
		return respondValidation(c, "Invalid work id")
	}

	work, err := h.work.Accept(currentUserID(c), workID)
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Work accepted", work)
}

// Reject rejects the submission; only allowed after repeated attempts.
func (h *WorkHandler) Reject(c *fiber.Ctx) error {
	workID, err := paramInt64(c, "workId")
	if err != nil {
		return respondValidation(c, "Invalid work id")
	}

	work, err := h.work.Reject(currentUserID(c), workID)
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Work rejected", work)
}

// Comment records review feedback asking for changes.
func (h *WorkHandler) Comment(c *fiber.Ctx) error {
	workID, err := paramInt64(c, "workId")
	if err != nil {
		return respondValidation(c, "Invalid work id")
	}

	req := new(WorkCommentRequest)
	if err := c.BodyParser(req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err.Error())
	}

	work, err := h.work.Comment(currentUserID(c), workID, req.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Comment added", work)
}

// RaiseDispute lets the bidder escalate a rejected submission.
func (h *WorkHandler) RaiseDispute(c *fiber.Ctx) error {
	workID, err := paramInt64(c, "workId")
	if err != nil {
		return respondValidation(c, "Invalid work id")
	}

	req := new(RaiseDisputeRequest)
	if err := c.BodyParser(req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err.Error())
	}

	work, err := h.work.RaiseDispute(currentUserID(c), workID, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Dispute raised. An admin will review it.", work)
}

// ListDisputes returns all open disputes for the admin.
func (h *WorkHandler) ListDisputes(c *fiber.Ctx) error {
	works, err := h.work.ListRaisedDisputes()
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, works)
}

// ResolveDispute applies the admin decision to a disputed submission.
func (h *WorkHandler) ResolveDispute(c *fiber.Ctx) error {
	workID, err := paramInt64(c, "workId")
	if err != nil {
		return respondValidation(c, "Invalid work id")
	}

	req := new(ResolveDisputeRequest)
	if err := c.BodyParser(req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err.Error())
	}

	work, err := h.work.ResolveDispute(workID, req.Decision, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Dispute resolved", work)
}
