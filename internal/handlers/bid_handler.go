package handlers

import (
	"github.com/gofiber/fiber/v2"

	"musiclancer/internal/services"
)

type PlaceBidRequest struct {
	ProjectID int64   `json:"projectId" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Proposal  string  `json:"proposal" validate:"required"`
}

type UpdateBidRequest struct {
	Amount   *float64 `json:"amount" validate:"omitempty,gt=0"`
	Proposal *string  `json:"proposal"`
}

type BidHandler struct {
	bids *services.BidService
}

func NewBidHandler(bids *services.BidService) *BidHandler {
	return &BidHandler{bids: bids}
}

// Place submits a bid on an open project, consuming one bid quota.
func (h *BidHandler) Place(c *fiber.Ctx) error {
	req := new(PlaceBidRequest)
	if err := c.BodyParser(req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err.Error())
	}

	bid, err := h.bids.Place(currentUserID(c), req.ProjectID, req.Amount, req.Proposal)
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusCreated, "Bid placed successfully", bid)
}

// Update edits the caller's own bid while the project is still open.
func (h *BidHandler) Update(c *fiber.Ctx) error {
	bidID, err := paramInt64(c, "bidId")
	if err != nil {
		return respondValidation(c, "Invalid bid id")
	}

	req := new(UpdateBidRequest)
	if err := c.BodyParser(req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err.Error())
	}

	bid, err := h.bids.Update(currentUserID(c), bidID, req.Amount, req.Proposal)
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Bid updated", bid)
}

// ListMine returns the caller's bids enriched with project and payment state.
func (h *BidHandler) ListMine(c *fiber.Ctx) error {
	bids, err := h.bids.ListForUser(currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, bids)
}

// ListForProject returns all bids on a project the caller owns.
func (h *BidHandler) ListForProject(c *fiber.Ctx) error {
	projectID, err := paramInt64(c, "projectId")
	if err != nil {
		return respondValidation(c, "Invalid project id")
	}

	bids, err := h.bids.ListForProject(currentUserID(c), projectID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, bids)
}
