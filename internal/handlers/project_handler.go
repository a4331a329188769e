package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"musiclancer/internal/services"
)

type CreateProjectRequest struct {
	ProjectName    string   `json:"projectName" validate:"required"`
	Description    string   `json:"description" validate:"required"`
	Skills         []string `json:"skills" validate:"required,min=1"`
	MinBudget      float64  `json:"minBudget" validate:"gte=0"`
	MaxBudget      float64  `json:"maxBudget" validate:"gte=0"`
	DurationDays   int      `json:"durationDays" validate:"required,gte=1"`
	AdditionalInfo string   `json:"additionalInfo"`
}

type UpdateProjectInfoRequest struct {
	AdditionalInfo string `json:"additionalInfo" validate:"required"`
}

type FinalizeBidRequest struct {
	BidID     int64   `json:"bidId" validate:"required"`
	BidAmount float64 `json:"bidAmount" validate:"required,gt=0"`
}

type ProjectHandler struct {
	projects *services.ProjectService
}

func NewProjectHandler(projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// Create posts a new project for the authenticated user.
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	req := new(CreateProjectRequest)
	if err := c.BodyParser(req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err.Error())
	}

	project, err := h.projects.Create(currentUserID(c), services.CreateProjectInput{
		ProjectName:    req.ProjectName,
		Description:    req.Description,
		Skills:         req.Skills,
		MinBudget:      req.MinBudget,
		MaxBudget:      req.MaxBudget,
		DurationDays:   req.DurationDays,
		AdditionalInfo: req.AdditionalInfo,
	})
	if err != nil {
		return respondError(c, err)
	}

	return respondMessage(c, fiber.StatusCreated, "Project posted successfully", project)
}

// ListOwned returns the caller's own projects, newest first.
func (h *ProjectHandler) ListOwned(c *fiber.Ctx) error {
	projects, err := h.projects.ListOwned(currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, projects)
}

// Browse lists open projects from other users, with optional skill and
// budget filters taken from the query string.
func (h *ProjectHandler) Browse(c *fiber.Ctx) error {
	filter := services.BrowseFilter{}

	if raw := c.Query("skills"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filter.Skills = append(filter.Skills, s)
			}
		}
	}
	if raw := c.Query("minBudget"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return respondValidation(c, "Invalid minBudget")
		}
		filter.MinBudget = &v
	}
	if raw := c.Query("maxBudget"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return respondValidation(c, "Invalid maxBudget")
		}
		filter.MaxBudget = &v
	}

	projects, err := h.projects.Browse(currentUserID(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, projects)
}

// Get returns a single project by its public id.
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	projectID, err := paramInt64(c, "projectId")
	if err != nil {
		return respondValidation(c, "Invalid project id")
	}

	project, err := h.projects.Get(projectID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, project)
}

// UpdateInfo lets the owner amend additional info while the project is open.
func (h *ProjectHandler) UpdateInfo(c *fiber.Ctx) error {
	projectID, err := paramInt64(c, "projectId")
	if err != nil {
		return respondValidation(c, "Invalid project id")
	}

	req := new(UpdateProjectInfoRequest)
	if err := c.BodyParser(req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err.Error())
	}

	project, err := h.projects.UpdateInfo(currentUserID(c), projectID, req.AdditionalInfo)
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Project updated", project)
}

// Finalize accepts a bid, assigns the project and opens the escrow payment.
func (h *ProjectHandler) Finalize(c *fiber.Ctx) error {
	projectID, err := paramInt64(c, "projectId")
	if err != nil {
		return respondValidation(c, "Invalid project id")
	}

	req := new(FinalizeBidRequest)
	if err := c.BodyParser(req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err.Error())
	}

	result, err := h.projects.Finalize(currentUserID(c), projectID, req.BidID, req.BidAmount)
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Bid finalized. Complete the payment to unlock chat.", result)
}

func paramInt64(c *fiber.Ctx, name string) (int64, error) {
	return strconv.ParseInt(c.Params(name), 10, 64)
}
