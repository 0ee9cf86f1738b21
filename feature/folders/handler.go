package folders

import (
	"realty-inventory/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for folder diagnostics.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the folders routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/folders")
	group.Get("/", h.HandleOverview)
	group.Get("/access", h.HandleAccessCheck)
	group.Get("/history", h.HandleHistoryCheck)
}

// HandleOverview lists configured folders with cache state and recent sync runs.
func (h *Handler) HandleOverview(c *fiber.Ctx) error {
	runs := c.QueryInt("runs", DefaultRuns)
	if runs <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "runs must be positive"})
	}

	return c.JSON(fiber.Map{
		"folders": h.service.Overview(c.UserContext(), runs),
		"history": h.service.CheckHistory(c.UserContext()),
	})
}

// HandleAccessCheck lists every folder on the remote backend.
func (h *Handler) HandleAccessCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering folder access check")

	reports := h.service.CheckAccess(c.UserContext())

	failed := 0
	for _, r := range reports {
		if r.Status == "error" {
			failed++
		}
	}
	if failed > 0 {
		l.Warn("Folders not accessible", zap.Int("failed", failed), zap.Int("total", len(reports)))
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"failed":  failed,
		"folders": reports,
	})
}

// HandleHistoryCheck verifies the sync history table.
func (h *Handler) HandleHistoryCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report := h.service.CheckHistory(c.UserContext())
	if report.Status == "error" {
		l.Error("History check failed", zap.String("error", report.Error))
		return c.Status(fiber.StatusInternalServerError).JSON(report)
	}
	return c.JSON(report)
}
