package inventory

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"realty-inventory/core/cache"
	"realty-inventory/core/foldersync"
	"realty-inventory/core/logger"
	"realty-inventory/core/search"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for inventory reads.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the inventory routes.
// Folder ids may contain slashes, so they are matched as a wildcard and may be URL encoded.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/inventory")
	group.Get("/search", h.HandleSearch)
	group.Get("/summary", h.HandleSummary)
	group.Get("/snapshots/*", h.HandleSnapshot)
	group.Post("/refresh/*", h.HandleRefresh)
}

// HandleSearch filters the inventory of the requested folders.
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	q, err := parseQuery(c)
	if err != nil {
		return h.fail(c, l, err)
	}
	folders := folderIDs(c)

	result, err := h.service.Search(c.UserContext(), q, folders)
	if err != nil {
		return h.fail(c, l, err)
	}

	l.Debug("Inventory search",
		zap.Strings("folders", folders),
		zap.Int("matches", result.Total),
		zap.Int("failures", len(result.Failures)))
	return c.JSON(result)
}

// HandleSummary returns per folder record counts and freshness.
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	summary, err := h.service.Summary(c.UserContext())
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(summary)
}

// HandleSnapshot returns the snapshot of a single folder.
func (h *Handler) HandleSnapshot(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := folderParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	snap, err := h.service.Snapshot(c.UserContext(), id)
	if err != nil {
		return h.fail(c, l.With(zap.String("folder_id", id)), err)
	}
	return c.JSON(snap)
}

// HandleRefresh forces a sync of a folder and returns the new snapshot.
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := folderParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Forced refresh requested", zap.String("folder_id", id))
	snap, err := h.service.Refresh(c.UserContext(), id)
	if err != nil {
		return h.fail(c, l.With(zap.String("folder_id", id)), err)
	}

	return c.JSON(fiber.Map{
		"folder_id":  snap.FolderID,
		"fetched_at": snap.FetchedAt,
		"records":    len(snap.Records),
		"partial":    snap.Partial,
		"stale":      snap.Stale,
		"errors":     snap.Errors,
	})
}

func folderParam(c *fiber.Ctx) (string, error) {
	raw := c.Params("*")
	id, err := url.PathUnescape(raw)
	if err != nil {
		return "", errors.New("malformed folder id")
	}
	if strings.TrimSpace(id) == "" {
		return "", errors.New("folder id is required")
	}
	return id, nil
}

// fail maps an error to a status code and a JSON error body.
func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		l.Error("Inventory request failed", zap.Int("status", status), zap.Error(err))
	} else {
		l.Debug("Inventory request rejected", zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func statusFor(err error) int {
	var failed *foldersync.SyncFailed
	switch {
	case errors.Is(err, search.ErrInvalidQuery):
		return fiber.StatusBadRequest
	case errors.Is(err, cache.ErrUnknownFolder):
		return fiber.StatusNotFound
	case errors.Is(err, search.ErrUnavailable), errors.As(err, &failed):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}
