package inventory

import (
	"realty-inventory/core/cache"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new inventory feature.
func NewFeature(c *cache.InventoryCache, logger *zap.Logger) *Feature {
	svc := NewService(c, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "inventory"
}

// IsEnabled reports whether any folder is configured.
func (f *Feature) IsEnabled() bool {
	return len(f.service.cache.Folders()) > 0
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
