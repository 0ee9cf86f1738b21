package folders

import (
	"realty-inventory/core/cache"
	"realty-inventory/core/history"
	"realty-inventory/feature/folders/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new folders feature.
func NewFeature(c *cache.InventoryCache, lister checks.Lister, recorder history.Recorder, schema checks.SchemaChecker, logger *zap.Logger) *Feature {
	svc := NewService(c, lister, recorder, schema, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "folders"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
