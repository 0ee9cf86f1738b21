package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"realty-inventory/core/cache"
	"realty-inventory/core/loader"
	"realty-inventory/core/logger"
	"realty-inventory/core/middleware/auth"
	"realty-inventory/core/middleware/rayid"
	"realty-inventory/core/observability"
	"realty-inventory/feature/folders"
	"realty-inventory/feature/folders/checks"
	"realty-inventory/feature/inventory"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const metricsPath = "/metrics"

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the inventory server",
	Long:  `Starts the HTTP API, keeps folder snapshots fresh in the background and exposes metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// 1. Configuration, remote client, history and sync engine
		s, err := newSession(ctx)
		if err != nil {
			return err
		}
		logg := s.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Cache and background refresher
		inv := cache.New(s.engine, s.cfg.Folders, s.cfg.Inventory.CacheConfig(), logg)
		go inv.Run(ctx)

		// 3. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 4. Initialize Feature Loader
		mgr := loader.NewManager(logg)

		// A typed nil recorder must not reach the checks as a non-nil interface
		var schema checks.SchemaChecker
		if s.history != nil {
			schema = s.history
		}
		mgr.Register(inventory.NewFeature(inv, logg))
		mgr.Register(folders.NewFeature(inv, s.remote, s.recorder, schema, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Metrics (Public)
		publicPaths := []string{}
		if s.cfg.Server.MetricsEnabled {
			observability.Register(prometheus.DefaultRegisterer)
			app.Get(metricsPath, observability.Handler())
			publicPaths = append(publicPaths, metricsPath)
		}

		// 4. Auth (Protect API)
		if !s.cfg.Server.AuthEnabled() {
			logg.Warn("API key not set, inventory API is unauthenticated")
		}
		app.Use(auth.New(auth.Config{ApiKey: s.cfg.Server.ApiKey, PublicPaths: publicPaths}))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		// 6. Start Server
		errc := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("address", s.cfg.Server.Address()))
			errc <- app.Listen(s.cfg.Server.Address())
		}()

		// 7. Graceful Shutdown
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case <-sig:
		case err := <-errc:
			return err
		}
		logg.Info("Shutting down server...")
		cancel()
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
