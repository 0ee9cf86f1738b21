package observability

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Once(t *testing.T) {
	reg := prometheus.NewRegistry()
	Register(reg)
	assert.NotPanics(t, func() { Register(reg) })

	SyncTotal.WithLabelValues("like-house/", "ok").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(SyncTotal.WithLabelValues("like-house/", "ok")))

	count, err := testutil.GatherAndCount(reg, "inventory_sync_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHandler(t *testing.T) {
	// Handler serves the default gatherer, which always carries the Go collector
	app := fiber.New()
	app.Get("/metrics", Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "go_goroutines"))
}
