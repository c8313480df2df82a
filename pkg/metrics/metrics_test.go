package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendString("ok") })

	for _, id := range []string{"1", "2"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/items/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	}

	assert.Equal(t, 2.0, counterValue(t, m.HTTPRequests.WithLabelValues("GET", "/items/:id", "200")))
}

func TestCounters(t *testing.T) {
	m := NewNop()
	m.ChatTurns.WithLabelValues(TurnOutcomeFallback).Inc()
	m.Summaries.WithLabelValues("text", "short").Add(3)

	assert.Equal(t, 1.0, counterValue(t, m.ChatTurns.WithLabelValues(TurnOutcomeFallback)))
	assert.Equal(t, 3.0, counterValue(t, m.Summaries.WithLabelValues("text", "short")))
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}
