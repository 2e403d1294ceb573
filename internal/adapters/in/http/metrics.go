package http

import (
	"strconv"
	"time"

	"production/internal/telemetry"

	"github.com/labstack/echo/v4"
)

// RequestMetrics records per-route request counts and latency.
func RequestMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()

			err := next(ctx)

			method := ctx.Request().Method
			// Route pattern, not the raw URL, to keep label cardinality bounded.
			path := ctx.Path()
			status := strconv.Itoa(ctx.Response().Status)

			telemetry.RequestsTotal.WithLabelValues(method, path, status).Inc()
			telemetry.RequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
