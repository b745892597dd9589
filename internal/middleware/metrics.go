package middleware

import (
	"fmt"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/labstack/echo/v4"
)

// MeterRequests counts requests and records their duration, labeled by route and status
func MeterRequests(set *metrics.Set) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}

			labels := fmt.Sprintf(`{method=%q,path=%q,status="%d"}`, c.Request().Method, path, c.Response().Status)
			set.GetOrCreateHistogram(`http_request_duration_seconds` + labels).UpdateDuration(start)
			set.GetOrCreateCounter(`http_requests_total` + labels).Inc()
			return nil
		}
	}
}
