package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs every processed request with its status and latency
func RequestLogger(logger logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// let error handler write response, so status is known
				c.Error(err)
			}

			req, res := c.Request(), c.Response()
			entry := logger.WithFields(logrus.Fields{
				"method":    req.Method,
				"uri":       req.RequestURI,
				"status":    res.Status,
				"latency":   time.Since(start).String(),
				"remoteIp":  c.RealIP(),
				"userAgent": req.UserAgent(),
				"bytesOut":  res.Size,
				"protocol":  req.Proto,
			})

			if res.Status >= 500 {
				entry.Error("request failed")
			} else {
				entry.Info("request processed")
			}
			return nil
		}
	}
}
