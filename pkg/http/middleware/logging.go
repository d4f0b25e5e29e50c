package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"PortRisk/pkg/logger"
)

// RequestLogging logs one structured line per request after the handler
// chain returns. Handler errors are passed through untouched so the echo
// error handler still shapes the response.
func RequestLogging(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			err := next(c)

			fields := []logger.Field{
				logger.String("method", req.Method),
				logger.String("uri", req.RequestURI),
				logger.String("remote", c.RealIP()),
				logger.Int("status", c.Response().Status),
				logger.Duration("latency", time.Since(start)),
			}
			if err != nil {
				fields = append(fields, logger.Error(err))
			}
			log.Info("http request", fields...)

			return err
		}
	}
}
