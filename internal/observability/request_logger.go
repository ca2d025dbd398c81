package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FieldsFunc contributes extra log fields once a request has completed.
type FieldsFunc func(c *fiber.Ctx) []zap.Field

// RequestLogger logs one line per request and feeds the request metrics.
// Status is read after downstream middleware has rendered any error.
func RequestLogger(logger *zap.Logger, metrics *Metrics, extra ...FieldsFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		status := c.Response().StatusCode()
		route := c.Route().Path
		metrics.RecordRequest(route, c.Method(), status, elapsed)

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("duration", elapsed),
			zap.String("request_id", RequestID(c)),
		}
		for _, fn := range extra {
			fields = append(fields, fn(c)...)
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("request completed", fields...)
		default:
			logger.Info("request completed", fields...)
		}
		return err
	}
}
