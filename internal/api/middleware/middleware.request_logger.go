package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/karlsome/FreyaAdmin-sub000/internal/logger"
)

// RequestLogger logs one line per request with method, path, status,
// duration, and request id. The id comes from the requestid middleware when
// present; otherwise one is generated here.
func RequestLogger() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			if rid, ok := c.Locals("requestid").(string); ok {
				requestID = rid
			}
		}
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals("requestid", requestID)
		c.Set("X-Request-ID", requestID)

		err := c.Next()

		fields := logrus.Fields{
			"request_id": requestID,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     c.Response().StatusCode(),
			"duration":   time.Since(start).String(),
			"ip":         c.IP(),
		}
		if username, ok := c.Locals("username").(string); ok && username != "" {
			fields["username"] = username
		}

		entry := logger.GetAppLogger().WithFields(fields)
		switch {
		case c.Response().StatusCode() >= 500:
			entry.Error("request completed")
		case c.Response().StatusCode() >= 400:
			entry.Warn("request completed")
		default:
			entry.Info("request completed")
		}
		return err
	}
}
