package api

import (
	"time"

	"github.com/citytransit-view/internal/common/logger"
	"github.com/gofiber/fiber/v2"
)

// requestLogger logs one line per request, at warn for 4xx and error for 5xx
func requestLogger(log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		startTime := time.Now()
		err = c.Next()

		msg := "HTTP Request"
		if err != nil {
			msg = err.Error()
		}

		code := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			code = fe.Code
		}

		fields := []interface{}{
			"status", code,
			"method", c.Method(),
			"path", c.Path(),
			"ip", c.IP(),
			"latency", time.Since(startTime).String(),
		}

		switch {
		case code >= fiber.StatusBadRequest && code < fiber.StatusInternalServerError:
			log.Warn(msg, fields...)
		case code >= fiber.StatusInternalServerError:
			log.Error(msg, fields...)
		default:
			log.Debug(msg, fields...)
		}

		return err
	}
}
