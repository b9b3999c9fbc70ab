package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Spok95/lms-dashboard/internal/ctxutil"
	"github.com/Spok95/lms-dashboard/internal/metrics"
)

const localRequestID = "request_id"

// requestID берёт X-Request-ID клиента или генерирует новый.
func requestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, id)
		c.Locals(localRequestID, id)
		c.SetUserContext(ctxutil.WithRequestID(c.UserContext(), id))
		return c.Next()
	}
}

func requestLog(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		route := c.Route().Path
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
			// неизвестные пути не должны раздувать кардинальность метрики
			if status == fiber.StatusNotFound {
				route = "unmatched"
			}
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()

		id, _ := c.Locals(localRequestID).(string)
		log.Info("http request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", id),
		)
		return err
	}
}
