package httpapi

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Spok95/lms-dashboard/internal/ctxutil"
	"github.com/Spok95/lms-dashboard/internal/metrics"
	"github.com/Spok95/lms-dashboard/internal/models"
	"github.com/Spok95/lms-dashboard/internal/observability"
)

const (
	msgLoadFailed    = "failed to load"
	msgRequestFailed = "request failed"
	msgInvalid       = "invalid request"
	msgNotFound      = "not found"
)

type loader func(c *fiber.Ctx) (any, error)

// read wraps a GET handler: the loaded value is checked against the
// boundary contract before it is sent.
func (s *Server) read(op string, fn loader) fiber.Handler {
	return s.handle(op, msgLoadFailed, fn)
}

func (s *Server) write(op string, fn loader) fiber.Handler {
	return s.handle(op, msgRequestFailed, fn)
}

func (s *Server) handle(op, failMsg string, fn loader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.SetUserContext(ctxutil.WithOp(c.UserContext(), op))
		v, err := fn(c)
		if err != nil {
			return s.fail(c, op, failMsg, err)
		}
		if err := models.Validate(v); err != nil {
			// битый ответ это наша ошибка, а не клиента
			return s.internal(c, op, failMsg, fmt.Errorf("contract: %w", err))
		}
		return c.JSON(v)
	}
}

// fail maps an error onto a status code. Internal details never reach the
// client; 5xx go to the log and Sentry.
func (s *Server) fail(c *fiber.Ctx, op, failMsg string, err error) error {
	var ve validator.ValidationErrors
	switch {
	case errors.As(err, &ve):
		return validationError(c, ve)
	case errors.Is(err, models.ErrInvalidInput):
		return errorJSON(c, fiber.StatusBadRequest, msgInvalid)
	case errors.Is(err, models.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, msgNotFound)
	}
	return s.internal(c, op, failMsg, err)
}

func (s *Server) internal(c *fiber.Ctx, op, failMsg string, err error) error {
	ctx := c.UserContext()
	id, _ := ctxutil.RequestID(ctx)
	s.log.Error("handler failed", zap.String("op", op), zap.String("request_id", id), zap.Error(err))
	metrics.HandlerErrors.WithLabelValues(c.Route().Path).Inc()
	observability.CaptureCtx(ctx, err)
	return errorJSON(c, fiber.StatusInternalServerError, failMsg)
}

// errorHandler handles errors that escape the handlers: unknown routes,
// recovered panics, body limits.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		s.log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		observability.CaptureCtx(c.UserContext(), err)
		return errorJSON(c, code, msgRequestFailed)
	}
	return errorJSON(c, code, statusMessage(fe))
}

func statusMessage(fe *fiber.Error) string {
	if fe != nil && fe.Message != "" {
		return fe.Message
	}
	return fiber.ErrBadRequest.Message
}

func errorJSON(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(fiber.Map{"error": msg})
}

func validationError(c *fiber.Ctx, ve validator.ValidationErrors) error {
	details := make(map[string]string, len(ve))
	for _, fe := range ve {
		details[fe.Field()] = fe.Tag()
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   msgInvalid,
		"details": details,
	})
}

// bind parses a JSON body into T and validates it.
func bind[T any](c *fiber.Ctx) (T, error) {
	var req T
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return req, fmt.Errorf("%w: body: %v", models.ErrInvalidInput, err)
		}
	}
	if err := models.Validator().Struct(req); err != nil {
		return req, err
	}
	return req, nil
}
