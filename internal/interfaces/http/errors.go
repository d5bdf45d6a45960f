package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/jhoicas/Hotel-api/internal/application/dto"
	"github.com/jhoicas/Hotel-api/internal/domain"
)

// ErrorHandler traduce los errores de dominio a respuestas HTTP. Los handlers solo
// devuelven el error.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := mapError(err)
		switch {
		case status >= fiber.StatusInternalServerError && status != fiber.StatusServiceUnavailable:
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		case status == fiber.StatusServiceUnavailable:
			c.Set(fiber.HeaderRetryAfter, "1")
		}
		return c.Status(status).JSON(body)
	}
}

func mapError(err error) (int, dto.ErrorResponse) {
	var (
		verr  *domain.ValidationError
		cerr  *domain.ConflictError
		nferr *domain.NotFoundError
		ferr  *fiber.Error
	)
	switch {
	case errors.As(err, &verr):
		code := "VALIDATION"
		switch verr.Rule {
		case domain.RuleClienteActivo:
			code = "CLIENTE_ACTIVO"
		case domain.RuleClienteInactivo:
			code = "CLIENTE_INACTIVO"
		}
		msg := verr.Message
		if msg == "" {
			msg = "Datos inválidos"
		}
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: code, Message: msg, Fields: verr.Fields}

	case errors.As(err, &cerr):
		code := "CONFLICT"
		switch {
		case errors.Is(cerr.Reason, domain.ErrRoomUnavailable):
			code = "ROOM_UNAVAILABLE"
		case errors.Is(cerr.Reason, domain.ErrNoActiveAssignments):
			code = "NO_ACTIVE_ASSIGNMENTS"
		}
		return fiber.StatusConflict, dto.ErrorResponse{Code: code, Message: cerr.Error(), Habitaciones: cerr.RoomIDs}

	case errors.As(err, &nferr):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: nferr.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, domain.ErrTransient):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "TRANSIENT", Message: domain.ErrTransient.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()}
	case errors.As(err, &ferr):
		return ferr.Code, dto.ErrorResponse{Code: "HTTP_ERROR", Message: ferr.Message}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
