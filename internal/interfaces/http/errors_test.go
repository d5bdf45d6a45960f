package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hotel-api/internal/domain"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"campos", &domain.ValidationError{Rule: domain.RuleCampos, Fields: map[string]string{"edad": "x"}}, 400, "VALIDATION"},
		{"cliente activo", domain.NewValidationError(domain.RuleClienteActivo, "activo"), 400, "CLIENTE_ACTIVO"},
		{"cliente inactivo", domain.NewValidationError(domain.RuleClienteInactivo, "inactivo"), 400, "CLIENTE_INACTIVO"},
		{"habitación no disponible", domain.NewRoomUnavailableError([]string{"r1"}, []int{101}), 409, "ROOM_UNAVAILABLE"},
		{"sin asignaciones", &domain.ConflictError{Reason: domain.ErrNoActiveAssignments}, 409, "NO_ACTIVE_ASSIGNMENTS"},
		{"habitación con historial", &domain.ConflictError{Reason: domain.ErrRoomInUse}, 409, "CONFLICT"},
		{"no encontrado", &domain.NotFoundError{Resource: "cliente", ID: "c1"}, 404, "NOT_FOUND"},
		{"transitorio envuelto", fmt.Errorf("tx: %w", domain.ErrTransient), 503, "TRANSIENT"},
		{"desconocido", errors.New("boom"), 500, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := mapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestErrorHandler_TransitorioAgregaRetryAfter(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zerolog.Nop())})
	app.Get("/", func(c *fiber.Ctx) error { return domain.ErrTransient })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("Retry-After"))
}
