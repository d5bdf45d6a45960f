package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Hotel-api/internal/domain"
)

func TestValidationError_Is(t *testing.T) {
	verr := domain.NewValidationError(domain.RuleClienteActivo, "documento en uso")
	wrapped := fmt.Errorf("crear cliente: %w", verr)

	assert.ErrorIs(t, wrapped, domain.ErrInvalidInput)
	assert.ErrorIs(t, wrapped, domain.ErrActiveClient)
	assert.NotErrorIs(t, wrapped, domain.ErrInactiveClient)
	assert.NotErrorIs(t, wrapped, domain.ErrConflict)
}

func TestValidationError_Campos(t *testing.T) {
	verr := &domain.ValidationError{Rule: domain.RuleCampos}
	assert.NoError(t, verr.OrNil())

	verr.Add("telefono", "primero")
	verr.Add("telefono", "segundo")
	verr.Add("edad", "fuera de rango")
	assert.True(t, verr.HasErrors())
	assert.Equal(t, "edad: fuera de rango; telefono: primero", verr.Error())
}

func TestConflictError_Unwrap(t *testing.T) {
	err := domain.NewRoomUnavailableError([]string{"r1", "r2"}, []int{101, 102})

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, err, domain.ErrRoomUnavailable)
	assert.NotErrorIs(t, err, domain.ErrNoActiveAssignments)
	assert.Contains(t, err.Error(), "[101 102]")

	var cerr *domain.ConflictError
	assert.True(t, errors.As(fmt.Errorf("tx: %w", err), &cerr))
	assert.Equal(t, []string{"r1", "r2"}, cerr.RoomIDs)
}

func TestNotFoundAndViolation(t *testing.T) {
	assert.ErrorIs(t, &domain.NotFoundError{Resource: "habitación", ID: "x"}, domain.ErrNotFound)
	v := &domain.ConsistencyViolation{Kind: domain.KindOcupadoSinAsignacion, Numero: 101, Estado: "ocupado"}
	assert.ErrorIs(t, v, domain.ErrConsistencyViolation)
	assert.Contains(t, v.Error(), domain.KindOcupadoSinAsignacion)
}
