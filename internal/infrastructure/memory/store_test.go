package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hotel-api/internal/domain"
	"github.com/jhoicas/Hotel-api/internal/domain/entity"
	"github.com/jhoicas/Hotel-api/internal/domain/repository"
	"github.com/jhoicas/Hotel-api/internal/infrastructure/memory"
)

func newRoom(numero int) *entity.Room {
	return &entity.Room{
		ID:          uuid.NewString(),
		Numero:      numero,
		Tipo:        entity.RoomTypeFamiliar,
		PrecioNoche: decimal.RequireFromString("320.00"),
		Estado:      entity.RoomStatusDisponible,
	}
}

func TestStore_RunDescartaCambiosSiFalla(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	room := newRoom(10)
	require.NoError(t, store.Repos().Rooms.Create(ctx, room))

	boom := errors.New("boom")
	err := store.Run(ctx, func(repos repository.Repos) error {
		ok, err := repos.Rooms.CompareAndSetEstado(ctx, room.ID, entity.RoomStatusDisponible, entity.RoomStatusOcupado, time.Now())
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, repos.Rooms.Create(ctx, newRoom(11)))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.Repos().Rooms.GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoomStatusDisponible, got.Estado)
	other, err := store.Repos().Rooms.GetByNumero(ctx, 11)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestStore_RunConfirmaCambios(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	room := newRoom(12)

	require.NoError(t, store.Run(ctx, func(repos repository.Repos) error {
		return repos.Rooms.Create(ctx, room)
	}))

	got, err := store.Repos().Rooms.GetByID(ctx, room.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 12, got.Numero)
}

func TestStore_LecturasDevuelvenCopias(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	room := newRoom(13)
	require.NoError(t, store.Repos().Rooms.Create(ctx, room))

	got, err := store.Repos().Rooms.GetByID(ctx, room.ID)
	require.NoError(t, err)
	got.Estado = entity.RoomStatusMantenimiento

	again, err := store.Repos().Rooms.GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoomStatusDisponible, again.Estado)
}

func TestStore_UnaAsignacionActivaPorHabitacion(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	room := newRoom(14)
	require.NoError(t, store.Repos().Rooms.Create(ctx, room))

	asg := func(estado string) *entity.RoomAssignment {
		a := &entity.RoomAssignment{
			ID:              uuid.NewString(),
			ClientID:        uuid.NewString(),
			RoomID:          room.ID,
			Estado:          estado,
			FechaAsignacion: time.Now(),
		}
		if estado == entity.AssignmentLiberado {
			now := time.Now()
			a.FechaLiberacion = &now
		}
		return a
	}

	require.NoError(t, store.Repos().Assignments.Create(ctx, asg(entity.AssignmentActivo)))
	err := store.Repos().Assignments.Create(ctx, asg(entity.AssignmentActivo))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRoomUnavailable)

	// Las liberadas no compiten
	require.NoError(t, store.Repos().Assignments.Create(ctx, asg(entity.AssignmentLiberado)))

	n, err := store.Repos().Assignments.CountByRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	active, err := store.Repos().Assignments.CountActiveByRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, active)
}

func TestStore_NumeroDuplicado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Repos().Rooms.Create(ctx, newRoom(15)))
	assert.ErrorIs(t, store.Repos().Rooms.Create(ctx, newRoom(15)), domain.ErrDuplicate)
}

func TestStore_TimeoutEsTransitorio(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(memory.WithTxTimeout(20 * time.Millisecond))

	err := store.Run(ctx, func(repository.Repos) error {
		// La transacción anidada espera el semáforo y agota el plazo
		return store.Run(ctx, func(repository.Repos) error { return nil })
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransient)
}
