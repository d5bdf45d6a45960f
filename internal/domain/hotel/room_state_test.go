package hotel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hotel-api/internal/domain"
	"github.com/jhoicas/Hotel-api/internal/domain/entity"
	"github.com/jhoicas/Hotel-api/internal/domain/hotel"
)

func TestReleaseTarget(t *testing.T) {
	assert.Equal(t, entity.RoomStatusSucio, hotel.ReleaseTarget())
}

func TestCheckRoomConsistency(t *testing.T) {
	tests := []struct {
		estado string
		active int
		kind   string
	}{
		{entity.RoomStatusOcupado, 1, ""},
		{entity.RoomStatusDisponible, 0, ""},
		{entity.RoomStatusSucio, 0, ""},
		{entity.RoomStatusOcupado, 0, domain.KindOcupadoSinAsignacion},
		{entity.RoomStatusMantenimiento, 1, domain.KindAsignacionEnHabitacionLibre},
		{entity.RoomStatusOcupado, 2, domain.KindMultiplesAsignacionesActivas},
	}
	for _, tt := range tests {
		room := &entity.Room{ID: "r1", Numero: 101, Estado: tt.estado}
		v := hotel.CheckRoomConsistency(room, tt.active)
		if tt.kind == "" {
			assert.Nil(t, v, "%s/%d", tt.estado, tt.active)
			continue
		}
		require.NotNil(t, v, "%s/%d", tt.estado, tt.active)
		assert.Equal(t, tt.kind, v.Kind)
		assert.ErrorIs(t, v, domain.ErrConsistencyViolation)
	}
}

func TestNormalizeSearch(t *testing.T) {
	assert.Equal(t, "jose perez", hotel.NormalizeSearch("  José Pérez "))
	assert.True(t, hotel.MatchesSearch("nunez", "María", "Núñez"))
	assert.True(t, hotel.MatchesSearch("", "cualquiera"))
	assert.False(t, hotel.MatchesSearch("gomez", "Ana", "Quispe"))
}
