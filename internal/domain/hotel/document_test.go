package hotel_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hotel-api/internal/domain/entity"
	"github.com/jhoicas/Hotel-api/internal/domain/hotel"
)

func stay(id string, ingreso time.Time) *entity.Client {
	return &entity.Client{ID: id, FechaIngreso: ingreso, CreatedAt: ingreso}
}

func TestClassifyDocument(t *testing.T) {
	enero := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	marzo := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		matches    []hotel.DocumentMatch
		razon      string
		matchID    string
		total      int
		disponible bool
	}{
		{
			name:       "sin registros",
			razon:      hotel.RazonNuevoCliente,
			disponible: true,
		},
		{
			name:       "solo registros cerrados: gana el más reciente",
			matches:    []hotel.DocumentMatch{{Client: stay("viejo", enero)}, {Client: stay("nuevo", marzo)}},
			razon:      hotel.RazonClienteAnterior,
			matchID:    "nuevo",
			total:      2,
			disponible: true,
		},
		{
			name: "un registro activo gana aunque sea más antiguo",
			matches: []hotel.DocumentMatch{
				{Client: stay("reciente", marzo)},
				{Client: stay("activo", enero), ActiveRooms: 2},
			},
			razon:   hotel.RazonClienteActivo,
			matchID: "activo",
			total:   2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hotel.ClassifyDocument(tt.matches)
			assert.Equal(t, tt.razon, got.Razon)
			assert.Equal(t, tt.disponible, got.Disponible())
			assert.Equal(t, tt.total, got.TotalEstadias)
			if tt.matchID == "" {
				assert.Nil(t, got.Match)
				return
			}
			require.NotNil(t, got.Match)
			assert.Equal(t, tt.matchID, got.Match.Client.ID)
		})
	}
}
