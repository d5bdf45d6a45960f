package occupancy

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Hotel-api/internal/application/dto"
	"github.com/jhoicas/Hotel-api/internal/domain/entity"
)

// NewClient construye un registro nuevo desde la entrada. FechaIngreso vacía toma now.
func NewClient(in dto.ClientInput, now time.Time) *entity.Client {
	c := &entity.Client{
		ID:        uuid.New().String(),
		CreatedAt: now,
	}
	ApplyClientInput(c, in, now)
	return c
}

// ApplyClientInput copia la entrada sobre el registro. No toca FechaSalidaReal ni el ledger.
func ApplyClientInput(c *entity.Client, in dto.ClientInput, now time.Time) {
	c.Nombres = strings.TrimSpace(in.Nombres)
	c.Apellidos = strings.TrimSpace(in.Apellidos)
	c.TipoDocumento = strings.TrimSpace(in.TipoDocumento)
	c.NumeroDocumento = strings.TrimSpace(in.NumeroDocumento)
	c.Edad = in.Edad
	c.Telefono = strings.TrimSpace(in.Telefono)
	c.Direccion = strings.TrimSpace(in.Direccion)
	if in.FechaIngreso != nil {
		c.FechaIngreso = *in.FechaIngreso
	} else if c.FechaIngreso.IsZero() {
		c.FechaIngreso = now
	}
	c.FechaSalida = in.FechaSalida
	c.NumeroHabitacionesDeseadas = in.NumeroHabitacionesDeseadas
	c.TipoPago = in.TipoPago
	c.MontoPagado = in.MontoPagado
	c.UpdatedAt = now
}

func toRoomSummary(r *entity.Room) *dto.RoomSummary {
	if r == nil {
		return nil
	}
	return &dto.RoomSummary{
		ID:          r.ID,
		Numero:      r.Numero,
		Tipo:        r.Tipo,
		TipoDisplay: entity.RoomTypeLabels[r.Tipo],
		PrecioNoche: r.PrecioNoche,
		Estado:      r.Estado,
	}
}

func toRoomSummaries(rooms []*entity.Room) []dto.RoomSummary {
	out := make([]dto.RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, *toRoomSummary(r))
	}
	return out
}

func toAssignmentResponse(a *entity.RoomAssignment, room *entity.Room) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		ID:              a.ID,
		ClientID:        a.ClientID,
		RoomID:          a.RoomID,
		Habitacion:      toRoomSummary(room),
		Estado:          a.Estado,
		FechaAsignacion: a.FechaAsignacion,
		FechaLiberacion: a.FechaLiberacion,
	}
}
