package entity

import "time"

// Estados de una asignación.
const (
	AssignmentActivo   = "activo"
	AssignmentLiberado = "liberado"
)

// RoomAssignment vínculo histórico entre un registro de cliente y una habitación.
// Solo admite la transición activo -> liberado.
type RoomAssignment struct {
	ID              string
	ClientID        string
	RoomID          string
	Estado          string
	FechaAsignacion time.Time
	FechaLiberacion *time.Time
}

// Activa indica si la asignación sigue vigente.
func (a *RoomAssignment) Activa() bool {
	return a.Estado == AssignmentActivo
}
