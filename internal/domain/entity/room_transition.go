package entity

import "time"

// Origen de un cambio de estado de habitación.
const (
	TransitionAutomatica = "automatica"
	TransitionManual     = "manual"
)

// Motivos de cambio de estado.
const (
	MotivoAsignacion         = "asignacion"
	MotivoLiberacion         = "liberacion"
	MotivoEliminacionCliente = "eliminacion_cliente"
	MotivoCambioManual       = "cambio_manual"
)

// RoomTransition registro inmutable de cada cambio de Room.Estado.
type RoomTransition struct {
	ID        string
	RoomID    string
	Desde     string
	Hacia     string
	Origen    string
	Motivo    string
	ClientID  string
	UserID    string
	CreatedAt time.Time
}
