package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de habitación.
const (
	RoomTypeSimple   = "simple"
	RoomTypeDoble    = "doble"
	RoomTypeTriple   = "triple"
	RoomTypeFamiliar = "familiar"
)

// Estados de habitación. Solo disponible admite una nueva asignación.
const (
	RoomStatusDisponible    = "disponible"
	RoomStatusOcupado       = "ocupado"
	RoomStatusSucio         = "sucio"
	RoomStatusMantenimiento = "mantenimiento"
)

// RoomTypeLabels etiquetas de presentación de cada tipo.
var RoomTypeLabels = map[string]string{
	RoomTypeSimple:   "Simple",
	RoomTypeDoble:    "Doble",
	RoomTypeTriple:   "Triple",
	RoomTypeFamiliar: "Familiar (4 camas)",
}

// RoomStatusLabels etiquetas de presentación de cada estado.
var RoomStatusLabels = map[string]string{
	RoomStatusDisponible:    "Disponible",
	RoomStatusOcupado:       "Ocupado",
	RoomStatusSucio:         "Sucio",
	RoomStatusMantenimiento: "Mantenimiento",
}

// Room habitación física del hotel.
type Room struct {
	ID          string
	Numero      int
	Tipo        string
	PrecioNoche decimal.Decimal
	Estado      string
	Descripcion string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EstaDisponible indica si la habitación puede asignarse.
func (r *Room) EstaDisponible() bool {
	return r.Estado == RoomStatusDisponible
}
