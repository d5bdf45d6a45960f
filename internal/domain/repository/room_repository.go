package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Hotel-api/internal/domain/entity"
)

// RoomFilter criterios de búsqueda de habitaciones. Campos vacíos no filtran.
type RoomFilter struct {
	Tipo      string
	Estado    string
	PrecioMin *decimal.Decimal
	PrecioMax *decimal.Decimal
	Query     string // coincidencia en número o descripción
}

// RoomRepository define el puerto de persistencia para Room.
type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	GetByNumero(ctx context.Context, numero int) (*entity.Room, error)
	List(ctx context.Context, filter RoomFilter) ([]*entity.Room, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Room, error)
	Update(ctx context.Context, room *entity.Room) error
	Delete(ctx context.Context, id string) error
	// CompareAndSetEstado cambia el estado solo si el actual es expected. Devuelve false si no aplicó.
	CompareAndSetEstado(ctx context.Context, id, expected, next string, at time.Time) (bool, error)
	// SetEstado cambia el estado sin condición y devuelve el estado previo.
	SetEstado(ctx context.Context, id, next string, at time.Time) (string, error)
}
