package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Hotel-api/internal/domain/entity"
)

// ClientFilter criterios de listado de clientes.
type ClientFilter struct {
	TipoDocumento string
	TipoPago      string
	Query         string // nombres, apellidos o número de documento
	SoloActivos   bool
	IngresoDesde  *time.Time
	IngresoHasta  *time.Time
	Limit         int
	Offset        int
}

// ClientRepository define el puerto de persistencia para Client.
// Las lecturas ignoran registros eliminados salvo ListByDocumento.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Client, error)
	// ListByDocumento todos los registros del documento, incluidos eliminados, más reciente primero.
	ListByDocumento(ctx context.Context, tipo, numero string) ([]*entity.Client, error)
	List(ctx context.Context, filter ClientFilter) ([]*entity.Client, error)
	// Count total sin paginar para el mismo filtro.
	Count(ctx context.Context, filter ClientFilter) (int, error)
	Update(ctx context.Context, client *entity.Client) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	// LockDocumento serializa las operaciones sobre un mismo documento dentro de la transacción.
	LockDocumento(ctx context.Context, tipo, numero string) error
}
