package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Hotel-api/internal/domain/entity"
)

// AssignmentRepository ledger append-only de asignaciones cliente-habitación.
type AssignmentRepository interface {
	Create(ctx context.Context, a *entity.RoomAssignment) error
	// ListByClient historial del registro, más reciente primero.
	ListByClient(ctx context.Context, clientID string) ([]*entity.RoomAssignment, error)
	ListByClients(ctx context.Context, clientIDs []string) ([]*entity.RoomAssignment, error)
	ListActiveByClient(ctx context.Context, clientID string) ([]*entity.RoomAssignment, error)
	ListActive(ctx context.Context) ([]*entity.RoomAssignment, error)
	CountActiveByClients(ctx context.Context, clientIDs []string) (map[string]int, error)
	CountActiveByRoom(ctx context.Context, roomID string) (int, error)
	CountByRoom(ctx context.Context, roomID string) (int, error)
	// Release marca la asignación como liberada. Falla con ErrConflict si no estaba activa.
	Release(ctx context.Context, id string, at time.Time) error
}
