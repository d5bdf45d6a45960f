package repository

import (
	"context"

	"github.com/jhoicas/Hotel-api/internal/domain/entity"
)

// RoomTransitionRepository bitácora de cambios de estado de habitaciones.
type RoomTransitionRepository interface {
	Create(ctx context.Context, t *entity.RoomTransition) error
	ListByRoom(ctx context.Context, roomID string, limit int) ([]*entity.RoomTransition, error)
}
