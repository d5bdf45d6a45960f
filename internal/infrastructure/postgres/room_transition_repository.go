package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Hotel-api/internal/domain/entity"
	"github.com/jhoicas/Hotel-api/internal/domain/repository"
)

var _ repository.RoomTransitionRepository = (*RoomTransitionRepo)(nil)

// RoomTransitionRepo bitácora append-only de cambios de estado.
type RoomTransitionRepo struct {
	q Querier
}

// NewRoomTransitionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoomTransitionRepository(q Querier) *RoomTransitionRepo {
	return &RoomTransitionRepo{q: q}
}

func (r *RoomTransitionRepo) Create(ctx context.Context, t *entity.RoomTransition) error {
	query := `
		INSERT INTO room_transitions (id, room_id, desde, hacia, origen, motivo, client_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9)`
	_, err := r.q.Exec(ctx, query, t.ID, t.RoomID, t.Desde, t.Hacia, t.Origen, t.Motivo, t.ClientID, t.UserID, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert room_transition: %w", err)
	}
	return nil
}

// ListByRoom últimos cambios de la habitación, más reciente primero. limit <= 0 devuelve todos.
func (r *RoomTransitionRepo) ListByRoom(ctx context.Context, roomID string, limit int) ([]*entity.RoomTransition, error) {
	query := `
		SELECT id, room_id, desde, hacia, origen, motivo, COALESCE(client_id, ''), COALESCE(user_id, ''), created_at
		FROM room_transitions WHERE room_id = $1 ORDER BY seq DESC`
	args := []any{roomID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list room_transitions: %w", err)
	}
	defer rows.Close()
	var list []*entity.RoomTransition
	for rows.Next() {
		var t entity.RoomTransition
		if err := rows.Scan(&t.ID, &t.RoomID, &t.Desde, &t.Hacia, &t.Origen, &t.Motivo, &t.ClientID, &t.UserID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan room_transition: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
