package memory

import (
	"context"

	"github.com/jhoicas/Hotel-api/internal/domain/entity"
	"github.com/jhoicas/Hotel-api/internal/domain/repository"
)

var _ repository.RoomTransitionRepository = (*TransitionRepo)(nil)

// TransitionRepo bitácora en memoria de cambios de estado.
type TransitionRepo struct {
	a access
}

func (r *TransitionRepo) Create(ctx context.Context, tr *entity.RoomTransition) error {
	return r.a.write(ctx, func(t *tables) error {
		t.transitions = append(t.transitions, *tr)
		return nil
	})
}

func (r *TransitionRepo) ListByRoom(_ context.Context, roomID string, limit int) ([]*entity.RoomTransition, error) {
	var list []*entity.RoomTransition
	err := r.a.read(func(t *tables) error {
		for i := len(t.transitions) - 1; i >= 0; i-- {
			if t.transitions[i].RoomID != roomID {
				continue
			}
			tr := t.transitions[i]
			list = append(list, &tr)
			if limit > 0 && len(list) == limit {
				break
			}
		}
		return nil
	})
	return list, err
}
