package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Hotel-api/internal/domain"
	"github.com/jhoicas/Hotel-api/internal/domain/entity"
	"github.com/jhoicas/Hotel-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo ledger en memoria. Replica el índice único parcial de PostgreSQL:
// a lo sumo una asignación activa por habitación.
type AssignmentRepo struct {
	a access
}

func (r *AssignmentRepo) Create(ctx context.Context, asg *entity.RoomAssignment) error {
	return r.a.write(ctx, func(t *tables) error {
		if _, ok := t.assignments[asg.ID]; ok {
			return domain.ErrDuplicate
		}
		if asg.Activa() {
			for _, existing := range t.assignments {
				if existing.RoomID == asg.RoomID && existing.Activa() {
					return &domain.ConflictError{Reason: domain.ErrRoomUnavailable, RoomIDs: []string{asg.RoomID}}
				}
			}
		}
		t.assignments[asg.ID] = copyAssignment(*asg)
		t.asgOrder = append(t.asgOrder, asg.ID)
		return nil
	})
}

// collect recorre el ledger en orden de inserción. Con newestFirst lo invierte.
func (r *AssignmentRepo) collect(keep func(a entity.RoomAssignment) bool, newestFirst bool) ([]*entity.RoomAssignment, error) {
	var list []*entity.RoomAssignment
	err := r.a.read(func(t *tables) error {
		n := len(t.asgOrder)
		for i := 0; i < n; i++ {
			idx := i
			if newestFirst {
				idx = n - 1 - i
			}
			a := t.assignments[t.asgOrder[idx]]
			if keep(a) {
				a = copyAssignment(a)
				list = append(list, &a)
			}
		}
		return nil
	})
	return list, err
}

func (r *AssignmentRepo) ListByClient(_ context.Context, clientID string) ([]*entity.RoomAssignment, error) {
	return r.collect(func(a entity.RoomAssignment) bool { return a.ClientID == clientID }, true)
}

func (r *AssignmentRepo) ListByClients(_ context.Context, clientIDs []string) ([]*entity.RoomAssignment, error) {
	set := make(map[string]struct{}, len(clientIDs))
	for _, id := range clientIDs {
		set[id] = struct{}{}
	}
	return r.collect(func(a entity.RoomAssignment) bool {
		_, ok := set[a.ClientID]
		return ok
	}, true)
}

func (r *AssignmentRepo) ListActiveByClient(_ context.Context, clientID string) ([]*entity.RoomAssignment, error) {
	return r.collect(func(a entity.RoomAssignment) bool { return a.ClientID == clientID && a.Activa() }, false)
}

func (r *AssignmentRepo) ListActive(context.Context) ([]*entity.RoomAssignment, error) {
	return r.collect(func(a entity.RoomAssignment) bool { return a.Activa() }, false)
}

func (r *AssignmentRepo) CountActiveByClients(_ context.Context, clientIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(clientIDs))
	set := make(map[string]struct{}, len(clientIDs))
	for _, id := range clientIDs {
		set[id] = struct{}{}
	}
	err := r.a.read(func(t *tables) error {
		for _, a := range t.assignments {
			if _, ok := set[a.ClientID]; ok && a.Activa() {
				counts[a.ClientID]++
			}
		}
		return nil
	})
	return counts, err
}

func (r *AssignmentRepo) CountActiveByRoom(_ context.Context, roomID string) (int, error) {
	n := 0
	err := r.a.read(func(t *tables) error {
		for _, a := range t.assignments {
			if a.RoomID == roomID && a.Activa() {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *AssignmentRepo) CountByRoom(_ context.Context, roomID string) (int, error) {
	n := 0
	err := r.a.read(func(t *tables) error {
		for _, a := range t.assignments {
			if a.RoomID == roomID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *AssignmentRepo) Release(ctx context.Context, id string, at time.Time) error {
	return r.a.write(ctx, func(t *tables) error {
		a, ok := t.assignments[id]
		if !ok {
			return &domain.NotFoundError{Resource: "asignación", ID: id}
		}
		if !a.Activa() {
			return fmt.Errorf("asignación %s ya liberada: %w", id, domain.ErrConflict)
		}
		a.Estado = entity.AssignmentLiberado
		a.FechaLiberacion = &at
		t.assignments[id] = a
		return nil
	})
}
