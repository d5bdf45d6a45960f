package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Hotel-api/internal/domain"
	"github.com/jhoicas/Hotel-api/internal/domain/entity"
	"github.com/jhoicas/Hotel-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

const activeRoomIndex = "ux_client_rooms_room_activo"

var assignmentColumns = []any{"id", "client_id", "room_id", "estado", "fecha_asignacion", "fecha_liberacion"}

// AssignmentRepo ledger de asignaciones (tabla client_rooms).
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

// Create inserta una asignación. El índice único parcial rechaza una segunda asignación
// activa para la misma habitación.
func (r *AssignmentRepo) Create(ctx context.Context, a *entity.RoomAssignment) error {
	query := `
		INSERT INTO client_rooms (id, client_id, room_id, estado, fecha_asignacion, fecha_liberacion)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, a.ID, a.ClientID, a.RoomID, a.Estado, a.FechaAsignacion, a.FechaLiberacion)
	if err != nil {
		if isUniqueViolation(err) && constraintName(err) == activeRoomIndex {
			return &domain.ConflictError{Reason: domain.ErrRoomUnavailable, RoomIDs: []string{a.RoomID}}
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client_room: %w", err)
	}
	return nil
}

func (r *AssignmentRepo) list(ctx context.Context, where []goqu.Expression, newestFirst bool) ([]*entity.RoomAssignment, error) {
	order := []exp.OrderedExpression{goqu.I("fecha_asignacion").Asc(), goqu.I("seq").Asc()}
	if newestFirst {
		order = []exp.OrderedExpression{goqu.I("fecha_asignacion").Desc(), goqu.I("seq").Desc()}
	}
	query, args, err := goqu.Dialect(dialect).From("client_rooms").Prepared(true).
		Select(assignmentColumns...).Where(where...).Order(order...).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build client_rooms query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list client_rooms: %w", err)
	}
	defer rows.Close()
	var list []*entity.RoomAssignment
	for rows.Next() {
		var a entity.RoomAssignment
		if err := rows.Scan(&a.ID, &a.ClientID, &a.RoomID, &a.Estado, &a.FechaAsignacion, &a.FechaLiberacion); err != nil {
			return nil, fmt.Errorf("scan client_room: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// ListByClient historial del registro, más reciente primero.
func (r *AssignmentRepo) ListByClient(ctx context.Context, clientID string) ([]*entity.RoomAssignment, error) {
	return r.list(ctx, []goqu.Expression{goqu.C("client_id").Eq(clientID)}, true)
}

// ListByClients historial de varios registros, más reciente primero.
func (r *AssignmentRepo) ListByClients(ctx context.Context, clientIDs []string) ([]*entity.RoomAssignment, error) {
	if len(clientIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, []goqu.Expression{goqu.C("client_id").In(clientIDs)}, true)
}

// ListActiveByClient asignaciones activas del registro, en orden de asignación.
func (r *AssignmentRepo) ListActiveByClient(ctx context.Context, clientID string) ([]*entity.RoomAssignment, error) {
	return r.list(ctx, []goqu.Expression{
		goqu.C("client_id").Eq(clientID),
		goqu.C("estado").Eq(entity.AssignmentActivo),
	}, false)
}

// ListActive todas las asignaciones activas.
func (r *AssignmentRepo) ListActive(ctx context.Context) ([]*entity.RoomAssignment, error) {
	return r.list(ctx, []goqu.Expression{goqu.C("estado").Eq(entity.AssignmentActivo)}, false)
}

// CountActiveByClients número de asignaciones activas por registro.
func (r *AssignmentRepo) CountActiveByClients(ctx context.Context, clientIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(clientIDs))
	if len(clientIDs) == 0 {
		return counts, nil
	}
	query, args, err := goqu.Dialect(dialect).From("client_rooms").Prepared(true).
		Select(goqu.C("client_id"), goqu.COUNT("*")).
		Where(goqu.C("client_id").In(clientIDs), goqu.C("estado").Eq(entity.AssignmentActivo)).
		GroupBy("client_id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build count query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count active client_rooms: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// CountActiveByRoom asignaciones activas de la habitación (0 o 1 si el índice está presente).
func (r *AssignmentRepo) CountActiveByRoom(ctx context.Context, roomID string) (int, error) {
	return r.count(ctx, `SELECT count(*) FROM client_rooms WHERE room_id = $1 AND estado = 'activo'`, roomID)
}

// CountByRoom asignaciones históricas de la habitación.
func (r *AssignmentRepo) CountByRoom(ctx context.Context, roomID string) (int, error) {
	return r.count(ctx, `SELECT count(*) FROM client_rooms WHERE room_id = $1`, roomID)
}

func (r *AssignmentRepo) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count client_rooms: %w", err)
	}
	return n, nil
}

// Release pasa la asignación de activo a liberado. Una asignación ya liberada no cambia.
func (r *AssignmentRepo) Release(ctx context.Context, id string, at time.Time) error {
	var estado string
	err := r.q.QueryRow(ctx, `
		UPDATE client_rooms SET estado = 'liberado', fecha_liberacion = $2
		WHERE id = $1 AND estado = 'activo'
		RETURNING estado`, id, at).Scan(&estado)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("release client_room: %w", err)
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM client_rooms WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("release client_room: %w", err)
	}
	if !exists {
		return &domain.NotFoundError{Resource: "asignación", ID: id}
	}
	return fmt.Errorf("asignación %s ya liberada: %w", id, domain.ErrConflict)
}
