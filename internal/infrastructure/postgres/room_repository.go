package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Hotel-api/internal/domain"
	"github.com/jhoicas/Hotel-api/internal/domain/entity"
	"github.com/jhoicas/Hotel-api/internal/domain/hotel"
	"github.com/jhoicas/Hotel-api/internal/domain/repository"
)

const dialect = "postgres"

var _ repository.RoomRepository = (*RoomRepo)(nil)

var roomColumns = []any{"id", "numero", "tipo", "precio_noche", "estado", "descripcion", "created_at", "updated_at"}

// RoomRepo implementación de RoomRepository (usable con pool o tx).
type RoomRepo struct {
	q Querier
}

// NewRoomRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoomRepository(q Querier) *RoomRepo {
	return &RoomRepo{q: q}
}

func scanRoom(row pgx.Row) (*entity.Room, error) {
	var r entity.Room
	err := row.Scan(&r.ID, &r.Numero, &r.Tipo, &r.PrecioNoche, &r.Estado, &r.Descripcion, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create persiste una nueva habitación.
func (r *RoomRepo) Create(ctx context.Context, room *entity.Room) error {
	query := `
		INSERT INTO rooms (id, numero, tipo, precio_noche, estado, descripcion, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		room.ID, room.Numero, room.Tipo, room.PrecioNoche, room.Estado, room.Descripcion, room.CreatedAt, room.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert room: %w", err)
	}
	return nil
}

// GetByID obtiene una habitación por ID. Devuelve nil si no existe.
func (r *RoomRepo) GetByID(ctx context.Context, id string) (*entity.Room, error) {
	return r.getOne(ctx, goqu.Ex{"id": id})
}

// GetByNumero obtiene una habitación por número.
func (r *RoomRepo) GetByNumero(ctx context.Context, numero int) (*entity.Room, error) {
	return r.getOne(ctx, goqu.Ex{"numero": numero})
}

func (r *RoomRepo) getOne(ctx context.Context, where goqu.Ex) (*entity.Room, error) {
	query, args, err := goqu.Dialect(dialect).From("rooms").Prepared(true).
		Select(roomColumns...).Where(where).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build room query: %w", err)
	}
	room, err := scanRoom(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return room, nil
}

// List lista habitaciones filtradas, ordenadas por número.
func (r *RoomRepo) List(ctx context.Context, f repository.RoomFilter) ([]*entity.Room, error) {
	ds := goqu.Dialect(dialect).From("rooms").Prepared(true).
		Select(roomColumns...).Order(goqu.I("numero").Asc())
	if f.Tipo != "" {
		ds = ds.Where(goqu.C("tipo").Eq(f.Tipo))
	}
	if f.Estado != "" {
		ds = ds.Where(goqu.C("estado").Eq(f.Estado))
	}
	if f.PrecioMin != nil {
		ds = ds.Where(goqu.C("precio_noche").Gte(*f.PrecioMin))
	}
	if f.PrecioMax != nil {
		ds = ds.Where(goqu.C("precio_noche").Lte(*f.PrecioMax))
	}
	if q := hotel.NormalizeSearch(f.Query); q != "" {
		conds := []goqu.Expression{goqu.L("lower(descripcion) LIKE ?", "%"+q+"%")}
		if n, err := strconv.Atoi(q); err == nil {
			conds = append(conds, goqu.C("numero").Eq(n))
		}
		ds = ds.Where(goqu.Or(conds...))
	}
	return r.query(ctx, ds)
}

// ListByIDs obtiene las habitaciones indicadas que existan.
func (r *RoomRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Room, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ds := goqu.Dialect(dialect).From("rooms").Prepared(true).
		Select(roomColumns...).Where(goqu.C("id").In(ids)).Order(goqu.I("numero").Asc())
	return r.query(ctx, ds)
}

func (r *RoomRepo) query(ctx context.Context, ds *goqu.SelectDataset) ([]*entity.Room, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build rooms query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()
	var list []*entity.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		list = append(list, room)
	}
	return list, rows.Err()
}

// Update actualiza los datos editables de la habitación.
func (r *RoomRepo) Update(ctx context.Context, room *entity.Room) error {
	query := `
		UPDATE rooms SET numero = $2, tipo = $3, precio_noche = $4, descripcion = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, room.ID, room.Numero, room.Tipo, room.PrecioNoche, room.Descripcion, room.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update room: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "habitación", ID: room.ID}
	}
	return nil
}

// Delete elimina una habitación por ID.
func (r *RoomRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "habitación", ID: id}
	}
	return nil
}

// CompareAndSetEstado UPDATE condicional: aplica solo si el estado actual es expected.
// La fila queda bloqueada hasta el fin de la transacción.
func (r *RoomRepo) CompareAndSetEstado(ctx context.Context, id, expected, next string, at time.Time) (bool, error) {
	query := `UPDATE rooms SET estado = $3, updated_at = $4 WHERE id = $1 AND estado = $2`
	tag, err := r.q.Exec(ctx, query, id, expected, next, at)
	if err != nil {
		return false, fmt.Errorf("compare and set room estado: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// SetEstado cambia el estado sin condición y devuelve el anterior.
func (r *RoomRepo) SetEstado(ctx context.Context, id, next string, at time.Time) (string, error) {
	query := `
		UPDATE rooms AS r SET estado = $2, updated_at = $3
		FROM (SELECT id, estado FROM rooms WHERE id = $1 FOR UPDATE) AS prev
		WHERE r.id = prev.id
		RETURNING prev.estado`
	var prev string
	if err := r.q.QueryRow(ctx, query, id, next, at).Scan(&prev); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", &domain.NotFoundError{Resource: "habitación", ID: id}
		}
		return "", fmt.Errorf("set room estado: %w", err)
	}
	return prev, nil
}
