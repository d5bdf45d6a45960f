package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Hotel-api/internal/domain"
	"github.com/jhoicas/Hotel-api/internal/domain/entity"
	"github.com/jhoicas/Hotel-api/internal/domain/hotel"
	"github.com/jhoicas/Hotel-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientSelect = `
		SELECT id, nombres, apellidos, tipo_documento, numero_documento, edad, telefono, direccion,
		       fecha_ingreso, fecha_salida, fecha_salida_real, numero_habitaciones_deseadas,
		       tipo_pago, monto_pagado, created_at, updated_at, deleted_at
		FROM clients`

var clientColumns = []any{
	"id", "nombres", "apellidos", "tipo_documento", "numero_documento", "edad", "telefono", "direccion",
	"fecha_ingreso", "fecha_salida", "fecha_salida_real", "numero_habitaciones_deseadas",
	"tipo_pago", "monto_pagado", "created_at", "updated_at", "deleted_at",
}

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(
		&c.ID, &c.Nombres, &c.Apellidos, &c.TipoDocumento, &c.NumeroDocumento, &c.Edad, &c.Telefono, &c.Direccion,
		&c.FechaIngreso, &c.FechaSalida, &c.FechaSalidaReal, &c.NumeroHabitacionesDeseadas,
		&c.TipoPago, &c.MontoPagado, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// busqueda texto normalizado (sin tildes, minúsculas) para el filtro q.
func busqueda(c *entity.Client) string {
	return hotel.NormalizeSearch(c.Nombres + " " + c.Apellidos + " " + c.NumeroDocumento)
}

// Create persiste un nuevo registro de cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (id, nombres, apellidos, tipo_documento, numero_documento, edad, telefono, direccion,
			fecha_ingreso, fecha_salida, fecha_salida_real, numero_habitaciones_deseadas, tipo_pago, monto_pagado,
			busqueda, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Nombres, c.Apellidos, c.TipoDocumento, c.NumeroDocumento, c.Edad, c.Telefono, c.Direccion,
		c.FechaIngreso, c.FechaSalida, c.FechaSalidaReal, c.NumeroHabitacionesDeseadas, c.TipoPago, c.MontoPagado,
		busqueda(c), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente no eliminado. Devuelve nil si no existe.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	return r.getOne(ctx, clientSelect+` WHERE id = $1 AND deleted_at IS NULL`, id)
}

// GetForUpdate obtiene el cliente y bloquea la fila (SELECT FOR UPDATE).
func (r *ClientRepo) GetForUpdate(ctx context.Context, id string) (*entity.Client, error) {
	return r.getOne(ctx, clientSelect+` WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id)
}

func (r *ClientRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// ListByDocumento todos los registros del documento (incluidos eliminados), más reciente primero.
func (r *ClientRepo) ListByDocumento(ctx context.Context, tipo, numero string) ([]*entity.Client, error) {
	ds := goqu.Dialect(dialect).From("clients").Prepared(true).Select(clientColumns...).
		Where(goqu.Ex{"tipo_documento": tipo, "numero_documento": numero}).
		Order(goqu.I("fecha_ingreso").Desc(), goqu.I("created_at").Desc())
	return r.query(ctx, ds)
}

// List lista clientes no eliminados según el filtro, más recientes primero.
func (r *ClientRepo) List(ctx context.Context, f repository.ClientFilter) ([]*entity.Client, error) {
	ds := filteredClients(f).Select(clientColumns...).
		Order(goqu.I("fecha_ingreso").Desc(), goqu.I("created_at").Desc())
	if f.Limit > 0 {
		ds = ds.Limit(uint(f.Limit))
	}
	if f.Offset > 0 {
		ds = ds.Offset(uint(f.Offset))
	}
	return r.query(ctx, ds)
}

// Count total de clientes que cumplen el filtro, sin paginar.
func (r *ClientRepo) Count(ctx context.Context, f repository.ClientFilter) (int, error) {
	query, args, err := filteredClients(f).Select(goqu.COUNT("*")).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build clients count: %w", err)
	}
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return n, nil
}

func filteredClients(f repository.ClientFilter) *goqu.SelectDataset {
	ds := goqu.Dialect(dialect).From("clients").Prepared(true).
		Where(goqu.C("deleted_at").IsNull())
	if f.TipoDocumento != "" {
		ds = ds.Where(goqu.C("tipo_documento").Eq(f.TipoDocumento))
	}
	if f.TipoPago != "" {
		ds = ds.Where(goqu.C("tipo_pago").Eq(f.TipoPago))
	}
	if q := hotel.NormalizeSearch(f.Query); q != "" {
		ds = ds.Where(goqu.C("busqueda").Like("%" + q + "%"))
	}
	if f.IngresoDesde != nil {
		ds = ds.Where(goqu.C("fecha_ingreso").Gte(*f.IngresoDesde))
	}
	if f.IngresoHasta != nil {
		ds = ds.Where(goqu.C("fecha_ingreso").Lte(*f.IngresoHasta))
	}
	if f.SoloActivos {
		ds = ds.Where(goqu.L(
			"EXISTS (SELECT 1 FROM client_rooms cr WHERE cr.client_id = clients.id AND cr.estado = ?)",
			entity.AssignmentActivo,
		))
	}
	return ds
}

func (r *ClientRepo) query(ctx context.Context, ds *goqu.SelectDataset) ([]*entity.Client, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build clients query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza el registro completo (salvo created_at y deleted_at).
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients SET nombres = $2, apellidos = $3, tipo_documento = $4, numero_documento = $5, edad = $6,
			telefono = $7, direccion = $8, fecha_ingreso = $9, fecha_salida = $10, fecha_salida_real = $11,
			numero_habitaciones_deseadas = $12, tipo_pago = $13, monto_pagado = $14, busqueda = $15, updated_at = $16
		WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Nombres, c.Apellidos, c.TipoDocumento, c.NumeroDocumento, c.Edad,
		c.Telefono, c.Direccion, c.FechaIngreso, c.FechaSalida, c.FechaSalidaReal,
		c.NumeroHabitacionesDeseadas, c.TipoPago, c.MontoPagado, busqueda(c), c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "cliente", ID: c.ID}
	}
	return nil
}

// SoftDelete marca el registro como eliminado. El ledger de asignaciones no se toca.
func (r *ClientRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE clients SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		return fmt.Errorf("soft delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "cliente", ID: id}
	}
	return nil
}

// LockDocumento toma un advisory lock de transacción sobre el documento, de modo que dos
// registros concurrentes del mismo documento se ejecuten uno tras otro.
func (r *ClientRepo) LockDocumento(ctx context.Context, tipo, numero string) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, tipo+":"+numero); err != nil {
		return fmt.Errorf("lock documento: %w", err)
	}
	return nil
}
