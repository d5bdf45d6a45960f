package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Hotel-api/internal/domain"
	"github.com/jhoicas/Hotel-api/internal/domain/entity"
	"github.com/jhoicas/Hotel-api/internal/domain/hotel"
	"github.com/jhoicas/Hotel-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación en memoria de ClientRepository.
type ClientRepo struct {
	a access
}

func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	return r.a.write(ctx, func(t *tables) error {
		if _, ok := t.clients[c.ID]; ok {
			return domain.ErrDuplicate
		}
		t.clients[c.ID] = copyClient(*c)
		return nil
	})
}

func (r *ClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	var out *entity.Client
	err := r.a.read(func(t *tables) error {
		if c, ok := t.clients[id]; ok && c.DeletedAt == nil {
			c = copyClient(c)
			out = &c
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: las transacciones en memoria ya están serializadas.
func (r *ClientRepo) GetForUpdate(ctx context.Context, id string) (*entity.Client, error) {
	return r.GetByID(ctx, id)
}

func (r *ClientRepo) ListByDocumento(_ context.Context, tipo, numero string) ([]*entity.Client, error) {
	var list []*entity.Client
	err := r.a.read(func(t *tables) error {
		for _, c := range t.clients {
			if c.TipoDocumento == tipo && c.NumeroDocumento == numero {
				c = copyClient(c)
				list = append(list, &c)
			}
		}
		return nil
	})
	sortClients(list)
	return list, err
}

func (r *ClientRepo) List(_ context.Context, f repository.ClientFilter) ([]*entity.Client, error) {
	list, err := r.filtered(f)
	if err != nil {
		return nil, err
	}
	sortClients(list)
	return paginate(list, f.Limit, f.Offset), nil
}

func (r *ClientRepo) Count(_ context.Context, f repository.ClientFilter) (int, error) {
	list, err := r.filtered(f)
	return len(list), err
}

func (r *ClientRepo) filtered(f repository.ClientFilter) ([]*entity.Client, error) {
	var list []*entity.Client
	err := r.a.read(func(t *tables) error {
		var active map[string]int
		if f.SoloActivos {
			active = make(map[string]int)
			for _, a := range t.assignments {
				if a.Activa() {
					active[a.ClientID]++
				}
			}
		}
		for _, c := range t.clients {
			if c.DeletedAt != nil || !matchClient(c, f) {
				continue
			}
			if f.SoloActivos && active[c.ID] == 0 {
				continue
			}
			c = copyClient(c)
			list = append(list, &c)
		}
		return nil
	})
	return list, err
}

func matchClient(c entity.Client, f repository.ClientFilter) bool {
	if f.TipoDocumento != "" && c.TipoDocumento != f.TipoDocumento {
		return false
	}
	if f.TipoPago != "" && c.TipoPago != f.TipoPago {
		return false
	}
	if f.IngresoDesde != nil && c.FechaIngreso.Before(*f.IngresoDesde) {
		return false
	}
	if f.IngresoHasta != nil && c.FechaIngreso.After(*f.IngresoHasta) {
		return false
	}
	return hotel.MatchesSearch(f.Query, c.Nombres, c.Apellidos, c.NumeroDocumento)
}

func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	return r.a.write(ctx, func(t *tables) error {
		existing, ok := t.clients[c.ID]
		if !ok || existing.DeletedAt != nil {
			return &domain.NotFoundError{Resource: "cliente", ID: c.ID}
		}
		t.clients[c.ID] = copyClient(*c)
		return nil
	})
}

func (r *ClientRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return r.a.write(ctx, func(t *tables) error {
		c, ok := t.clients[id]
		if !ok || c.DeletedAt != nil {
			return &domain.NotFoundError{Resource: "cliente", ID: id}
		}
		c.DeletedAt = &at
		c.UpdatedAt = at
		t.clients[id] = c
		return nil
	})
}

// LockDocumento no hace nada: el Store ya serializa las transacciones.
func (r *ClientRepo) LockDocumento(context.Context, string, string) error {
	return nil
}

func sortClients(list []*entity.Client) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].FechaIngreso.Equal(list[j].FechaIngreso) {
			return list[i].FechaIngreso.After(list[j].FechaIngreso)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(list) {
			return nil
		}
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
