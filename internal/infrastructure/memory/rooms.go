package memory

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/jhoicas/Hotel-api/internal/domain"
	"github.com/jhoicas/Hotel-api/internal/domain/entity"
	"github.com/jhoicas/Hotel-api/internal/domain/hotel"
	"github.com/jhoicas/Hotel-api/internal/domain/repository"
)

var _ repository.RoomRepository = (*RoomRepo)(nil)

// RoomRepo implementación en memoria de RoomRepository.
type RoomRepo struct {
	a access
}

func (r *RoomRepo) Create(ctx context.Context, room *entity.Room) error {
	return r.a.write(ctx, func(t *tables) error {
		for _, existing := range t.rooms {
			if existing.Numero == room.Numero {
				return domain.ErrDuplicate
			}
		}
		t.rooms[room.ID] = *room
		return nil
	})
}

func (r *RoomRepo) GetByID(_ context.Context, id string) (*entity.Room, error) {
	var out *entity.Room
	err := r.a.read(func(t *tables) error {
		if room, ok := t.rooms[id]; ok {
			out = &room
		}
		return nil
	})
	return out, err
}

func (r *RoomRepo) GetByNumero(_ context.Context, numero int) (*entity.Room, error) {
	var out *entity.Room
	err := r.a.read(func(t *tables) error {
		for _, room := range t.rooms {
			if room.Numero == numero {
				room := room
				out = &room
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *RoomRepo) List(_ context.Context, f repository.RoomFilter) ([]*entity.Room, error) {
	var list []*entity.Room
	err := r.a.read(func(t *tables) error {
		for _, room := range t.rooms {
			if !matchRoom(room, f) {
				continue
			}
			room := room
			list = append(list, &room)
		}
		return nil
	})
	sortRooms(list)
	return list, err
}

func matchRoom(room entity.Room, f repository.RoomFilter) bool {
	if f.Tipo != "" && room.Tipo != f.Tipo {
		return false
	}
	if f.Estado != "" && room.Estado != f.Estado {
		return false
	}
	if f.PrecioMin != nil && room.PrecioNoche.LessThan(*f.PrecioMin) {
		return false
	}
	if f.PrecioMax != nil && room.PrecioNoche.GreaterThan(*f.PrecioMax) {
		return false
	}
	return hotel.MatchesSearch(f.Query, strconv.Itoa(room.Numero), room.Descripcion)
}

func (r *RoomRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.Room, error) {
	var list []*entity.Room
	err := r.a.read(func(t *tables) error {
		for _, id := range ids {
			if room, ok := t.rooms[id]; ok {
				list = append(list, &room)
			}
		}
		return nil
	})
	sortRooms(list)
	return list, err
}

func (r *RoomRepo) Update(ctx context.Context, room *entity.Room) error {
	return r.a.write(ctx, func(t *tables) error {
		if _, ok := t.rooms[room.ID]; !ok {
			return &domain.NotFoundError{Resource: "habitación", ID: room.ID}
		}
		for id, existing := range t.rooms {
			if id != room.ID && existing.Numero == room.Numero {
				return domain.ErrDuplicate
			}
		}
		t.rooms[room.ID] = *room
		return nil
	})
}

func (r *RoomRepo) Delete(ctx context.Context, id string) error {
	return r.a.write(ctx, func(t *tables) error {
		if _, ok := t.rooms[id]; !ok {
			return &domain.NotFoundError{Resource: "habitación", ID: id}
		}
		delete(t.rooms, id)
		return nil
	})
}

func (r *RoomRepo) CompareAndSetEstado(ctx context.Context, id, expected, next string, at time.Time) (bool, error) {
	applied := false
	err := r.a.write(ctx, func(t *tables) error {
		room, ok := t.rooms[id]
		if !ok || room.Estado != expected {
			return nil
		}
		room.Estado = next
		room.UpdatedAt = at
		t.rooms[id] = room
		applied = true
		return nil
	})
	return applied, err
}

func (r *RoomRepo) SetEstado(ctx context.Context, id, next string, at time.Time) (string, error) {
	var prev string
	err := r.a.write(ctx, func(t *tables) error {
		room, ok := t.rooms[id]
		if !ok {
			return &domain.NotFoundError{Resource: "habitación", ID: id}
		}
		prev = room.Estado
		room.Estado = next
		room.UpdatedAt = at
		t.rooms[id] = room
		return nil
	})
	return prev, err
}

func sortRooms(list []*entity.Room) {
	sort.Slice(list, func(i, j int) bool { return list[i].Numero < list[j].Numero })
}
