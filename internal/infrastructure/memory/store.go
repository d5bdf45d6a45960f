package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/Hotel-api/internal/domain"
	"github.com/jhoicas/Hotel-api/internal/domain/entity"
	"github.com/jhoicas/Hotel-api/internal/domain/repository"
)

// tables estado completo del almacén. Una transacción trabaja sobre una copia.
type tables struct {
	rooms       map[string]entity.Room
	clients     map[string]entity.Client
	assignments map[string]entity.RoomAssignment
	asgOrder    []string
	transitions []entity.RoomTransition
}

func newTables() *tables {
	return &tables{
		rooms:       make(map[string]entity.Room),
		clients:     make(map[string]entity.Client),
		assignments: make(map[string]entity.RoomAssignment),
	}
}

func (t *tables) clone() *tables {
	c := &tables{
		rooms:       make(map[string]entity.Room, len(t.rooms)),
		clients:     make(map[string]entity.Client, len(t.clients)),
		assignments: make(map[string]entity.RoomAssignment, len(t.assignments)),
		asgOrder:    append([]string(nil), t.asgOrder...),
		transitions: append([]entity.RoomTransition(nil), t.transitions...),
	}
	for k, v := range t.rooms {
		c.rooms[k] = v
	}
	for k, v := range t.clients {
		c.clients[k] = copyClient(v)
	}
	for k, v := range t.assignments {
		c.assignments[k] = copyAssignment(v)
	}
	return c
}

// access abstrae el acceso a las tablas: en vivo (con locks) o dentro de una transacción.
type access interface {
	read(fn func(t *tables) error) error
	write(ctx context.Context, fn func(t *tables) error) error
}

// Store almacén en memoria con transacciones todo-o-nada. Las escrituras se serializan:
// cada transacción clona el estado confirmado y lo reemplaza solo al confirmar.
// Se usa en tests y con APP_STORAGE=memory.
type Store struct {
	mu      sync.RWMutex
	sem     chan struct{}
	data    *tables
	timeout time.Duration
}

// Option configura el Store.
type Option func(*Store)

// WithTxTimeout límite de espera y ejecución de cada transacción.
func WithTxTimeout(d time.Duration) Option {
	return func(s *Store) { s.timeout = d }
}

// NewStore construye un almacén vacío.
func NewStore(opts ...Option) *Store {
	s := &Store{
		sem:  make(chan struct{}, 1),
		data: newTables(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Repos repositorios fuera de transacción (cada escritura es atómica por sí sola).
func (s *Store) Repos() repository.Repos {
	return newRepos(liveAccess{s: s})
}

// Run ejecuta fn con repositorios atados a una copia del estado. Si fn devuelve error
// la copia se descarta; si no, reemplaza el estado confirmado.
func (s *Store) Run(ctx context.Context, fn func(repository.Repos) error) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(newRepos(&txAccess{t: snapshot})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit: %w: %w", domain.ErrTransient, err)
	}

	s.mu.Lock()
	s.data = snapshot
	s.mu.Unlock()
	return nil
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("begin transaction: %w: %w", domain.ErrTransient, ctx.Err())
	}
}

func (s *Store) release() { <-s.sem }

type liveAccess struct{ s *Store }

func (a liveAccess) read(fn func(t *tables) error) error {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	return fn(a.s.data)
}

func (a liveAccess) write(ctx context.Context, fn func(t *tables) error) error {
	if err := a.s.acquire(ctx); err != nil {
		return err
	}
	defer a.s.release()
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return fn(a.s.data)
}

type txAccess struct{ t *tables }

func (a *txAccess) read(fn func(t *tables) error) error { return fn(a.t) }

func (a *txAccess) write(ctx context.Context, fn func(t *tables) error) error {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %w", domain.ErrTransient, err)
		}
		return err
	}
	return fn(a.t)
}

func newRepos(a access) repository.Repos {
	return repository.Repos{
		Rooms:       &RoomRepo{a: a},
		Clients:     &ClientRepo{a: a},
		Assignments: &AssignmentRepo{a: a},
		Transitions: &TransitionRepo{a: a},
	}
}

func copyClient(c entity.Client) entity.Client {
	if c.Edad != nil {
		v := *c.Edad
		c.Edad = &v
	}
	c.FechaSalida = copyTime(c.FechaSalida)
	c.FechaSalidaReal = copyTime(c.FechaSalidaReal)
	c.DeletedAt = copyTime(c.DeletedAt)
	return c
}

func copyAssignment(a entity.RoomAssignment) entity.RoomAssignment {
	a.FechaLiberacion = copyTime(a.FechaLiberacion)
	return a
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
