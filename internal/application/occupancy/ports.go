package occupancy

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/jhoicas/Hotel-api/internal/domain/hotel"
	"github.com/jhoicas/Hotel-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Si fn devuelve error no queda nada persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

// Store almacenamiento del motor: transacciones más repositorios para lecturas sueltas.
type Store interface {
	TxRunner
	Repos() repository.Repos
}

// Recorder métricas del motor. Implementado por platform/metrics.
type Recorder interface {
	ClientRegistered()
	RoomsAssigned(n int)
	RoomsReleased(n int)
	Conflict(op string)
	Violation(kind string)
	ObserveTx(op string, start time.Time)
}

type nopRecorder struct{}

func (nopRecorder) ClientRegistered()           {}
func (nopRecorder) RoomsAssigned(int)           {}
func (nopRecorder) RoomsReleased(int)           {}
func (nopRecorder) Conflict(string)             {}
func (nopRecorder) Violation(string)            {}
func (nopRecorder) ObserveTx(string, time.Time) {}

type options struct {
	clock    func() time.Time
	maxRooms int
	log      zerolog.Logger
	rec      Recorder
}

// Option configura Service y ConsistencyChecker.
type Option func(*options)

// WithClock reloj inyectable para las marcas de tiempo.
func WithClock(clock func() time.Time) Option {
	return func(o *options) { o.clock = clock }
}

// WithMaxRooms máximo de habitaciones activas por cliente. No supera hotel.MaxRoomsPerClient,
// que es también el límite del esquema.
func WithMaxRooms(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxRooms = min(n, hotel.MaxRoomsPerClient)
		}
	}
}

// WithLogger logger estructurado.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics registra contadores de operaciones, conflictos e inconsistencias.
func WithMetrics(r Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.rec = r
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		clock:    time.Now,
		maxRooms: hotel.MaxRoomsPerClient,
		log:      zerolog.Nop(),
		rec:      nopRecorder{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
