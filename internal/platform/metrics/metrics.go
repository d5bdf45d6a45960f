package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contadores del motor de ocupación.
type Metrics struct {
	ClientsRegistered     prometheus.Counter
	RoomsAssignedTotal    prometheus.Counter
	RoomsReleasedTotal    prometheus.Counter
	ConflictsTotal        *prometheus.CounterVec
	ConsistencyViolations *prometheus.CounterVec
	TxDuration            *prometheus.HistogramVec
}

// New registra las métricas en reg (prometheus.DefaultRegisterer en producción,
// un registro propio en tests).
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ClientsRegistered: f.NewCounter(prometheus.CounterOpts{
			Name: "hotel_clients_registered_total",
			Help: "Registros de clientes creados con sus habitaciones",
		}),
		RoomsAssignedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "hotel_rooms_assigned_total",
			Help: "Habitaciones asignadas (ingreso o agregadas)",
		}),
		RoomsReleasedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "hotel_rooms_released_total",
			Help: "Habitaciones liberadas",
		}),
		ConflictsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hotel_occupancy_conflicts_total",
			Help: "Operaciones rechazadas por conflicto, por operación",
		}, []string{"operation"}),
		ConsistencyViolations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hotel_consistency_violations_total",
			Help: "Divergencias detectadas entre estado de habitación y asignaciones",
		}, []string{"kind"}),
		TxDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hotel_occupancy_tx_duration_seconds",
			Help:    "Duración de las transacciones de ocupación",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"operation"}),
	}
}

func (m *Metrics) ClientRegistered()     { m.ClientsRegistered.Inc() }
func (m *Metrics) RoomsAssigned(n int)   { m.RoomsAssignedTotal.Add(float64(n)) }
func (m *Metrics) RoomsReleased(n int)   { m.RoomsReleasedTotal.Add(float64(n)) }
func (m *Metrics) Conflict(op string)    { m.ConflictsTotal.WithLabelValues(op).Inc() }
func (m *Metrics) Violation(kind string) { m.ConsistencyViolations.WithLabelValues(kind).Inc() }

// ObserveTx registra la duración de una operación. Llamar con time.Now() al inicio.
func (m *Metrics) ObserveTx(op string, start time.Time) {
	m.TxDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
