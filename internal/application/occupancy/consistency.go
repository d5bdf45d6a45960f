package occupancy

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/jhoicas/Hotel-api/internal/application/dto"
	"github.com/jhoicas/Hotel-api/internal/domain"
	"github.com/jhoicas/Hotel-api/internal/domain/entity"
	"github.com/jhoicas/Hotel-api/internal/domain/hotel"
	"github.com/jhoicas/Hotel-api/internal/domain/repository"
)

// ConsistencyChecker compara Room.Estado con el ledger de asignaciones activas.
type ConsistencyChecker struct {
	store Store
	clock func() time.Time
	log   zerolog.Logger
	rec   Recorder
}

// NewConsistencyChecker construye el auditor.
func NewConsistencyChecker(store Store, opts ...Option) *ConsistencyChecker {
	o := newOptions(opts)
	return &ConsistencyChecker{
		store: store,
		clock: o.clock,
		log:   o.log.With().Str("component", "consistency").Logger(),
		rec:   o.rec,
	}
}

// CheckRoom compara una habitación con sus asignaciones activas. Registra la inconsistencia
// si la hay y la devuelve.
func (c *ConsistencyChecker) CheckRoom(ctx context.Context, repos repository.Repos, room *entity.Room) (*domain.ConsistencyViolation, error) {
	n, err := repos.Assignments.CountActiveByRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	v := hotel.CheckRoomConsistency(room, n)
	if v != nil {
		reportViolation(c.log, c.rec, v)
	}
	return v, nil
}

// Audit recorre todas las habitaciones y asignaciones activas y devuelve cada inconsistencia.
func (c *ConsistencyChecker) Audit(ctx context.Context) ([]*domain.ConsistencyViolation, error) {
	repos := c.store.Repos()
	rooms, err := repos.Rooms.List(ctx, repository.RoomFilter{})
	if err != nil {
		return nil, err
	}
	active, err := repos.Assignments.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	byRoom := make(map[string][]*entity.RoomAssignment, len(active))
	for _, a := range active {
		byRoom[a.RoomID] = append(byRoom[a.RoomID], a)
	}
	known := make(map[string]struct{}, len(rooms))
	var out []*domain.ConsistencyViolation
	for _, room := range rooms {
		known[room.ID] = struct{}{}
		held := byRoom[room.ID]
		v := hotel.CheckRoomConsistency(room, len(held))
		if v == nil {
			continue
		}
		if len(held) > 0 {
			v.ClientID = held[0].ClientID
		}
		out = append(out, v)
	}

	orphans := make([]string, 0)
	for roomID := range byRoom {
		if _, ok := known[roomID]; !ok {
			orphans = append(orphans, roomID)
		}
	}
	sort.Strings(orphans)
	for _, roomID := range orphans {
		held := byRoom[roomID]
		out = append(out, &domain.ConsistencyViolation{
			Kind:              domain.KindAsignacionSinHabitacion,
			RoomID:            roomID,
			ActiveAssignments: len(held),
			ClientID:          held[0].ClientID,
		})
	}

	for _, v := range out {
		reportViolation(c.log, c.rec, v)
	}
	c.log.Info().Int("habitaciones", len(rooms)).Int("inconsistencias", len(out)).Msg("auditoría de ocupación")
	return out, nil
}

// Report Audit en forma de respuesta.
func (c *ConsistencyChecker) Report(ctx context.Context) (*dto.ConsistencyReportResponse, error) {
	violations, err := c.Audit(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.ConsistencyReportResponse{
		Consistente: len(violations) == 0,
		Violaciones: make([]dto.ConsistencyWarning, 0, len(violations)),
		RevisadoEn:  c.clock(),
	}
	for _, v := range violations {
		out.Violaciones = append(out.Violaciones, Warning(v))
	}
	return out, nil
}

// Warning traduce una inconsistencia a la advertencia que ve el personal.
func Warning(v *domain.ConsistencyViolation) dto.ConsistencyWarning {
	var msg string
	switch v.Kind {
	case domain.KindOcupadoSinAsignacion:
		msg = fmt.Sprintf("La habitación %d está ocupada pero no tiene asignaciones activas", v.Numero)
	case domain.KindAsignacionEnHabitacionLibre:
		msg = fmt.Sprintf("La habitación %d tiene una asignación activa pero su estado es %s", v.Numero, v.Estado)
	case domain.KindMultiplesAsignacionesActivas:
		msg = fmt.Sprintf("La habitación %d tiene %d asignaciones activas", v.Numero, v.ActiveAssignments)
	case domain.KindLiberacionEstadoInesperado:
		msg = fmt.Sprintf("La habitación %d se liberó desde el estado %s", v.Numero, v.Estado)
	case domain.KindAsignacionSinHabitacion:
		msg = fmt.Sprintf("Hay %d asignaciones activas sobre una habitación inexistente (%s)", v.ActiveAssignments, v.RoomID)
	default:
		msg = v.Error()
	}
	return dto.ConsistencyWarning{
		Tipo:                v.Kind,
		HabitacionID:        v.RoomID,
		Numero:              v.Numero,
		Estado:              v.Estado,
		AsignacionesActivas: v.ActiveAssignments,
		ClienteID:           v.ClientID,
		Mensaje:             msg,
	}
}
