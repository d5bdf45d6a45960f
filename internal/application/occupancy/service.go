package occupancy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/jhoicas/Hotel-api/internal/application/dto"
	"github.com/jhoicas/Hotel-api/internal/domain"
	"github.com/jhoicas/Hotel-api/internal/domain/entity"
	"github.com/jhoicas/Hotel-api/internal/domain/hotel"
	"github.com/jhoicas/Hotel-api/internal/domain/repository"
)

// Nombres de operación para logs y métricas.
const (
	OpCreateClient = "create_client"
	OpAddRooms     = "add_rooms"
	OpReleaseRooms = "release_rooms"
	OpDeleteClient = "delete_client"
)

const horaSalidaLayout = "02/01/2006 15:04:05"

// Service orquesta el ciclo de vida de ocupación: registro con habitaciones, habitaciones
// adicionales, liberación y baja. Cada operación corre en una sola transacción; si algo
// falla no queda ningún cambio.
type Service struct {
	tx       TxRunner
	ledger   Ledger
	clock    func() time.Time
	maxRooms int
	log      zerolog.Logger
	rec      Recorder
}

// NewService construye el servicio sobre el almacenamiento indicado.
func NewService(tx TxRunner, opts ...Option) *Service {
	o := newOptions(opts)
	return &Service{
		tx:       tx,
		clock:    o.clock,
		maxRooms: o.maxRooms,
		log:      o.log.With().Str("component", "occupancy").Logger(),
		rec:      o.rec,
	}
}

// CreateClientWithRooms registra un cliente y ocupa las habitaciones seleccionadas.
func (s *Service) CreateClientWithRooms(ctx context.Context, req dto.CreateClientRequest, userID string) (*dto.CreateClientResponse, error) {
	start := time.Now()
	now := s.clock()
	client := NewClient(req.ClientInput, now)

	if err := s.validateCreate(client, req.HabitacionesSeleccionadas); err != nil {
		s.observe(OpCreateClient, start, err)
		return nil, err
	}

	var out *dto.CreateClientResponse
	err := s.tx.Run(ctx, func(repos repository.Repos) error {
		if err := repos.Clients.LockDocumento(ctx, client.TipoDocumento, client.NumeroDocumento); err != nil {
			return err
		}
		cls, err := ClassifyDocument(ctx, repos, client.TipoDocumento, client.NumeroDocumento, "")
		if err != nil {
			return err
		}
		if !cls.Disponible() {
			return ActiveDocumentError(cls.Match)
		}
		if err := repos.Clients.Create(ctx, client); err != nil {
			return err
		}
		rooms, err := s.occupyRooms(ctx, repos, client, req.HabitacionesSeleccionadas, userID, now)
		if err != nil {
			return err
		}
		view, err := s.ledger.View(ctx, repos, client)
		if err != nil {
			return err
		}
		out = &dto.CreateClientResponse{
			Message:               fmt.Sprintf("Cliente registrado exitosamente con %d habitaciones", len(rooms)),
			HabitacionesAsignadas: toRoomSummaries(rooms),
			Client:                view,
		}
		return nil
	})
	s.observe(OpCreateClient, start, err)
	if err != nil {
		return nil, err
	}
	s.rec.ClientRegistered()
	s.rec.RoomsAssigned(len(out.HabitacionesAsignadas))
	s.log.Info().
		Str("client_id", client.ID).
		Str("documento", client.TipoDocumento+":"+client.NumeroDocumento).
		Int("habitaciones", len(out.HabitacionesAsignadas)).
		Msg("cliente registrado")
	return out, nil
}

func (s *Service) validateCreate(client *entity.Client, roomIDs []string) error {
	verr := &domain.ValidationError{Rule: domain.RuleCampos}
	mergeFields(verr, hotel.ValidateClient(client, s.maxRooms))
	mergeFields(verr, hotel.ValidateRoomSelection("habitaciones_seleccionadas", roomIDs))
	if verr.HasErrors() {
		return verr
	}
	if len(roomIDs) != client.NumeroHabitacionesDeseadas {
		cerr := domain.NewValidationError(domain.RuleCantidadHabitaciones,
			"La cantidad de habitaciones seleccionadas no coincide con las deseadas")
		cerr.Add("habitaciones_seleccionadas",
			fmt.Sprintf("Debe seleccionar exactamente %d habitaciones", client.NumeroHabitacionesDeseadas))
		return cerr
	}
	return nil
}

// AddRooms ocupa habitaciones adicionales para un cliente hospedado.
func (s *Service) AddRooms(ctx context.Context, clientID string, req dto.AddRoomsRequest, userID string) (*dto.AddRoomsResponse, error) {
	start := time.Now()
	now := s.clock()
	roomIDs := req.HabitacionesAdicionales

	if err := hotel.ValidateRoomSelection("habitaciones_adicionales", roomIDs); err != nil {
		s.observe(OpAddRooms, start, err)
		return nil, err
	}

	var out *dto.AddRoomsResponse
	err := s.tx.Run(ctx, func(repos repository.Repos) error {
		client, err := repos.Clients.GetForUpdate(ctx, clientID)
		if err != nil {
			return err
		}
		if client == nil {
			return &domain.NotFoundError{Resource: "cliente", ID: clientID}
		}
		active, err := repos.Assignments.ListActiveByClient(ctx, clientID)
		if err != nil {
			return err
		}
		if len(active) == 0 {
			return domain.NewValidationError(domain.RuleClienteInactivo,
				"El cliente no está hospedado actualmente. Registre un nuevo ingreso para asignarle habitaciones")
		}
		held := make(map[string]struct{}, len(active))
		for _, a := range active {
			held[a.RoomID] = struct{}{}
		}
		for _, id := range roomIDs {
			if _, ok := held[id]; ok {
				verr := &domain.ValidationError{Rule: domain.RuleCampos}
				verr.Add("habitaciones_adicionales", "El cliente ya tiene asignada alguna de las habitaciones seleccionadas")
				return verr
			}
		}
		total := len(active) + len(roomIDs)
		if total > s.maxRooms {
			return domain.NewValidationError(domain.RuleLimiteHabitaciones,
				fmt.Sprintf("No se pueden asignar más habitaciones. Límite máximo: %d. Actuales: %d", s.maxRooms, len(active)))
		}

		rooms, err := s.occupyRooms(ctx, repos, client, roomIDs, userID, now)
		if err != nil {
			return err
		}
		client.NumeroHabitacionesDeseadas = max(min(client.NumeroHabitacionesDeseadas+len(rooms), s.maxRooms), total)
		client.UpdatedAt = now
		if err := repos.Clients.Update(ctx, client); err != nil {
			return err
		}
		view, err := s.ledger.View(ctx, repos, client)
		if err != nil {
			return err
		}
		out = &dto.AddRoomsResponse{
			Message:               fmt.Sprintf("Se agregaron %d habitaciones al cliente", len(rooms)),
			HabitacionesAgregadas: toRoomSummaries(rooms),
			TotalHabitaciones:     view.TotalHabitacionesActivas,
			Client:                view,
		}
		return nil
	})
	s.observe(OpAddRooms, start, err)
	if err != nil {
		return nil, err
	}
	s.rec.RoomsAssigned(len(out.HabitacionesAgregadas))
	s.log.Info().
		Str("client_id", clientID).
		Int("agregadas", len(out.HabitacionesAgregadas)).
		Int("total", out.TotalHabitaciones).
		Msg("habitaciones agregadas")
	return out, nil
}

// ReleaseRooms libera todas las habitaciones activas del cliente (check-out).
func (s *Service) ReleaseRooms(ctx context.Context, clientID, userID string) (*dto.ReleaseRoomsResponse, error) {
	start := time.Now()
	now := s.clock()

	var out *dto.ReleaseRoomsResponse
	err := s.tx.Run(ctx, func(repos repository.Repos) error {
		client, err := repos.Clients.GetForUpdate(ctx, clientID)
		if err != nil {
			return err
		}
		if client == nil {
			return &domain.NotFoundError{Resource: "cliente", ID: clientID}
		}
		released, err := s.releaseActive(ctx, repos, client, userID, entity.MotivoLiberacion, now)
		if err != nil {
			return err
		}
		if len(released) == 0 {
			return &domain.ConflictError{
				Reason:  domain.ErrNoActiveAssignments,
				Message: "Este cliente no tiene habitaciones activas para liberar",
			}
		}
		client.FechaSalidaReal = &now
		client.UpdatedAt = now
		if err := repos.Clients.Update(ctx, client); err != nil {
			return err
		}
		view, err := s.ledger.View(ctx, repos, client)
		if err != nil {
			return err
		}
		out = &dto.ReleaseRoomsResponse{
			Message:                      fmt.Sprintf("Se liberaron %d habitaciones exitosamente", len(released)),
			HabitacionesLiberadas:        released,
			FechaSalidaReal:              now,
			HoraSalidaFormateada:         now.Format(horaSalidaLayout),
			HabitacionesActivasRestantes: view.TotalHabitacionesActivas,
			TotalHistorial:               len(view.HistorialHabitaciones),
			ClienteActivo:                view.EstaActivo,
			Client:                       view,
		}
		return nil
	})
	s.observe(OpReleaseRooms, start, err)
	if err != nil {
		return nil, err
	}
	s.rec.RoomsReleased(len(out.HabitacionesLiberadas))
	s.log.Info().
		Str("client_id", clientID).
		Int("liberadas", len(out.HabitacionesLiberadas)).
		Msg("habitaciones liberadas")
	return out, nil
}

// DeleteClient da de baja al cliente. Si está hospedado libera antes sus habitaciones.
// El ledger se conserva.
func (s *Service) DeleteClient(ctx context.Context, clientID, userID string) (*dto.DeleteClientResponse, error) {
	start := time.Now()
	now := s.clock()

	var out *dto.DeleteClientResponse
	err := s.tx.Run(ctx, func(repos repository.Repos) error {
		client, err := repos.Clients.GetForUpdate(ctx, clientID)
		if err != nil {
			return err
		}
		if client == nil {
			return &domain.NotFoundError{Resource: "cliente", ID: clientID}
		}
		released, err := s.releaseActive(ctx, repos, client, userID, entity.MotivoEliminacionCliente, now)
		if err != nil {
			return err
		}
		if len(released) > 0 {
			client.FechaSalidaReal = &now
			client.UpdatedAt = now
			if err := repos.Clients.Update(ctx, client); err != nil {
				return err
			}
		}
		if err := repos.Clients.SoftDelete(ctx, clientID, now); err != nil {
			return err
		}
		msg := "Cliente eliminado exitosamente"
		if len(released) > 0 {
			msg = fmt.Sprintf("Cliente eliminado exitosamente. Se liberaron %d habitaciones (marcadas como sucias para limpieza)", len(released))
		}
		out = &dto.DeleteClientResponse{Message: msg, HabitacionesLiberadas: released}
		return nil
	})
	s.observe(OpDeleteClient, start, err)
	if err != nil {
		return nil, err
	}
	s.rec.RoomsReleased(len(out.HabitacionesLiberadas))
	s.log.Info().
		Str("client_id", clientID).
		Int("liberadas", len(out.HabitacionesLiberadas)).
		Msg("cliente eliminado")
	return out, nil
}

// occupyRooms pasa cada habitación de disponible a ocupado y crea sus asignaciones.
// Las habitaciones que no pudieron ocuparse se informan juntas en un solo ConflictError.
func (s *Service) occupyRooms(ctx context.Context, repos repository.Repos, client *entity.Client, roomIDs []string, userID string, now time.Time) ([]*entity.Room, error) {
	rooms := make([]*entity.Room, 0, len(roomIDs))
	var unavailable []string
	var numeros []int
	for _, id := range roomIDs {
		room, err := repos.Rooms.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if room == nil {
			return nil, &domain.NotFoundError{Resource: "habitación", ID: id}
		}
		ok, err := repos.Rooms.CompareAndSetEstado(ctx, id, entity.RoomStatusDisponible, entity.RoomStatusOcupado, now)
		if err != nil {
			return nil, err
		}
		if !ok {
			unavailable = append(unavailable, id)
			numeros = append(numeros, room.Numero)
			continue
		}
		n, err := repos.Assignments.CountActiveByRoom(ctx, id)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			room.Estado = entity.RoomStatusDisponible
			if v := hotel.CheckRoomConsistency(room, n); v != nil {
				s.reportViolation(v)
			}
			unavailable = append(unavailable, id)
			numeros = append(numeros, room.Numero)
			continue
		}
		room.Estado = entity.RoomStatusOcupado
		room.UpdatedAt = now
		rooms = append(rooms, room)
	}
	if len(unavailable) > 0 {
		return nil, domain.NewRoomUnavailableError(unavailable, numeros)
	}

	for _, room := range rooms {
		a := &entity.RoomAssignment{
			ID:              uuid.New().String(),
			ClientID:        client.ID,
			RoomID:          room.ID,
			Estado:          entity.AssignmentActivo,
			FechaAsignacion: now,
		}
		if err := repos.Assignments.Create(ctx, a); err != nil {
			return nil, err
		}
		t := &entity.RoomTransition{
			ID:        uuid.New().String(),
			RoomID:    room.ID,
			Desde:     entity.RoomStatusDisponible,
			Hacia:     entity.RoomStatusOcupado,
			Origen:    entity.TransitionAutomatica,
			Motivo:    entity.MotivoAsignacion,
			ClientID:  client.ID,
			UserID:    userID,
			CreatedAt: now,
		}
		if err := repos.Transitions.Create(ctx, t); err != nil {
			return nil, err
		}
	}
	return rooms, nil
}

// releaseActive libera las asignaciones activas del cliente y deja sus habitaciones sucias.
func (s *Service) releaseActive(ctx context.Context, repos repository.Repos, client *entity.Client, userID, motivo string, now time.Time) ([]dto.ReleasedRoom, error) {
	active, err := repos.Assignments.ListActiveByClient(ctx, client.ID)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(active))
	for _, a := range active {
		ids = append(ids, a.RoomID)
	}
	rooms, err := repos.Rooms.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	roomByID := make(map[string]*entity.Room, len(rooms))
	for _, r := range rooms {
		roomByID[r.ID] = r
	}

	target := hotel.ReleaseTarget()
	released := make([]dto.ReleasedRoom, 0, len(active))
	for _, a := range active {
		if err := repos.Assignments.Release(ctx, a.ID, now); err != nil {
			return nil, err
		}
		room, ok := roomByID[a.RoomID]
		if !ok {
			s.reportViolation(&domain.ConsistencyViolation{
				Kind:              domain.KindAsignacionSinHabitacion,
				RoomID:            a.RoomID,
				ActiveAssignments: 1,
				ClientID:          client.ID,
			})
			continue
		}
		prev, err := repos.Rooms.SetEstado(ctx, room.ID, target, now)
		if err != nil {
			return nil, err
		}
		if prev != entity.RoomStatusOcupado {
			s.reportViolation(&domain.ConsistencyViolation{
				Kind:              domain.KindLiberacionEstadoInesperado,
				RoomID:            room.ID,
				Numero:            room.Numero,
				Estado:            prev,
				ActiveAssignments: 1,
				ClientID:          client.ID,
			})
		}
		t := &entity.RoomTransition{
			ID:        uuid.New().String(),
			RoomID:    room.ID,
			Desde:     prev,
			Hacia:     target,
			Origen:    entity.TransitionAutomatica,
			Motivo:    motivo,
			ClientID:  client.ID,
			UserID:    userID,
			CreatedAt: now,
		}
		if err := repos.Transitions.Create(ctx, t); err != nil {
			return nil, err
		}
		released = append(released, dto.ReleasedRoom{
			HabitacionID:    room.ID,
			Numero:          room.Numero,
			Tipo:            room.Tipo,
			EstadoAnterior:  prev,
			EstadoNuevo:     target,
			FechaLiberacion: now,
		})
	}
	return released, nil
}

func (s *Service) reportViolation(v *domain.ConsistencyViolation) {
	reportViolation(s.log, s.rec, v)
}

func reportViolation(log zerolog.Logger, rec Recorder, v *domain.ConsistencyViolation) {
	rec.Violation(v.Kind)
	log.Error().
		Err(v).
		Str("kind", v.Kind).
		Str("room_id", v.RoomID).
		Int("numero", v.Numero).
		Str("estado", v.Estado).
		Int("asignaciones_activas", v.ActiveAssignments).
		Str("client_id", v.ClientID).
		Msg("inconsistencia entre habitación y asignaciones")
}

func (s *Service) observe(op string, start time.Time, err error) {
	s.rec.ObserveTx(op, start)
	if err == nil {
		return
	}
	var cerr *domain.ConflictError
	switch {
	case errors.As(err, &cerr):
		s.rec.Conflict(op)
		s.log.Warn().Err(err).Str("operation", op).Strs("room_ids", cerr.RoomIDs).Msg("conflicto de ocupación")
	case errors.Is(err, domain.ErrConflict):
		s.rec.Conflict(op)
		s.log.Warn().Err(err).Str("operation", op).Msg("conflicto de ocupación")
	case errors.Is(err, domain.ErrTransient):
		s.log.Warn().Err(err).Str("operation", op).Msg("operación abortada, reintentable")
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrNotFound):
		s.log.Debug().Err(err).Str("operation", op).Msg("operación rechazada")
	default:
		s.log.Error().Err(err).Str("operation", op).Msg("operación fallida")
	}
}

// mergeFields copia los campos de un *ValidationError sobre dst.
func mergeFields(dst *domain.ValidationError, err error) {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	for field, msg := range verr.Fields {
		dst.Add(field, msg)
	}
}
