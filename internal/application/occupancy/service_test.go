package occupancy_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Hotel-api/internal/application/dto"
	"github.com/jhoicas/Hotel-api/internal/application/occupancy"
	"github.com/jhoicas/Hotel-api/internal/domain"
	"github.com/jhoicas/Hotel-api/internal/domain/entity"
	"github.com/jhoicas/Hotel-api/internal/domain/hotel"
	"github.com/jhoicas/Hotel-api/internal/domain/repository"
	"github.com/jhoicas/Hotel-api/internal/infrastructure/memory"
	"github.com/jhoicas/Hotel-api/internal/platform/metrics"
)

var fixedNow = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

type OccupancySuite struct {
	suite.Suite
	ctx     context.Context
	store   *memory.Store
	metrics *metrics.Metrics
	svc     *occupancy.Service
	now     time.Time
}

func TestOccupancySuite(t *testing.T) {
	suite.Run(t, new(OccupancySuite))
}

func (s *OccupancySuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.now = fixedNow
	s.svc = occupancy.NewService(s.store,
		occupancy.WithClock(func() time.Time { return s.now }),
		occupancy.WithMetrics(s.metrics),
	)
}

func (s *OccupancySuite) repos() repository.Repos {
	return s.store.Repos()
}

func (s *OccupancySuite) seedRoom(numero int, estado string) *entity.Room {
	room := &entity.Room{
		ID:          uuid.NewString(),
		Numero:      numero,
		Tipo:        entity.RoomTypeDoble,
		PrecioNoche: decimal.RequireFromString("150.00"),
		Estado:      estado,
		CreatedAt:   fixedNow,
		UpdatedAt:   fixedNow,
	}
	s.Require().NoError(s.repos().Rooms.Create(s.ctx, room))
	return room
}

func (s *OccupancySuite) room(id string) *entity.Room {
	room, err := s.repos().Rooms.GetByID(s.ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(room)
	return room
}

func createRequest(dni string, roomIDs ...string) dto.CreateClientRequest {
	return dto.CreateClientRequest{
		ClientInput: dto.ClientInput{
			Nombres:                    "Ana",
			Apellidos:                  "Quispe",
			TipoDocumento:              entity.DocumentDNI,
			NumeroDocumento:            dni,
			Telefono:                   "987654321",
			NumeroHabitacionesDeseadas: len(roomIDs),
			TipoPago:                   entity.PaymentEfectivo,
			MontoPagado:                decimal.RequireFromString("300.00"),
		},
		HabitacionesSeleccionadas: roomIDs,
	}
}

func (s *OccupancySuite) TestCreateClientWithRooms() {
	s.Run("occupies every selected room and returns the fresh view", func() {
		r1 := s.seedRoom(101, entity.RoomStatusDisponible)
		r2 := s.seedRoom(102, entity.RoomStatusDisponible)

		out, err := s.svc.CreateClientWithRooms(s.ctx, createRequest("12345678", r1.ID, r2.ID), "user-1")
		s.Require().NoError(err)

		s.Equal("Cliente registrado exitosamente con 2 habitaciones", out.Message)
		s.Len(out.HabitacionesAsignadas, 2)
		s.True(out.Client.EstaActivo)
		s.Equal(2, out.Client.TotalHabitacionesActivas)
		s.Len(out.Client.HistorialHabitaciones, 2)
		s.Empty(out.Client.HistorialDocumento)
		s.Equal(fixedNow, out.Client.FechaIngreso)
		s.Equal(entity.RoomStatusOcupado, s.room(r1.ID).Estado)
		s.Equal(entity.RoomStatusOcupado, s.room(r2.ID).Estado)

		transitions, err := s.repos().Transitions.ListByRoom(s.ctx, r1.ID, 10)
		s.Require().NoError(err)
		s.Require().Len(transitions, 1)
		s.Equal(entity.RoomStatusDisponible, transitions[0].Desde)
		s.Equal(entity.RoomStatusOcupado, transitions[0].Hacia)
		s.Equal(entity.TransitionAutomatica, transitions[0].Origen)
		s.Equal(entity.MotivoAsignacion, transitions[0].Motivo)
		s.Equal("user-1", transitions[0].UserID)

		s.Equal(1.0, testutil.ToFloat64(s.metrics.ClientsRegistered))
		s.Equal(2.0, testutil.ToFloat64(s.metrics.RoomsAssignedTotal))
	})
}

func (s *OccupancySuite) TestCreateClientValidation() {
	s.Run("collects every invalid field", func() {
		req := createRequest("123")
		req.Nombres = ""
		req.MontoPagado = decimal.Zero

		_, err := s.svc.CreateClientWithRooms(s.ctx, req, "")
		s.Require().ErrorIs(err, domain.ErrInvalidInput)

		var verr *domain.ValidationError
		s.Require().True(errors.As(err, &verr))
		s.Equal(domain.RuleCampos, verr.Rule)
		s.Contains(verr.Fields, "nombres")
		s.Contains(verr.Fields, "numero_documento")
		s.Contains(verr.Fields, "monto_pagado")
		s.Contains(verr.Fields, "habitaciones_seleccionadas")
	})

	s.Run("rejects a selection that differs from the requested count", func() {
		r1 := s.seedRoom(201, entity.RoomStatusDisponible)
		req := createRequest("11112222", r1.ID)
		req.NumeroHabitacionesDeseadas = 2

		_, err := s.svc.CreateClientWithRooms(s.ctx, req, "")
		var verr *domain.ValidationError
		s.Require().True(errors.As(err, &verr))
		s.Equal(domain.RuleCantidadHabitaciones, verr.Rule)
		s.Equal("Debe seleccionar exactamente 2 habitaciones", verr.Fields["habitaciones_seleccionadas"])
		s.Equal(entity.RoomStatusDisponible, s.room(r1.ID).Estado)
	})

	s.Run("rejects duplicated rooms", func() {
		r1 := s.seedRoom(202, entity.RoomStatusDisponible)
		_, err := s.svc.CreateClientWithRooms(s.ctx, createRequest("11113333", r1.ID, r1.ID), "")
		s.Require().ErrorIs(err, domain.ErrInvalidInput)
	})
}

func (s *OccupancySuite) TestCreateClientActiveDocument() {
	r1 := s.seedRoom(301, entity.RoomStatusDisponible)
	r2 := s.seedRoom(302, entity.RoomStatusDisponible)

	first, err := s.svc.CreateClientWithRooms(s.ctx, createRequest("44445555", r1.ID), "")
	s.Require().NoError(err)

	_, err = s.svc.CreateClientWithRooms(s.ctx, createRequest("44445555", r2.ID), "")
	s.Require().ErrorIs(err, domain.ErrActiveClient)

	var verr *domain.ValidationError
	s.Require().True(errors.As(err, &verr))
	s.Equal(domain.RuleClienteActivo, verr.Rule)
	s.Contains(verr.Fields["numero_documento"], first.Client.ID)
	s.Equal(entity.RoomStatusDisponible, s.room(r2.ID).Estado)
}

func (s *OccupancySuite) TestCreateClientIsAtomic() {
	free := s.seedRoom(401, entity.RoomStatusDisponible)
	dirty := s.seedRoom(402, entity.RoomStatusSucio)

	_, err := s.svc.CreateClientWithRooms(s.ctx, createRequest("55556666", free.ID, dirty.ID), "")
	s.Require().ErrorIs(err, domain.ErrConflict)
	s.Require().ErrorIs(err, domain.ErrRoomUnavailable)

	var cerr *domain.ConflictError
	s.Require().True(errors.As(err, &cerr))
	s.Equal([]string{dirty.ID}, cerr.RoomIDs)
	s.Contains(cerr.Error(), "402")

	s.Equal(entity.RoomStatusDisponible, s.room(free.ID).Estado)
	clients, err := s.repos().Clients.ListByDocumento(s.ctx, entity.DocumentDNI, "55556666")
	s.Require().NoError(err)
	s.Empty(clients)
	active, err := s.repos().Assignments.ListActive(s.ctx)
	s.Require().NoError(err)
	s.Empty(active)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ConflictsTotal.WithLabelValues(occupancy.OpCreateClient)))
}

func (s *OccupancySuite) TestCreateClientUnknownRoom() {
	_, err := s.svc.CreateClientWithRooms(s.ctx, createRequest("66667777", uuid.NewString()), "")
	s.Require().ErrorIs(err, domain.ErrNotFound)
}

func (s *OccupancySuite) TestConcurrentCreateSameRoom() {
	room := s.seedRoom(501, entity.RoomStatusDisponible)

	const workers = 8
	results := make([]error, workers)
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			_, err := s.svc.CreateClientWithRooms(s.ctx, createRequest(fmt.Sprintf("7000000%d", i), room.ID), "")
			results[i] = err
			return nil
		})
	}
	s.Require().NoError(g.Wait())

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		s.ErrorIs(err, domain.ErrRoomUnavailable)
	}
	s.Equal(1, succeeded)

	n, err := s.repos().Assignments.CountActiveByRoom(s.ctx, room.ID)
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *OccupancySuite) TestAddRooms() {
	r1 := s.seedRoom(601, entity.RoomStatusDisponible)
	r2 := s.seedRoom(602, entity.RoomStatusDisponible)
	r3 := s.seedRoom(603, entity.RoomStatusDisponible)

	created, err := s.svc.CreateClientWithRooms(s.ctx, createRequest("80001111", r1.ID), "")
	s.Require().NoError(err)
	clientID := created.Client.ID

	s.Run("adds rooms to a hosted client", func() {
		before, err := s.repos().Assignments.ListActiveByClient(s.ctx, clientID)
		s.Require().NoError(err)
		s.Require().Len(before, 1)
		s.now = fixedNow.Add(3 * time.Hour)
		defer func() { s.now = fixedNow }()

		out, err := s.svc.AddRooms(s.ctx, clientID, dto.AddRoomsRequest{HabitacionesAdicionales: []string{r2.ID, r3.ID}}, "")
		s.Require().NoError(err)
		s.Len(out.HabitacionesAgregadas, 2)
		s.Equal(3, out.TotalHabitaciones)
		s.Equal(3, out.Client.NumeroHabitacionesDeseadas)
		s.Equal(entity.RoomStatusOcupado, s.room(r3.ID).Estado)

		active, err := s.repos().Assignments.ListActiveByClient(s.ctx, clientID)
		s.Require().NoError(err)
		s.Require().Len(active, 3)
		for _, a := range active {
			if a.RoomID == r1.ID {
				s.Equal(fixedNow, a.FechaAsignacion)
				s.Equal(before[0].ID, a.ID)
			} else {
				s.Equal(fixedNow.Add(3*time.Hour), a.FechaAsignacion)
			}
		}
	})

	s.Run("rejects rooms the client already holds", func() {
		_, err := s.svc.AddRooms(s.ctx, clientID, dto.AddRoomsRequest{HabitacionesAdicionales: []string{r1.ID}}, "")
		var verr *domain.ValidationError
		s.Require().True(errors.As(err, &verr))
		s.Contains(verr.Fields, "habitaciones_adicionales")
	})

	s.Run("rejects an inactive client", func() {
		_, err := s.svc.ReleaseRooms(s.ctx, clientID, "")
		s.Require().NoError(err)
		r4 := s.seedRoom(604, entity.RoomStatusDisponible)

		_, err = s.svc.AddRooms(s.ctx, clientID, dto.AddRoomsRequest{HabitacionesAdicionales: []string{r4.ID}}, "")
		s.Require().ErrorIs(err, domain.ErrInactiveClient)
		s.Equal(entity.RoomStatusDisponible, s.room(r4.ID).Estado)
	})

	s.Run("unknown client", func() {
		_, err := s.svc.AddRooms(s.ctx, uuid.NewString(), dto.AddRoomsRequest{HabitacionesAdicionales: []string{r1.ID}}, "")
		s.Require().ErrorIs(err, domain.ErrNotFound)
	})
}

func (s *OccupancySuite) TestAddRoomsLimit() {
	svc := occupancy.NewService(s.store, occupancy.WithMaxRooms(2))
	r1 := s.seedRoom(701, entity.RoomStatusDisponible)
	r2 := s.seedRoom(702, entity.RoomStatusDisponible)
	r3 := s.seedRoom(703, entity.RoomStatusDisponible)

	created, err := svc.CreateClientWithRooms(s.ctx, createRequest("80002222", r1.ID, r2.ID), "")
	s.Require().NoError(err)

	_, err = svc.AddRooms(s.ctx, created.Client.ID, dto.AddRoomsRequest{HabitacionesAdicionales: []string{r3.ID}}, "")
	var verr *domain.ValidationError
	s.Require().True(errors.As(err, &verr))
	s.Equal(domain.RuleLimiteHabitaciones, verr.Rule)
	s.Equal("No se pueden asignar más habitaciones. Límite máximo: 2. Actuales: 2", verr.Message)
}

func (s *OccupancySuite) TestMaxRoomsCappedAtClientLimit() {
	svc := occupancy.NewService(s.store, occupancy.WithMaxRooms(hotel.MaxRoomsPerClient+5))
	roomIDs := make([]string, hotel.MaxRoomsPerClient+1)
	for i := range roomIDs {
		roomIDs[i] = s.seedRoom(1001+i, entity.RoomStatusDisponible).ID
	}

	_, err := svc.CreateClientWithRooms(s.ctx, createRequest("80009999", roomIDs...), "")
	var verr *domain.ValidationError
	s.Require().True(errors.As(err, &verr))
	s.Contains(verr.Fields, "numero_habitaciones_deseadas")
	s.Equal(entity.RoomStatusDisponible, s.room(roomIDs[0]).Estado)
}

func (s *OccupancySuite) TestReleaseRooms() {
	r1 := s.seedRoom(801, entity.RoomStatusDisponible)
	r2 := s.seedRoom(802, entity.RoomStatusDisponible)
	created, err := s.svc.CreateClientWithRooms(s.ctx, createRequest("80003333", r1.ID, r2.ID), "")
	s.Require().NoError(err)
	clientID := created.Client.ID

	s.now = fixedNow.Add(48 * time.Hour)
	out, err := s.svc.ReleaseRooms(s.ctx, clientID, "user-2")
	s.Require().NoError(err)

	s.Equal("Se liberaron 2 habitaciones exitosamente", out.Message)
	s.Len(out.HabitacionesLiberadas, 2)
	s.False(out.ClienteActivo)
	s.Equal(0, out.HabitacionesActivasRestantes)
	s.Equal(2, out.TotalHistorial)
	s.Equal(s.now, out.FechaSalidaReal)
	s.Equal("12/03/2026 14:30:00", out.HoraSalidaFormateada)
	s.Require().NotNil(out.Client.FechaSalidaReal)
	for _, r := range out.HabitacionesLiberadas {
		s.Equal(entity.RoomStatusOcupado, r.EstadoAnterior)
		s.Equal(entity.RoomStatusSucio, r.EstadoNuevo)
	}
	s.Equal(entity.RoomStatusSucio, s.room(r1.ID).Estado)

	history, err := s.repos().Assignments.ListByClient(s.ctx, clientID)
	s.Require().NoError(err)
	s.Len(history, 2)
	for _, a := range history {
		s.Equal(entity.AssignmentLiberado, a.Estado)
		s.Require().NotNil(a.FechaLiberacion)
	}

	_, err = s.svc.ReleaseRooms(s.ctx, clientID, "")
	s.Require().ErrorIs(err, domain.ErrNoActiveAssignments)
	s.Require().ErrorIs(err, domain.ErrConflict)
	s.Equal(2.0, testutil.ToFloat64(s.metrics.RoomsReleasedTotal))
}

func (s *OccupancySuite) TestReRegisterAfterRelease() {
	r1 := s.seedRoom(901, entity.RoomStatusDisponible)
	r2 := s.seedRoom(902, entity.RoomStatusDisponible)

	first, err := s.svc.CreateClientWithRooms(s.ctx, createRequest("80004444", r1.ID), "")
	s.Require().NoError(err)
	_, err = s.svc.ReleaseRooms(s.ctx, first.Client.ID, "")
	s.Require().NoError(err)

	s.now = fixedNow.Add(24 * time.Hour)
	second, err := s.svc.CreateClientWithRooms(s.ctx, createRequest("80004444", r2.ID), "")
	s.Require().NoError(err)
	s.NotEqual(first.Client.ID, second.Client.ID)
	s.Len(second.Client.HistorialHabitaciones, 1)
	s.Require().Len(second.Client.HistorialDocumento, 1)
	s.Equal(r1.ID, second.Client.HistorialDocumento[0].RoomID)
}

func (s *OccupancySuite) TestDeleteClient() {
	r1 := s.seedRoom(1001, entity.RoomStatusDisponible)
	created, err := s.svc.CreateClientWithRooms(s.ctx, createRequest("80005555", r1.ID), "")
	s.Require().NoError(err)
	clientID := created.Client.ID

	out, err := s.svc.DeleteClient(s.ctx, clientID, "")
	s.Require().NoError(err)
	s.Len(out.HabitacionesLiberadas, 1)
	s.Contains(out.Message, "Se liberaron 1 habitaciones")
	s.Equal(entity.RoomStatusSucio, s.room(r1.ID).Estado)

	got, err := s.repos().Clients.GetByID(s.ctx, clientID)
	s.Require().NoError(err)
	s.Nil(got)

	history, err := s.repos().Assignments.ListByClient(s.ctx, clientID)
	s.Require().NoError(err)
	s.Len(history, 1)

	transitions, err := s.repos().Transitions.ListByRoom(s.ctx, r1.ID, 10)
	s.Require().NoError(err)
	s.Require().Len(transitions, 2)
	s.Equal(entity.MotivoEliminacionCliente, transitions[0].Motivo)

	_, err = s.svc.DeleteClient(s.ctx, clientID, "")
	s.Require().ErrorIs(err, domain.ErrNotFound)
}

func (s *OccupancySuite) TestReleaseFromUnexpectedStateIsReported() {
	r1 := s.seedRoom(1101, entity.RoomStatusDisponible)
	created, err := s.svc.CreateClientWithRooms(s.ctx, createRequest("80006666", r1.ID), "")
	s.Require().NoError(err)

	_, err = s.repos().Rooms.SetEstado(s.ctx, r1.ID, entity.RoomStatusMantenimiento, fixedNow)
	s.Require().NoError(err)

	out, err := s.svc.ReleaseRooms(s.ctx, created.Client.ID, "")
	s.Require().NoError(err)
	s.Equal(entity.RoomStatusMantenimiento, out.HabitacionesLiberadas[0].EstadoAnterior)
	s.Equal(entity.RoomStatusSucio, s.room(r1.ID).Estado)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ConsistencyViolations.WithLabelValues(domain.KindLiberacionEstadoInesperado)))
}

func (s *OccupancySuite) TestTransientWhenStoreIsBusy() {
	room := s.seedRoom(1201, entity.RoomStatusDisponible)

	held := make(chan struct{})
	unblock := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- s.store.Run(s.ctx, func(repository.Repos) error {
			close(held)
			<-unblock
			return nil
		})
	}()
	<-held

	ctx, cancel := context.WithTimeout(s.ctx, 20*time.Millisecond)
	defer cancel()
	_, err := s.svc.CreateClientWithRooms(ctx, createRequest("80007777", room.ID), "")
	s.Require().ErrorIs(err, domain.ErrTransient)

	close(unblock)
	s.Require().NoError(<-done)
	s.Equal(entity.RoomStatusDisponible, s.room(room.ID).Estado)
}
