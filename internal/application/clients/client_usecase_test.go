package clients_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/jhoicas/Hotel-api/internal/application/clients"
	"github.com/jhoicas/Hotel-api/internal/application/dto"
	"github.com/jhoicas/Hotel-api/internal/application/occupancy"
	"github.com/jhoicas/Hotel-api/internal/domain"
	"github.com/jhoicas/Hotel-api/internal/domain/entity"
	"github.com/jhoicas/Hotel-api/internal/infrastructure/memory"
)

var fixedNow = time.Date(2026, 7, 20, 12, 0, 0, 0, time.UTC)

type ClientUseCaseSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
	uc    *clients.ClientUseCase
	svc   *occupancy.Service
	now   time.Time
}

func TestClientUseCaseSuite(t *testing.T) {
	suite.Run(t, new(ClientUseCaseSuite))
}

func (s *ClientUseCaseSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.now = fixedNow
	clock := func() time.Time { return s.now }
	s.uc = clients.NewClientUseCase(s.store, 0, zerolog.Nop()).WithClock(clock)
	s.svc = occupancy.NewService(s.store, occupancy.WithClock(clock))
}

func (s *ClientUseCaseSuite) seedRoom(numero int) string {
	room := &entity.Room{
		ID:          uuid.NewString(),
		Numero:      numero,
		Tipo:        entity.RoomTypeDoble,
		PrecioNoche: decimal.RequireFromString("110"),
		Estado:      entity.RoomStatusDisponible,
	}
	s.Require().NoError(s.store.Repos().Rooms.Create(s.ctx, room))
	return room.ID
}

func input(nombres, dni string, rooms int) dto.ClientInput {
	return dto.ClientInput{
		Nombres:                    nombres,
		Apellidos:                  "Peña",
		TipoDocumento:              entity.DocumentDNI,
		NumeroDocumento:            dni,
		NumeroHabitacionesDeseadas: rooms,
		TipoPago:                   entity.PaymentBilleteraDigital,
		MontoPagado:                decimal.RequireFromString("220"),
	}
}

func (s *ClientUseCaseSuite) register(nombres, dni string, roomIDs ...string) string {
	out, err := s.svc.CreateClientWithRooms(s.ctx, dto.CreateClientRequest{
		ClientInput:               input(nombres, dni, len(roomIDs)),
		HabitacionesSeleccionadas: roomIDs,
	}, "")
	s.Require().NoError(err)
	return out.Client.ID
}

func (s *ClientUseCaseSuite) TestGet() {
	id := s.register("José", "11110000", s.seedRoom(1))

	out, err := s.uc.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("José Peña", out.NombreCompleto)
	s.Equal("Billetera Digital", out.TipoPagoDisplay)
	s.True(out.EstaActivo)
	s.Len(out.HabitacionesActivas, 1)
	s.Require().NotNil(out.HabitacionesActivas[0].Habitacion)
	s.Equal(1, out.HabitacionesActivas[0].Habitacion.Numero)

	_, err = s.uc.Get(s.ctx, uuid.NewString())
	s.Require().ErrorIs(err, domain.ErrNotFound)
}

func (s *ClientUseCaseSuite) TestListAndActivos() {
	first := s.register("María", "22220000", s.seedRoom(10))
	s.now = fixedNow.Add(time.Hour)
	s.register("Martín", "22220001", s.seedRoom(11))
	s.now = fixedNow.Add(2 * time.Hour)
	s.register("Rosa", "22220002", s.seedRoom(12))

	_, err := s.svc.ReleaseRooms(s.ctx, first, "")
	s.Require().NoError(err)

	s.Run("accent-insensitive search", func() {
		out, err := s.uc.List(s.ctx, dto.ClientFilterRequest{Q: "martin"})
		s.Require().NoError(err)
		s.Require().Len(out.Clientes, 1)
		s.Equal("Martín", out.Clientes[0].Nombres)
	})

	s.Run("pagination keeps the total", func() {
		out, err := s.uc.List(s.ctx, dto.ClientFilterRequest{PageRequest: dto.PageRequest{Limit: 2}})
		s.Require().NoError(err)
		s.Len(out.Clientes, 2)
		s.Equal(3, out.Page.Total)
		s.Equal("Rosa", out.Clientes[0].Nombres)
	})

	s.Run("solo activos", func() {
		out, err := s.uc.List(s.ctx, dto.ClientFilterRequest{SoloActivos: true})
		s.Require().NoError(err)
		s.Equal(2, out.Page.Total)

		activos, err := s.uc.Activos(s.ctx)
		s.Require().NoError(err)
		s.Len(activos, 2)
		for _, c := range activos {
			s.True(c.EstaActivo)
		}
	})

	s.Run("date range", func() {
		out, err := s.uc.List(s.ctx, dto.ClientFilterRequest{FechaIngresoDesde: "2026-07-20T13:00:00Z"})
		s.Require().NoError(err)
		s.Equal(2, out.Page.Total)

		out, err = s.uc.List(s.ctx, dto.ClientFilterRequest{FechaIngresoHasta: "2026-07-20"})
		s.Require().NoError(err)
		s.Equal(3, out.Page.Total)

		_, err = s.uc.List(s.ctx, dto.ClientFilterRequest{FechaIngresoDesde: "20/07/2026"})
		s.Require().ErrorIs(err, domain.ErrInvalidInput)
	})
}

func (s *ClientUseCaseSuite) TestUpdate() {
	r1, r2 := s.seedRoom(20), s.seedRoom(21)
	id := s.register("Carla", "33330000", r1, r2)
	other := s.register("Pedro", "33330001", s.seedRoom(22))

	s.Run("updates contact data", func() {
		in := input("Carla", "33330000", 2)
		in.Telefono = "912345678"
		out, err := s.uc.Update(s.ctx, id, in)
		s.Require().NoError(err)
		s.Equal("912345678", out.Client.Telefono)
		s.Equal(fixedNow, out.Client.FechaIngreso)
		s.Equal(2, out.Client.TotalHabitacionesActivas)
	})

	s.Run("cannot drop below active rooms", func() {
		_, err := s.uc.Update(s.ctx, id, input("Carla", "33330000", 1))
		var verr *domain.ValidationError
		s.Require().True(errors.As(err, &verr))
		s.Contains(verr.Fields, "numero_habitaciones_deseadas")
	})

	s.Run("cannot take the document of an active client", func() {
		_, err := s.uc.Update(s.ctx, other, input("Pedro", "33330000", 1))
		s.Require().ErrorIs(err, domain.ErrActiveClient)
	})

	s.Run("collects invalid fields", func() {
		in := input("", "33330000", 2)
		in.Telefono = "12"
		_, err := s.uc.Update(s.ctx, id, in)
		var verr *domain.ValidationError
		s.Require().True(errors.As(err, &verr))
		s.Contains(verr.Fields, "nombres")
		s.Contains(verr.Fields, "telefono")
	})

	s.Run("unknown client", func() {
		_, err := s.uc.Update(s.ctx, uuid.NewString(), input("X", "33330009", 1))
		s.Require().ErrorIs(err, domain.ErrNotFound)
	})
}
