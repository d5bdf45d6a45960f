package clients

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/jhoicas/Hotel-api/internal/application/dto"
	"github.com/jhoicas/Hotel-api/internal/application/occupancy"
	"github.com/jhoicas/Hotel-api/internal/domain"
	"github.com/jhoicas/Hotel-api/internal/domain/hotel"
	"github.com/jhoicas/Hotel-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// ClientUseCase lecturas y edición de registros de clientes. Las altas, liberaciones y
// bajas pasan por occupancy.Service.
type ClientUseCase struct {
	store    occupancy.Store
	ledger   occupancy.Ledger
	clock    func() time.Time
	maxRooms int
	log      zerolog.Logger
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(store occupancy.Store, maxRooms int, log zerolog.Logger) *ClientUseCase {
	if maxRooms <= 0 {
		maxRooms = hotel.MaxRoomsPerClient
	}
	return &ClientUseCase{
		store:    store,
		clock:    time.Now,
		maxRooms: maxRooms,
		log:      log.With().Str("component", "clients").Logger(),
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ClientUseCase) WithClock(clock func() time.Time) *ClientUseCase {
	uc.clock = clock
	return uc
}

// Get registro con sus vistas derivadas.
func (uc *ClientUseCase) Get(ctx context.Context, id string) (*dto.ClientResponse, error) {
	repos := uc.store.Repos()
	c, err := repos.Clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &domain.NotFoundError{Resource: "cliente", ID: id}
	}
	view, err := uc.ledger.View(ctx, repos, c)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// List página de clientes filtrada.
func (uc *ClientUseCase) List(ctx context.Context, in dto.ClientFilterRequest) (*dto.ClientListResponse, error) {
	in.DefaultPage()
	filter, err := toClientFilter(in)
	if err != nil {
		return nil, err
	}
	repos := uc.store.Repos()
	total, err := repos.Clients.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	list, err := repos.Clients.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	views, err := uc.ledger.Views(ctx, repos, list)
	if err != nil {
		return nil, err
	}
	return &dto.ClientListResponse{
		Clientes: views,
		Page:     dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Activos clientes hospedados actualmente.
func (uc *ClientUseCase) Activos(ctx context.Context) ([]dto.ClientResponse, error) {
	repos := uc.store.Repos()
	list, err := repos.Clients.List(ctx, repository.ClientFilter{SoloActivos: true})
	if err != nil {
		return nil, err
	}
	return uc.ledger.Views(ctx, repos, list)
}

// Update edita los datos del registro. Un cambio de documento se verifica dentro de la
// transacción; numero_habitaciones_deseadas no puede quedar por debajo de las activas.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.ClientInput) (*dto.ClientMessageResponse, error) {
	now := uc.clock()
	var out *dto.ClientMessageResponse
	err := uc.store.Run(ctx, func(repos repository.Repos) error {
		c, err := repos.Clients.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return &domain.NotFoundError{Resource: "cliente", ID: id}
		}
		prevTipo, prevNumero := c.TipoDocumento, c.NumeroDocumento
		occupancy.ApplyClientInput(c, in, now)
		if err := hotel.ValidateClient(c, uc.maxRooms); err != nil {
			return err
		}

		if c.TipoDocumento != prevTipo || c.NumeroDocumento != prevNumero {
			if err := repos.Clients.LockDocumento(ctx, c.TipoDocumento, c.NumeroDocumento); err != nil {
				return err
			}
			cls, err := occupancy.ClassifyDocument(ctx, repos, c.TipoDocumento, c.NumeroDocumento, c.ID)
			if err != nil {
				return err
			}
			if !cls.Disponible() {
				return occupancy.ActiveDocumentError(cls.Match)
			}
		}

		counts, err := repos.Assignments.CountActiveByClients(ctx, []string{c.ID})
		if err != nil {
			return err
		}
		if active := counts[c.ID]; c.NumeroHabitacionesDeseadas < active {
			verr := &domain.ValidationError{Rule: domain.RuleCampos}
			verr.Add("numero_habitaciones_deseadas",
				fmt.Sprintf("No puede ser menor a las %d habitaciones activas del cliente", active))
			return verr
		}

		if err := repos.Clients.Update(ctx, c); err != nil {
			return err
		}
		view, err := uc.ledger.View(ctx, repos, c)
		if err != nil {
			return err
		}
		out = &dto.ClientMessageResponse{Message: "Cliente actualizado exitosamente", Client: view}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("client_id", id).Msg("cliente actualizado")
	return out, nil
}

func toClientFilter(in dto.ClientFilterRequest) (repository.ClientFilter, error) {
	verr := &domain.ValidationError{Rule: domain.RuleCampos}
	f := repository.ClientFilter{
		TipoDocumento: strings.TrimSpace(in.TipoDocumento),
		TipoPago:      strings.TrimSpace(in.TipoPago),
		Query:         strings.TrimSpace(in.Q),
		SoloActivos:   in.SoloActivos,
		Limit:         in.Limit,
		Offset:        in.Offset,
	}
	if f.TipoDocumento != "" && !hotel.ValidTipoDocumento(f.TipoDocumento) {
		verr.Add("tipo_documento", "Tipo de documento inválido")
	}
	if f.TipoPago != "" && !hotel.ValidTipoPago(f.TipoPago) {
		verr.Add("tipo_pago", "Método de pago inválido")
	}
	f.IngresoDesde = parseFecha(verr, "fecha_ingreso_desde", in.FechaIngresoDesde, false)
	f.IngresoHasta = parseFecha(verr, "fecha_ingreso_hasta", in.FechaIngresoHasta, true)
	return f, verr.OrNil()
}

// parseFecha acepta AAAA-MM-DD o RFC3339. Una fecha sin hora usada como límite superior
// cubre el día completo.
func parseFecha(verr *domain.ValidationError, field, raw string, endOfDay bool) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		verr.Add(field, "Fecha inválida, use AAAA-MM-DD")
		return nil
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t
}
