package rooms

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Hotel-api/internal/application/dto"
	"github.com/jhoicas/Hotel-api/internal/application/occupancy"
	"github.com/jhoicas/Hotel-api/internal/domain"
	"github.com/jhoicas/Hotel-api/internal/domain/entity"
	"github.com/jhoicas/Hotel-api/internal/domain/hotel"
	"github.com/jhoicas/Hotel-api/internal/domain/repository"
)

const defaultTransitionLimit = 50

// RoomUseCase catálogo de habitaciones y cambios manuales de estado.
type RoomUseCase struct {
	store   occupancy.Store
	checker *occupancy.ConsistencyChecker
	clock   func() time.Time
	log     zerolog.Logger
}

// NewRoomUseCase construye el caso de uso.
func NewRoomUseCase(store occupancy.Store, checker *occupancy.ConsistencyChecker, log zerolog.Logger) *RoomUseCase {
	return &RoomUseCase{
		store:   store,
		checker: checker,
		clock:   time.Now,
		log:     log.With().Str("component", "rooms").Logger(),
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *RoomUseCase) WithClock(clock func() time.Time) *RoomUseCase {
	uc.clock = clock
	return uc
}

// Create registra una habitación. Estado vacío toma disponible.
func (uc *RoomUseCase) Create(ctx context.Context, in dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	now := uc.clock()
	room := &entity.Room{
		ID:          uuid.New().String(),
		Numero:      in.Numero,
		Tipo:        in.Tipo,
		PrecioNoche: in.PrecioNoche,
		Estado:      in.Estado,
		Descripcion: strings.TrimSpace(in.Descripcion),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if room.Estado == "" {
		room.Estado = entity.RoomStatusDisponible
	}
	if err := hotel.ValidateRoom(room); err != nil {
		return nil, err
	}
	if room.Estado == entity.RoomStatusOcupado {
		verr := &domain.ValidationError{Rule: domain.RuleCampos}
		verr.Add("estado", "Una habitación nueva no puede registrarse ocupada")
		return nil, verr
	}
	err := uc.store.Run(ctx, func(repos repository.Repos) error {
		if err := ensureNumeroLibre(ctx, repos, room.Numero, ""); err != nil {
			return err
		}
		return repos.Rooms.Create(ctx, room)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("room_id", room.ID).Int("numero", room.Numero).Msg("habitación creada")
	return toRoomResponse(room), nil
}

// GetByID obtiene una habitación.
func (uc *RoomUseCase) GetByID(ctx context.Context, id string) (*dto.RoomResponse, error) {
	room, err := uc.store.Repos().Rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, &domain.NotFoundError{Resource: "habitación", ID: id}
	}
	return toRoomResponse(room), nil
}

// List lista habitaciones por tipo, estado, rango de precio y texto.
func (uc *RoomUseCase) List(ctx context.Context, in dto.RoomFilterRequest) ([]dto.RoomResponse, error) {
	filter, err := toRoomFilter(in)
	if err != nil {
		return nil, err
	}
	list, err := uc.store.Repos().Rooms.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toRoomResponses(list), nil
}

// ListAvailable habitaciones en estado disponible, ordenadas por número.
func (uc *RoomUseCase) ListAvailable(ctx context.Context) (*dto.AvailableRoomsResponse, error) {
	list, err := uc.store.Repos().Rooms.List(ctx, repository.RoomFilter{Estado: entity.RoomStatusDisponible})
	if err != nil {
		return nil, err
	}
	return &dto.AvailableRoomsResponse{
		Habitaciones:     toRoomResponses(list),
		TotalDisponibles: len(list),
	}, nil
}

// Update modifica número, tipo, precio y descripción. El estado no se edita aquí.
func (uc *RoomUseCase) Update(ctx context.Context, id string, in dto.UpdateRoomRequest) (*dto.RoomResponse, error) {
	var out *entity.Room
	err := uc.store.Run(ctx, func(repos repository.Repos) error {
		room, err := repos.Rooms.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if room == nil {
			return &domain.NotFoundError{Resource: "habitación", ID: id}
		}
		room.Numero = in.Numero
		room.Tipo = in.Tipo
		room.PrecioNoche = in.PrecioNoche
		room.Descripcion = strings.TrimSpace(in.Descripcion)
		room.UpdatedAt = uc.clock()
		if err := hotel.ValidateRoom(room); err != nil {
			return err
		}
		if err := ensureNumeroLibre(ctx, repos, room.Numero, room.ID); err != nil {
			return err
		}
		if err := repos.Rooms.Update(ctx, room); err != nil {
			return err
		}
		out = room
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toRoomResponse(out), nil
}

// Delete elimina una habitación que nunca tuvo asignaciones.
func (uc *RoomUseCase) Delete(ctx context.Context, id string) error {
	return uc.store.Run(ctx, func(repos repository.Repos) error {
		room, err := repos.Rooms.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if room == nil {
			return &domain.NotFoundError{Resource: "habitación", ID: id}
		}
		n, err := repos.Assignments.CountByRoom(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return &domain.ConflictError{
				Reason:  domain.ErrRoomInUse,
				RoomIDs: []string{id},
				Message: fmt.Sprintf("No se puede eliminar la habitación %d: tiene %d asignaciones registradas", room.Numero, n),
			}
		}
		return repos.Rooms.Delete(ctx, id)
	})
}

// ChangeStatus cambio manual de estado sin restricciones de transición. Si el nuevo estado
// contradice el ledger el cambio se aplica igual y se devuelve una advertencia.
func (uc *RoomUseCase) ChangeStatus(ctx context.Context, id string, in dto.ChangeRoomStatusRequest, userID string) (*dto.ChangeRoomStatusResponse, error) {
	estado := strings.TrimSpace(in.Estado)
	if !hotel.ValidRoomStatus(estado) {
		verr := &domain.ValidationError{Rule: domain.RuleCampos}
		verr.Add("estado", "Estado de habitación inválido")
		return nil, verr
	}

	now := uc.clock()
	var out *dto.ChangeRoomStatusResponse
	err := uc.store.Run(ctx, func(repos repository.Repos) error {
		room, err := repos.Rooms.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if room == nil {
			return &domain.NotFoundError{Resource: "habitación", ID: id}
		}
		prev, err := repos.Rooms.SetEstado(ctx, id, estado, now)
		if err != nil {
			return err
		}
		room.Estado = estado
		room.UpdatedAt = now
		if prev != estado {
			t := &entity.RoomTransition{
				ID:        uuid.New().String(),
				RoomID:    id,
				Desde:     prev,
				Hacia:     estado,
				Origen:    entity.TransitionManual,
				Motivo:    entity.MotivoCambioManual,
				UserID:    userID,
				CreatedAt: now,
			}
			if err := repos.Transitions.Create(ctx, t); err != nil {
				return err
			}
		}
		out = &dto.ChangeRoomStatusResponse{
			Message:        fmt.Sprintf("Estado de la habitación %d cambiado de %s a %s", room.Numero, entity.RoomStatusLabels[prev], entity.RoomStatusLabels[estado]),
			EstadoAnterior: prev,
			Habitacion:     *toRoomResponse(room),
		}
		v, err := uc.checker.CheckRoom(ctx, repos, room)
		if err != nil {
			return err
		}
		if v != nil {
			out.Advertencias = append(out.Advertencias, occupancy.Warning(v))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("room_id", id).
		Str("desde", out.EstadoAnterior).
		Str("hacia", estado).
		Str("user_id", userID).
		Msg("cambio manual de estado")
	return out, nil
}

// Statistics conteos por estado y tipo, precio promedio y porcentaje de ocupación.
func (uc *RoomUseCase) Statistics(ctx context.Context) (*dto.RoomStatsResponse, error) {
	list, err := uc.store.Repos().Rooms.List(ctx, repository.RoomFilter{})
	if err != nil {
		return nil, err
	}
	out := &dto.RoomStatsResponse{
		Total:               len(list),
		PorEstado:           make(map[string]int, len(entity.RoomStatusLabels)),
		PorTipo:             make(map[string]int, len(entity.RoomTypeLabels)),
		PrecioPromedio:      decimal.Zero,
		PorcentajeOcupacion: decimal.Zero,
	}
	for estado := range entity.RoomStatusLabels {
		out.PorEstado[estado] = 0
	}
	for tipo := range entity.RoomTypeLabels {
		out.PorTipo[tipo] = 0
	}
	if len(list) == 0 {
		return out, nil
	}
	sum := decimal.Zero
	for _, r := range list {
		out.PorEstado[r.Estado]++
		out.PorTipo[r.Tipo]++
		sum = sum.Add(r.PrecioNoche)
	}
	total := decimal.NewFromInt(int64(len(list)))
	out.PrecioPromedio = sum.Div(total).Round(2)
	out.PorcentajeOcupacion = decimal.NewFromInt(int64(out.PorEstado[entity.RoomStatusOcupado])).
		Mul(decimal.NewFromInt(100)).Div(total).Round(2)
	return out, nil
}

// CheckNumeroDisponible indica si el número puede usarse. ExcluirID omite la propia habitación.
func (uc *RoomUseCase) CheckNumeroDisponible(ctx context.Context, in dto.NumeroCheckRequest) (*dto.NumeroCheckResponse, error) {
	if in.Numero < hotel.MinRoomNumero || in.Numero > hotel.MaxRoomNumero {
		verr := &domain.ValidationError{Rule: domain.RuleCampos}
		verr.Add("numero", fmt.Sprintf("El número debe estar entre %d y %d", hotel.MinRoomNumero, hotel.MaxRoomNumero))
		return nil, verr
	}
	existing, err := uc.store.Repos().Rooms.GetByNumero(ctx, in.Numero)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != in.ExcluirID {
		return &dto.NumeroCheckResponse{
			Numero:  in.Numero,
			Message: fmt.Sprintf("Ya existe una habitación con el número %d", in.Numero),
		}, nil
	}
	return &dto.NumeroCheckResponse{Numero: in.Numero, Disponible: true, Message: "Número disponible"}, nil
}

// Transitions bitácora de estados de la habitación, más reciente primero.
func (uc *RoomUseCase) Transitions(ctx context.Context, id string, limit int) ([]dto.RoomTransitionResponse, error) {
	repos := uc.store.Repos()
	room, err := repos.Rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, &domain.NotFoundError{Resource: "habitación", ID: id}
	}
	if limit <= 0 {
		limit = defaultTransitionLimit
	}
	list, err := repos.Transitions.ListByRoom(ctx, id, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoomTransitionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.RoomTransitionResponse{
			ID:        t.ID,
			Desde:     t.Desde,
			Hacia:     t.Hacia,
			Origen:    t.Origen,
			Motivo:    t.Motivo,
			ClienteID: t.ClientID,
			UsuarioID: t.UserID,
			CreatedAt: t.CreatedAt,
		})
	}
	return out, nil
}

// ConsistencyReport auditoría de habitaciones contra el ledger.
func (uc *RoomUseCase) ConsistencyReport(ctx context.Context) (*dto.ConsistencyReportResponse, error) {
	return uc.checker.Report(ctx)
}

func ensureNumeroLibre(ctx context.Context, repos repository.Repos, numero int, selfID string) error {
	existing, err := repos.Rooms.GetByNumero(ctx, numero)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		verr := &domain.ValidationError{Rule: domain.RuleCampos}
		verr.Add("numero", fmt.Sprintf("Ya existe una habitación con el número %d", numero))
		return verr
	}
	return nil
}

func toRoomFilter(in dto.RoomFilterRequest) (repository.RoomFilter, error) {
	verr := &domain.ValidationError{Rule: domain.RuleCampos}
	f := repository.RoomFilter{
		Tipo:   strings.TrimSpace(in.Tipo),
		Estado: strings.TrimSpace(in.Estado),
		Query:  strings.TrimSpace(in.Q),
	}
	if f.Tipo != "" && !hotel.ValidRoomType(f.Tipo) {
		verr.Add("tipo", "Tipo de habitación inválido")
	}
	if f.Estado != "" && !hotel.ValidRoomStatus(f.Estado) {
		verr.Add("estado", "Estado de habitación inválido")
	}
	f.PrecioMin = parsePrecio(verr, "precio_min", in.PrecioMin)
	f.PrecioMax = parsePrecio(verr, "precio_max", in.PrecioMax)
	if f.PrecioMin != nil && f.PrecioMax != nil && f.PrecioMin.GreaterThan(*f.PrecioMax) {
		verr.Add("precio_max", "El precio máximo debe ser mayor o igual al mínimo")
	}
	return f, verr.OrNil()
}

func parsePrecio(verr *domain.ValidationError, field, raw string) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		verr.Add(field, "Precio inválido")
		return nil
	}
	return &d
}

func toRoomResponse(r *entity.Room) *dto.RoomResponse {
	return &dto.RoomResponse{
		ID:               r.ID,
		Numero:           r.Numero,
		Tipo:             r.Tipo,
		TipoDisplay:      entity.RoomTypeLabels[r.Tipo],
		PrecioNoche:      r.PrecioNoche,
		PrecioFormateado: "S/ " + r.PrecioNoche.StringFixed(2),
		Estado:           r.Estado,
		EstadoDisplay:    entity.RoomStatusLabels[r.Estado],
		Descripcion:      r.Descripcion,
		EstaDisponible:   r.EstaDisponible(),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func toRoomResponses(list []*entity.Room) []dto.RoomResponse {
	out := make([]dto.RoomResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRoomResponse(r))
	}
	return out
}
