package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRoomRequest entrada para registrar una habitación.
type CreateRoomRequest struct {
	Numero      int             `json:"numero"`
	Tipo        string          `json:"tipo"`
	PrecioNoche decimal.Decimal `json:"precio_noche"`
	Estado      string          `json:"estado,omitempty"`
	Descripcion string          `json:"descripcion"`
}

// UpdateRoomRequest datos editables. El estado se cambia con ChangeRoomStatusRequest.
type UpdateRoomRequest struct {
	Numero      int             `json:"numero"`
	Tipo        string          `json:"tipo"`
	PrecioNoche decimal.Decimal `json:"precio_noche"`
	Descripcion string          `json:"descripcion"`
}

// ChangeRoomStatusRequest cambio manual de estado por el personal.
type ChangeRoomStatusRequest struct {
	Estado string `json:"estado"`
}

// RoomFilterRequest filtros del listado de habitaciones.
type RoomFilterRequest struct {
	Tipo      string `query:"tipo"`
	Estado    string `query:"estado"`
	PrecioMin string `query:"precio_min"`
	PrecioMax string `query:"precio_max"`
	Q         string `query:"q"`
}

// RoomResponse habitación con etiquetas de presentación.
type RoomResponse struct {
	ID               string          `json:"id"`
	Numero           int             `json:"numero"`
	Tipo             string          `json:"tipo"`
	TipoDisplay      string          `json:"tipo_display"`
	PrecioNoche      decimal.Decimal `json:"precio_noche"`
	PrecioFormateado string          `json:"precio_formateado"`
	Estado           string          `json:"estado"`
	EstadoDisplay    string          `json:"estado_display"`
	Descripcion      string          `json:"descripcion"`
	EstaDisponible   bool            `json:"esta_disponible"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// AvailableRoomsResponse habitaciones asignables.
type AvailableRoomsResponse struct {
	Habitaciones     []RoomResponse `json:"habitaciones"`
	TotalDisponibles int            `json:"total_disponibles"`
}

// ConsistencyWarning divergencia entre el estado de una habitación y sus asignaciones activas.
type ConsistencyWarning struct {
	Tipo                string `json:"tipo"`
	HabitacionID        string `json:"habitacion_id"`
	Numero              int    `json:"numero"`
	Estado              string `json:"estado"`
	AsignacionesActivas int    `json:"asignaciones_activas"`
	ClienteID           string `json:"cliente_id,omitempty"`
	Mensaje             string `json:"mensaje"`
}

// ChangeRoomStatusResponse resultado del cambio manual. Advertencias no vacío indica
// que el cambio se aplicó pero dejó la habitación en conflicto con el ledger.
type ChangeRoomStatusResponse struct {
	Message        string               `json:"message"`
	EstadoAnterior string               `json:"estado_anterior"`
	Habitacion     RoomResponse         `json:"habitacion"`
	Advertencias   []ConsistencyWarning `json:"advertencias,omitempty"`
}

// RoomStatsResponse conteos por estado y tipo.
type RoomStatsResponse struct {
	Total               int             `json:"total"`
	PorEstado           map[string]int  `json:"por_estado"`
	PorTipo             map[string]int  `json:"por_tipo"`
	PrecioPromedio      decimal.Decimal `json:"precio_promedio"`
	PorcentajeOcupacion decimal.Decimal `json:"porcentaje_ocupacion"`
}

// NumeroCheckRequest consulta de número libre.
type NumeroCheckRequest struct {
	Numero    int    `json:"numero"`
	ExcluirID string `json:"excluir_id,omitempty"`
}

// NumeroCheckResponse resultado de la consulta de número.
type NumeroCheckResponse struct {
	Numero     int    `json:"numero"`
	Disponible bool   `json:"disponible"`
	Message    string `json:"message"`
}

// RoomTransitionResponse entrada de la bitácora de estados.
type RoomTransitionResponse struct {
	ID        string    `json:"id"`
	Desde     string    `json:"desde"`
	Hacia     string    `json:"hacia"`
	Origen    string    `json:"origen"`
	Motivo    string    `json:"motivo"`
	ClienteID string    `json:"cliente_id,omitempty"`
	UsuarioID string    `json:"usuario_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ConsistencyReportResponse resultado de la auditoría.
type ConsistencyReportResponse struct {
	Consistente bool                 `json:"consistente"`
	Violaciones []ConsistencyWarning `json:"violaciones"`
	RevisadoEn  time.Time            `json:"revisado_en"`
}
