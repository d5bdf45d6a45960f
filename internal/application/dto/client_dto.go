package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientInput datos de un registro de cliente (alta y edición).
// FechaIngreso vacía toma la hora actual.
type ClientInput struct {
	Nombres                    string          `json:"nombres"`
	Apellidos                  string          `json:"apellidos"`
	TipoDocumento              string          `json:"tipo_documento"`
	NumeroDocumento            string          `json:"numero_documento"`
	Edad                       *int            `json:"edad"`
	Telefono                   string          `json:"telefono"`
	Direccion                  string          `json:"direccion"`
	FechaIngreso               *time.Time      `json:"fecha_ingreso"`
	FechaSalida                *time.Time      `json:"fecha_salida"`
	NumeroHabitacionesDeseadas int             `json:"numero_habitaciones_deseadas"`
	TipoPago                   string          `json:"tipo_pago"`
	MontoPagado                decimal.Decimal `json:"monto_pagado"`
}

// CreateClientRequest alta de cliente con sus habitaciones.
type CreateClientRequest struct {
	ClientInput
	HabitacionesSeleccionadas []string `json:"habitaciones_seleccionadas"`
}

// ClientFilterRequest filtros del listado de clientes.
type ClientFilterRequest struct {
	TipoDocumento     string `query:"tipo_documento"`
	TipoPago          string `query:"tipo_pago"`
	Q                 string `query:"q"`
	SoloActivos       bool   `query:"solo_activos"`
	FechaIngresoDesde string `query:"fecha_ingreso_desde"`
	FechaIngresoHasta string `query:"fecha_ingreso_hasta"`
	PageRequest
}

// RoomSummary datos mínimos de la habitación dentro de una asignación.
type RoomSummary struct {
	ID          string          `json:"id"`
	Numero      int             `json:"numero"`
	Tipo        string          `json:"tipo"`
	TipoDisplay string          `json:"tipo_display"`
	PrecioNoche decimal.Decimal `json:"precio_noche"`
	Estado      string          `json:"estado"`
}

// AssignmentResponse asignación cliente-habitación.
type AssignmentResponse struct {
	ID              string       `json:"id"`
	ClientID        string       `json:"client_id"`
	RoomID          string       `json:"room_id"`
	Habitacion      *RoomSummary `json:"habitacion,omitempty"`
	Estado          string       `json:"estado"`
	FechaAsignacion time.Time    `json:"fecha_asignacion"`
	FechaLiberacion *time.Time   `json:"fecha_liberacion,omitempty"`
}

// ClientResponse registro de cliente con las vistas derivadas del ledger.
type ClientResponse struct {
	ID                         string               `json:"id"`
	Nombres                    string               `json:"nombres"`
	Apellidos                  string               `json:"apellidos"`
	NombreCompleto             string               `json:"nombre_completo"`
	TipoDocumento              string               `json:"tipo_documento"`
	TipoDocumentoDisplay       string               `json:"tipo_documento_display"`
	NumeroDocumento            string               `json:"numero_documento"`
	Edad                       *int                 `json:"edad"`
	Telefono                   string               `json:"telefono"`
	Direccion                  string               `json:"direccion"`
	FechaIngreso               time.Time            `json:"fecha_ingreso"`
	FechaSalida                *time.Time           `json:"fecha_salida"`
	FechaSalidaReal            *time.Time           `json:"fecha_salida_real"`
	NumeroHabitacionesDeseadas int                  `json:"numero_habitaciones_deseadas"`
	TipoPago                   string               `json:"tipo_pago"`
	TipoPagoDisplay            string               `json:"tipo_pago_display"`
	MontoPagado                decimal.Decimal      `json:"monto_pagado"`
	HabitacionesActivas        []AssignmentResponse `json:"habitaciones_activas"`
	HistorialHabitaciones      []AssignmentResponse `json:"historial_habitaciones"`
	HistorialDocumento         []AssignmentResponse `json:"historial_documento"`
	TotalHabitacionesActivas   int                  `json:"total_habitaciones_activas"`
	EstaActivo                 bool                 `json:"esta_activo"`
	CreatedAt                  time.Time            `json:"created_at"`
	UpdatedAt                  time.Time            `json:"updated_at"`
}

// ClientListResponse página de clientes.
type ClientListResponse struct {
	Clientes []ClientResponse `json:"clientes"`
	Page     PageResponse     `json:"page"`
}

// ClientMessageResponse mensaje más el registro actualizado.
type ClientMessageResponse struct {
	Message string         `json:"message"`
	Client  ClientResponse `json:"client"`
}
