package dto

import "time"

// AddRoomsRequest habitaciones adicionales para un cliente hospedado.
type AddRoomsRequest struct {
	HabitacionesAdicionales []string `json:"habitaciones_adicionales"`
}

// CreateClientResponse resultado del registro con habitaciones.
type CreateClientResponse struct {
	Message               string         `json:"message"`
	HabitacionesAsignadas []RoomSummary  `json:"habitaciones_asignadas"`
	Client                ClientResponse `json:"client"`
}

// AddRoomsResponse resultado de agregar habitaciones.
type AddRoomsResponse struct {
	Message               string         `json:"message"`
	HabitacionesAgregadas []RoomSummary  `json:"habitaciones_agregadas"`
	TotalHabitaciones     int            `json:"total_habitaciones"`
	Client                ClientResponse `json:"client"`
}

// ReleasedRoom detalle de una habitación liberada.
type ReleasedRoom struct {
	HabitacionID    string    `json:"habitacion_id"`
	Numero          int       `json:"numero"`
	Tipo            string    `json:"tipo"`
	EstadoAnterior  string    `json:"estado_anterior"`
	EstadoNuevo     string    `json:"estado_nuevo"`
	FechaLiberacion time.Time `json:"fecha_liberacion"`
}

// ReleaseRoomsResponse resultado de liberar todas las habitaciones de un cliente.
type ReleaseRoomsResponse struct {
	Message                      string         `json:"message"`
	HabitacionesLiberadas        []ReleasedRoom `json:"habitaciones_liberadas"`
	FechaSalidaReal              time.Time      `json:"fecha_salida_real"`
	HoraSalidaFormateada         string         `json:"hora_salida_formateada"`
	HabitacionesActivasRestantes int            `json:"habitaciones_activas_restantes"`
	TotalHistorial               int            `json:"total_historial"`
	ClienteActivo                bool           `json:"cliente_activo"`
	Client                       ClientResponse `json:"client"`
}

// DeleteClientResponse resultado de la baja de un cliente.
type DeleteClientResponse struct {
	Message               string         `json:"message"`
	HabitacionesLiberadas []ReleasedRoom `json:"habitaciones_liberadas"`
}

// DocumentoCheckRequest consulta previa de documento.
type DocumentoCheckRequest struct {
	TipoDocumento   string `json:"tipo_documento"`
	NumeroDocumento string `json:"numero_documento"`
}

// ClienteExistente registro activo que bloquea el documento.
type ClienteExistente struct {
	ID                  string     `json:"id"`
	NombreCompleto      string     `json:"nombre_completo"`
	HabitacionesActivas int        `json:"habitaciones_activas"`
	FechaIngreso        time.Time  `json:"fecha_ingreso"`
	FechaSalida         *time.Time `json:"fecha_salida"`
	FechaSalidaReal     *time.Time `json:"fecha_salida_real"`
}

// ClienteAnterior estadía previa más reciente del documento.
type ClienteAnterior struct {
	ID                      string     `json:"id"`
	NombreCompleto          string     `json:"nombre_completo"`
	FechaSalidaReal         *time.Time `json:"fecha_salida_real"`
	UltimoIngreso           time.Time  `json:"ultimo_ingreso"`
	TotalEstadiasAnteriores int        `json:"total_estadias_anteriores"`
}

// DocumentoCheckResponse clasificación del documento.
type DocumentoCheckResponse struct {
	TipoDocumento    string            `json:"tipo_documento"`
	NumeroDocumento  string            `json:"numero_documento"`
	Disponible       bool              `json:"disponible"`
	Razon            string            `json:"razon"`
	Message          string            `json:"message"`
	ClienteExistente *ClienteExistente `json:"cliente_existente,omitempty"`
	ClienteAnterior  *ClienteAnterior  `json:"cliente_anterior,omitempty"`
}
