package hotel

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Hotel-api/internal/domain"
	"github.com/jhoicas/Hotel-api/internal/domain/entity"
)

// Límites de negocio.
const (
	MaxRoomsPerClient = 10
	MinRoomNumero     = 1
	MaxRoomNumero     = 9999
	maxNombreLen      = 100
	maxDireccionLen   = 200
	maxDescripcionLen = 500
	maxDocumentoLen   = 30
	minEdad           = 1
	maxEdad           = 120
)

var (
	dniPattern       = regexp.MustCompile(`^\d{8}$`)
	documentoPattern = regexp.MustCompile(`^[A-Za-z0-9]{1,30}$`)
	telefonoPattern  = regexp.MustCompile(`^\d{7,15}$`)
	precioMaximo     = decimal.RequireFromString("999999.99")
)

// ValidTipoDocumento indica si el tipo de documento pertenece al catálogo.
func ValidTipoDocumento(tipo string) bool {
	_, ok := entity.DocumentTypeLabels[tipo]
	return ok
}

// ValidTipoPago indica si el método de pago pertenece al catálogo.
func ValidTipoPago(tipo string) bool {
	_, ok := entity.PaymentTypeLabels[tipo]
	return ok
}

// ValidRoomType indica si el tipo de habitación pertenece al catálogo.
func ValidRoomType(tipo string) bool {
	_, ok := entity.RoomTypeLabels[tipo]
	return ok
}

// ValidRoomStatus indica si el estado pertenece al catálogo.
func ValidRoomStatus(estado string) bool {
	_, ok := entity.RoomStatusLabels[estado]
	return ok
}

// ValidateDocumento valida tipo y formato del número de documento.
// DNI: exactamente 8 dígitos. Pasaporte y carnet: 1 a 30 caracteres alfanuméricos.
func ValidateDocumento(tipo, numero string) error {
	verr := &domain.ValidationError{Rule: domain.RuleCampos}
	validateDocumento(verr, tipo, numero)
	return verr.OrNil()
}

func validateDocumento(verr *domain.ValidationError, tipo, numero string) {
	if !ValidTipoDocumento(tipo) {
		verr.Add("tipo_documento", "Tipo de documento inválido")
		return
	}
	if numero == "" {
		verr.Add("numero_documento", "El número de documento es requerido")
		return
	}
	if tipo == entity.DocumentDNI {
		if !dniPattern.MatchString(numero) {
			verr.Add("numero_documento", "El DNI debe tener exactamente 8 dígitos numéricos")
		}
		return
	}
	if utf8.RuneCountInString(numero) > maxDocumentoLen {
		verr.Add("numero_documento", fmt.Sprintf("El documento debe tener máximo %d caracteres", maxDocumentoLen))
		return
	}
	if !documentoPattern.MatchString(numero) {
		verr.Add("numero_documento", "El documento debe contener solo caracteres alfanuméricos")
	}
}

// ValidateClient valida todos los campos del registro y devuelve un *domain.ValidationError
// con un mensaje por cada campo inválido, o nil.
func ValidateClient(c *entity.Client, maxRooms int) error {
	if maxRooms <= 0 {
		maxRooms = MaxRoomsPerClient
	}
	verr := &domain.ValidationError{Rule: domain.RuleCampos}

	validateNombre(verr, "nombres", c.Nombres)
	validateNombre(verr, "apellidos", c.Apellidos)
	validateDocumento(verr, c.TipoDocumento, c.NumeroDocumento)

	if c.Edad != nil && (*c.Edad < minEdad || *c.Edad > maxEdad) {
		verr.Add("edad", fmt.Sprintf("La edad debe estar entre %d y %d", minEdad, maxEdad))
	}
	if c.Telefono != "" && !telefonoPattern.MatchString(c.Telefono) {
		verr.Add("telefono", "El teléfono debe tener entre 7 y 15 dígitos numéricos")
	}
	if utf8.RuneCountInString(c.Direccion) > maxDireccionLen {
		verr.Add("direccion", fmt.Sprintf("La dirección debe tener máximo %d caracteres", maxDireccionLen))
	}
	if c.FechaIngreso.IsZero() {
		verr.Add("fecha_ingreso", "La fecha de ingreso es requerida")
	} else if c.FechaSalida != nil && !c.FechaSalida.After(c.FechaIngreso) {
		verr.Add("fecha_salida", "La fecha de salida debe ser posterior a la fecha de ingreso")
	}
	if c.NumeroHabitacionesDeseadas < 1 || c.NumeroHabitacionesDeseadas > maxRooms {
		verr.Add("numero_habitaciones_deseadas", fmt.Sprintf("Debe solicitar entre 1 y %d habitaciones", maxRooms))
	}
	if !ValidTipoPago(c.TipoPago) {
		verr.Add("tipo_pago", "Método de pago inválido")
	}
	if !c.MontoPagado.GreaterThan(decimal.Zero) {
		verr.Add("monto_pagado", "El monto debe ser mayor a 0")
	}
	return verr.OrNil()
}

func validateNombre(verr *domain.ValidationError, field, value string) {
	v := strings.TrimSpace(value)
	if v == "" {
		verr.Add(field, "Este campo es requerido")
		return
	}
	if utf8.RuneCountInString(v) > maxNombreLen {
		verr.Add(field, fmt.Sprintf("Debe tener máximo %d caracteres", maxNombreLen))
	}
}

// ValidateRoom valida los campos editables de una habitación.
func ValidateRoom(r *entity.Room) error {
	verr := &domain.ValidationError{Rule: domain.RuleCampos}
	if r.Numero < MinRoomNumero || r.Numero > MaxRoomNumero {
		verr.Add("numero", fmt.Sprintf("El número debe estar entre %d y %d", MinRoomNumero, MaxRoomNumero))
	}
	if !ValidRoomType(r.Tipo) {
		verr.Add("tipo", "Tipo de habitación inválido")
	}
	if !r.PrecioNoche.GreaterThan(decimal.Zero) {
		verr.Add("precio_noche", "El precio debe ser mayor a 0")
	} else if r.PrecioNoche.GreaterThan(precioMaximo) || !r.PrecioNoche.Round(2).Equal(r.PrecioNoche) {
		verr.Add("precio_noche", "El precio admite hasta 6 enteros y 2 decimales")
	}
	if r.Estado != "" && !ValidRoomStatus(r.Estado) {
		verr.Add("estado", "Estado de habitación inválido")
	}
	if utf8.RuneCountInString(r.Descripcion) > maxDescripcionLen {
		verr.Add("descripcion", fmt.Sprintf("La descripción debe tener máximo %d caracteres", maxDescripcionLen))
	}
	return verr.OrNil()
}

// ValidateRoomSelection exige una lista no vacía y sin repetidos.
func ValidateRoomSelection(field string, roomIDs []string) error {
	verr := &domain.ValidationError{Rule: domain.RuleCampos}
	if len(roomIDs) == 0 {
		verr.Add(field, "Debe seleccionar al menos una habitación")
		return verr
	}
	seen := make(map[string]struct{}, len(roomIDs))
	for _, id := range roomIDs {
		if id == "" {
			verr.Add(field, "Identificador de habitación vacío")
			continue
		}
		if _, ok := seen[id]; ok {
			verr.Add(field, "La lista contiene habitaciones repetidas")
			continue
		}
		seen[id] = struct{}{}
	}
	return verr.OrNil()
}
