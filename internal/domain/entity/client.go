package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento de identidad.
const (
	DocumentDNI               = "DNI"
	DocumentPasaporte         = "pasaporte"
	DocumentCarnetExtranjeria = "carnet_extranjeria"
)

// Métodos de pago registrados en el ingreso.
const (
	PaymentEfectivo         = "efectivo"
	PaymentBilleteraDigital = "billetera_digital"
	PaymentVisa             = "visa"
)

// DocumentTypeLabels etiquetas de presentación de cada tipo de documento.
var DocumentTypeLabels = map[string]string{
	DocumentDNI:               "DNI",
	DocumentPasaporte:         "Pasaporte",
	DocumentCarnetExtranjeria: "Carnet de Extranjería",
}

// PaymentTypeLabels etiquetas de presentación de cada método de pago.
var PaymentTypeLabels = map[string]string{
	PaymentEfectivo:         "Efectivo",
	PaymentBilleteraDigital: "Billetera Digital",
	PaymentVisa:             "Visa",
}

// Client registro de una estadía de un huésped. Un mismo documento puede tener varios
// registros a lo largo del tiempo, pero a lo sumo uno activo.
type Client struct {
	ID                         string
	Nombres                    string
	Apellidos                  string
	TipoDocumento              string
	NumeroDocumento            string
	Edad                       *int
	Telefono                   string
	Direccion                  string
	FechaIngreso               time.Time
	FechaSalida                *time.Time
	FechaSalidaReal            *time.Time // solo la asigna la liberación
	NumeroHabitacionesDeseadas int
	TipoPago                   string
	MontoPagado                decimal.Decimal
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
	DeletedAt                  *time.Time
}

// NombreCompleto nombres y apellidos separados por espacio.
func (c *Client) NombreCompleto() string {
	return strings.TrimSpace(c.Nombres + " " + c.Apellidos)
}
