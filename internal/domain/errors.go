package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrRoomUnavailable      = errors.New("habitación no disponible")
	ErrRoomInUse            = errors.New("la habitación tiene historial de asignaciones")
	ErrNoActiveAssignments  = errors.New("el cliente no tiene habitaciones activas para liberar")
	ErrActiveClient         = errors.New("ya existe un cliente activo con este documento")
	ErrInactiveClient       = errors.New("el cliente no está hospedado actualmente")
	ErrConsistencyViolation = errors.New("inconsistencia entre habitaciones y asignaciones")
	ErrTransient            = errors.New("la operación no pudo completarse a tiempo, reintente")
)

// Reglas de negocio reportadas en ValidationError.Rule.
const (
	RuleCampos               = "campos"
	RuleClienteActivo        = "cliente_activo"
	RuleClienteInactivo      = "cliente_inactivo"
	RuleCantidadHabitaciones = "cantidad_habitaciones"
	RuleLimiteHabitaciones   = "limite_habitaciones"
)

// ValidationError agrupa errores de entrada por campo o una regla de negocio incumplida.
// Nunca se reintenta automáticamente.
type ValidationError struct {
	Rule    string
	Message string
	Fields  map[string]string
}

// NewValidationError construye un error de validación para la regla indicada.
func NewValidationError(rule, message string) *ValidationError {
	return &ValidationError{Rule: rule, Message: message}
}

// Add registra el mensaje de un campo. Conserva el primer mensaje por campo.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = message
}

// HasErrors indica si se registró algún campo o mensaje.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0 || e.Message != ""
}

// OrNil devuelve nil cuando no hay errores, para usar como valor de retorno.
func (e *ValidationError) OrNil() error {
	if e == nil || !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	if e.Message != "" {
		return e.Message + " (" + strings.Join(parts, "; ") + ")"
	}
	return strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput) y, según la regla, ErrActiveClient / ErrInactiveClient.
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrInvalidInput:
		return true
	case ErrActiveClient:
		return e.Rule == RuleClienteActivo
	case ErrInactiveClient:
		return e.Rule == RuleClienteInactivo
	}
	return false
}

// ConflictError indica que el estado cambió bajo el llamador (habitación tomada por otra
// operación, liberación repetida). Se sugiere refrescar y reintentar; el motor no reintenta.
type ConflictError struct {
	Reason  error
	RoomIDs []string
	Message string
}

// NewRoomUnavailableError construye el conflicto para las habitaciones que no pudieron ocuparse.
func NewRoomUnavailableError(roomIDs []string, numeros []int) *ConflictError {
	return &ConflictError{
		Reason:  ErrRoomUnavailable,
		RoomIDs: roomIDs,
		Message: fmt.Sprintf("Las habitaciones %v no están disponibles. Actualice la lista e intente de nuevo", numeros),
	}
}

func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Reason != nil {
		return e.Reason.Error()
	}
	return ErrConflict.Error()
}

func (e *ConflictError) Unwrap() []error {
	if e.Reason == nil {
		return []error{ErrConflict}
	}
	return []error{ErrConflict, e.Reason}
}

// NotFoundError identifica el recurso inexistente.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Tipos de ConsistencyViolation.
const (
	KindOcupadoSinAsignacion         = "ocupado_sin_asignacion"
	KindAsignacionEnHabitacionLibre  = "asignacion_en_habitacion_no_ocupada"
	KindMultiplesAsignacionesActivas = "multiples_asignaciones_activas"
	KindLiberacionEstadoInesperado   = "liberacion_desde_estado_inesperado"
	KindAsignacionSinHabitacion      = "asignacion_sin_habitacion"
)

// ConsistencyViolation describe una divergencia entre Room.estado y el ledger de asignaciones.
// No debería ocurrir con disciplina transaccional; se registra como defecto.
type ConsistencyViolation struct {
	Kind              string
	RoomID            string
	Numero            int
	Estado            string
	ActiveAssignments int
	ClientID          string
}

func (v *ConsistencyViolation) Error() string {
	return fmt.Sprintf("%s: habitación %d (%s) en estado %q con %d asignaciones activas",
		v.Kind, v.Numero, v.RoomID, v.Estado, v.ActiveAssignments)
}

func (v *ConsistencyViolation) Unwrap() error { return ErrConsistencyViolation }
