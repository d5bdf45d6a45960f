package hotel

import (
	"sort"

	"github.com/jhoicas/Hotel-api/internal/domain/entity"
)

// Clasificaciones de un documento respecto a los registros existentes.
const (
	RazonNuevoCliente    = "nuevo_cliente"
	RazonClienteAnterior = "cliente_anterior"
	RazonClienteActivo   = "cliente_activo"
)

// DocumentMatch un registro con el mismo documento y su número de asignaciones activas.
type DocumentMatch struct {
	Client      *entity.Client
	ActiveRooms int
}

// Classification resultado de ClassifyDocument. Match es nil para nuevo_cliente.
type Classification struct {
	Razon         string
	Match         *DocumentMatch
	TotalEstadias int
}

// Disponible indica si el documento puede registrarse de nuevo.
func (c Classification) Disponible() bool {
	return c.Razon != RazonClienteActivo
}

// ClassifyDocument decide entre nuevo_cliente, cliente_anterior y cliente_activo.
// Cualquier registro activo gana; si no hay, se informa el registro más reciente.
// Es la misma decisión para la vista previa y para la verificación dentro de la transacción.
func ClassifyDocument(matches []DocumentMatch) Classification {
	if len(matches) == 0 {
		return Classification{Razon: RazonNuevoCliente}
	}
	sorted := make([]DocumentMatch, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return newer(sorted[i].Client, sorted[j].Client)
	})
	for i := range sorted {
		if sorted[i].ActiveRooms > 0 {
			return Classification{Razon: RazonClienteActivo, Match: &sorted[i], TotalEstadias: len(sorted)}
		}
	}
	return Classification{Razon: RazonClienteAnterior, Match: &sorted[0], TotalEstadias: len(sorted)}
}

func newer(a, b *entity.Client) bool {
	if !a.FechaIngreso.Equal(b.FechaIngreso) {
		return a.FechaIngreso.After(b.FechaIngreso)
	}
	return a.CreatedAt.After(b.CreatedAt)
}
