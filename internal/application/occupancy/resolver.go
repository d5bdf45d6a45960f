package occupancy

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Hotel-api/internal/application/dto"
	"github.com/jhoicas/Hotel-api/internal/domain"
	"github.com/jhoicas/Hotel-api/internal/domain/hotel"
	"github.com/jhoicas/Hotel-api/internal/domain/repository"
)

// ClassifyDocument clasifica (tipo, numero) contra los registros existentes.
// excludeID omite un registro (edición de sí mismo). Se usa igual dentro y fuera de transacción.
func ClassifyDocument(ctx context.Context, repos repository.Repos, tipo, numero, excludeID string) (hotel.Classification, error) {
	rows, err := repos.Clients.ListByDocumento(ctx, tipo, numero)
	if err != nil {
		return hotel.Classification{}, err
	}
	ids := make([]string, 0, len(rows))
	for _, c := range rows {
		if c.ID != excludeID {
			ids = append(ids, c.ID)
		}
	}
	counts, err := repos.Assignments.CountActiveByClients(ctx, ids)
	if err != nil {
		return hotel.Classification{}, err
	}
	matches := make([]hotel.DocumentMatch, 0, len(ids))
	for _, c := range rows {
		if c.ID == excludeID {
			continue
		}
		matches = append(matches, hotel.DocumentMatch{Client: c, ActiveRooms: counts[c.ID]})
	}
	return hotel.ClassifyDocument(matches), nil
}

// ActiveDocumentError error de validación para un documento con estadía activa.
func ActiveDocumentError(m *hotel.DocumentMatch) *domain.ValidationError {
	verr := domain.NewValidationError(domain.RuleClienteActivo, domain.ErrActiveClient.Error())
	verr.Add("numero_documento", fmt.Sprintf(
		"Ya existe un cliente activo con este documento. Cliente: %s (ID: %s) tiene %d habitaciones activas. "+
			"Debe liberar las habitaciones antes de registrar un nuevo ingreso.",
		m.Client.NombreCompleto(), m.Client.ID, m.ActiveRooms))
	return verr
}

// Resolver consulta previa de documento para el formulario de registro. Solo lectura.
type Resolver struct {
	store Store
}

// NewResolver construye el resolvedor.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Check valida el formato y clasifica el documento. El resultado es orientativo:
// el registro vuelve a verificar dentro de su transacción.
func (r *Resolver) Check(ctx context.Context, in dto.DocumentoCheckRequest) (*dto.DocumentoCheckResponse, error) {
	tipo := strings.TrimSpace(in.TipoDocumento)
	numero := strings.TrimSpace(in.NumeroDocumento)
	if err := hotel.ValidateDocumento(tipo, numero); err != nil {
		return nil, err
	}
	cls, err := ClassifyDocument(ctx, r.store.Repos(), tipo, numero, "")
	if err != nil {
		return nil, err
	}
	out := &dto.DocumentoCheckResponse{
		TipoDocumento:   tipo,
		NumeroDocumento: numero,
		Disponible:      cls.Disponible(),
		Razon:           cls.Razon,
	}
	switch cls.Razon {
	case hotel.RazonClienteActivo:
		c := cls.Match.Client
		out.Message = fmt.Sprintf("Cliente activo con este documento: %s (ID: %s)", c.NombreCompleto(), c.ID)
		out.ClienteExistente = &dto.ClienteExistente{
			ID:                  c.ID,
			NombreCompleto:      c.NombreCompleto(),
			HabitacionesActivas: cls.Match.ActiveRooms,
			FechaIngreso:        c.FechaIngreso,
			FechaSalida:         c.FechaSalida,
			FechaSalidaReal:     c.FechaSalidaReal,
		}
	case hotel.RazonClienteAnterior:
		c := cls.Match.Client
		out.Message = fmt.Sprintf("Cliente puede re-registrarse. Anterior estadía: %s", c.NombreCompleto())
		out.ClienteAnterior = &dto.ClienteAnterior{
			ID:                      c.ID,
			NombreCompleto:          c.NombreCompleto(),
			FechaSalidaReal:         c.FechaSalidaReal,
			UltimoIngreso:           c.FechaIngreso,
			TotalEstadiasAnteriores: cls.TotalEstadias,
		}
	default:
		out.Message = "Documento disponible para nuevo cliente"
	}
	return out, nil
}
