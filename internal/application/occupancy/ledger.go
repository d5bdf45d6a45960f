package occupancy

import (
	"context"

	"github.com/jhoicas/Hotel-api/internal/application/dto"
	"github.com/jhoicas/Hotel-api/internal/domain/entity"
	"github.com/jhoicas/Hotel-api/internal/domain/repository"
)

// Ledger arma las vistas derivadas de un registro a partir de las asignaciones:
// habitaciones_activas, historial_habitaciones, historial_documento y esta_activo.
// Nada de esto se guarda; se recalcula en cada lectura.
type Ledger struct{}

// View vista de un solo registro.
func (Ledger) View(ctx context.Context, repos repository.Repos, c *entity.Client) (dto.ClientResponse, error) {
	views, err := Ledger{}.Views(ctx, repos, []*entity.Client{c})
	if err != nil {
		return dto.ClientResponse{}, err
	}
	return views[0], nil
}

// Views vistas de varios registros con una consulta por tabla.
func (Ledger) Views(ctx context.Context, repos repository.Repos, clients []*entity.Client) ([]dto.ClientResponse, error) {
	if len(clients) == 0 {
		return []dto.ClientResponse{}, nil
	}
	ids := make([]string, 0, len(clients))
	for _, c := range clients {
		ids = append(ids, c.ID)
	}

	// Registros previos con el mismo documento, para historial_documento.
	previous := make(map[string][]string, len(clients))
	seenDoc := make(map[string][]*entity.Client)
	lookupIDs := append([]string(nil), ids...)
	for _, c := range clients {
		key := c.TipoDocumento + ":" + c.NumeroDocumento
		rows, ok := seenDoc[key]
		if !ok {
			var err error
			rows, err = repos.Clients.ListByDocumento(ctx, c.TipoDocumento, c.NumeroDocumento)
			if err != nil {
				return nil, err
			}
			seenDoc[key] = rows
		}
		for _, row := range rows {
			if row.ID == c.ID {
				continue
			}
			previous[c.ID] = append(previous[c.ID], row.ID)
			lookupIDs = append(lookupIDs, row.ID)
		}
	}

	assignments, err := repos.Assignments.ListByClients(ctx, dedupe(lookupIDs))
	if err != nil {
		return nil, err
	}
	byClient := make(map[string][]*entity.RoomAssignment)
	roomIDs := make([]string, 0, len(assignments))
	for _, a := range assignments {
		byClient[a.ClientID] = append(byClient[a.ClientID], a)
		roomIDs = append(roomIDs, a.RoomID)
	}
	rooms, err := repos.Rooms.ListByIDs(ctx, dedupe(roomIDs))
	if err != nil {
		return nil, err
	}
	roomByID := make(map[string]*entity.Room, len(rooms))
	for _, r := range rooms {
		roomByID[r.ID] = r
	}

	out := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		resp := toClientResponse(c)
		for _, a := range byClient[c.ID] {
			ar := toAssignmentResponse(a, roomByID[a.RoomID])
			resp.HistorialHabitaciones = append(resp.HistorialHabitaciones, ar)
			if a.Activa() {
				resp.HabitacionesActivas = append(resp.HabitacionesActivas, ar)
			}
		}
		for _, prevID := range previous[c.ID] {
			for _, a := range byClient[prevID] {
				resp.HistorialDocumento = append(resp.HistorialDocumento, toAssignmentResponse(a, roomByID[a.RoomID]))
			}
		}
		resp.TotalHabitacionesActivas = len(resp.HabitacionesActivas)
		resp.EstaActivo = resp.TotalHabitacionesActivas > 0
		out = append(out, resp)
	}
	return out, nil
}

func toClientResponse(c *entity.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:                         c.ID,
		Nombres:                    c.Nombres,
		Apellidos:                  c.Apellidos,
		NombreCompleto:             c.NombreCompleto(),
		TipoDocumento:              c.TipoDocumento,
		TipoDocumentoDisplay:       entity.DocumentTypeLabels[c.TipoDocumento],
		NumeroDocumento:            c.NumeroDocumento,
		Edad:                       c.Edad,
		Telefono:                   c.Telefono,
		Direccion:                  c.Direccion,
		FechaIngreso:               c.FechaIngreso,
		FechaSalida:                c.FechaSalida,
		FechaSalidaReal:            c.FechaSalidaReal,
		NumeroHabitacionesDeseadas: c.NumeroHabitacionesDeseadas,
		TipoPago:                   c.TipoPago,
		TipoPagoDisplay:            entity.PaymentTypeLabels[c.TipoPago],
		MontoPagado:                c.MontoPagado,
		HabitacionesActivas:        []dto.AssignmentResponse{},
		HistorialHabitaciones:      []dto.AssignmentResponse{},
		HistorialDocumento:         []dto.AssignmentResponse{},
		CreatedAt:                  c.CreatedAt,
		UpdatedAt:                  c.UpdatedAt,
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
