package hotel

import (
	"github.com/jhoicas/Hotel-api/internal/domain"
	"github.com/jhoicas/Hotel-api/internal/domain/entity"
)

// Transiciones automáticas de Room.Estado:
//
//	disponible --asignación--> ocupado
//	ocupado    --liberación--> sucio
//
// Cualquier otro cambio es manual (personal) y no tiene restricciones.

// ReleaseTarget estado al que pasa una habitación al liberarse.
func ReleaseTarget() string {
	return entity.RoomStatusSucio
}

// CheckRoomConsistency compara el estado de la habitación con sus asignaciones activas.
// Devuelve nil si son coherentes.
func CheckRoomConsistency(room *entity.Room, activeAssignments int) *domain.ConsistencyViolation {
	v := &domain.ConsistencyViolation{
		RoomID:            room.ID,
		Numero:            room.Numero,
		Estado:            room.Estado,
		ActiveAssignments: activeAssignments,
	}
	switch {
	case activeAssignments > 1:
		v.Kind = domain.KindMultiplesAsignacionesActivas
	case room.Estado == entity.RoomStatusOcupado && activeAssignments == 0:
		v.Kind = domain.KindOcupadoSinAsignacion
	case room.Estado != entity.RoomStatusOcupado && activeAssignments == 1:
		v.Kind = domain.KindAsignacionEnHabitacionLibre
	default:
		return nil
	}
	return v
}
