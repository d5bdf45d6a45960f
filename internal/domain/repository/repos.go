package repository

// Repos agrupa los repositorios atados a una misma transacción (o al pool).
type Repos struct {
	Rooms       RoomRepository
	Clients     ClientRepository
	Assignments AssignmentRepository
	Transitions RoomTransitionRepository
}
