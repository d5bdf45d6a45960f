package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/jhoicas/Hotel-api/internal/application/clients"
	"github.com/jhoicas/Hotel-api/internal/application/occupancy"
	"github.com/jhoicas/Hotel-api/internal/application/rooms"
	"github.com/jhoicas/Hotel-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RoomUC    *rooms.RoomUseCase
	ClientUC  *clients.ClientUseCase
	Occupancy *occupancy.Service
	Resolver  *occupancy.Resolver
	JWTSecret string
	// Gatherer expone /metrics; nil omite la ruta.
	Gatherer prometheus.Gatherer
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// Todo /api requiere Bearer Token del personal
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	staff := RequireRole(jwt.RoleAdmin, jwt.RoleRecepcion, jwt.RoleLimpieza)
	front := RequireRole(jwt.RoleAdmin, jwt.RoleRecepcion)
	admin := RequireRole(jwt.RoleAdmin)

	roomHandler := NewRoomHandler(deps.RoomUC)
	clientHandler := NewClientHandler(deps.ClientUC, deps.Occupancy, deps.Resolver)

	// Rooms: rutas fijas antes de /:id
	roomsGroup := api.Group("/rooms")
	roomsGroup.Get("/disponibles", staff, roomHandler.Available)
	roomsGroup.Get("/estadisticas", staff, roomHandler.Statistics)
	roomsGroup.Get("/consistencia", admin, roomHandler.Consistency)
	roomsGroup.Post("/check_numero_disponible", admin, roomHandler.CheckNumero)
	roomsGroup.Get("/", staff, roomHandler.List)
	roomsGroup.Post("/", admin, roomHandler.Create)
	roomsGroup.Get("/:id", staff, roomHandler.GetByID)
	roomsGroup.Put("/:id", admin, roomHandler.Update)
	roomsGroup.Delete("/:id", admin, roomHandler.Delete)
	roomsGroup.Patch("/:id/cambiar_estado", staff, roomHandler.ChangeStatus)
	roomsGroup.Get("/:id/transiciones", staff, roomHandler.Transitions)

	// Clients: recepción y administración
	clientsGroup := api.Group("/clients", front)
	clientsGroup.Get("/activos", clientHandler.Activos)
	clientsGroup.Get("/habitaciones_disponibles", roomHandler.Available)
	clientsGroup.Post("/check_documento_disponible", clientHandler.CheckDocumento)
	clientsGroup.Get("/", clientHandler.List)
	clientsGroup.Post("/", clientHandler.Create)
	clientsGroup.Get("/:id", clientHandler.GetByID)
	clientsGroup.Put("/:id", clientHandler.Update)
	clientsGroup.Delete("/:id", clientHandler.Delete)
	clientsGroup.Post("/:id/agregar_habitaciones", clientHandler.AddRooms)
	clientsGroup.Post("/:id/liberar_habitaciones", clientHandler.ReleaseRooms)
}
