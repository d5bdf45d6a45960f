package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Hotel-api/internal/application/dto"
	"github.com/jhoicas/Hotel-api/internal/application/rooms"
)

// RoomHandler maneja las peticiones HTTP de habitaciones.
type RoomHandler struct {
	uc *rooms.RoomUseCase
}

// NewRoomHandler construye el handler.
func NewRoomHandler(uc *rooms.RoomUseCase) *RoomHandler {
	return &RoomHandler{uc: uc}
}

// Create godoc
// @Summary      Crear habitación
// @Tags         rooms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRoomRequest  true  "Datos de la habitación"
// @Success      201   {object}  dto.RoomResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/rooms [post]
func (h *RoomHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRoomRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener habitación por ID
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la habitación"
// @Success      200  {object}  dto.RoomResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rooms/{id} [get]
func (h *RoomHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar habitaciones
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Param        tipo        query  string  false  "simple | doble | triple | familiar"
// @Param        estado      query  string  false  "disponible | ocupado | sucio | mantenimiento"
// @Param        precio_min  query  string  false  "Precio mínimo"
// @Param        precio_max  query  string  false  "Precio máximo"
// @Param        q           query  string  false  "Número o descripción"
// @Success      200  {array}   dto.RoomResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/rooms [get]
func (h *RoomHandler) List(c *fiber.Ctx) error {
	var in dto.RoomFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Available godoc
// @Summary      Habitaciones disponibles para asignar
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AvailableRoomsResponse
// @Router       /api/rooms/disponibles [get]
func (h *RoomHandler) Available(c *fiber.Ctx) error {
	out, err := h.uc.ListAvailable(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar habitación
// @Tags         rooms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la habitación"
// @Param        body  body  dto.UpdateRoomRequest  true  "Datos editables"
// @Success      200   {object}  dto.RoomResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/rooms/{id} [put]
func (h *RoomHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRoomRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar habitación sin historial
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la habitación"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/rooms/{id} [delete]
func (h *RoomHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Habitación eliminada exitosamente"})
}

// ChangeStatus godoc
// @Summary      Cambiar el estado de una habitación (personal)
// @Tags         rooms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la habitación"
// @Param        body  body  dto.ChangeRoomStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.ChangeRoomStatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/rooms/{id}/cambiar_estado [patch]
func (h *RoomHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeRoomStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Transitions godoc
// @Summary      Bitácora de estados de la habitación
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID de la habitación"
// @Param        limit  query  int     false  "Límite"  default(50)
// @Success      200  {array}   dto.RoomTransitionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rooms/{id}/transiciones [get]
func (h *RoomHandler) Transitions(c *fiber.Ctx) error {
	out, err := h.uc.Transitions(c.UserContext(), c.Params("id"), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Statistics godoc
// @Summary      Estadísticas de habitaciones
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RoomStatsResponse
// @Router       /api/rooms/estadisticas [get]
func (h *RoomHandler) Statistics(c *fiber.Ctx) error {
	out, err := h.uc.Statistics(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CheckNumero godoc
// @Summary      Verificar si un número de habitación está libre
// @Tags         rooms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NumeroCheckRequest  true  "Número y habitación a excluir"
// @Success      200   {object}  dto.NumeroCheckResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/rooms/check_numero_disponible [post]
func (h *RoomHandler) CheckNumero(c *fiber.Ctx) error {
	var in dto.NumeroCheckRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CheckNumeroDisponible(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Consistency godoc
// @Summary      Auditoría de habitaciones contra asignaciones activas
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ConsistencyReportResponse
// @Router       /api/rooms/consistencia [get]
func (h *RoomHandler) Consistency(c *fiber.Ctx) error {
	out, err := h.uc.ConsistencyReport(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}
