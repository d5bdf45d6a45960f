package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Hotel-api/internal/application/clients"
	"github.com/jhoicas/Hotel-api/internal/application/dto"
	"github.com/jhoicas/Hotel-api/internal/application/occupancy"
)

// ClientHandler maneja las peticiones HTTP de clientes y su ocupación.
type ClientHandler struct {
	uc       *clients.ClientUseCase
	svc      *occupancy.Service
	resolver *occupancy.Resolver
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *clients.ClientUseCase, svc *occupancy.Service, resolver *occupancy.Resolver) *ClientHandler {
	return &ClientHandler{uc: uc, svc: svc, resolver: resolver}
}

// Create godoc
// @Summary      Registrar cliente con habitaciones
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClientRequest  true  "Datos del cliente y habitaciones_seleccionadas"
// @Success      201   {object}  dto.CreateClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.CreateClientWithRooms(c.UserContext(), in, GetUserID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente con habitaciones activas e historial
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar clientes
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        tipo_documento       query  string  false  "DNI | pasaporte | carnet_extranjeria"
// @Param        tipo_pago            query  string  false  "efectivo | billetera_digital | visa"
// @Param        q                    query  string  false  "Nombre, apellido o documento"
// @Param        solo_activos         query  bool    false  "Solo clientes hospedados"
// @Param        fecha_ingreso_desde  query  string  false  "AAAA-MM-DD"
// @Param        fecha_ingreso_hasta  query  string  false  "AAAA-MM-DD"
// @Param        limit                query  int     false  "Límite"  default(50)
// @Param        offset               query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ClientListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	var in dto.ClientFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Activos godoc
// @Summary      Clientes hospedados actualmente
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ClientResponse
// @Router       /api/clients/activos [get]
func (h *ClientHandler) Activos(c *fiber.Ctx) error {
	out, err := h.uc.Activos(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar datos del cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID del cliente"
// @Param        body  body  dto.ClientInput  true  "Datos del cliente"
// @Success      200   {object}  dto.ClientMessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.ClientInput
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
// @Summary      Eliminar cliente (libera sus habitaciones)
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.DeleteClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	out, err := h.svc.DeleteClient(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// AddRooms godoc
// @Summary      Agregar habitaciones a un cliente hospedado
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del cliente"
// @Param        body  body  dto.AddRoomsRequest  true  "habitaciones_adicionales"
// @Success      200   {object}  dto.AddRoomsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clients/{id}/agregar_habitaciones [post]
func (h *ClientHandler) AddRooms(c *fiber.Ctx) error {
	var in dto.AddRoomsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.AddRooms(c.UserContext(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ReleaseRooms godoc
// @Summary      Liberar todas las habitaciones del cliente (check-out)
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ReleaseRoomsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/clients/{id}/liberar_habitaciones [post]
func (h *ClientHandler) ReleaseRooms(c *fiber.Ctx) error {
	out, err := h.svc.ReleaseRooms(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CheckDocumento godoc
// @Summary      Verificar si un documento puede registrarse
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DocumentoCheckRequest  true  "Tipo y número de documento"
// @Success      200   {object}  dto.DocumentoCheckResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/clients/check_documento_disponible [post]
func (h *ClientHandler) CheckDocumento(c *fiber.Ctx) error {
	var in dto.DocumentoCheckRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.resolver.Check(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
