package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Rentario-api/internal/application/dto"
	"github.com/jhoicas/Rentario-api/internal/application/usecase"
)

// RentalItemHandler maneja las peticiones HTTP del catálogo de artículos.
type RentalItemHandler struct {
	uc *usecase.RentalItemUseCase
}

// NewRentalItemHandler construye el handler.
func NewRentalItemHandler(uc *usecase.RentalItemUseCase) *RentalItemHandler {
	return &RentalItemHandler{uc: uc}
}

// Create POST /api/items
func (h *RentalItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRentalItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// List GET /api/items?limit=20&offset=0 (operadores de plataforma agregan tenant_id)
func (h *RentalItemHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	list, err := h.uc.List(c.UserContext(), GetPrincipal(c), c.Query("tenant_id"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/items/:id
func (h *RentalItemHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.uc.GetByID(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// Update PUT /api/items/:id
func (h *RentalItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRentalItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.Update(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// Delete DELETE /api/items/:id
func (h *RentalItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetPrincipal(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListPublic GET /api/public/:slug/items
// Catálogo del widget de reservas: sin autenticación, solo artículos activos.
func (h *RentalItemHandler) ListPublic(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	items, err := h.uc.ListPublicBySlug(c.UserContext(), c.Params("slug"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(items)
}
