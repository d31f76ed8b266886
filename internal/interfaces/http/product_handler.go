package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/product-console/internal/application/dto"
	"github.com/jhoicas/product-console/internal/application/usecase"
	"github.com/jhoicas/product-console/internal/domain"
)

// ProductHandler expone el contrato REST del servicio de productos.
// La documentación OpenAPI vive en docs/swagger.json (servida en /docs).
type ProductHandler struct {
	uc  *usecase.ProductUseCase
	log zerolog.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

// Display GET /display: todos los productos ordenados por id.
func (h *ProductHandler) Display(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Insert POST /insert: 201, o 409 si el id ya existe.
func (h *ProductHandler) Insert(c *fiber.Ctx) error {
	var in dto.ProductRecord
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Insert(c.UserContext(), in); err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "producto insertado"})
}

// Update PUT /update: reemplaza el producto con ese id (404 si no existe).
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.ProductRecord
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Update(c.UserContext(), in); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "producto actualizado"})
}

// Delete DELETE /delete/:id.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "producto eliminado"})
}

func (h *ProductHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un producto con ese id"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	h.log.Error().Err(err).Str("path", c.Path()).Msg("error del servicio de productos")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
