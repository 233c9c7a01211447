package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// CategoriesHandler exposes category endpoints.
type CategoriesHandler struct {
	catalog *service.CatalogService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(catalog *service.CatalogService) *CategoriesHandler {
	return &CategoriesHandler{catalog: catalog}
}

// List handles GET /api/v1/categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"categories": dto.NewCategoryListResponse(categories)}})
}

// Get handles GET /api/v1/categories/:id.
func (h *CategoriesHandler) Get(c *fiber.Ctx) error {
	category, err := h.catalog.GetCategory(c.Context(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"category": dto.NewCategoryResponse(category)}})
}

// Create handles POST /api/v1/categories (admin).
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	req, err := parseCategory(c)
	if err != nil {
		return err
	}

	category := &domain.Category{Name: req.Name, Icon: req.Icon, Color: req.Color}
	if err := h.catalog.CreateCategory(c.Context(), category); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"category": dto.NewCategoryResponse(category)},
	})
}

// Update handles PUT /api/v1/categories/:id (admin).
func (h *CategoriesHandler) Update(c *fiber.Ctx) error {
	req, err := parseCategory(c)
	if err != nil {
		return err
	}

	category := &domain.Category{ID: c.Params("id"), Name: req.Name, Icon: req.Icon, Color: req.Color}
	if err := h.catalog.UpdateCategory(c.Context(), category); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"category": dto.NewCategoryResponse(category)}})
}

// Delete handles DELETE /api/v1/categories/:id (admin).
func (h *CategoriesHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteCategory(c.Context(), c.Params("id")); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func parseCategory(c *fiber.Ctx) (*dto.CategoryRequest, error) {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	return &req, nil
}
