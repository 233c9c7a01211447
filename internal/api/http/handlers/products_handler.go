package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// ProductsHandler exposes catalog product endpoints. Reads are public via
// the exemption list; mutations are admin-only.
type ProductsHandler struct {
	catalog *service.CatalogService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(catalog *service.CatalogService) *ProductsHandler {
	return &ProductsHandler{catalog: catalog}
}

// List handles GET /api/v1/products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	page, limit, err := pagination(c)
	if err != nil {
		return err
	}
	result, err := h.catalog.ListProducts(c.Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"products": dto.NewProductListResponse(result.Products),
		"total":    result.Total,
		"page":     result.Page,
		"pages":    result.Pages,
	}})
}

// ByCategory handles GET /api/v1/products/by-category/:id.
func (h *ProductsHandler) ByCategory(c *fiber.Ctx) error {
	page, limit, err := pagination(c)
	if err != nil {
		return err
	}
	result, err := h.catalog.ListProductsByCategory(c.Context(), c.Params("id"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"products": dto.NewProductListResponse(result.Products),
		"total":    result.Total,
		"page":     result.Page,
		"pages":    result.Pages,
	}})
}

// Featured handles GET /api/v1/products/get/featured/:count.
func (h *ProductsHandler) Featured(c *fiber.Ctx) error {
	count, err := strconv.Atoi(c.Params("count"))
	if err != nil || count < 1 {
		return apperrors.NewValidationError("count must be a positive number", nil)
	}
	products, err := h.catalog.ListFeaturedProducts(c.Context(), count)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"products": dto.NewProductListResponse(products)}})
}

// Count handles GET /api/v1/products/get/count.
func (h *ProductsHandler) Count(c *fiber.Ctx) error {
	count, err := h.catalog.CountProducts(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"count": count}})
}

// Get handles GET /api/v1/products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.catalog.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"product": dto.NewProductResponse(product)}})
}

// Create handles POST /api/v1/products (admin).
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	req, err := parseProduct(c)
	if err != nil {
		return err
	}

	product := productFromRequest(req)
	if err := h.catalog.CreateProduct(c.Context(), product); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"product": dto.NewProductResponse(product)},
	})
}

// Update handles PUT /api/v1/products/:id (admin).
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	req, err := parseProduct(c)
	if err != nil {
		return err
	}

	product := productFromRequest(req)
	product.ID = c.Params("id")
	if err := h.catalog.UpdateProduct(c.Context(), product); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"product": dto.NewProductResponse(product)}})
}

// Delete handles DELETE /api/v1/products/:id (admin).
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteProduct(c.Context(), c.Params("id")); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func parseProduct(c *fiber.Ctx) (*dto.ProductRequest, error) {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Description == "" || req.CategoryID == "" {
		return nil, apperrors.NewValidationError("name, description, category required", nil)
	}
	if req.CountInStock < 0 {
		return nil, apperrors.NewValidationError("countInStock must not be negative", nil)
	}
	return &req, nil
}

func productFromRequest(req *dto.ProductRequest) *domain.Product {
	return &domain.Product{
		Name:            req.Name,
		Description:     req.Description,
		RichDescription: req.RichDescription,
		Image:           req.Image,
		Images:          req.Images,
		Brand:           req.Brand,
		Price:           req.Price,
		CategoryID:      req.CategoryID,
		CountInStock:    req.CountInStock,
		IsFeatured:      req.IsFeatured,
	}
}

func pagination(c *fiber.Ctx) (page, limit int, err error) {
	page = c.QueryInt("page", 1)
	limit = c.QueryInt("limit", 10)
	if page < 1 || limit < 1 {
		return 0, 0, apperrors.NewValidationError("page and limit must be positive numbers", nil)
	}
	return page, limit, nil
}
