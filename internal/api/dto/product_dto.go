package dto

import (
	"time"

	"github.com/spec-kit/shop-service/internal/domain"
)

// ProductRequest payload for creating or updating a product.
type ProductRequest struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	RichDescription string   `json:"richDescription"`
	Image           string   `json:"image"`
	Images          []string `json:"images"`
	Brand           string   `json:"brand"`
	Price           float64  `json:"price"`
	CategoryID      string   `json:"category"`
	CountInStock    int      `json:"countInStock"`
	IsFeatured      bool     `json:"isFeatured"`
}

// ProductResponse is the public view of a product.
type ProductResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	RichDescription string    `json:"richDescription"`
	Image           string    `json:"image"`
	Images          []string  `json:"images"`
	Brand           string    `json:"brand"`
	Price           float64   `json:"price"`
	CategoryID      string    `json:"category"`
	CountInStock    int       `json:"countInStock"`
	Rating          float64   `json:"rating"`
	NumReviews      int       `json:"numReviews"`
	IsFeatured      bool      `json:"isFeatured"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewProductResponse maps a domain product.
func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:              product.ID,
		Name:            product.Name,
		Description:     product.Description,
		RichDescription: product.RichDescription,
		Image:           product.Image,
		Images:          product.Images,
		Brand:           product.Brand,
		Price:           product.Price,
		CategoryID:      product.CategoryID,
		CountInStock:    product.CountInStock,
		Rating:          product.Rating,
		NumReviews:      product.NumReviews,
		IsFeatured:      product.IsFeatured,
		CreatedAt:       product.CreatedAt,
	}
}

// NewProductListResponse maps a slice of domain products.
func NewProductListResponse(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, NewProductResponse(&products[i]))
	}
	return out
}
