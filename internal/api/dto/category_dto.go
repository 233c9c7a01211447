package dto

import "github.com/spec-kit/shop-service/internal/domain"

// CategoryRequest payload for creating or updating a category.
type CategoryRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// CategoryResponse is the public view of a category.
type CategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// NewCategoryResponse maps a domain category.
func NewCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:    category.ID,
		Name:  category.Name,
		Icon:  category.Icon,
		Color: category.Color,
	}
}

// NewCategoryListResponse maps a slice of domain categories.
func NewCategoryListResponse(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, NewCategoryResponse(&categories[i]))
	}
	return out
}
