package dto

import (
	"time"

	"github.com/spec-kit/shop-service/internal/domain"
)

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	IsAdmin   bool   `json:"isAdmin"`
	Street    string `json:"street"`
	Apartment string `json:"apartment"`
	Zip       string `json:"zip"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public view of a user; the password hash never leaves
// the service.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IsAdmin   bool      `json:"isAdmin"`
	Street    string    `json:"street"`
	Apartment string    `json:"apartment"`
	Zip       string    `json:"zip"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		IsAdmin:   user.IsAdmin,
		Street:    user.Street,
		Apartment: user.Apartment,
		Zip:       user.Zip,
		City:      user.City,
		Country:   user.Country,
		CreatedAt: user.CreatedAt,
	}
}
