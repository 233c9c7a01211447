package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/repository"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// UsersHandler exposes the session lifecycle endpoints and the admin-only
// user management operations.
type UsersHandler struct {
	auth     *service.AuthService
	users    repository.UserRepository
	sessions *auth.SessionWriter
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, users repository.UserRepository, sessions *auth.SessionWriter) *UsersHandler {
	return &UsersHandler{auth: authService, users: users, sessions: sessions}
}

// Register handles POST /api/v1/users/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Phone == "" {
		return apperrors.NewValidationError("name, email, password, phone required", nil)
	}

	user := &domain.User{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		IsAdmin:   req.IsAdmin,
		Street:    req.Street,
		Apartment: req.Apartment,
		Zip:       req.Zip,
		City:      req.City,
		Country:   req.Country,
	}
	if err := h.auth.Register(c.Context(), user, req.Password); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"user": dto.NewUserResponse(user)},
	})
}

// Login handles POST /api/v1/users/login. Both session tokens are written
// as cookies; nothing token-shaped appears in the response body.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, pair, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.sessions.WriteAccess(c, pair.AccessToken, pair.AccessTTL)
	h.sessions.WriteRefresh(c, pair.RefreshToken, pair.RefreshTTL)

	return c.JSON(fiber.Map{
		"data": fiber.Map{"user": dto.NewUserResponse(user)},
	})
}

// Refresh handles POST /api/v1/users/refresh. Only the refresh cookie is
// accepted; a fresh access cookie is written on success.
func (h *UsersHandler) Refresh(c *fiber.Ctx) error {
	token, ok := auth.ExtractRefreshToken(c)
	if !ok {
		return apperrors.NewUnauthorized("refresh token not provided")
	}

	accessToken, ttl, err := h.auth.Refresh(c.Context(), token)
	if err != nil {
		return err
	}

	h.sessions.WriteAccess(c, accessToken, ttl)
	return c.JSON(fiber.Map{"data": fiber.Map{"refreshed": true}})
}

// Logout handles POST /api/v1/users/logout. With no session cookie present
// this is a caller error, not a silent success.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	hasAccess := c.Cookies(auth.AccessCookieName) != ""
	hasRefresh := c.Cookies(auth.RefreshCookieName) != ""
	if !hasAccess && !hasRefresh {
		return apperrors.NewAlreadyLoggedOut()
	}

	h.sessions.Clear(c)
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}

// List handles GET /api/v1/users (admin).
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"users": out}})
}

// Get handles GET /api/v1/users/:id (admin).
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"user": dto.NewUserResponse(user)}})
}

// Count handles GET /api/v1/users/get/count (admin).
func (h *UsersHandler) Count(c *fiber.Ctx) error {
	count, err := h.users.Count(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"count": count}})
}

// Delete handles DELETE /api/v1/users/:id (admin).
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.Context(), c.Params("id")); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}
