package handlers

import (
	"arcbank/internal/services/auth"
	"arcbank/internal/utils/response"
	"arcbank/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler exposes login and token refresh endpoints.
type AuthHandler struct {
	service auth.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(s auth.Service) *AuthHandler { return &AuthHandler{service: s} }

// Login handles POST /api/login requests.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	v := validation.New()
	v.Email("email", req.Email)
	v.Required("password", req.Password)
	if !v.Valid() {
		return response.BadRequest(c, v.Message())
	}

	user, accessToken, refreshToken, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "login successful", fiber.Map{
		"user":          user,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Refresh handles POST /api/refresh requests.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	accessToken, refreshToken, err := h.service.RefreshTokens(c.Context(), req.RefreshToken)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "tokens refreshed", fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}
