package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tradesoncall/backend/internal/apperr"
	"github.com/tradesoncall/backend/internal/middleware"
	"github.com/tradesoncall/backend/internal/service"
)

// AuthHandler exposes login, refresh and logout.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse carries the token pair together with the user identity.
type AuthResponse struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	TokenType    string  `json:"tokenType"`
	ExpiresIn    int64   `json:"expiresIn"`
	UserID       string  `json:"userId"`
	Phone        string  `json:"phone"`
	Email        *string `json:"email,omitempty"`
	UserType     string  `json:"userType"`
	Status       string  `json:"status"`
	IsVerified   bool    `json:"isVerified"`
}

// RefreshTokenResponse is the slimmer payload returned on token rotation.
type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
	UserID       string `json:"userId"`
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest("Invalid request body")
	}

	user, pair, err := h.Auth.Login(c.Request().Context(), req.Phone, req.Password)
	if err != nil {
		return err
	}

	resp := AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
		UserID:       user.ID.String(),
		Phone:        user.Phone,
		Email:        user.Email,
		UserType:     string(user.UserType),
		Status:       string(user.Status),
		IsVerified:   user.IsVerified,
	}
	return c.JSON(http.StatusOK, success("Login successful", resp))
}

// Refresh handles POST /api/v1/auth/refresh.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest("Invalid request body")
	}
	if req.RefreshToken == "" {
		return apperr.Validation("refreshToken is required")
	}

	userID, pair, err := h.Auth.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	resp := RefreshTokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
		UserID:       userID.String(),
	}
	return c.JSON(http.StatusOK, success("Token refreshed", resp))
}

// Logout handles POST /api/v1/auth/logout.  The bearer token identifies the
// session; the stored refresh token is deleted so both tokens stop working.
func (h *AuthHandler) Logout(c echo.Context) error {
	raw := middleware.BearerToken(c)
	if raw == "" {
		return apperr.InvalidToken("Missing access token")
	}

	if err := h.Auth.Logout(c.Request().Context(), raw); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success("Logged out successfully", nil))
}
