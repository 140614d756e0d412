package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tradesoncall/backend/internal/apperr"
	"github.com/tradesoncall/backend/internal/model"
	"github.com/tradesoncall/backend/internal/repository"
	"github.com/tradesoncall/backend/internal/service"
)

// UserHandler covers registration, lookups and password changes.
type UserHandler struct {
	Auth  *service.AuthService
	Users *repository.UserRepo
}

func NewUserHandler(auth *service.AuthService, users *repository.UserRepo) *UserHandler {
	return &UserHandler{Auth: auth, Users: users}
}

type registerRequest struct {
	Phone    string  `json:"phone"`
	Email    *string `json:"email,omitempty"`
	Password string  `json:"password"`
	UserType string  `json:"userType"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Register handles POST /api/v1/users/register.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest("Invalid request body")
	}

	user, err := h.Auth.Register(c.Request().Context(), service.RegisterInput{
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
		UserType: model.UserType(req.UserType),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, success("User registered successfully", toUserResponse(user)))
}

// Me handles GET /api/v1/users/me, returning the authenticated caller.
func (h *UserHandler) Me(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success("User found", toUserResponse(*caller)))
}

// GetByID handles GET /api/v1/users/:id.
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Validation("id must be a valid UUID")
	}

	user, err := h.Users.GetByID(c.Request().Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("User", "id", id.String())
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success("User found", toUserResponse(user)))
}

// List handles GET /api/v1/users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, success("Users listed", out))
}

// ChangePassword handles PUT /api/v1/users/:id/password.  Users may only
// change their own password.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Validation("id must be a valid UUID")
	}

	caller, err := currentUser(c)
	if err != nil {
		return err
	}
	if caller.ID != id {
		return apperr.InvalidToken("Cannot change another user's password")
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest("Invalid request body")
	}

	updated, err := h.Auth.ChangePassword(c.Request().Context(), id, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success("Password changed successfully", toUserResponse(updated)))
}
