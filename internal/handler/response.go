package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/tradesoncall/backend/internal/apperr"
	"github.com/tradesoncall/backend/internal/model"
)

// APIResponse is the envelope shared by every endpoint.
type APIResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	TimeStamp time.Time `json:"timeStamp"`
}

func success(message string, data any) APIResponse {
	return APIResponse{Success: true, Message: message, Data: data, TimeStamp: time.Now().UTC()}
}

func failure(message string) APIResponse {
	return APIResponse{Success: false, Message: message, TimeStamp: time.Now().UTC()}
}

// UserResponse is the user projection returned by the API.
type UserResponse struct {
	UserID     string    `json:"userId"`
	Phone      string    `json:"phone"`
	Email      *string   `json:"email,omitempty"`
	UserType   string    `json:"userType"`
	Status     string    `json:"status"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toUserResponse(u model.User) UserResponse {
	return UserResponse{
		UserID:     u.ID.String(),
		Phone:      u.Phone,
		Email:      u.Email,
		UserType:   string(u.UserType),
		Status:     string(u.Status),
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

// HTTPErrorHandler translates service errors into the envelope exactly once
// at the boundary.  Error kinds carry their status; anything unclassified is
// a 500 with a generic message plus the detail.
func HTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			_ = c.JSON(apperr.HTTPStatus(appErr.Kind), failure(appErr.Message))
			return
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			_ = c.JSON(httpErr.Code, failure(fmt.Sprintf("%v", httpErr.Message)))
			return
		}

		log.Error("unexpected error",
			zap.String("path", c.Request().URL.Path),
			zap.Error(err))
		_ = c.JSON(http.StatusInternalServerError, echo.Map{
			"success":   false,
			"message":   "An unexpected error occurred",
			"error":     err.Error(),
			"timeStamp": time.Now().UTC(),
		})
	}
}
