package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/tradesoncall/backend/internal/apperr"
	"github.com/tradesoncall/backend/internal/model"
)

// currentUser returns the authenticated user placed on the context by the
// auth middleware.
func currentUser(c echo.Context) (*model.User, error) {
	u, ok := c.Get("user").(*model.User)
	if !ok || u == nil {
		return nil, apperr.InvalidToken("Authentication required")
	}
	return u, nil
}
