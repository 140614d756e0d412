package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tradesoncall/backend/internal/apperr"
	"github.com/tradesoncall/backend/internal/model"
	"github.com/tradesoncall/backend/internal/repository"
	"github.com/tradesoncall/backend/internal/service"
)

// SearchHandler exposes service search and the caller's search history.
type SearchHandler struct {
	Search  *service.SearchService
	History *repository.HistoryRepo
}

func NewSearchHandler(search *service.SearchService, history *repository.HistoryRepo) *SearchHandler {
	return &SearchHandler{Search: search, History: history}
}

type searchRequest struct {
	ServiceType string   `json:"serviceType"`
	Location    string   `json:"location"`
	RadiusMiles int      `json:"radiusMiles,omitempty"`
	MaxResults  int      `json:"maxResults,omitempty"`
	MinRating   *float64 `json:"minRating,omitempty"`
	OpenNow     *bool    `json:"openNow,omitempty"`
}

type historyEntry struct {
	ServiceType  string    `json:"serviceType"`
	Location     string    `json:"location"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	ResultsCount int       `json:"resultsCount"`
	SearchedAt   time.Time `json:"searchedAt"`
}

// Services handles POST /api/v1/search/services.
func (h *SearchHandler) Services(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest("Invalid request body")
	}

	results, err := h.Search.Search(c.Request().Context(), caller.ID, service.SearchRequest{
		ServiceType: model.ServiceType(req.ServiceType),
		Location:    req.Location,
		RadiusMiles: req.RadiusMiles,
		MaxResults:  req.MaxResults,
		MinRating:   req.MinRating,
		OpenNow:     req.OpenNow,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success("Search completed", results))
}

// GetHistory handles GET /api/v1/search/history.
func (h *SearchHandler) GetHistory(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	rows, err := h.History.ListByUser(c.Request().Context(), caller.ID)
	if err != nil {
		return err
	}

	out := make([]historyEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, historyEntry{
			ServiceType:  string(row.ServiceType),
			Location:     row.Location,
			Latitude:     row.Latitude,
			Longitude:    row.Longitude,
			ResultsCount: row.ResultsCount,
			SearchedAt:   row.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, success("Search history", out))
}
