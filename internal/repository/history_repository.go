package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/tradesoncall/backend/internal/model"
)

// HistoryRepo appends search audit rows to the `search_history` table.
// Rows are insert-only; nothing updates or deletes them.
type HistoryRepo struct{ DB *sql.DB }

func NewHistoryRepo(db *sql.DB) *HistoryRepo { return &HistoryRepo{DB: db} }

// Append inserts one audit row.
func (r *HistoryRepo) Append(ctx context.Context, h model.SearchHistory) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO search_history (user_id, service_type, location, latitude, longitude, results_count, created_at) VALUES (?,?,?,?,?,?,?)",
		h.UserID.String(), string(h.ServiceType), h.Location, h.Latitude, h.Longitude, h.ResultsCount, h.CreatedAt)
	return err
}

// ListByUser returns the user's searches, most recent first.
func (r *HistoryRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.SearchHistory, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, service_type, location, latitude, longitude, results_count, created_at FROM search_history WHERE user_id=? ORDER BY created_at DESC",
		userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SearchHistory
	for rows.Next() {
		var (
			h         model.SearchHistory
			userIDStr string
			svcType   string
			lat, lng  sql.NullFloat64
			createdAt time.Time
		)
		if err := rows.Scan(&h.ID, &userIDStr, &svcType, &lat, &lng, &h.ResultsCount, &createdAt); err != nil {
			return nil, err
		}
		h.UserID, err = uuid.Parse(userIDStr)
		if err != nil {
			return nil, err
		}
		h.ServiceType = model.ServiceType(svcType)
		if lat.Valid {
			v := lat.Float64
			h.Latitude = &v
		}
		if lng.Valid {
			v := lng.Float64
			h.Longitude = &v
		}
		h.CreatedAt = createdAt
		out = append(out, h)
	}
	return out, rows.Err()
}
