package model

import (
    "time"

    "github.com/google/uuid"
)

// SearchHistory is an append-only audit row written after every service
// search that returned at least one result.  Rows are never updated.
//
// Fields:
//  ID           – auto increment primary key.
//  UserID       – the user who performed the search.
//  ServiceType  – the requested service type name (e.g. "PLUMBER").
//  Location     – the free-form location string as entered.
//  Latitude     – latitude of the first result (nullable).
//  Longitude    – longitude of the first result (nullable).
//  ResultsCount – number of results after post-filtering.
//  CreatedAt    – timestamp of the search.
type SearchHistory struct {
    ID           uint64      // search_history.id
    UserID       uuid.UUID   // search_history.user_id
    ServiceType  ServiceType // search_history.service_type
    Location     string      // search_history.location
    Latitude     *float64    // search_history.latitude (DECIMAL(10,7), nullable)
    Longitude    *float64    // search_history.longitude (DECIMAL(10,7), nullable)
    ResultsCount int         // search_history.results_count
    CreatedAt    time.Time   // search_history.created_at
}
