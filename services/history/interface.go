// Package history caches previously resolved trips for the active session and
// answers lookup-or-fetch queries against the backend.
package history

import (
	"context"

	"tripplanner/models"
)

// Backend is the slice of the planner API the history service needs.
type Backend interface {
	GetHistory(ctx context.Context, token string) ([]models.HistoryEntry, error)
	FindUserTrip(ctx context.Context, req models.TripRequest, token string) (*models.TripPlan, error)
}

// Store holds history entries per session key. Backend order is preserved.
type Store interface {
	Replace(ctx context.Context, key string, entries []models.HistoryEntry) error
	List(ctx context.Context, key string) ([]models.HistoryEntry, error)
}

// Service is the history cache contract.
type Service interface {
	// Refresh re-fetches the caller's history wholesale and replaces the
	// cached copy.
	Refresh(ctx context.Context, token string) ([]models.HistoryEntry, error)
	// List returns the cached history, refreshing first if nothing is cached.
	List(ctx context.Context, token string) ([]models.HistoryEntry, error)
	// FindMatching looks up a previously computed plan by request equality.
	// Returns client.ErrNotFound when the backend has no match; the caller
	// then falls back to a fresh submission. A hit refreshes the cache.
	FindMatching(ctx context.Context, req models.TripRequest, token string) (*models.TripPlan, error)
}

// DefaultHistoryService is the production implementation. Entries are keyed
// by the bearer token, which identifies the session.
type DefaultHistoryService struct {
	Backend Backend
	Store   Store
}

var _ Service = (*DefaultHistoryService)(nil)

func (s *DefaultHistoryService) Refresh(ctx context.Context, token string) ([]models.HistoryEntry, error) {
	entries, err := s.Backend.GetHistory(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.Store.Replace(ctx, token, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *DefaultHistoryService) List(ctx context.Context, token string) ([]models.HistoryEntry, error) {
	entries, err := s.Store.List(ctx, token)
	if err == nil && entries != nil {
		return entries, nil
	}
	return s.Refresh(ctx, token)
}

func (s *DefaultHistoryService) FindMatching(ctx context.Context, req models.TripRequest, token string) (*models.TripPlan, error) {
	plan, err := s.Backend.FindUserTrip(ctx, req, token)
	if err != nil {
		return nil, err
	}
	// Lookup succeeded; the backend may have touched history, refresh it.
	// A refresh failure degrades the cache, not the lookup.
	_, _ = s.Refresh(ctx, token)
	return plan, nil
}
