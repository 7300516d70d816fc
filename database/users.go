package database

import (
	"errors"
	"strings"
	"sync"
	"time"

	"tripplanner/models"

	"github.com/google/uuid"
)

// ErrUsernameTaken is returned when creating a user whose username exists.
var ErrUsernameTaken = errors.New("database: username already taken")

// ErrUserNotFound is returned when a user lookup misses.
var ErrUserNotFound = errors.New("database: user not found")

// StoredTrip is a user's resolved trip together with the request that
// produced it, so submissions can short-circuit on request equality.
type StoredTrip struct {
	TripID    string
	Request   models.TripRequest
	Plan      *models.TripPlan
	CreatedAt time.Time
}

// UserRecord is one registered account.
type UserRecord struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	Trips        []StoredTrip
}

// UserStore tracks accounts and their resolved trips.
type UserStore struct {
	mu         sync.RWMutex
	byID       map[string]*UserRecord
	byUsername map[string]string // username -> id
}

// NewUserStore creates an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{
		byID:       make(map[string]*UserRecord),
		byUsername: make(map[string]string),
	}
}

// Create registers a new account and returns its id.
func (s *UserStore) Create(username, passwordHash string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(username))

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byUsername[key]; exists {
		return "", ErrUsernameTaken
	}
	id := uuid.NewString()
	s.byID[id] = &UserRecord{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.byUsername[key] = id
	return id, nil
}

// GetByUsername returns a copy of the account record.
func (s *UserStore) GetByUsername(username string) (UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUsername[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return UserRecord{}, ErrUserNotFound
	}
	return *s.byID[id], nil
}

// GetByID returns a copy of the account record.
func (s *UserStore) GetByID(id string) (UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[id]
	if !ok {
		return UserRecord{}, ErrUserNotFound
	}
	return *rec, nil
}

// AddTrip appends a resolved trip to the user's history and returns its id.
func (s *UserStore) AddTrip(userID string, req models.TripRequest, plan *models.TripPlan) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byID[userID]
	if !ok {
		return "", ErrUserNotFound
	}
	tripID := uuid.NewString()
	if plan != nil && plan.TripID == "" {
		plan.TripID = tripID
	}
	rec.Trips = append(rec.Trips, StoredTrip{
		TripID:    tripID,
		Request:   req,
		Plan:      plan,
		CreatedAt: time.Now(),
	})
	return tripID, nil
}

// FindTrip looks up a stored trip by request equality.
func (s *UserStore) FindTrip(userID string, req models.TripRequest) (*models.TripPlan, bool) {
	key := req.Key()

	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[userID]
	if !ok {
		return nil, false
	}
	for _, trip := range rec.Trips {
		if trip.Request.Key() == key {
			return trip.Plan, true
		}
	}
	return nil, false
}

// History returns the user's trips as history entries, in resolution order.
func (s *UserStore) History(userID string) []models.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[userID]
	if !ok {
		return nil
	}
	entries := make([]models.HistoryEntry, 0, len(rec.Trips))
	for _, trip := range rec.Trips {
		entries = append(entries, models.HistoryEntry{
			TripID:      trip.TripID,
			Destination: trip.Request.StartLocation,
			StartDate:   trip.Request.StartDate,
			EndDate:     trip.Request.EndDate,
			Interests:   trip.Request.Interests,
		})
	}
	return entries
}
