package database

import (
	"time"

	"tripplanner/models"
)

// Request lifecycle states as stored by the backend.
const (
	RequestStatusPending = "pending"
	RequestStatusDone    = "done"
	RequestStatusFailed  = "failed"
)

// RequestRecord is one submitted planning request awaiting (or holding) its
// result.
type RequestRecord struct {
	RequestID string
	UserID    string
	Status    string
	Request   models.TripRequest
	Result    *models.TripPlan
	Error     string
	CreatedAt time.Time
}

// RequestStore tracks planning requests by request id.
type RequestStore struct {
	store *MemoryStore[string, RequestRecord]
}

// NewRequestStore creates an empty request store.
func NewRequestStore() *RequestStore {
	return &RequestStore{store: NewMemoryStore[string, RequestRecord]()}
}

// CreatePending registers a freshly submitted request.
func (s *RequestStore) CreatePending(requestID, userID string, req models.TripRequest) {
	s.store.Set(requestID, RequestRecord{
		RequestID: requestID,
		UserID:    userID,
		Status:    RequestStatusPending,
		Request:   req,
		CreatedAt: time.Now(),
	})
}

// Get returns the record for a request id.
func (s *RequestStore) Get(requestID string) (RequestRecord, bool) {
	return s.store.Get(requestID)
}

// MarkDone attaches the computed plan and flips the record to done.
func (s *RequestStore) MarkDone(requestID string, plan *models.TripPlan) bool {
	return s.store.Update(requestID, func(rec RequestRecord) RequestRecord {
		rec.Status = RequestStatusDone
		rec.Result = plan
		return rec
	})
}

// MarkFailed records a planning failure.
func (s *RequestStore) MarkFailed(requestID string, reason string) bool {
	return s.store.Update(requestID, func(rec RequestRecord) RequestRecord {
		rec.Status = RequestStatusFailed
		rec.Error = reason
		return rec
	})
}

// Delete removes a request record once its result has been delivered.
func (s *RequestStore) Delete(requestID string) bool {
	return s.store.Delete(requestID)
}
