// Package trip owns the request lifecycle of a single trip-planning
// submission: submit, poll to resolution, cancel, and hand the resolved plan
// to the caller. It also normalizes day waypoints and assembles route
// geometry from the resolved plan.
package trip

import (
	"context"
	"errors"
	"time"

	"tripplanner/client"
	"tripplanner/models"
)

// State is the lifecycle phase of the current submission.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StatePolling
	StateResolved
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StatePolling:
		return "polling"
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrPollTimeout is the terminal failure when polling exhausts its attempt
// budget. The user must resubmit.
var ErrPollTimeout = errors.New("trip: polling attempt budget exhausted")

// ErrSuperseded is delivered to waiters of a submission that was replaced by
// a newer Submit or an explicit Cancel.
var ErrSuperseded = errors.New("trip: submission superseded")

// Backend is the slice of the planner API the lifecycle needs.
type Backend interface {
	SubmitTrip(ctx context.Context, req models.TripRequest, token string) (*client.SubmitResponse, error)
	GetStatus(ctx context.Context, requestID, token string) (*client.StatusResponse, error)
}

// HistoryRefresher is notified after every resolution, before completion is
// reported to waiters, so "my trips" views stay consistent with the latest
// resolution.
type HistoryRefresher interface {
	Refresh(ctx context.Context, token string) ([]models.HistoryEntry, error)
}

// Config tunes the polling loop. The retry policy is a fixed interval; a
// backoff strategy only needs to replace the ticker wait, the state machine
// shape is unaffected.
type Config struct {
	PollInterval    time.Duration // default 1s
	MaxPollAttempts int           // 0 takes the default of 120; negative means unbounded
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = time.Second
	}
	if c.MaxPollAttempts == 0 {
		c.MaxPollAttempts = 120
	}
	return c
}

// Status is a caller-visible snapshot of the lifecycle.
type Status struct {
	State     State
	RequestID string
}
