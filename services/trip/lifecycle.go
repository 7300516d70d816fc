package trip

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tripplanner/models"
	"tripplanner/utils"

	"go.uber.org/zap"
)

// Lifecycle drives one logical submission at a time. A new Submit always
// starts a fresh submission and invalidates any in-flight polling for the
// prior one: every submission gets a generation number, and a poll loop
// applies its result only while its generation is still current.
type Lifecycle struct {
	backend Backend
	history HistoryRefresher // may be nil
	cfg     Config
	logger  *zap.Logger

	mu         sync.Mutex
	generation uint64
	state      State
	requestID  string
	plan       *models.TripPlan
	failure    error
	done       chan struct{}
	doneClosed bool
}

// NewLifecycle creates an idle lifecycle.
func NewLifecycle(backend Backend, history HistoryRefresher, cfg Config) *Lifecycle {
	return &Lifecycle{
		backend: backend,
		history: history,
		cfg:     cfg.withDefaults(),
		logger:  utils.GetLogger(),
		state:   StateIdle,
	}
}

// Status returns a snapshot of the current submission.
func (l *Lifecycle) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Status{State: l.state, RequestID: l.requestID}
}

// Plan returns the resolved plan, or nil before resolution.
func (l *Lifecycle) Plan() *models.TripPlan {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.plan
}

// Err returns the terminal failure, or nil.
func (l *Lifecycle) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failure
}

// Submit sends the request to the backend. If the backend already has the
// result, the lifecycle resolves immediately; otherwise a polling loop is
// started for the returned request id. Any prior in-flight submission is
// superseded.
func (l *Lifecycle) Submit(ctx context.Context, req models.TripRequest, token string) error {
	if err := req.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	l.supersedeLocked()
	l.generation++
	gen := l.generation
	l.state = StateSubmitting
	l.requestID = ""
	l.plan = nil
	l.failure = nil
	l.done = make(chan struct{})
	l.doneClosed = false
	l.mu.Unlock()

	resp, err := l.backend.SubmitTrip(ctx, req, token)
	if err != nil {
		l.fail(gen, err)
		return err
	}

	switch {
	case resp.Status == "done" && resp.Trip != nil:
		// Backend already computed this exact request.
		l.logger.Debug("Submit hit an existing trip", zap.String("destination", req.StartLocation))
		l.resolve(ctx, gen, token, resp.Trip)
		return nil
	case resp.Status == "submitted" && resp.RequestID != "":
		l.mu.Lock()
		if l.generation == gen {
			l.state = StatePolling
			l.requestID = resp.RequestID
		}
		l.mu.Unlock()
		go l.pollLoop(ctx, gen, resp.RequestID, token)
		return nil
	default:
		err := fmt.Errorf("trip: unexpected submit response status %q", resp.Status)
		l.fail(gen, err)
		return err
	}
}

// Cancel terminates any in-flight polling. The loop never interrupts a call
// already on the wire; it discards the eventual result. Waiters observe
// ErrSuperseded.
func (l *Lifecycle) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.generation++
	l.supersedeLocked()
	l.state = StateIdle
	l.requestID = ""
}

// Wait blocks until the submission current at call time reaches a terminal
// state or ctx expires, then returns the plan or the terminal error. A waiter
// whose submission was replaced by a newer Submit or a Cancel observes
// ErrSuperseded, never the replacement's result.
func (l *Lifecycle) Wait(ctx context.Context) (*models.TripPlan, error) {
	l.mu.Lock()
	done := l.done
	gen := l.generation
	l.mu.Unlock()
	if done == nil {
		return nil, fmt.Errorf("trip: nothing submitted")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-done:
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.generation != gen {
		// The fields now describe a different submission; this one is gone.
		return nil, ErrSuperseded
	}
	if l.failure != nil {
		return nil, l.failure
	}
	return l.plan, nil
}

// pollLoop polls the backend at a fixed interval until the plan is ready, an
// error occurs, the attempt budget runs out, or the submission is superseded.
// Liveness is checked before every retry and again before applying a result.
func (l *Lifecycle) pollLoop(ctx context.Context, gen uint64, requestID, token string) {
	ticker := time.NewTicker(l.cfg.PollInterval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			l.fail(gen, ctx.Err())
			return
		case <-ticker.C:
		}

		if !l.isCurrent(gen) {
			return
		}

		res, err := l.backend.GetStatus(ctx, requestID, token)
		if err != nil {
			l.fail(gen, err)
			return
		}
		if !l.isCurrent(gen) {
			// Superseded while the request was on the wire; discard.
			return
		}

		if res.Done() {
			l.resolve(ctx, gen, token, &res.TripPlan)
			return
		}

		if l.cfg.MaxPollAttempts > 0 && attempt >= l.cfg.MaxPollAttempts {
			l.logger.Warn("Polling attempt budget exhausted",
				zap.String("requestId", requestID),
				zap.Int("attempts", attempt))
			l.fail(gen, ErrPollTimeout)
			return
		}
	}
}

func (l *Lifecycle) isCurrent(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation == gen
}

// resolve refreshes the history cache first, then transitions to Resolved.
// The refresh-before-report ordering is a contract: "my trips" views must be
// consistent with the latest resolution by the time completion is observable.
func (l *Lifecycle) resolve(ctx context.Context, gen uint64, token string, plan *models.TripPlan) {
	if l.history != nil {
		if _, err := l.history.Refresh(ctx, token); err != nil {
			// A stale history list degrades the trips view, not the plan.
			l.logger.Warn("History refresh after resolution failed", zap.Error(err))
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.generation != gen {
		return
	}
	l.state = StateResolved
	l.plan = plan
	l.closeDoneLocked()
}

func (l *Lifecycle) fail(gen uint64, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.generation != gen {
		return
	}
	l.state = StateFailed
	l.failure = err
	l.closeDoneLocked()
}

// supersedeLocked releases waiters of the previous submission, if any.
func (l *Lifecycle) supersedeLocked() {
	if l.done != nil && !l.doneClosed {
		l.failure = ErrSuperseded
		l.closeDoneLocked()
	}
}

func (l *Lifecycle) closeDoneLocked() {
	if l.done != nil && !l.doneClosed {
		close(l.done)
		l.doneClosed = true
	}
}
