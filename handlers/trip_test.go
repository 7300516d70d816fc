package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"tripplanner/models"
)

func tripRequestBody() map[string]any {
	return map[string]any{
		"start_location": "Israel",
		"start_date":     "2026-04-01",
		"end_date":       "2026-04-05",
		"interests":      []string{"history", "food"},
	}
}

func TestSubmitStatusRoundTrip(t *testing.T) {
	app := newTestApp(t, nil)
	token := app.signupAndLogin(t, "alice", "s3cret-pass")

	w := app.doJSON(t, http.MethodPost, "/api/trips/submit", token, tripRequestBody())
	if w.Code != http.StatusOK {
		t.Fatalf("Submit failed: %d %s", w.Code, w.Body.String())
	}
	var submit struct {
		Status    string `json:"status"`
		RequestID string `json:"request_id"`
	}
	decodeBody(t, w, &submit)
	if submit.Status != "submitted" || submit.RequestID == "" {
		t.Fatalf("Unexpected submit response: %+v", submit)
	}

	// The synchronous dispatcher finished planning before submit returned.
	w = app.doJSON(t, http.MethodGet, "/api/trips/status/"+submit.RequestID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status failed: %d %s", w.Code, w.Body.String())
	}
	var status struct {
		Status string       `json:"status"`
		Days   []models.Day `json:"days"`
	}
	decodeBody(t, w, &status)
	if status.Status != "done" {
		t.Fatalf("Expected done, got %q", status.Status)
	}
	if len(status.Days) != 5 {
		t.Errorf("Expected a 5-day plan, got %d days", len(status.Days))
	}

	// Delivery clears the request record; a second poll misses.
	w = app.doJSON(t, http.MethodGet, "/api/trips/status/"+submit.RequestID, token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delivery, got %d", w.Code)
	}
}

func TestSubmitIsIdempotentForResolvedRequests(t *testing.T) {
	app := newTestApp(t, nil)
	token := app.signupAndLogin(t, "alice", "s3cret-pass")

	// First submission resolves through the worker.
	w := app.doJSON(t, http.MethodPost, "/api/trips/submit", token, tripRequestBody())
	if w.Code != http.StatusOK {
		t.Fatalf("Submit failed: %d", w.Code)
	}

	// The same request, interests reordered, short-circuits to the stored plan.
	body := tripRequestBody()
	body["interests"] = []string{"food", "history"}
	w = app.doJSON(t, http.MethodPost, "/api/trips/submit", token, body)
	if w.Code != http.StatusOK {
		t.Fatalf("Resubmit failed: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Status    string           `json:"status"`
		RequestID string           `json:"request_id"`
		Trip      *models.TripPlan `json:"trip"`
	}
	decodeBody(t, w, &resp)
	if resp.Status != "done" || resp.Trip == nil {
		t.Fatalf("Expected an immediate done with the stored plan, got %+v", resp)
	}
	if resp.RequestID != "" {
		t.Error("An idempotent hit must not queue a new request")
	}
	if len(resp.Trip.Days) != 5 {
		t.Errorf("Expected the stored 5-day plan, got %d days", len(resp.Trip.Days))
	}
}

func TestSubmitRejectsInvalidRequests(t *testing.T) {
	app := newTestApp(t, nil)
	token := app.signupAndLogin(t, "alice", "s3cret-pass")

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"empty destination", func(b map[string]any) { b["start_location"] = " " }},
		{"end before start", func(b map[string]any) { b["end_date"] = "2026-03-01" }},
		{"bad date format", func(b map[string]any) { b["start_date"] = "01-04-2026" }},
		{"too many interests", func(b map[string]any) {
			b["interests"] = []string{"a", "b", "c", "d", "e", "f", "g"}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := tripRequestBody()
			tt.mutate(body)
			if w := app.doJSON(t, http.MethodPost, "/api/trips/submit", token, body); w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestStatusIsScopedToOwner(t *testing.T) {
	app := newTestApp(t, nil)
	alice := app.signupAndLogin(t, "alice", "s3cret-pass")
	mallory := app.signupAndLogin(t, "mallory", "other-pass1")

	w := app.doJSON(t, http.MethodPost, "/api/trips/submit", alice, tripRequestBody())
	var submit struct {
		RequestID string `json:"request_id"`
	}
	decodeBody(t, w, &submit)

	// Another user cannot observe the request, existing or not.
	if w := app.doJSON(t, http.MethodGet, "/api/trips/status/"+submit.RequestID, mallory, nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for a foreign request id, got %d", w.Code)
	}

	// The owner still gets the result afterwards.
	if w := app.doJSON(t, http.MethodGet, "/api/trips/status/"+submit.RequestID, alice, nil); w.Code != http.StatusOK {
		t.Errorf("Owner lookup failed: %d", w.Code)
	}
}

func TestHistoryAndFind(t *testing.T) {
	app := newTestApp(t, nil)
	token := app.signupAndLogin(t, "alice", "s3cret-pass")

	// Empty history is an empty list, not an error.
	w := app.doJSON(t, http.MethodGet, "/api/trips/history", token, nil)
	var history struct {
		History []models.HistoryEntry `json:"history"`
	}
	decodeBody(t, w, &history)
	if history.History == nil || len(history.History) != 0 {
		t.Errorf("Expected an empty list, got %v", history.History)
	}

	app.doJSON(t, http.MethodPost, "/api/trips/submit", token, tripRequestBody())

	w = app.doJSON(t, http.MethodGet, "/api/trips/history", token, nil)
	decodeBody(t, w, &history)
	if len(history.History) != 1 {
		t.Fatalf("Expected 1 history entry, got %d", len(history.History))
	}
	entry := history.History[0]
	if entry.Destination != "Israel" || entry.TripID == "" {
		t.Errorf("Unexpected history entry: %+v", entry)
	}

	// Find returns the full plan for the matching request.
	w = app.doJSON(t, http.MethodPost, "/api/trips/find", token, tripRequestBody())
	if w.Code != http.StatusOK {
		t.Fatalf("Find failed: %d %s", w.Code, w.Body.String())
	}
	var find struct {
		RawPlan *models.TripPlan `json:"raw_plan"`
	}
	decodeBody(t, w, &find)
	if find.RawPlan == nil || len(find.RawPlan.Days) != 5 {
		t.Errorf("Unexpected find result: %+v", find.RawPlan)
	}

	// A different request misses.
	other := tripRequestBody()
	other["start_location"] = "Japan"
	if w := app.doJSON(t, http.MethodPost, "/api/trips/find", token, other); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for an unknown request, got %d", w.Code)
	}
}

// failingPlanner always errors, driving the request record to failed.
type failingPlanner struct{}

func (failingPlanner) Plan(context.Context, models.TripRequest) (*models.TripPlan, error) {
	return nil, errors.New("generation backend unavailable")
}

func TestStatusReportsPlanningFailure(t *testing.T) {
	// The async dispatcher records the failure on the request instead of
	// failing the submit call itself.
	app := newTestAppDispatch(t, failingPlanner{}, false)
	token := app.signupAndLogin(t, "alice", "s3cret-pass")

	w := app.doJSON(t, http.MethodPost, "/api/trips/submit", token, tripRequestBody())
	var submit struct {
		RequestID string `json:"request_id"`
	}
	decodeBody(t, w, &submit)
	if submit.RequestID == "" {
		t.Fatalf("Submit did not queue: %s", w.Body.String())
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		w = app.doJSON(t, http.MethodGet, "/api/trips/status/"+submit.RequestID, token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Status failed: %d", w.Code)
		}
		var status struct {
			Status string `json:"status"`
		}
		decodeBody(t, w, &status)
		if status.Status == "failed" {
			return
		}
		if status.Status != "pending" {
			t.Fatalf("Expected pending or failed, got %q", status.Status)
		}
		if time.Now().After(deadline) {
			t.Fatal("Request never reached the failed state")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
