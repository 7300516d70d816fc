// Package client talks to the trip-planner backend over HTTP. It implements
// the submit/status/history/find operations plus credential login/signup, with
// bearer-token auth on everything trip-related.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tripplanner/models"
)

// Client is the HTTP client for the planner backend.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a client for the backend at baseURL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SubmitResponse is the backend's answer to a trip submission: either the
// finished plan (the backend already had this result) or a pending request id.
type SubmitResponse struct {
	Status    string           `json:"status"`
	RequestID string           `json:"request_id,omitempty"`
	Trip      *models.TripPlan `json:"trip,omitempty"`
}

// StatusResponse is one poll result. When the plan is ready the plan fields
// are merged directly into the response object.
type StatusResponse struct {
	Status string `json:"status"`
	models.TripPlan
}

// Done reports whether the poll result carries a finished plan. An explicit
// "done" status is authoritative; the presence of day data without a status
// field is accepted as a backward-compatibility fallback for older backends.
func (r *StatusResponse) Done() bool {
	return r.Status == "done" || len(r.Days) > 0
}

// historyResponse wraps the backend's history list.
type historyResponse struct {
	History []models.HistoryEntry `json:"history"`
}

// findResponse wraps a re-fetched full plan.
type findResponse struct {
	RawPlan *models.TripPlan `json:"raw_plan"`
}

// authResponse covers both login and signup replies.
type authResponse struct {
	Status      string `json:"status"`
	AccessToken string `json:"access_token,omitempty"`
	Message     string `json:"message,omitempty"`
}

// SubmitTrip submits a trip request. The backend either returns the finished
// plan immediately (it already computed this exact request) or a request id
// to poll.
func (c *Client) SubmitTrip(ctx context.Context, req models.TripRequest, token string) (*SubmitResponse, error) {
	var out SubmitResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/trips/submit", req, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStatus fetches the current state of a pending request. Safe to call
// repeatedly; each call is independent.
func (c *Client) GetStatus(ctx context.Context, requestID, token string) (*StatusResponse, error) {
	var out StatusResponse
	path := "/api/trips/status/" + url.PathEscape(requestID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetHistory fetches the caller's trip history in backend order.
func (c *Client) GetHistory(ctx context.Context, token string) ([]models.HistoryEntry, error) {
	var out historyResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/trips/history", nil, token, &out); err != nil {
		return nil, err
	}
	return out.History, nil
}

// FindUserTrip looks up a previously computed plan by request equality.
// Returns ErrNotFound when the backend has no match.
func (c *Client) FindUserTrip(ctx context.Context, req models.TripRequest, token string) (*models.TripPlan, error) {
	var out findResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/trips/find", req, token, &out)
	if err != nil {
		return nil, err
	}
	if out.RawPlan == nil {
		return nil, ErrNotFound
	}
	return out.RawPlan, nil
}

// Login exchanges form-encoded credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/auth/login",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return "", &NetworkError{Op: "login", Err: err}
	}
	defer resp.Body.Close()

	var out authResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &NetworkError{Op: "login", Err: err}
	}
	if resp.StatusCode == http.StatusUnauthorized || out.Status != "success" {
		return "", &AuthError{Message: out.Message}
	}
	return out.AccessToken, nil
}

// Signup registers a new account. Credentials go in a JSON body.
func (c *Client) Signup(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	var out authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/signup", body, "", &out); err != nil {
		return err
	}
	if out.Status != "success" {
		return fmt.Errorf("signup failed: %s", out.Message)
	}
	return nil
}

// doJSON performs one JSON round trip. A nil body sends no payload; a non-nil
// out decodes the response into it. 401 maps to AuthError, 404 to ErrNotFound,
// transport failures to NetworkError.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, token string, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &AuthError{Message: readErrorMessage(resp.Body)}
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		return fmt.Errorf("%s %s: backend returned %d: %s", method, path, resp.StatusCode, readErrorMessage(resp.Body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: method + " " + path, Err: err}
	}
	return nil
}

// readErrorMessage pulls a human-readable message out of an error body.
func readErrorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &payload) == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(data))
}
