package handlers

import (
	"net/http"

	"tripplanner/cron"
	"tripplanner/database"
	"tripplanner/models"
	"tripplanner/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TripHandler serves the trip-planning endpoints.
type TripHandler struct {
	Requests   *database.RequestStore
	Users      *database.UserStore
	Dispatcher cron.Dispatcher
}

// NewTripHandler wires the trip endpoints to their stores and job dispatcher.
func NewTripHandler(requests *database.RequestStore, users *database.UserStore, dispatcher cron.Dispatcher) *TripHandler {
	return &TripHandler{Requests: requests, Users: users, Dispatcher: dispatcher}
}

// statusPayload merges the plan fields with an explicit status, the shape
// pollers receive once planning is done.
type statusPayload struct {
	Status string `json:"status"`
	*models.TripPlan
}

// SubmitTripHandler handles POST /api/trips/submit. Submission is idempotent
// against completed work: a request the user already resolved returns the
// stored plan immediately, without queueing anything.
func (h *TripHandler) SubmitTripHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID := c.GetString("userID")

	var req models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid trip request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if plan, ok := h.Users.FindTrip(userID, req); ok {
		logger.Debug("Submit matched an existing trip",
			zap.String("userId", userID),
			zap.String("destination", req.StartLocation))
		c.JSON(http.StatusOK, gin.H{"status": "done", "trip": plan})
		return
	}

	requestID := uuid.NewString()
	h.Requests.CreatePending(requestID, userID, req)

	payload := cron.PlanTaskPayload{RequestID: requestID, UserID: userID, Request: req}
	if err := h.Dispatcher.Dispatch(c.Request.Context(), payload); err != nil {
		logger.Error("Failed to dispatch planning job", zap.String("requestId", requestID), zap.Error(err))
		h.Requests.Delete(requestID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not schedule trip planning. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "submitted", "request_id": requestID})
}

// TripStatusHandler handles GET /api/trips/status/:requestId. Once the result
// has been delivered the request record is cleared; history carries the trip
// from then on.
func (h *TripHandler) TripStatusHandler(c *gin.Context) {
	userID := c.GetString("userID")
	requestID := c.Param("requestId")

	rec, ok := h.Requests.Get(requestID)
	if !ok || rec.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown request id"})
		return
	}

	if rec.Status != database.RequestStatusDone {
		c.JSON(http.StatusOK, gin.H{"status": rec.Status})
		return
	}

	h.Requests.Delete(requestID)
	c.JSON(http.StatusOK, statusPayload{Status: "done", TripPlan: rec.Result})
}

// TripHistoryHandler handles GET /api/trips/history.
func (h *TripHandler) TripHistoryHandler(c *gin.Context) {
	userID := c.GetString("userID")
	entries := h.Users.History(userID)
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

// FindUserTripHandler handles POST /api/trips/find: re-fetch a full plan by
// request equality.
func (h *TripHandler) FindUserTripHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var req models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, ok := h.Users.FindTrip(userID, req)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No matching trip"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"raw_plan": plan})
}
