// README: Trip handlers — CRUD, collaborators, and the three trip operations.
package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripmaster/internal/http/middleware"
	"tripmaster/internal/modules/trip"
	"tripmaster/internal/types"
)

type TripHandler struct {
	trips *trip.Service
}

func NewTripHandler(trips *trip.Service) *TripHandler {
	return &TripHandler{trips: trips}
}

type createTripReq struct {
	Title       string     `json:"title"`
	Destination string     `json:"destination"`
	StartDate   *string    `json:"startDate"`
	EndDate     *string    `json:"endDate"`
	Timezone    string     `json:"timezone"`
	Days        []trip.Day `json:"days"`
}

func (h *TripHandler) Create(c *gin.Context) {
	var req createTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	start, ok := parseDate(c, req.StartDate)
	if !ok {
		return
	}
	end, ok := parseDate(c, req.EndDate)
	if !ok {
		return
	}

	t, err := h.trips.Create(c.Request.Context(), trip.CreateCommand{
		OwnerUserID: middleware.CallerUID(c),
		Title:       req.Title,
		Destination: req.Destination,
		StartDate:   start,
		EndDate:     end,
		Timezone:    req.Timezone,
		Days:        req.Days,
	})
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, t)
}

func (h *TripHandler) List(c *gin.Context) {
	trips, err := h.trips.List(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, trips)
}

func (h *TripHandler) Get(c *gin.Context) {
	t, err := h.trips.Get(c.Request.Context(), types.ID(c.Param("id")), middleware.CallerUID(c))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

type updateTripReq struct {
	Title       *string    `json:"title"`
	Destination *string    `json:"destination"`
	StartDate   *string    `json:"startDate"`
	EndDate     *string    `json:"endDate"`
	Timezone    *string    `json:"timezone"`
	Days        []trip.Day `json:"days"`
}

func (h *TripHandler) Update(c *gin.Context) {
	var req updateTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	start, ok := parseDate(c, req.StartDate)
	if !ok {
		return
	}
	end, ok := parseDate(c, req.EndDate)
	if !ok {
		return
	}

	t, err := h.trips.Update(c.Request.Context(), trip.UpdateCommand{
		TripID:      types.ID(c.Param("id")),
		UserID:      middleware.CallerUID(c),
		Title:       req.Title,
		Destination: req.Destination,
		StartDate:   start,
		EndDate:     end,
		Timezone:    req.Timezone,
		Days:        req.Days,
	})
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

func (h *TripHandler) Delete(c *gin.Context) {
	err := h.trips.Delete(c.Request.Context(), types.ID(c.Param("id")), middleware.CallerUID(c))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"ok": true})
}

type addCollaboratorReq struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *TripHandler) AddCollaborator(c *gin.Context) {
	var req addCollaboratorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Email == "" {
		writeError(c, http.StatusBadRequest, "email is required")
		return
	}

	t, err := h.trips.AddCollaborator(c.Request.Context(),
		types.ID(c.Param("id")), middleware.CallerUID(c), req.Email, trip.Role(req.Role))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

type updateCollaboratorReq struct {
	Role string `json:"role"`
}

func (h *TripHandler) UpdateCollaborator(c *gin.Context) {
	var req updateCollaboratorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	t, err := h.trips.UpdateCollaborator(c.Request.Context(),
		types.ID(c.Param("id")), middleware.CallerUID(c), types.ID(c.Param("userId")), trip.Role(req.Role))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

func (h *TripHandler) RemoveCollaborator(c *gin.Context) {
	err := h.trips.RemoveCollaborator(c.Request.Context(),
		types.ID(c.Param("id")), middleware.CallerUID(c), types.ID(c.Param("userId")))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"ok": true})
}

type generateReq struct {
	Prompt string `json:"prompt"`
}

func (h *TripHandler) GenerateItinerary(c *gin.Context) {
	// The body is optional; an absent body means generate without a prompt.
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	t, err := h.trips.GenerateItinerary(c.Request.Context(),
		types.ID(c.Param("id")), middleware.CallerUID(c), req.Prompt)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

type enrichReq struct {
	DayIndex *int `json:"dayIndex"`
}

func (h *TripHandler) EnrichPlaces(c *gin.Context) {
	var req enrichReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	t, res, err := h.trips.EnrichPlaces(c.Request.Context(),
		types.ID(c.Param("id")), middleware.CallerUID(c), req.DayIndex)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"trip": t, "updatedItems": res.UpdatedItems})
}

type routeReq struct {
	DayIndex *int   `json:"dayIndex"`
	Mode     string `json:"mode"`
}

func (h *TripHandler) ComputeRoutes(c *gin.Context) {
	var req routeReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	t, res, err := h.trips.ComputeRoutes(c.Request.Context(),
		types.ID(c.Param("id")), middleware.CallerUID(c), req.DayIndex, trip.TravelMode(req.Mode))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"trip": t, "updatedDays": res.UpdatedDays})
}

// parseDate accepts RFC3339 or plain YYYY-MM-DD. A nil or empty input yields
// nil. On bad input it writes a 400 and reports !ok.
func parseDate(c *gin.Context, raw *string) (*time.Time, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, *raw); err == nil {
			t = t.UTC()
			return &t, true
		}
	}
	writeError(c, http.StatusBadRequest, "invalid date: "+*raw)
	return nil, false
}
