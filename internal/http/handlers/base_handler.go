// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmaster/internal/itinerary"
	"tripmaster/internal/llm"
	"tripmaster/internal/modules/trip"
	"tripmaster/internal/modules/user"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeTripError maps module errors onto HTTP statuses. Unrecognized errors
// become opaque 500s so internals never leak to clients.
func writeTripError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, trip.ErrNotFound),
		errors.Is(err, trip.ErrUserNotFound),
		errors.Is(err, trip.ErrCollaboratorNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, trip.ErrForbidden):
		writeError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, trip.ErrBadRequest),
		errors.Is(err, trip.ErrInvalidInput),
		errors.Is(err, trip.ErrOwnerCollaborator),
		errors.Is(err, itinerary.ErrCredentialRequired),
		errors.Is(err, llm.ErrUnknownProvider),
		errors.Is(err, llm.ErrProviderUnimplemented):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, trip.ErrDuplicateCollaborator):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, itinerary.ErrGenerationFailed):
		writeError(c, http.StatusInternalServerError, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, user.ErrInvalidCredentials):
		writeError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, user.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, user.ErrEmailTaken):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
