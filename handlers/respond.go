package handlers

import (
	"careconnect/middlewares"
	"careconnect/services"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto HTTP status codes. Anything outside
// the taxonomy is a 500 with the detail kept server-side.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrIncompleteAnswers),
		errors.Is(err, services.ErrUnknownOption),
		errors.Is(err, services.ErrSignatureMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrPaymentNotVerified):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrSlotTaken),
		errors.Is(err, services.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		middlewares.HttpError(c, "internal server error", http.StatusInternalServerError, err)
	}
}

// currentUserID extracts the authenticated user's id from the request
// context populated by the token middleware.
func currentUserID(c *gin.Context) (int64, error) {
	raw, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		return 0, services.ErrNotAuthenticated
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, services.ErrNotAuthenticated
	}
	return userID, nil
}
