package handler

import (
	"errors"
	"net/http"
	"strconv"

	"paroquia_connect/internal/middleware"
	"paroquia_connect/internal/model"
	"paroquia_connect/internal/service"

	"github.com/gin-gonic/gin"
)

// getActor returns the authenticated caller; routes using it sit behind RequireAuth
func getActor(c *gin.Context) (model.Actor, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrUnauthenticated.Error()})
		return model.Actor{}, false
	}
	return user.Actor(), true
}

func parseID(c *gin.Context, param string) (int, bool) {
	id, err := strconv.Atoi(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrValidation.Error() + ": " + err.Error()})
		return false
	}
	return true
}

// errorStatus maps service errors to HTTP statuses and client-facing messages
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrInvalidCode):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrEmailNotVerified),
		errors.Is(err, service.ErrSelfDelete),
		errors.Is(err, service.ErrCapacityExceeded):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrDelivery):
		return http.StatusInternalServerError, service.ErrDelivery.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

// writeServiceError responds with the mapped status; server errors are
// recorded on the context for the request logger.
func writeServiceError(c *gin.Context, err error) {
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": msg})
}
