package app

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meetsched/internal/booking"
	"meetsched/internal/calendar"
	"meetsched/internal/interval"
	"meetsched/internal/schedule"
	"meetsched/internal/store"
)

// ErrorResponse is the JSON error body for every failure path.
type ErrorResponse struct {
	Error      string              `json:"error"`
	Violations schedule.Violations `json:"violations,omitempty"`
}

// Recovery catches panics and returns a structured 500.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				zap.L().Error("unhandled panic", zap.Any("error", r))
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					ErrorResponse{Error: "internal server error"})
			}
		}()
		c.Next()
	}
}

// fail maps domain errors to HTTP statuses and writes the JSON body.
func fail(c *gin.Context, err error) {
	var violations schedule.Violations
	switch {
	case errors.As(err, &violations):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:      "invalid availability",
			Violations: violations,
		})
	case errors.Is(err, interval.ErrFormat):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, booking.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "slot no longer available, please pick another time"})
	case errors.Is(err, calendar.ErrNoCredential):
		c.JSON(http.StatusPreconditionFailed, ErrorResponse{Error: "owner has not connected a calendar"})
	default:
		zap.L().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
