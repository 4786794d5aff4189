package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"meetsched/internal/booking"
)

// GET /api/users/:id/events/:event_id/times?from=ISO&to=ISO
//
// Lists the instants at which the event can currently be booked, on a
// 15-minute grid, filtered against the owner's schedule and live calendar.
func (a *App) ListValidTimesHandler(c *gin.Context) {
	ctx := c.Request.Context()
	event, err := a.Store.LoadEvent(ctx, c.Param("id"), c.Param("event_id"))
	if err != nil {
		fail(c, err)
		return
	}

	now := time.Now().UTC()
	from := now
	if s := c.Query("from"); s != "" {
		if from, err = time.Parse(time.RFC3339, s); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
			return
		}
	}
	horizon := now.AddDate(0, 0, a.HorizonDays)
	to := horizon
	if s := c.Query("to"); s != "" {
		if to, err = time.Parse(time.RFC3339, s); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to"})
			return
		}
	}
	if from.Before(now) {
		from = now
	}
	if to.After(horizon) {
		to = horizon
	}
	if !from.Before(to) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "from must be before to"})
		return
	}

	candidates := booking.CandidateGrid(from, to, 15*time.Minute)
	valid, err := a.Validator.FilterValidTimes(ctx, candidates, event)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"times": valid, "count": len(valid)})
}

type bookingPayload struct {
	StartTime  string `json:"start_time" binding:"required"` // RFC3339
	GuestName  string `json:"guest_name" binding:"required"`
	GuestEmail string `json:"guest_email" binding:"required,email"`
	GuestNotes string `json:"guest_notes"`
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
}

// POST /api/users/:id/events/:event_id/bookings
func (a *App) CreateBookingHandler(c *gin.Context) {
	var payload bookingPayload
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	start, err := time.Parse(time.RFC3339, payload.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid start_time"})
		return
	}

	record, err := a.Booker.Book(c.Request.Context(), booking.Request{
		OwnerID:    c.Param("id"),
		EventID:    c.Param("event_id"),
		Start:      start,
		GuestName:  payload.GuestName,
		GuestEmail: payload.GuestEmail,
		GuestNotes: payload.GuestNotes,
		OwnerName:  payload.OwnerName,
		OwnerEmail: payload.OwnerEmail,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}
