package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meetsched/internal/store"
)

type eventPayload struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1,max=720"`
	IsActive        *bool  `json:"is_active"`
}

// POST /api/users/:id/events
func (a *App) CreateEventHandler(c *gin.Context) {
	var payload eventPayload
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	active := true
	if payload.IsActive != nil {
		active = *payload.IsActive
	}
	event := &store.Event{
		OwnerID:         c.Param("id"),
		Name:            payload.Name,
		Description:     payload.Description,
		DurationMinutes: payload.DurationMinutes,
		IsActive:        active,
	}
	if err := a.Store.CreateEvent(c.Request.Context(), event); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// PUT /api/users/:id/events/:event_id
func (a *App) UpdateEventHandler(c *gin.Context) {
	var payload eventPayload
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	active := true
	if payload.IsActive != nil {
		active = *payload.IsActive
	}
	event := &store.Event{
		ID:              c.Param("event_id"),
		OwnerID:         c.Param("id"),
		Name:            payload.Name,
		Description:     payload.Description,
		DurationMinutes: payload.DurationMinutes,
		IsActive:        active,
	}
	if err := a.Store.UpdateEvent(c.Request.Context(), event); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// DELETE /api/users/:id/events/:event_id
func (a *App) DeleteEventHandler(c *gin.Context) {
	if err := a.Store.DeleteEvent(c.Request.Context(), c.Param("id"), c.Param("event_id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/users/:id/events/:event_id
func (a *App) GetEventHandler(c *gin.Context) {
	event, err := a.Store.LoadEvent(c.Request.Context(), c.Param("id"), c.Param("event_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// GET /api/users/:id/events?active=true
func (a *App) ListEventsHandler(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	events, err := a.Store.ListEvents(c.Request.Context(), c.Param("id"), activeOnly)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
