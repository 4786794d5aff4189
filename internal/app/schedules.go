package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"meetsched/internal/schedule"
)

type schedulePayload struct {
	Timezone string `json:"timezone" binding:"required"`
	Windows  []struct {
		DayOfWeek string `json:"day_of_week" binding:"required"`
		StartTime string `json:"start_time" binding:"required"`
		EndTime   string `json:"end_time" binding:"required"`
	} `json:"availabilities"`
}

// GET /api/users/:id/schedule
func (a *App) GetScheduleHandler(c *gin.Context) {
	sched, err := a.Store.LoadSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sched)
}

// PUT /api/users/:id/schedule
//
// Saving replaces the schedule wholesale: the timezone and the entire
// window set. The submission is validated first and rejected as a whole on
// any violation.
func (a *App) SaveScheduleHandler(c *gin.Context) {
	var payload schedulePayload
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if _, err := time.LoadLocation(payload.Timezone); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown timezone: " + payload.Timezone})
		return
	}

	windows := make([]schedule.Window, 0, len(payload.Windows))
	for _, w := range payload.Windows {
		day, err := schedule.ParseDay(w.DayOfWeek)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		windows = append(windows, schedule.Window{
			Day:       day,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		})
	}

	if err := schedule.CheckWindows(windows); err != nil {
		fail(c, err)
		return
	}

	saved, err := a.Store.ReplaceSchedule(c.Request.Context(), c.Param("id"), payload.Timezone, windows)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}
