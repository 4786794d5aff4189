package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"meetsched/internal/booking"
	"meetsched/internal/schedule"
	"meetsched/internal/store"
)

type fakeStorage struct {
	event         *store.Event
	eventErr      error
	sched         *schedule.Schedule
	schedErr      error
	savedTimezone string
	savedWindows  []schedule.Window
}

func (f *fakeStorage) CreateEvent(ctx context.Context, e *store.Event) error {
	e.ID = "e1"
	return nil
}

func (f *fakeStorage) UpdateEvent(ctx context.Context, e *store.Event) error { return f.eventErr }

func (f *fakeStorage) DeleteEvent(ctx context.Context, ownerID, eventID string) error {
	return f.eventErr
}

func (f *fakeStorage) LoadEvent(ctx context.Context, ownerID, eventID string) (*store.Event, error) {
	if f.eventErr != nil {
		return nil, f.eventErr
	}
	return f.event, nil
}

func (f *fakeStorage) ListEvents(ctx context.Context, ownerID string, activeOnly bool) ([]store.Event, error) {
	if f.event == nil {
		return nil, nil
	}
	return []store.Event{*f.event}, nil
}

func (f *fakeStorage) LoadSchedule(ctx context.Context, ownerID string) (*schedule.Schedule, error) {
	if f.schedErr != nil {
		return nil, f.schedErr
	}
	return f.sched, nil
}

func (f *fakeStorage) ReplaceSchedule(ctx context.Context, ownerID, timezone string, windows []schedule.Window) (*schedule.Schedule, error) {
	f.savedTimezone = timezone
	f.savedWindows = windows
	return &schedule.Schedule{ID: "s1", OwnerID: ownerID, Timezone: timezone, Windows: windows}, nil
}

func (f *fakeStorage) SaveCredential(ctx context.Context, ownerID string, tok *oauth2.Token) error {
	return nil
}

type fakeBooker struct {
	rec *booking.Record
	err error
}

func (f *fakeBooker) Book(ctx context.Context, req booking.Request) (*booking.Record, error) {
	return f.rec, f.err
}

func newTestRouter(a *App) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	users := r.Group("/api/users")
	users.POST("/:id/events", a.CreateEventHandler)
	users.GET("/:id/events/:event_id", a.GetEventHandler)
	users.PUT("/:id/schedule", a.SaveScheduleHandler)
	users.GET("/:id/schedule", a.GetScheduleHandler)
	users.POST("/:id/events/:event_id/bookings", a.CreateBookingHandler)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateEventHandler(t *testing.T) {
	a := &App{Store: &fakeStorage{}}
	r := newTestRouter(a)

	t.Run("valid event created", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/users/u1/events",
			`{"name":"Intro call","duration_minutes":30}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		var e store.Event
		if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
			t.Fatal(err)
		}
		if e.OwnerID != "u1" || !e.IsActive {
			t.Fatalf("unexpected event %+v", e)
		}
	})

	t.Run("duration out of range rejected", func(t *testing.T) {
		for _, body := range []string{
			`{"name":"x","duration_minutes":0}`,
			`{"name":"x","duration_minutes":721}`,
		} {
			w := doJSON(t, r, http.MethodPost, "/api/users/u1/events", body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("body %s: status = %d, want 400", body, w.Code)
			}
		}
	})
}

func TestGetEventHandler_NotFound(t *testing.T) {
	a := &App{Store: &fakeStorage{eventErr: store.ErrNotFound}}
	r := newTestRouter(a)

	w := doJSON(t, r, http.MethodGet, "/api/users/u1/events/missing", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestSaveScheduleHandler(t *testing.T) {
	t.Run("valid schedule replaced", func(t *testing.T) {
		st := &fakeStorage{}
		r := newTestRouter(&App{Store: st})
		w := doJSON(t, r, http.MethodPut, "/api/users/u1/schedule", `{
			"timezone": "America/New_York",
			"availabilities": [
				{"day_of_week":"monday","start_time":"09:00","end_time":"12:00"},
				{"day_of_week":"monday","start_time":"13:00","end_time":"17:00"}
			]
		}`)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		if st.savedTimezone != "America/New_York" || len(st.savedWindows) != 2 {
			t.Fatalf("replace not called as expected: tz=%q windows=%v", st.savedTimezone, st.savedWindows)
		}
	})

	t.Run("overlapping windows rejected with per-index violations", func(t *testing.T) {
		st := &fakeStorage{}
		r := newTestRouter(&App{Store: st})
		w := doJSON(t, r, http.MethodPut, "/api/users/u1/schedule", `{
			"timezone": "UTC",
			"availabilities": [
				{"day_of_week":"monday","start_time":"09:00","end_time":"12:00"},
				{"day_of_week":"monday","start_time":"11:00","end_time":"13:00"}
			]
		}`)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		var resp ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if len(resp.Violations) != 1 || resp.Violations[0].Index != 1 {
			t.Fatalf("want one violation at index 1, got %+v", resp.Violations)
		}
		if st.savedTimezone != "" {
			t.Fatal("nothing may be saved when validation fails")
		}
	})

	t.Run("unknown timezone rejected", func(t *testing.T) {
		r := newTestRouter(&App{Store: &fakeStorage{}})
		w := doJSON(t, r, http.MethodPut, "/api/users/u1/schedule",
			`{"timezone":"Nowhere/Town","availabilities":[]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})

	t.Run("unknown day rejected", func(t *testing.T) {
		r := newTestRouter(&App{Store: &fakeStorage{}})
		w := doJSON(t, r, http.MethodPut, "/api/users/u1/schedule", `{
			"timezone": "UTC",
			"availabilities": [{"day_of_week":"funday","start_time":"09:00","end_time":"12:00"}]
		}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})
}

func TestCreateBookingHandler(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("success returns record", func(t *testing.T) {
		a := &App{Store: &fakeStorage{}, Booker: &fakeBooker{rec: &booking.Record{
			OwnerID: "u1", EventID: "e1", StartTime: start,
		}}}
		r := newTestRouter(a)
		w := doJSON(t, r, http.MethodPost, "/api/users/u1/events/e1/bookings", `{
			"start_time": "2026-03-02T09:00:00Z",
			"guest_name": "Ada",
			"guest_email": "ada@example.com"
		}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
	})

	t.Run("lost race maps to conflict", func(t *testing.T) {
		a := &App{Store: &fakeStorage{}, Booker: &fakeBooker{err: booking.ErrSlotUnavailable}}
		r := newTestRouter(a)
		w := doJSON(t, r, http.MethodPost, "/api/users/u1/events/e1/bookings", `{
			"start_time": "2026-03-02T09:00:00Z",
			"guest_name": "Ada",
			"guest_email": "ada@example.com"
		}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", w.Code)
		}
	})

	t.Run("invalid guest email rejected", func(t *testing.T) {
		a := &App{Store: &fakeStorage{}, Booker: &fakeBooker{}}
		r := newTestRouter(a)
		w := doJSON(t, r, http.MethodPost, "/api/users/u1/events/e1/bookings", `{
			"start_time": "2026-03-02T09:00:00Z",
			"guest_name": "Ada",
			"guest_email": "not-an-email"
		}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})
}

func TestOwnerFromState(t *testing.T) {
	cases := []struct {
		state string
		want  string
	}{
		{"user_abc_1700000000", "abc"},
		{"user_user_2_xyz_1700000000", "user_2_xyz"},
		{"bogus", ""},
		{"user_", ""},
	}
	for _, c := range cases {
		if got := ownerFromState(c.state); got != c.want {
			t.Errorf("ownerFromState(%q) = %q, want %q", c.state, got, c.want)
		}
	}
}
