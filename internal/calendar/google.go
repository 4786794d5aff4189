// Package calendar wraps the owner's external Google Calendar: it is the
// source of already-booked busy intervals and the sink for new bookings.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"meetsched/internal/interval"
)

// ErrNoCredential means the owner never completed the OAuth consent flow,
// or the stored grant was revoked. Any booking attempt fails on it.
var ErrNoCredential = errors.New("no calendar credential for owner")

// Config holds the OAuth2 client used for all delegated calendar access.
type Config struct {
	OAuth *oauth2.Config
}

func NewConfig(clientID, clientSecret, redirectURL string) (*Config, error) {
	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, errors.New("google oauth client not configured")
	}
	return &Config{
		OAuth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				gcal.CalendarEventsScope,
			},
			Endpoint: google.Endpoint,
		},
	}, nil
}

// AuthCodeURL builds the consent URL. Offline access is requested so a
// refresh token is issued.
func (c *Config) AuthCodeURL(state string) string {
	return c.OAuth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (c *Config) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return c.OAuth.Exchange(ctx, code)
}

// CredentialStore persists per-owner OAuth tokens.
type CredentialStore interface {
	LoadCredential(ctx context.Context, ownerID string) (*oauth2.Token, error)
	SaveCredential(ctx context.Context, ownerID string, tok *oauth2.Token) error
}

// Service talks to Google Calendar on behalf of an owner using their
// stored credential. All-day events are normalized to day boundaries in
// loc.
type Service struct {
	cfg   *Config
	creds CredentialStore
	loc   *time.Location
}

func NewService(cfg *Config, creds CredentialStore, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{cfg: cfg, creds: creds, loc: loc}
}

func (s *Service) clientFor(ctx context.Context, ownerID string) (*gcal.Service, error) {
	if s.cfg == nil || s.cfg.OAuth == nil {
		return nil, ErrNoCredential
	}
	tok, err := s.creds.LoadCredential(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCredential, err)
	}
	client := s.cfg.OAuth.Client(ctx, tok)
	srv, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create calendar client: %w", err)
	}
	return srv, nil
}

// ListBusyIntervals returns every busy interval on the owner's primary
// calendar intersecting the window, normalized to absolute instants.
// All-day events become [00:00:00, 23:59:59.999] of their local date.
func (s *Service) ListBusyIntervals(ctx context.Context, ownerID string, window interval.Span) ([]interval.Span, error) {
	srv, err := s.clientFor(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	events, err := srv.Events.List("primary").
		EventTypes("default").
		SingleEvents(true).
		TimeMin(window.Start.Format(time.RFC3339)).
		TimeMax(window.End.Format(time.RFC3339)).
		MaxResults(2500).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}

	return busySpans(events.Items, s.loc), nil
}

// busySpans converts raw calendar events to absolute busy intervals. Timed
// events carry RFC3339 datetimes; all-day events carry bare dates and span
// [00:00:00, 23:59:59.999] of each local date. Events missing usable times
// are skipped.
func busySpans(items []*gcal.Event, loc *time.Location) []interval.Span {
	var busy []interval.Span
	for _, item := range items {
		if item.Start == nil || item.End == nil {
			continue
		}
		switch {
		case item.Start.DateTime != "" && item.End.DateTime != "":
			start, errStart := time.Parse(time.RFC3339, item.Start.DateTime)
			end, errEnd := time.Parse(time.RFC3339, item.End.DateTime)
			if errStart != nil || errEnd != nil {
				continue
			}
			busy = append(busy, interval.Span{Start: start, End: end})
		case item.Start.Date != "" && item.End.Date != "":
			start, errStart := time.ParseInLocation("2006-01-02", item.Start.Date, loc)
			end, errEnd := time.ParseInLocation("2006-01-02", item.End.Date, loc)
			if errStart != nil || errEnd != nil {
				continue
			}
			busy = append(busy, interval.Span{
				Start: start,
				End:   endOfDay(end),
			})
		}
	}
	return busy
}

func endOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// BookingRequest carries everything needed to materialize a booking as a
// calendar event on the owner's calendar.
type BookingRequest struct {
	OwnerID         string
	OwnerName       string
	OwnerEmail      string
	EventName       string
	GuestName       string
	GuestEmail      string
	GuestNotes      string
	Start           time.Time
	DurationMinutes int
}

// CreatedEvent is the external calendar's record of a booking.
type CreatedEvent struct {
	ID    string    `json:"id"`
	Link  string    `json:"link,omitempty"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CreateBooking inserts the booking on the owner's primary calendar with
// both parties as attendees; Google emails the invitations.
func (s *Service) CreateBooking(ctx context.Context, req BookingRequest) (*CreatedEvent, error) {
	srv, err := s.clientFor(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}

	end := req.Start.Add(time.Duration(req.DurationMinutes) * time.Minute)
	description := "No additional details."
	if req.GuestNotes != "" {
		description = "Additional details: " + req.GuestNotes
	}

	attendees := []*gcal.EventAttendee{
		{Email: req.GuestEmail, DisplayName: req.GuestName},
	}
	if req.OwnerEmail != "" {
		attendees = append(attendees, &gcal.EventAttendee{
			Email:          req.OwnerEmail,
			DisplayName:    req.OwnerName,
			ResponseStatus: "accepted",
		})
	}

	created, err := srv.Events.Insert("primary", &gcal.Event{
		Summary:     fmt.Sprintf("%s + %s: %s", req.GuestName, req.OwnerName, req.EventName),
		Description: description,
		Attendees:   attendees,
		Start:       &gcal.EventDateTime{DateTime: req.Start.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: end.Format(time.RFC3339)},
	}).SendUpdates("all").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("insert calendar event: %w", err)
	}

	return &CreatedEvent{
		ID:    created.Id,
		Link:  created.HtmlLink,
		Start: req.Start,
		End:   end,
	}, nil
}
