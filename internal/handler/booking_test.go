package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SebasVLANQ/calendar/internal/model"
	"github.com/SebasVLANQ/calendar/internal/service"
)

// mockBooker implements service.Booker with a swappable function.
type mockBooker struct {
	bookFn func(ctx context.Context, eventID, userID uint64, seats int) (*service.BookingResult, error)
}

func (m *mockBooker) Book(ctx context.Context, eventID, userID uint64, seats int) (*service.BookingResult, error) {
	return m.bookFn(ctx, eventID, userID, seats)
}

func bookingContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/events/10/book", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/events/:id/book")
	c.SetParamNames("id")
	c.SetParamValues("10")
	c.Set("user_id", uint64(42))
	c.Set("role", model.RoleCustomer)
	return c, rec
}

func testEvent(status string) model.Event {
	return model.Event{
		ID:             10,
		Title:          "Trail Run",
		StartTime:      time.Date(2026, time.June, 20, 9, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2026, time.June, 20, 11, 0, 0, 0, time.UTC),
		SeatsAvailable: 5,
		TotalSeats:     10,
		Status:         status,
	}
}

// bookWith runs the booking workflow against a mock service that either
// fails with svcErr or returns result.
func bookWith(t *testing.T, ev model.Event, result *service.BookingResult, svcErr error, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := &BookingHandler{
		Svc: &mockBooker{bookFn: func(ctx context.Context, eventID, userID uint64, seats int) (*service.BookingResult, error) {
			assert.Equal(t, uint64(10), eventID)
			assert.Equal(t, uint64(42), userID)
			if svcErr != nil {
				return nil, svcErr
			}
			return result, nil
		}},
	}
	c, rec := bookingContext(t, body)
	require.NoError(t, h.bookLoaded(c, ev))
	return rec
}

func TestBookRejectsCancelledBeforeWorkflow(t *testing.T) {
	called := false
	h := &BookingHandler{Svc: &mockBooker{bookFn: func(ctx context.Context, eventID, userID uint64, seats int) (*service.BookingResult, error) {
		called = true
		return nil, nil
	}}}
	c, rec := bookingContext(t, `{"seats":2}`)
	require.NoError(t, h.bookLoaded(c, testEvent(model.StatusCancelled)))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "cancelled")
	assert.False(t, called, "reservation workflow must not start for a cancelled event")
}

func TestBookRejectsFullyBookedBeforeWorkflow(t *testing.T) {
	called := false
	h := &BookingHandler{Svc: &mockBooker{bookFn: func(ctx context.Context, eventID, userID uint64, seats int) (*service.BookingResult, error) {
		called = true
		return nil, nil
	}}}
	c, rec := bookingContext(t, `{"seats":1}`)
	require.NoError(t, h.bookLoaded(c, testEvent(model.StatusFullyBooked)))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "fully booked")
	assert.False(t, called)
}

func TestBookHappyPath(t *testing.T) {
	ev := testEvent(model.StatusAvailable)
	updated := ev
	updated.SeatsAvailable = 3
	result := &service.BookingResult{
		Registration: model.EventRegistration{ID: 7, UserID: 42, EventID: 10, SeatsRequested: 2},
		Event:        updated,
		EmailQueued:  true,
	}
	rec := bookWith(t, ev, result, nil, `{"seats":2}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Message      string                  `json:"message"`
		Registration model.EventRegistration `json:"registration"`
		Event        model.Event             `json:"event"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Successfully registered!", resp.Message)
	assert.Equal(t, uint64(7), resp.Registration.ID)
	assert.Equal(t, 3, resp.Event.SeatsAvailable)
}

func TestBookEmailDelayedMessage(t *testing.T) {
	ev := testEvent(model.StatusAvailable)
	result := &service.BookingResult{
		Registration: model.EventRegistration{ID: 7, UserID: 42, EventID: 10, SeatsRequested: 1},
		Event:        ev,
		EmailQueued:  false,
	}
	rec := bookWith(t, ev, result, nil, `{"seats":1}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "email may be delayed")
}

func TestBookMapsServiceErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		substr string
	}{
		// The duplicate check also guards the race where the client-side
		// gate was bypassed and storage caught the violation.
		{"already registered", service.ErrAlreadyRegistered, http.StatusConflict, "already registered"},
		{"invalid seat count", service.ErrInvalidSeatCount, http.StatusBadRequest, "between 1 and 4"},
		{"insufficient seats", service.ErrInsufficientSeats, http.StatusConflict, "Not enough seats"},
		{"not authenticated", service.ErrNotAuthenticated, http.StatusUnauthorized, "unauthorized"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := bookWith(t, testEvent(model.StatusAvailable), nil, tc.err, `{"seats":2}`)
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.substr)
		})
	}
}

func TestBookSpanishMessages(t *testing.T) {
	h := &BookingHandler{Svc: &mockBooker{bookFn: func(ctx context.Context, eventID, userID uint64, seats int) (*service.BookingResult, error) {
		return nil, service.ErrAlreadyRegistered
	}}}
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/events/10/book?lang=es", strings.NewReader(`{"seats":2}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/events/:id/book")
	c.SetParamNames("id")
	c.SetParamValues("10")
	c.Set("user_id", uint64(42))

	require.NoError(t, h.bookLoaded(c, testEvent(model.StatusAvailable)))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ya estás registrado")
}
