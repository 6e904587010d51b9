package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SebasVLANQ/calendar/internal/calendar"
	"github.com/SebasVLANQ/calendar/internal/model"
	"github.com/SebasVLANQ/calendar/internal/repository"
	"github.com/SebasVLANQ/calendar/internal/service"
)

// AdminHandler serves the event management endpoints used by providers
// and administrators. Providers manage only events they own; admins
// manage everything.
type AdminHandler struct {
	Events   *repository.EventRepo
	Regs     *repository.RegistrationRepo
	Profiles *repository.ProfileRepo
}

func NewAdminHandler(events *repository.EventRepo, regs *repository.RegistrationRepo, profiles *repository.ProfileRepo) *AdminHandler {
	return &AdminHandler{Events: events, Regs: regs, Profiles: profiles}
}

// ownershipOK reports whether the caller may mutate the event.
// Providers only touch events they own; admins pass unconditionally.
func (h *AdminHandler) ownershipOK(c echo.Context, ev model.Event) bool {
	if getRole(c) != model.RoleProvider {
		return true
	}
	userID, err := getUserID(c)
	if err != nil {
		return false
	}
	return ev.OwnerID != nil && *ev.OwnerID == userID
}

// CreateEvent validates the submitted form and inserts a new event.
// Duration is derived from the time range, seats_available starts at
// total_seats and status starts as available. Providers become the
// owner of what they create; admin-created events have no owner.
func (h *AdminHandler) CreateEvent(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var form service.EventForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := service.ValidateEventForm(form, time.Now().UTC()); !errs.OK() {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	ev := model.Event{
		Title:          form.Title,
		Description:    form.Description,
		StartTime:      form.StartTime.UTC(),
		EndTime:        form.EndTime.UTC(),
		Duration:       service.DurationMinutes(form.StartTime, form.EndTime),
		Difficulty:     form.Difficulty,
		SeatsAvailable: form.TotalSeats,
		TotalSeats:     form.TotalSeats,
		Status:         model.StatusAvailable,
	}
	if getRole(c) == model.RoleProvider {
		ev.OwnerID = &userID
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Events.Create(ctx, &ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"event": ev})
}

type eventUpdateReq struct {
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Difficulty     string    `json:"difficulty"`
	SeatsAvailable int       `json:"seats_available"`
	TotalSeats     int       `json:"total_seats"`
	Status         string    `json:"status"`
}

// UpdateEvent writes every submitted field as-is. Unlike creation, the
// edit path performs no form validation; administrators may set past
// dates, shrink capacity below the booked count or move an event while
// registrations exist. Duration is still derived, never submitted.
func (h *AdminHandler) UpdateEvent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req eventUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Status != "" && !model.ValidStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !h.ownershipOK(c, ev) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	ev.Title = req.Title
	ev.Description = req.Description
	ev.StartTime = req.StartTime.UTC()
	ev.EndTime = req.EndTime.UTC()
	ev.Duration = service.DurationMinutes(req.StartTime, req.EndTime)
	ev.Difficulty = req.Difficulty
	ev.SeatsAvailable = req.SeatsAvailable
	ev.TotalSeats = req.TotalSeats
	if req.Status != "" {
		ev.Status = req.Status
	}

	if err := h.Events.Update(ctx, ev); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Events.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"event": updated})
}

type statusReq struct {
	Status string `json:"status"`
}

// UpdateStatus sets an event's status directly. Any status may follow
// any other; reopening a cancelled event or cancelling a fully booked
// one are both legal admin moves.
func (h *AdminHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil || !model.ValidStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !h.ownershipOK(c, ev) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Events.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Events.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"event": updated})
}

// DeleteEvent removes an event. Admins may delete any event; providers
// only their own. Registrations pointing at the deleted event survive
// and render as "Unknown Event" in user listings.
func (h *AdminHandler) DeleteEvent(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ownerID := userID
	if getRole(c) == model.RoleAdmin {
		ownerID = 0 // bypass ownership check
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Events.Delete(ctx, id, ownerID); err != nil {
		switch {
		case errors.Is(err, repository.ErrEventNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListEvents returns the full event collection, optionally narrowed by
// at most one of the date, month+year or year query parameters. The
// filters run in memory over the loaded collection.
func (h *AdminHandler) ListEvents(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	events, err := h.Events.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	dateQ := c.QueryParam("date")
	monthQ := c.QueryParam("month")
	yearQ := c.QueryParam("year")
	switch {
	case dateQ != "":
		day, err := time.Parse(calendar.DayKeyFormat, dateQ)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
		}
		events = calendar.FilterByDate(events, day)
	case monthQ != "":
		mo, err := strconv.Atoi(monthQ)
		if err != nil || mo < 1 || mo > 12 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid month"})
		}
		y, err := strconv.Atoi(yearQ)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "month filter requires year"})
		}
		events = calendar.FilterByMonth(events, y, time.Month(mo))
	case yearQ != "":
		y, err := strconv.Atoi(yearQ)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid year"})
		}
		events = calendar.FilterByYear(events, y)
	}

	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// ListRegistrations returns every registration for an event together
// with registrant details, oldest first.
func (h *AdminHandler) ListRegistrations(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if _, err := h.Events.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	attendees, err := h.Regs.ListByEvent(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"registrations": attendees})
}

// ListUsers returns every registered profile, newest first.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	users, err := h.Profiles.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}
