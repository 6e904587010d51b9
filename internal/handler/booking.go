package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SebasVLANQ/calendar/internal/i18n"
	"github.com/SebasVLANQ/calendar/internal/model"
	"github.com/SebasVLANQ/calendar/internal/repository"
	"github.com/SebasVLANQ/calendar/internal/service"
)

// BookingHandler drives the seat reservation workflow and the caller's
// registration listing.
type BookingHandler struct {
	Svc    service.Booker
	Events *repository.EventRepo
	Regs   *repository.RegistrationRepo
}

func NewBookingHandler(svc service.Booker, events *repository.EventRepo, regs *repository.RegistrationRepo) *BookingHandler {
	return &BookingHandler{Svc: svc, Events: events, Regs: regs}
}

type bookReq struct {
	Seats int `json:"seats"`
}

// Book reserves seats on an event for the authenticated user.
//
// An event that is not in the available state is rejected up front with
// a blocking message; the reservation workflow never starts for
// cancelled or fully booked events. Everything past that gate is
// decided by the service, whose storage constraints also catch the
// races this handler cannot see.
func (h *BookingHandler) Book(c echo.Context) error {
	eventID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	ev, err := h.Events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return h.bookLoaded(c, ev)
}

// bookLoaded runs the workflow for an already loaded event: the status
// gate, then the reservation service.
func (h *BookingHandler) bookLoaded(c echo.Context, ev model.Event) error {
	lang := reqLang(c)

	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	switch ev.Status {
	case model.StatusCancelled:
		return c.JSON(http.StatusConflict, echo.Map{"error": "This event has been cancelled"})
	case model.StatusFullyBooked:
		return c.JSON(http.StatusConflict, echo.Map{"error": "This event is fully booked"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	res, err := h.Svc.Book(ctx, ev.ID, userID, req.Seats)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAuthenticated):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		case errors.Is(err, repository.ErrEventNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		case errors.Is(err, service.ErrAlreadyRegistered):
			return c.JSON(http.StatusConflict, echo.Map{"error": i18n.T(lang, "booking.alreadyRegistered")})
		case errors.Is(err, service.ErrInvalidSeatCount):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": i18n.T(lang, "booking.seatRange")})
		case errors.Is(err, service.ErrInsufficientSeats):
			return c.JSON(http.StatusConflict, echo.Map{"error": i18n.T(lang, "booking.notEnoughSeats")})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}

	msg := i18n.T(lang, "booking.confirmed")
	if !res.EmailQueued {
		msg = i18n.T(lang, "booking.emailDelayed")
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":      msg,
		"registration": res.Registration,
		"event":        res.Event,
	})
}

// MyRegistrations lists the caller's registrations with event details,
// newest first. Registrations whose event was deleted still appear,
// titled "Unknown Event".
func (h *BookingHandler) MyRegistrations(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	details, err := h.Regs.ListDetailsByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"registrations": details})
}
