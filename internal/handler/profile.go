package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SebasVLANQ/calendar/internal/repository"
	"github.com/SebasVLANQ/calendar/internal/service"
)

// ProfileHandler serves the authenticated user's profile edit endpoint.
// Email and the admin flag are never editable here; email mirrors the
// sign-up identity and the admin flag only changes in the database.
type ProfileHandler struct {
	Profiles *repository.ProfileRepo
}

func NewProfileHandler(profiles *repository.ProfileRepo) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles}
}

// Update validates and saves the caller's editable profile fields, then
// returns the stored profile.
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var form service.ProfileForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := service.ValidateProfileForm(form, false); !errs.OK() {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Profiles.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	p.Username = strings.TrimSpace(form.Username)
	p.FullName = strings.TrimSpace(form.FullName)
	p.Phone = strings.TrimSpace(form.Phone)
	p.Age = form.Age
	p.CountryOfResidence = strings.TrimSpace(form.CountryOfResidence)
	p.CityTownName = strings.TrimSpace(form.CityTownName)

	if err := h.Profiles.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return c.JSON(http.StatusConflict, echo.Map{"errors": service.ProfileFormErrors{Username: "Username already exists"}})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Profiles.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": updated})
}
