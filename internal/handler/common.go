package handler // handler defines http handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/SebasVLANQ/calendar/internal/i18n"
)

// getUserID extracts the user_id from echo.Context and converts it to
// uint64. JWT claims decode numbers as float64, so several encodings
// are accepted.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole extracts the role claim stored by the JWT middleware.
func getRole(c echo.Context) string {
	if r, ok := c.Get("role").(string); ok {
		return r
	}
	return ""
}

// reqLang picks the response language from the lang query parameter or
// the Accept-Language header, keeping only the primary subtag.
func reqLang(c echo.Context) string {
	if l := c.QueryParam("lang"); l != "" {
		return l
	}
	al := c.Request().Header.Get("Accept-Language")
	if al == "" {
		return i18n.DefaultLanguage
	}
	if i := strings.IndexAny(al, ",;-"); i > 0 {
		al = al[:i]
	}
	return strings.ToLower(strings.TrimSpace(al))
}

// pathID parses the :id path parameter as a positive uint64.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
