package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roleRequest(t *testing.T, role interface{}, mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, h(c))
	return rec
}

func TestRequireRoleAllows(t *testing.T) {
	mw := RequireRole("ADMIN", "PROVIDER")
	assert.Equal(t, http.StatusOK, roleRequest(t, "ADMIN", mw).Code)
	assert.Equal(t, http.StatusOK, roleRequest(t, "PROVIDER", mw).Code)
}

func TestRequireRoleForbids(t *testing.T) {
	mw := RequireRole("ADMIN")
	assert.Equal(t, http.StatusForbidden, roleRequest(t, "CUSTOMER", mw).Code)
	assert.Equal(t, http.StatusForbidden, roleRequest(t, "", mw).Code)
	assert.Equal(t, http.StatusForbidden, roleRequest(t, nil, mw).Code)
	assert.Equal(t, http.StatusForbidden, roleRequest(t, 42, mw).Code)
}
