package router

import (
	"github.com/labstack/echo/v4"

	"github.com/SebasVLANQ/calendar/internal/handler"
	"github.com/SebasVLANQ/calendar/internal/middleware"
	"github.com/SebasVLANQ/calendar/internal/model"
)

// RegisterAdmin registers the event management endpoints under
// /v1/admin.  Providers and admins share the same routes; ownership
// checks inside the handlers decide what a provider may touch.  The
// user listing is admin-only.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleProvider, model.RoleAdmin),
	)
	g.GET("/events", a.ListEvents)
	g.POST("/events", a.CreateEvent)
	g.PUT("/events/:id", a.UpdateEvent)
	g.PATCH("/events/:id/status", a.UpdateStatus)
	g.DELETE("/events/:id", a.DeleteEvent)
	g.GET("/events/:id/registrations", a.ListRegistrations)

	admin := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	admin.GET("/users", a.ListUsers)
}
