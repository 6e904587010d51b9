package router

import (
	"github.com/labstack/echo/v4"

	"github.com/SebasVLANQ/calendar/internal/handler"
	"github.com/SebasVLANQ/calendar/internal/middleware"
	"github.com/SebasVLANQ/calendar/internal/model"
)

// RegisterBooking registers the booking and profile endpoints under
// /v1.  All routes require a valid JWT; any signed-in role may book
// seats and edit its own profile.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, p *handler.ProfileHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer, model.RoleProvider, model.RoleAdmin),
	)
	g.POST("/events/:id/book", b.Book)
	g.GET("/my-registrations", b.MyRegistrations)
	g.PUT("/profile", p.Update)
}
