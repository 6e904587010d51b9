package router // package router defines how HTTP routes are registered for the API

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/SebasVLANQ/calendar/internal/handler"
	"github.com/SebasVLANQ/calendar/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware.  Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token; the presented token is revoked
	// and a new pair is issued.
	g.POST("/refresh", a.Refresh)
	// Logout does not require a JWT; a valid refresh token in the body
	// is enough to terminate the session.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.PUT("/me/password", a.UpdatePassword)
}

// RegisterPublic registers unauthenticated browse endpoints: the event
// listing, single event details and the month calendar grid.  Guests
// browse the calendar freely; only booking requires a session.  The
// event listing is cached in Redis for a short TTL when a client is
// available.
func RegisterPublic(e *echo.Echo, ev *handler.EventHandler, cal *handler.CalendarHandler, rdb *redis.Client) {
	e.GET("/v1/events", ev.List, middleware.CacheGET(rdb, "events", 30*time.Second))
	e.GET("/v1/events/:id", ev.Get)
	e.GET("/v1/calendar", cal.Grid)
}
