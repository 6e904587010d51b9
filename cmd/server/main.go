package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/SebasVLANQ/calendar/internal/auth"
	"github.com/SebasVLANQ/calendar/internal/config"
	"github.com/SebasVLANQ/calendar/internal/database"
	"github.com/SebasVLANQ/calendar/internal/handler"
	"github.com/SebasVLANQ/calendar/internal/queue"
	"github.com/SebasVLANQ/calendar/internal/repository"
	"github.com/SebasVLANQ/calendar/internal/router"
	"github.com/SebasVLANQ/calendar/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Redis is optional; a nil client disables response caching.
	rdb := config.NewRedisClient()

	events := repository.NewEventRepo(db)
	regs := repository.NewRegistrationRepo(db)
	profiles := repository.NewProfileRepo(db)
	tokens := repository.NewTokenRepo(db)

	booking := service.NewBookingService(events, regs, profiles)

	broker := auth.NewBroker()
	go logSessionChanges(broker)

	// The confirmation consumer runs for the life of the process and
	// reconnects to the AMQP broker on its own.
	go func() {
		sender := queue.NewAPIEmailSender(cfg.EmailAPIURL, cfg.EmailAPIKey)
		if err := queue.StartRegistrationConsumer(sender); err != nil {
			log.Printf("registration-consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterPublic(e, handler.NewEventHandler(events), handler.NewCalendarHandler(events), rdb)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, profiles, tokens, broker), cfg.JWTSecret)
	router.RegisterBooking(e, handler.NewBookingHandler(booking, events, regs), handler.NewProfileHandler(profiles), cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(events, regs, profiles), cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// logSessionChanges drains the auth broker and writes one log line per
// sign-in and sign-out.
func logSessionChanges(b *auth.Broker) {
	ch, unsub := b.Subscribe()
	defer unsub()
	for ev := range ch {
		switch ev.Kind {
		case auth.SignedIn:
			log.Printf("session: user %d signed in", ev.UserID)
		case auth.SignedOut:
			log.Printf("session: user %d signed out", ev.UserID)
		}
	}
}
