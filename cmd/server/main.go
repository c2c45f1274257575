package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"loadboard/internal/config"
	"loadboard/internal/database"
	"loadboard/internal/handler"
	"loadboard/internal/logging"
	"loadboard/internal/queue"
	"loadboard/internal/repository"
	"loadboard/internal/router"
	mailer "loadboard/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()
	logging.Init(cfg.Env)

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("schema migration failed")
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, rate limiting and listing cache disabled")
	}

	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	profiles := repository.NewProfileRepo(db)
	jobs := repository.NewJobRepo(db)
	bookings := repository.NewBookingRepo(db)
	conversations := repository.NewConversationRepo(db)
	actions := repository.NewAdminActionRepo(db)

	if err := sessions.PurgeExpired(context.Background(), time.Now().UTC().Add(-30*24*time.Hour)); err != nil {
		log.Warn().Err(err).Msg("purge expired sessions failed")
	}

	mail := mailer.NewPublisher(cfg.AMQPURL, cfg.PublicBaseURL)

	h := router.Handlers{
		Auth:    handler.NewAuthHandler(cfg, users, profiles, sessions, mail),
		Profile: handler.NewProfileHandler(profiles),
		Job:     handler.NewJobHandler(jobs),
		Booking: handler.NewBookingHandler(bookings, jobs),
		Message: handler.NewMessageHandler(conversations, users),
		Admin:   handler.NewAdminHandler(cfg, users, profiles, actions, sessions, mail),
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, rdb, h, sessions, users)

	go queue.StartEmailConsumer(cfg)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
