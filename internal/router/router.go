// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"loadboard/internal/config"
	"loadboard/internal/handler"
	"loadboard/internal/metrics"
	"loadboard/internal/middleware"
	"loadboard/internal/repository"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	Profile *handler.ProfileHandler
	Job     *handler.JobHandler
	Booking *handler.BookingHandler
	Message *handler.MessageHandler
	Admin   *handler.AdminHandler
}

// Register mounts all routes. Public endpoints (register, verify, login)
// sit outside the session middleware and behind the rate limiter;
// everything else under /api requires a valid session, and the admin
// group additionally requires the admin role.
func Register(e *echo.Echo, cfg config.Config, rdb *redis.Client, h Handlers, sessions *repository.SessionRepo, users *repository.UserRepo) {
	e.Use(metrics.Middleware())

	e.GET("/healthz", handler.Health)
	e.GET("/metrics", metrics.Handler())

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	e.POST("/api/register", h.Auth.Register, limiter)
	e.GET("/api/verify", h.Auth.Verify)
	e.POST("/api/login", h.Auth.Login, limiter)

	api := e.Group("/api")
	api.Use(middleware.RequireSession(cfg.SessionSecret, sessions, users))

	api.POST("/logout", h.Auth.Logout)
	api.GET("/user", h.Auth.Me)
	api.PUT("/user", h.Auth.UpdateMe)

	// The job listing is identical for every caller, so it is safe to
	// cache behind the session check.
	listingCache := middleware.NewListingCache(config.LoadCacheConfig(), rdb)
	api.GET("/jobs", h.Job.List, listingCache)
	api.GET("/jobs/:id", h.Job.Get)

	trucker := api.Group("", middleware.RequireRole("trucker"))
	trucker.GET("/profile/trucker", h.Profile.GetTrucker)
	trucker.PUT("/profile/trucker", h.Profile.UpdateTrucker)
	trucker.POST("/bookings", h.Booking.Create)
	trucker.GET("/trucker/bookings", h.Booking.ListMine)

	broker := api.Group("", middleware.RequireRole("broker"))
	broker.GET("/profile/broker", h.Profile.GetBroker)
	broker.PUT("/profile/broker", h.Profile.UpdateBroker)
	broker.POST("/jobs", h.Job.Create)
	broker.PUT("/jobs/:id", h.Job.Update)
	broker.GET("/broker/jobs", h.Job.ListMine)
	broker.GET("/broker/jobs/:id/applications", h.Booking.ListApplications)

	api.PUT("/bookings/:id/status", h.Booking.UpdateStatus,
		middleware.RequireRole("trucker", "broker"))

	api.GET("/conversations", h.Message.ListConversations)
	api.GET("/conversations/:id/messages", h.Message.ListMessages)
	api.POST("/messages", h.Message.Send)

	admin := api.Group("/admin", middleware.RequireRole("admin"))
	admin.POST("/approve-user", h.Admin.ApproveUser)
	admin.GET("/pending-truckers", h.Admin.PendingTruckers)
	admin.GET("/pending-brokers", h.Admin.PendingBrokers)
	admin.GET("/all-users", h.Admin.AllUsers)
	admin.GET("/action-history", h.Admin.ActionHistory)
	admin.GET("/user-profile/:id", h.Admin.UserProfile)
}
