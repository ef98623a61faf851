package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"ctfchat-backend/internal/config"
	"ctfchat-backend/internal/handler"
	"ctfchat-backend/internal/middleware"
	"ctfchat-backend/internal/repository"
	"ctfchat-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	cfg := config.Load()
	log := newLogger(cfg)

	// Stores (transient, in-memory by design)
	messages := repository.NewMessageRepository(cfg.GlobalHistory, cfg.TeamHistory)
	moderation := repository.NewModerationRepository(cfg.AuditHistory)

	// Services
	registry := service.NewSessionRegistry()
	filter := service.NewFlagFilter()
	hub := service.NewHub(registry, messages, moderation, filter, log.With().Str("component", "hub").Logger())

	// Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
		BodyLimit:    1 * 1024 * 1024, // 1MB
	})

	app.Use(recover.New())
	app.Use(middleware.Logger(log))

	// Health + metrics
	healthH := handler.NewHealthHandler()
	app.Get("/api/health", healthH.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Public channel history
	chatH := handler.NewChatHandler(messages)
	app.Get("/api/messages/:channel_type", chatH.GetMessages)

	// Admin (shared-secret header)
	admin := app.Group("/api/admin", middleware.AdminToken(cfg.AdminToken))
	adminH := handler.NewAdminHandler(hub, messages, moderation)
	admin.Get("/users", adminH.Users)
	admin.Get("/messages/all", adminH.AllMessages)
	admin.Delete("/message/delete", adminH.DeleteMessage)
	admin.Post("/user/block", adminH.BlockUser)
	admin.Post("/user/mute", adminH.MuteUser)
	admin.Post("/user/unblock", adminH.UnblockUser)
	admin.Get("/logs", adminH.Logs)

	// WebSocket
	wsH := handler.NewWSHandler(hub, log.With().Str("component", "ws").Logger())
	app.Get("/ws", wsH.Upgrade)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("ctf-chat backend running")

	<-quit
	log.Info().Msg("shutting down")
	_ = app.ShutdownWithTimeout(5 * time.Second)
	log.Info().Msg("server stopped")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	zerolog.DurationFieldUnit = time.Millisecond
	if cfg.IsProduction() {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger().Level(zerolog.DebugLevel)
}
