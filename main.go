package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"fintrack-go-be/auth"
	"fintrack-go-be/config"
	"fintrack-go-be/database"
	"fintrack-go-be/handlers"
	"fintrack-go-be/mailer"
	"fintrack-go-be/middleware"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Error("JWT_SECRET environment variable not set")
		os.Exit(1)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Error("database startup failed", "error", err)
		os.Exit(1)
	}
	log.Info("connected to database")

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	mail := mailer.New(mailer.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	}, log)

	h := handlers.New(db, tokens, mail, log, cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: jsonErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use("/api", limiter.New(limiter.Config{
		Max:        cfg.RateLimitPerMin,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"ok":      false,
				"message": "Too many requests, slow down",
			})
		},
	}))

	h.RegisterRoutes(app,
		middleware.RequireAuth(tokens, log),
		middleware.OptionalAuth(tokens, log),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	if err := app.Listen(":" + port); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// jsonErrorHandler keeps every error that escapes a handler in the shared
// {ok:false, message} shape.
func jsonErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Something went wrong, please try again"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}
	return c.Status(code).JSON(fiber.Map{"ok": false, "message": message})
}
