package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fintrack-go-be/auth"
	"fintrack-go-be/config"
	"fintrack-go-be/mailer"
	"fintrack-go-be/middleware"
	"fintrack-go-be/validation"
)

// Handler carries the dependencies every route needs. It is constructed once
// at startup and shared; all fields are read-only after New.
type Handler struct {
	db     *gorm.DB
	tokens *auth.TokenService
	mail   mailer.Mailer
	log    *slog.Logger
	cfg    *config.Config

	// now is swapped out in tests that pin the calendar
	now func() time.Time
}

func New(db *gorm.DB, tokens *auth.TokenService, mail mailer.Mailer, log *slog.Logger, cfg *config.Config) *Handler {
	return &Handler{
		db:     db,
		tokens: tokens,
		mail:   mail,
		log:    log,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Health answers the unauthenticated liveness probe.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

func (h *Handler) claims(c *fiber.Ctx) *auth.Claims {
	return middleware.ClaimsFrom(c)
}

// --- response helpers ---

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"ok": false, "message": message})
}

func failValidation(c *fiber.Ctx, issues validation.Issues) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"ok":      false,
		"message": issues.Joined(),
		"errors":  issues,
	})
}

func badBody(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "Invalid request body")
}

func notFound(c *fiber.Ctx, what string) error {
	return fail(c, fiber.StatusNotFound, what+" not found")
}

// serverError logs the cause and answers with a generic message only.
func (h *Handler) serverError(c *fiber.Ctx, err error, context string) error {
	h.log.Error(context, "error", err, "path", c.Path())
	return fail(c, fiber.StatusInternalServerError, "Something went wrong, please try again")
}

// --- date helpers ---

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// monthRange turns a YYYY-MM filter into its [start, end) interval.
func monthRange(month string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 1, 0), nil
}
