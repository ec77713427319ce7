package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spirocarbon/farmrecord/internal/logging"
	"github.com/spirocarbon/farmrecord/internal/server/auth"
)

// NewApp builds the fiber application with all routes registered. The
// caller owns Listen and Shutdown.
func NewApp(h *Handler, tokens *auth.Issuer, log logging.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(RequestLogger(log))

	authRequired := AuthRequired(tokens)

	app.Get("/", h.Root)
	app.Post("/login", h.Login)
	app.Post("/send-otp", h.SendOTP)
	app.Post("/verify-otp", h.VerifyOTP)
	app.Post("/change-password", h.ChangePassword)
	app.Post("/upload", h.Upload)
	app.Post("/fields", authRequired, h.Fields)
	app.Post("/add-activity", h.AddActivity)
	app.Post("/activities", h.Activities)
	app.Post("/check-submission", h.CheckSubmission)
	app.Get("/validateToken", authRequired, h.ValidateToken)

	return app
}
