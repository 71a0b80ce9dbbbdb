package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gradlink/gradlink-backend/internal/handlers"
	"github.com/gradlink/gradlink-backend/internal/middleware"
	"github.com/gradlink/gradlink-backend/internal/services"
)

func Setup(
	app *fiber.App,
	tokens *services.TokenService,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	users := api.Group("/v1/users")

	// Credential endpoints get a stricter limit: 20 req/min per IP
	authLimiter := limiter.New(limiter.Config{
		Max:               20,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})

	users.Post("/createUser", authLimiter, userHandler.CreateUser)
	users.Post("/signin", authLimiter, userHandler.SignIn)
	users.Get("/google-auth", authLimiter, userHandler.GoogleAuth)
	users.Get("/identify/:username", userHandler.Identify)
	users.Post("/update-profile", middleware.Protected(tokens), userHandler.UpdateProfile)
}
