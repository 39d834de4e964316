package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Route-level rate limit on the whole auth surface. This is transport
	// hardening only, not a per-username lockout.
	auth.Use(limiter.New(limiter.Config{
		Max:        30,
		Expiration: 1 * time.Minute,
	}))

	// Public routes
	auth.Post("/login", LoginAPI)
	auth.Post("/otp/request", RequestOTPAPI)
	auth.Post("/otp/verify", VerifyOTPAPI)
	auth.Get("/security-question", SecurityQuestionAPI)
	auth.Post("/security-login", SecurityLoginAPI)
	auth.Post("/logout", LogoutAPI)

	// Protected routes
	auth.Use(AdminRequired)
	auth.Get("/profile", ProfileAPI)
	auth.Post("/change-password", ChangePasswordAPI)
	auth.Post("/security-question", SetSecurityQuestionAPI)
	auth.Post("/email", SetEmailAPI)
}

func sessionToken(c *fiber.Ctx) string {
	// First try cookie
	if token := c.Cookies("jwt_token"); token != "" {
		return token
	}

	// If no cookie, try Authorization header
	if header := c.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// AdminRequired validates the session and admits only admin principals.
func AdminRequired(c *fiber.Ctx) error {
	token := sessionToken(c)
	if token == "" {
		return c.Status(401).JSON(fiber.Map{"error": "No token found"})
	}

	claims, err := ValidateSession(token)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
	}
	if claims.Kind != KindAdmin {
		return c.Status(403).JSON(fiber.Map{"error": "Admin session required"})
	}

	c.Locals("principal", claims.Principal)
	c.Locals("auth_method", claims.Method)
	return c.Next()
}

// StudentRequired validates the session and admits only student principals.
// The roll number the session was issued for is set on the request context.
func StudentRequired(c *fiber.Ctx) error {
	token := sessionToken(c)
	if token == "" {
		return c.Status(401).JSON(fiber.Map{"error": "No token found"})
	}

	claims, err := ValidateSession(token)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
	}
	if claims.Kind != KindStudent {
		return c.Status(403).JSON(fiber.Map{"error": "Student session required"})
	}

	c.Locals("roll", claims.Principal)
	c.Locals("auth_method", claims.Method)
	return c.Next()
}
