package results

import (
	"resultdesk/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupResultsRoutes(app *fiber.App) {
	app.Post("/api/students/login", StudentLoginAPI)

	app.Get("/api/results/me", auth.StudentRequired, MyResultAPI)
	app.Get("/api/results/:roll", auth.AdminRequired, GetResultAPI)
}
