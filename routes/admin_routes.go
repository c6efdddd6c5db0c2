package routes

import (
	"github.com/adityavk98/consult_connect/handlers"
	"github.com/adityavk98/consult_connect/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/professionals", handlers.ListProfessionalsForReview)
	admin.Put("/professionals/:professionalId/verification", handlers.SetVerificationStatus)
}
