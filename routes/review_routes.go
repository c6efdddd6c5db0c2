package routes

import (
	"github.com/adityavk98/consult_connect/handlers"
	"github.com/adityavk98/consult_connect/middleware"
	"github.com/gofiber/fiber/v2"
)

func ReviewRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	review := api.Group("/reviews", middleware.Protected())
	review.Post("", handlers.CreateReview)
	review.Get("/me", handlers.GetMyReviews)
}
