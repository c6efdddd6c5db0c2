package routes

import (
	"github.com/adityavk98/consult_connect/handlers"
	"github.com/adityavk98/consult_connect/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProfessionalRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Public browsing.
	public := api.Group("/professionals")
	public.Get("", handlers.ListVerifiedProfessionals)
	public.Get("/:professionalId", handlers.GetProfessionalProfile)
	public.Get("/:professionalId/slots", handlers.GetProfessionalSlots)
	public.Get("/:professionalId/reviews", handlers.GetProfessionalReviews)
	public.Get("/:professionalId/reviews/summary", handlers.GetReviewSummary)

	// Slot holds, placed by authenticated clients.
	holds := api.Group("/professionals/:professionalId/slots", middleware.Protected())
	holds.Post("/:slotId/hold", handlers.HoldSlot)
	holds.Delete("/:slotId/hold", handlers.ReleaseHold)

	// Professional self-service.
	me := api.Group("/professional", middleware.Protected(), middleware.ProfessionalRequired())
	me.Get("/availability", handlers.GetMyAvailability)
	me.Post("/availability", handlers.AddAvailability)
	me.Put("/availability/:availabilityId", handlers.UpdateAvailability)
	me.Delete("/availability/:availabilityId", handlers.DeleteAvailability)
	me.Get("/pricing", handlers.GetMyPricing)
	me.Put("/pricing", handlers.SetPricing)
	me.Get("/slots", handlers.GetMySlots)
	me.Post("/slots/:slotId/block", handlers.BlockSlot)
	me.Delete("/slots/:slotId/block", handlers.UnblockSlot)
	me.Put("/slots/:slotId/rate", handlers.SetSlotCustomRate)
}
