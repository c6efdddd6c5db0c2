package routes

import (
	"github.com/adityavk98/consult_connect/handlers"
	"github.com/adityavk98/consult_connect/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected())
	booking.Get("/me", handlers.GetMyBookings)
	booking.Post("", handlers.CreateBooking)
	booking.Get("/:bookingId", handlers.GetBookingDetail)
	booking.Post("/:bookingId/cancel", handlers.CancelBooking)

	professionalBooking := api.Group("/professional/bookings", middleware.Protected(), middleware.ProfessionalRequired())
	professionalBooking.Get("", handlers.GetProfessionalBookings)
	professionalBooking.Post("/:bookingId/confirm", handlers.ConfirmBooking)
	professionalBooking.Post("/:bookingId/complete", handlers.CompleteBooking)
}
