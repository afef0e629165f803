package routes

import (
	panel_handlers "etkinlik.link/handlers/panel"
	"etkinlik.link/middlewares"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes giriş yapmış üyelerin rezervasyon ve yorum rotalarını tanımlar.
func registerPanelRoutes(app *fiber.App, svc *services.Services) {
	bookingHandler := panel_handlers.NewPanelBookingHandler(svc.Bookings)
	reviewHandler := panel_handlers.NewPanelReviewHandler(svc.Reviews)

	// --- Rezervasyonlar ---
	bookings := app.Group("/bookings", middlewares.RequireMember)
	bookings.Get("/", bookingHandler.ListBookings)                // GET /bookings
	bookings.Get("/details/:id", bookingHandler.ShowBooking)      // GET /bookings/details/{id}
	bookings.Get("/create", bookingHandler.ShowCreateBooking)     // GET /bookings/create?eventId=
	bookings.Post("/create", bookingHandler.CreateBooking)        // POST /bookings/create
	bookings.Get("/delete/:id", bookingHandler.ShowDeleteBooking) // GET /bookings/delete/{id} (onay)
	bookings.Post("/delete/:id", bookingHandler.DeleteBooking)    // POST /bookings/delete/{id}

	// --- Yorumlar ---
	reviews := app.Group("/reviews", middlewares.RequireMember)
	reviews.Get("/create", reviewHandler.ShowCreateReview)     // GET /reviews/create?eventId=
	reviews.Post("/create", reviewHandler.CreateReview)        // POST /reviews/create
	reviews.Get("/edit/:id", reviewHandler.ShowEditReview)     // GET /reviews/edit/{id}
	reviews.Post("/edit/:id", reviewHandler.EditReview)        // POST /reviews/edit/{id}
	reviews.Get("/delete/:id", reviewHandler.ShowDeleteReview) // GET /reviews/delete/{id} (onay)
	reviews.Post("/delete/:id", reviewHandler.DeleteReview)    // POST /reviews/delete/{id}
}
