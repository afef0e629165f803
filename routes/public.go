package routes

import (
	public_handlers "etkinlik.link/handlers/public"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
)

// registerPublicRoutes misafirlerin de erişebildiği rotaları tanımlar.
func registerPublicRoutes(app *fiber.App, svc *services.Services) {
	homeHandler := public_handlers.NewHomeHandler(svc.Events)
	eventHandler := public_handlers.NewEventHandler(svc.Events)
	inquiryHandler := public_handlers.NewInquiryHandler(svc.Inquiries)

	app.Get("/", homeHandler.Home)

	app.Get("/events", eventHandler.ListEvents)            // GET /events?category=&date=&venue=&maxPrice=&searchTerm=
	app.Get("/events/details/:id", eventHandler.ShowEvent) // GET /events/details/{id}

	app.Get("/inquiries/create", inquiryHandler.ShowCreateInquiry)
	app.Post("/inquiries/create", inquiryHandler.CreateInquiry)
}
