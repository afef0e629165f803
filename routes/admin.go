package routes

import (
	dashboard_handlers "etkinlik.link/handlers/dashboard"
	"etkinlik.link/middlewares"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
)

// registerAdminRoutes /admin altındaki rotaları tanımlar. Sadece Admin rolü erişebilir.
func registerAdminRoutes(app *fiber.App, svc *services.Services) {
	homeHandler := dashboard_handlers.NewDashboardHomeHandler(svc.Dashboard, svc.Bookings, svc.Inquiries)
	eventHandler := dashboard_handlers.NewDashboardEventHandler(svc.Events)
	memberHandler := dashboard_handlers.NewDashboardMemberHandler(svc.Members)

	adminGroup := app.Group("/admin", middlewares.RequireAdmin())

	adminGroup.Get("/", homeHandler.Home)
	adminGroup.Get("/bookings", homeHandler.ListBookings) // GET /admin/bookings?eventId=&memberId=
	adminGroup.Get("/inquiries", homeHandler.ListInquiries)

	// --- Etkinlikler ---
	adminGroup.Get("/events", eventHandler.ListEvents)
	adminGroup.Get("/events/create", eventHandler.ShowCreateEvent)
	adminGroup.Post("/events/create", eventHandler.CreateEvent)
	adminGroup.Get("/events/edit/:id", eventHandler.ShowEditEvent)
	adminGroup.Post("/events/edit/:id", eventHandler.UpdateEvent)
	adminGroup.Get("/events/delete/:id", eventHandler.ShowDeleteEvent)
	adminGroup.Post("/events/delete/:id", eventHandler.DeleteEvent)

	// --- Üyeler ---
	adminGroup.Get("/members", memberHandler.ListMembers)
	adminGroup.Get("/members/edit/:id", memberHandler.ShowEditMember)
	adminGroup.Post("/members/edit/:id", memberHandler.UpdateMember)
	adminGroup.Get("/members/delete/:id", memberHandler.ShowDeleteMember)
	adminGroup.Post("/members/delete/:id", memberHandler.DeleteMember)
}
