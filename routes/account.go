package routes

import (
	auth_handlers "etkinlik.link/handlers/auth" // Kayıt, giriş ve çıkış handler'ları
	"etkinlik.link/middlewares"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
)

// registerAccountRoutes hesap rotalarını tanımlar. Misafir kapısı rota bazında bağlanır;
// grup seviyesinde Use edilirse /account altındaki çıkış rotasını da kapsar.
func registerAccountRoutes(app *fiber.App, svc *services.Services) {
	authHandler := auth_handlers.NewAuthHandler(svc.Auth)
	accountGroup := app.Group("/account")

	accountGroup.Get("/login", middlewares.GuestOnly, authHandler.ShowLogin)
	accountGroup.Post("/login", middlewares.GuestOnly, authHandler.Login)
	accountGroup.Get("/register", middlewares.GuestOnly, authHandler.ShowRegister)
	accountGroup.Post("/register", middlewares.GuestOnly, authHandler.Register)

	// Çıkış oturum olmasa da çalışır
	accountGroup.Get("/logout", authHandler.Logout)
	accountGroup.Post("/logout", authHandler.Logout)
}
