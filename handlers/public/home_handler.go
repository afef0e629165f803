package handlers

import (
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/renderer"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HomeUpcomingLimit ana sayfada gösterilen yaklaşan etkinlik sayısıdır.
const HomeUpcomingLimit = 6

type HomeHandler struct {
	events services.IEventService
}

// NewHomeHandler yeni bir HomeHandler örneği oluşturur.
func NewHomeHandler(events services.IEventService) *HomeHandler {
	return &HomeHandler{events: events}
}

func (h *HomeHandler) Home(c *fiber.Ctx) error {
	events, err := h.events.ListUpcoming(c.UserContext(), HomeUpcomingLimit)
	data := fiber.Map{
		"Title":          "Kültür Kurulu Etkinlikleri",
		"UpcomingEvents": events,
	}
	if err != nil {
		configslog.Log.Error("Ana sayfa: yaklaşan etkinlikler alınamadı", zap.Error(err))
		data["UpcomingEvents"] = []models.Event{}
		data[renderer.FlashErrorKeyView] = "Yaklaşan etkinlikler yüklenemedi."
	}
	return renderer.Render(c, "home/index", data)
}
