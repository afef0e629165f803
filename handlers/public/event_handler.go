package handlers

import (
	"errors"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/pkg/renderer"
	"etkinlik.link/services"
	"etkinlik.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// EventHandler herkese açık etkinlik listesi ve detay ekranları.
type EventHandler struct {
	service services.IEventService
}

// NewEventHandler yeni bir EventHandler örneği oluşturur.
func NewEventHandler(service services.IEventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	filter := queryparams.ParseEventFilter(func(key string) string { return c.Query(key) })

	listing, err := h.service.ListEvents(c.UserContext(), filter)
	if err != nil {
		configslog.Log.Error("Etkinlikler listelenemedi", zap.Error(err))
		return renderer.ServerError(c, "Etkinlikler listelenirken bir hata oluştu.")
	}

	return renderer.Render(c, "events/index", fiber.Map{
		"Title":      "Etkinlikler",
		"Events":     listing.Events,
		"Categories": listing.Categories,
		"Filter":     listing.Filter,
	})
}

func (h *EventHandler) ShowEvent(c *fiber.Ctx) error {
	id := utils.ParamID(c, "id")
	detail, err := h.service.GetEventDetail(c.UserContext(), id, utils.CurrentIdentity(c))
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return renderer.NotFound(c, "Etkinlik bulunamadı.")
		}
		configslog.Log.Error("Etkinlik detayı alınamadı", zap.Uint("event_id", id), zap.Error(err))
		return renderer.ServerError(c, "Etkinlik bilgileri alınırken bir hata oluştu.")
	}

	return renderer.Render(c, "events/details", fiber.Map{
		"Title":         detail.Event.Name,
		"Event":         detail.Event,
		"Reviews":       detail.Reviews,
		"AverageRating": detail.AverageRating,
		"HasBooked":     detail.HasBooked,
		"HasReviewed":   detail.HasReviewed,
	})
}
