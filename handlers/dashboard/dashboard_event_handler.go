package handlers

import (
	"errors"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/pkg/flashmessages"
	"etkinlik.link/pkg/formvalidation"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/pkg/renderer"
	"etkinlik.link/services"
	"etkinlik.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	adminEventsPath      = "/admin/events"
	adminEventCreateView = "admin/events/create"
	adminEventEditView   = "admin/events/edit"
)

// DashboardEventHandler yönetici etkinlik işlemleri.
type DashboardEventHandler struct {
	service services.IEventService
}

// NewDashboardEventHandler yeni bir DashboardEventHandler örneği oluşturur.
func NewDashboardEventHandler(service services.IEventService) *DashboardEventHandler {
	return &DashboardEventHandler{service: service}
}

func (h *DashboardEventHandler) ListEvents(c *fiber.Ctx) error {
	listing, err := h.service.ListEvents(c.UserContext(), queryparams.EventFilter{})
	if err != nil {
		configslog.Log.Error("Yönetici etkinlik listesi alınamadı", zap.Error(err))
		return renderer.ServerError(c, "Etkinlikler listelenirken bir hata oluştu.")
	}
	return renderer.Render(c, "admin/events/index", fiber.Map{
		"Title":  "Etkinlik Yönetimi",
		"Events": listing.Events,
	})
}

func (h *DashboardEventHandler) ShowCreateEvent(c *fiber.Ctx) error {
	return renderer.Render(c, adminEventCreateView, fiber.Map{
		"Title": "Yeni Etkinlik",
		"Form":  services.EventInput{TotalSeats: 1},
	})
}

func (h *DashboardEventHandler) CreateEvent(c *fiber.Ctx) error {
	var input services.EventInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.InvalidBody(c, adminEventCreateView, input, nil)
	}

	event, err := h.service.CreateEvent(c.UserContext(), input)
	if err != nil {
		if verrs, ok := formvalidation.AsValidationErrors(err); ok {
			return renderer.RenderForm(c, adminEventCreateView, input, verrs, fiber.StatusUnprocessableEntity, nil)
		}
		configslog.Log.Error("Etkinlik oluşturulamadı", zap.Error(err))
		return renderer.ServerError(c, "Etkinlik oluşturulamadı.")
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "\""+event.Name+"\" etkinliği oluşturuldu.")
	return c.Redirect(adminEventsPath, fiber.StatusSeeOther)
}

func (h *DashboardEventHandler) ShowEditEvent(c *fiber.Ctx) error {
	id := utils.ParamID(c, "id")
	event, err := h.service.GetEvent(c.UserContext(), id)
	if err != nil {
		return eventLookupError(c, err, id)
	}
	return renderer.Render(c, adminEventEditView, fiber.Map{
		"Title": "Etkinliği Düzenle",
		"Event": event,
		"Form":  services.EventInputFrom(event),
	})
}

func (h *DashboardEventHandler) UpdateEvent(c *fiber.Ctx) error {
	id := utils.ParamID(c, "id")

	var input services.EventInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.InvalidBody(c, adminEventEditView, input, fiber.Map{"EventID": id})
	}

	if _, err := h.service.UpdateEvent(c.UserContext(), id, input); err != nil {
		if verrs, ok := formvalidation.AsValidationErrors(err); ok {
			return renderer.RenderForm(c, adminEventEditView, input, verrs, fiber.StatusUnprocessableEntity, fiber.Map{"EventID": id})
		}
		return eventLookupError(c, err, id)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Etkinlik güncellendi.")
	return c.Redirect(adminEventsPath, fiber.StatusSeeOther)
}

func (h *DashboardEventHandler) ShowDeleteEvent(c *fiber.Ctx) error {
	id := utils.ParamID(c, "id")
	event, err := h.service.GetEvent(c.UserContext(), id)
	if err != nil {
		return eventLookupError(c, err, id)
	}
	return renderer.Render(c, "admin/events/delete", fiber.Map{
		"Title": "Etkinliği Sil",
		"Event": event,
	})
}

// DeleteEvent etkinliği yorum ve rezervasyonlarıyla birlikte siler.
func (h *DashboardEventHandler) DeleteEvent(c *fiber.Ctx) error {
	id := utils.ParamID(c, "id")
	if err := h.service.DeleteEvent(c.UserContext(), id); err != nil {
		return eventLookupError(c, err, id)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Etkinlik ve bağlı kayıtları silindi.")
	return c.Redirect(adminEventsPath, fiber.StatusSeeOther)
}

func eventLookupError(c *fiber.Ctx, err error, id uint) error {
	if errors.Is(err, services.ErrEventNotFound) {
		return renderer.NotFound(c, "Etkinlik bulunamadı.")
	}
	configslog.Log.Error("Yönetici etkinlik işlemi başarısız", zap.Uint("event_id", id), zap.String("path", c.Path()), zap.Error(err))
	return renderer.ServerError(c, "Etkinlik işlemi tamamlanamadı.")
}
