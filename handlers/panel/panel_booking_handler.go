package handlers

import (
	"errors"
	"fmt"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/middlewares"
	"etkinlik.link/models"
	"etkinlik.link/pkg/flashmessages"
	"etkinlik.link/pkg/formvalidation"
	"etkinlik.link/pkg/renderer"
	"etkinlik.link/services"
	"etkinlik.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	bookingsPath      = "/bookings"
	bookingCreateView = "bookings/create"
)

// identityOf üye kapısından geçmiş isteğin kimliğini döndürür.
func identityOf(c *fiber.Ctx) models.Identity {
	if identity := utils.CurrentIdentity(c); identity != nil {
		return *identity
	}
	return models.Identity{}
}

// endStaleSession silinmiş bir üyenin oturumunu kapatıp giriş sayfasına yönlendirir.
func endStaleSession(c *fiber.Ctx) error {
	if sess, err := utils.SessionStart(c); err == nil {
		if err := sess.Destroy(); err != nil {
			configslog.Log.Warn("Geçersiz oturum silinemedi", zap.Error(err))
		}
	}
	return c.Redirect(middlewares.LoginPath, fiber.StatusFound)
}

// PanelBookingHandler üyenin kendi rezervasyonları.
type PanelBookingHandler struct {
	service services.IBookingService
}

// NewPanelBookingHandler yeni bir PanelBookingHandler örneği oluşturur.
func NewPanelBookingHandler(service services.IBookingService) *PanelBookingHandler {
	return &PanelBookingHandler{service: service}
}

func (h *PanelBookingHandler) ListBookings(c *fiber.Ctx) error {
	identity := identityOf(c)
	bookings, err := h.service.ListOwnBookings(c.UserContext(), identity)
	if err != nil {
		configslog.Log.Error("Rezervasyonlar listelenemedi", zap.Uint("member_id", identity.MemberID), zap.Error(err))
		return renderer.ServerError(c, "Rezervasyonlarınız listelenirken bir hata oluştu.")
	}
	return renderer.Render(c, "bookings/index", fiber.Map{
		"Title":    "Rezervasyonlarım",
		"Bookings": bookings,
	})
}

func (h *PanelBookingHandler) ShowBooking(c *fiber.Ctx) error {
	booking, err := h.ownBooking(c)
	if err != nil {
		return h.bookingLookupError(c, err)
	}
	return renderer.Render(c, "bookings/details", fiber.Map{
		"Title":   "Rezervasyon Detayı",
		"Booking": booking,
	})
}

func (h *PanelBookingHandler) ShowCreateBooking(c *fiber.Ctx) error {
	eventID := utils.ParseID(c.Query("eventId"))
	form, err := h.service.PrepareBooking(c.UserContext(), eventID)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return renderer.NotFound(c, "Etkinlik bulunamadı.")
		}
		configslog.Log.Error("Rezervasyon formu hazırlanamadı", zap.Uint("event_id", eventID), zap.Error(err))
		return renderer.ServerError(c, "Rezervasyon formu yüklenemedi.")
	}
	return renderer.Render(c, bookingCreateView, fiber.Map{
		"Title": "Bilet Al",
		"Event": form.Event,
		"Form":  form.Input,
	})
}

// CreateBooking kapasite yetersizse formu kalan koltuk bilgisiyle 409 olarak döndürür.
func (h *PanelBookingHandler) CreateBooking(c *fiber.Ctx) error {
	identity := identityOf(c)

	var input services.BookingInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.InvalidBody(c, bookingCreateView, input, nil)
	}
	if input.EventID == 0 {
		input.EventID = utils.ParseID(c.Query("eventId"))
	}

	booking, err := h.service.CreateBooking(c.UserContext(), identity, input)
	if err != nil {
		var seatsErr *services.InsufficientSeatsError
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			return renderer.NotFound(c, "Etkinlik bulunamadı.")
		case errors.Is(err, services.ErrMemberNotFound):
			return endStaleSession(c)
		case errors.As(err, &seatsErr):
			errs := formvalidation.ValidationErrors{
				"quantity": fmt.Sprintf("Yalnızca %d koltuk mevcut.", seatsErr.Available),
			}
			return renderer.RenderForm(c, bookingCreateView, input, errs, fiber.StatusConflict, h.formExtras(c, input.EventID))
		}
		if verrs, ok := formvalidation.AsValidationErrors(err); ok {
			return renderer.RenderForm(c, bookingCreateView, input, verrs, fiber.StatusUnprocessableEntity, h.formExtras(c, input.EventID))
		}
		configslog.Log.Error("Rezervasyon oluşturulamadı", zap.Uint("member_id", identity.MemberID), zap.Uint("event_id", input.EventID), zap.Error(err))
		return renderer.ServerError(c, "Rezervasyon oluşturulamadı. Lütfen tekrar deneyin.")
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey,
		fmt.Sprintf("%d adet bilet rezervasyonunuz oluşturuldu.", booking.Quantity))
	return c.Redirect(bookingsPath, fiber.StatusSeeOther)
}

// formExtras hatalı formda etkinlik bilgisini tekrar gösterebilmek için etkinliği yükler.
func (h *PanelBookingHandler) formExtras(c *fiber.Ctx, eventID uint) fiber.Map {
	form, err := h.service.PrepareBooking(c.UserContext(), eventID)
	if err != nil {
		return nil
	}
	return fiber.Map{"Event": form.Event}
}

func (h *PanelBookingHandler) ShowDeleteBooking(c *fiber.Ctx) error {
	booking, err := h.ownBooking(c)
	if err != nil {
		return h.bookingLookupError(c, err)
	}
	return renderer.Render(c, "bookings/delete", fiber.Map{
		"Title":   "Rezervasyonu İptal Et",
		"Booking": booking,
	})
}

func (h *PanelBookingHandler) DeleteBooking(c *fiber.Ctx) error {
	identity := identityOf(c)
	id := utils.ParamID(c, "id")

	if err := h.service.CancelBooking(c.UserContext(), identity, id); err != nil {
		return h.bookingLookupError(c, err)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Rezervasyonunuz iptal edildi.")
	return c.Redirect(bookingsPath, fiber.StatusSeeOther)
}

func (h *PanelBookingHandler) ownBooking(c *fiber.Ctx) (*models.Booking, error) {
	return h.service.GetOwnBooking(c.UserContext(), identityOf(c), utils.ParamID(c, "id"))
}

// bookingLookupError başkasına ait rezervasyonu da bulunamadı olarak gösterir.
func (h *PanelBookingHandler) bookingLookupError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrBookingNotFound) {
		return renderer.NotFound(c, "Rezervasyon bulunamadı.")
	}
	configslog.Log.Error("Rezervasyon işlemi başarısız", zap.String("path", c.Path()), zap.Error(err))
	return renderer.ServerError(c, "Rezervasyon bilgileri alınırken bir hata oluştu.")
}
