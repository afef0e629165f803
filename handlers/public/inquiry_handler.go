package handlers

import (
	"errors"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/middlewares"
	"etkinlik.link/pkg/flashmessages"
	"etkinlik.link/pkg/formvalidation"
	"etkinlik.link/pkg/renderer"
	"etkinlik.link/services"
	"etkinlik.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const inquiryCreateView = "inquiries/create"

// InquiryHandler iletişim formu.
type InquiryHandler struct {
	service services.IInquiryService
}

// NewInquiryHandler yeni bir InquiryHandler örneği oluşturur.
func NewInquiryHandler(service services.IInquiryService) *InquiryHandler {
	return &InquiryHandler{service: service}
}

func (h *InquiryHandler) ShowCreateInquiry(c *fiber.Ctx) error {
	return renderer.Render(c, inquiryCreateView, fiber.Map{
		"Title": "Bize Ulaşın",
		"Form":  h.service.PrefillInquiry(utils.CurrentIdentity(c)),
	})
}

func (h *InquiryHandler) CreateInquiry(c *fiber.Ctx) error {
	var input services.InquiryInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.InvalidBody(c, inquiryCreateView, input, nil)
	}

	if _, err := h.service.CreateInquiry(c.UserContext(), input); err != nil {
		if verrs, ok := formvalidation.AsValidationErrors(err); ok {
			return renderer.RenderForm(c, inquiryCreateView, input, verrs, fiber.StatusUnprocessableEntity, nil)
		}
		if !errors.Is(err, services.ErrInquiryNotSaved) {
			configslog.Log.Error("İletişim formu işlenemedi", zap.Error(err))
		}
		return renderer.ServerError(c, "Mesajınız gönderilemedi. Lütfen daha sonra tekrar deneyin.")
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Mesajınız alındı. Teşekkür ederiz.")
	return c.Redirect(middlewares.LandingPath, fiber.StatusSeeOther)
}
