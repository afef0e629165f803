package handlers

import (
	"errors"
	"fmt"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/pkg/flashmessages"
	"etkinlik.link/pkg/formvalidation"
	"etkinlik.link/pkg/renderer"
	"etkinlik.link/services"
	"etkinlik.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	reviewCreateView = "reviews/create"
	reviewEditView   = "reviews/edit"
)

func eventDetailsPath(eventID uint) string {
	return fmt.Sprintf("/events/details/%d", eventID)
}

// PanelReviewHandler üyenin etkinlik değerlendirmeleri.
type PanelReviewHandler struct {
	service services.IReviewService
}

// NewPanelReviewHandler yeni bir PanelReviewHandler örneği oluşturur.
func NewPanelReviewHandler(service services.IReviewService) *PanelReviewHandler {
	return &PanelReviewHandler{service: service}
}

// eligibilityRedirect uygunluk hatalarını etkinlik sayfasına flash mesajla yönlendirir.
// Diğer hatalar için handled false döner.
func eligibilityRedirect(c *fiber.Ctx, err error, eventID uint) (handled bool, resp error) {
	switch {
	case errors.Is(err, services.ErrEventNotFound):
		return true, renderer.NotFound(c, "Etkinlik bulunamadı.")
	case errors.Is(err, services.ErrReviewNotEligible):
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Yalnızca bilet aldığınız etkinlikleri değerlendirebilirsiniz.")
		return true, c.Redirect(eventDetailsPath(eventID), fiber.StatusSeeOther)
	}
	return false, nil
}

func (h *PanelReviewHandler) ShowCreateReview(c *fiber.Ctx) error {
	eventID := utils.ParseID(c.Query("eventId"))
	form, err := h.service.PrepareReview(c.UserContext(), identityOf(c), eventID)
	if err != nil {
		if handled, resp := eligibilityRedirect(c, err, eventID); handled {
			return resp
		}
		if errors.Is(err, services.ErrAlreadyReviewed) {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Bu etkinliği zaten değerlendirdiniz.")
			return c.Redirect(eventDetailsPath(eventID), fiber.StatusSeeOther)
		}
		configslog.Log.Error("Yorum formu hazırlanamadı", zap.Uint("event_id", eventID), zap.Error(err))
		return renderer.ServerError(c, "Yorum formu yüklenemedi.")
	}
	return renderer.Render(c, reviewCreateView, fiber.Map{
		"Title": "Etkinliği Değerlendir",
		"Event": form.Event,
		"Form":  form.Input,
	})
}

func (h *PanelReviewHandler) CreateReview(c *fiber.Ctx) error {
	identity := identityOf(c)

	var input services.ReviewInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.InvalidBody(c, reviewCreateView, input, nil)
	}
	if input.EventID == 0 {
		input.EventID = utils.ParseID(c.Query("eventId"))
	}

	if _, err := h.service.CreateReview(c.UserContext(), identity, input); err != nil {
		if handled, resp := eligibilityRedirect(c, err, input.EventID); handled {
			return resp
		}
		if errors.Is(err, services.ErrMemberNotFound) {
			return endStaleSession(c)
		}
		if errors.Is(err, services.ErrAlreadyReviewed) {
			errs := formvalidation.ValidationErrors{renderer.FormErrorKey: "Bu etkinliği zaten değerlendirdiniz."}
			return renderer.RenderForm(c, reviewCreateView, input, errs, fiber.StatusConflict, nil)
		}
		if verrs, ok := formvalidation.AsValidationErrors(err); ok {
			return renderer.RenderForm(c, reviewCreateView, input, verrs, fiber.StatusUnprocessableEntity, nil)
		}
		configslog.Log.Error("Yorum kaydedilemedi", zap.Uint("member_id", identity.MemberID), zap.Uint("event_id", input.EventID), zap.Error(err))
		return renderer.ServerError(c, "Yorumunuz kaydedilemedi.")
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Değerlendirmeniz için teşekkürler.")
	return c.Redirect(eventDetailsPath(input.EventID), fiber.StatusSeeOther)
}

func (h *PanelReviewHandler) ShowEditReview(c *fiber.Ctx) error {
	form, err := h.service.GetOwnReview(c.UserContext(), identityOf(c), utils.ParamID(c, "id"))
	if err != nil {
		return reviewLookupError(c, err)
	}
	return renderer.Render(c, reviewEditView, fiber.Map{
		"Title":  "Değerlendirmeyi Düzenle",
		"Event":  form.Event,
		"Review": form.Review,
		"Form":   form.Input,
	})
}

func (h *PanelReviewHandler) EditReview(c *fiber.Ctx) error {
	identity := identityOf(c)
	id := utils.ParamID(c, "id")

	var input services.ReviewInput
	if err := c.BodyParser(&input); err != nil {
		return renderer.InvalidBody(c, reviewEditView, input, nil)
	}

	review, err := h.service.EditReview(c.UserContext(), identity, id, input)
	if err != nil {
		if verrs, ok := formvalidation.AsValidationErrors(err); ok {
			return renderer.RenderForm(c, reviewEditView, input, verrs, fiber.StatusUnprocessableEntity, fiber.Map{"ReviewID": id})
		}
		return reviewLookupError(c, err)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Değerlendirmeniz güncellendi.")
	return c.Redirect(eventDetailsPath(review.EventID), fiber.StatusSeeOther)
}

func (h *PanelReviewHandler) ShowDeleteReview(c *fiber.Ctx) error {
	form, err := h.service.GetOwnReview(c.UserContext(), identityOf(c), utils.ParamID(c, "id"))
	if err != nil {
		return reviewLookupError(c, err)
	}
	return renderer.Render(c, "reviews/delete", fiber.Map{
		"Title":  "Değerlendirmeyi Sil",
		"Event":  form.Event,
		"Review": form.Review,
	})
}

func (h *PanelReviewHandler) DeleteReview(c *fiber.Ctx) error {
	eventID, err := h.service.DeleteReview(c.UserContext(), identityOf(c), utils.ParamID(c, "id"))
	if err != nil {
		return reviewLookupError(c, err)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Değerlendirmeniz silindi.")
	return c.Redirect(eventDetailsPath(eventID), fiber.StatusSeeOther)
}

func reviewLookupError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrReviewNotFound) {
		return renderer.NotFound(c, "Değerlendirme bulunamadı.")
	}
	configslog.Log.Error("Değerlendirme işlemi başarısız", zap.String("path", c.Path()), zap.Error(err))
	return renderer.ServerError(c, "Değerlendirme bilgileri alınırken bir hata oluştu.")
}
