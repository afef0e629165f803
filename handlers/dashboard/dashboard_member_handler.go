package handlers

import (
	"errors"

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
	adminMembersPath    = "/admin/members"
	adminMemberEditView = "admin/members/edit"
)

// DashboardMemberHandler yönetici üye işlemleri. Yönetici hesapları bu ekranlardan değiştirilemez.
type DashboardMemberHandler struct {
	service services.IMemberService
}

// NewDashboardMemberHandler yeni bir DashboardMemberHandler örneği oluşturur.
func NewDashboardMemberHandler(service services.IMemberService) *DashboardMemberHandler {
	return &DashboardMemberHandler{service: service}
}

func (h *DashboardMemberHandler) ListMembers(c *fiber.Ctx) error {
	members, err := h.service.ListMembers(c.UserContext())
	if err != nil {
		configslog.Log.Error("Üye listesi alınamadı", zap.Error(err))
		return renderer.ServerError(c, "Üyeler listelenirken bir hata oluştu.")
	}
	return renderer.Render(c, "admin/members/index", fiber.Map{
		"Title":   "Üye Yönetimi",
		"Members": members,
	})
}

func (h *DashboardMemberHandler) ShowEditMember(c *fiber.Ctx) error {
	id := utils.ParamID(c, "id")
	member, err := h.service.GetMember(c.UserContext(), id)
	if err != nil {
		return memberLookupError(c, err, id)
	}
	return renderer.Render(c, adminMemberEditView, fiber.Map{
		"Title":  "Üyeyi Düzenle",
		"Member": member,
		"Form":   services.MemberUpdateInputFrom(member),
	})
}

func (h *DashboardMemberHandler) UpdateMember(c *fiber.Ctx) error {
	id := utils.ParamID(c, "id")

	var input services.MemberUpdateInput
	if err := c.BodyParser(&input); err != nil {
		input.NewPassword = ""
		return renderer.InvalidBody(c, adminMemberEditView, input, fiber.Map{"MemberID": id})
	}

	_, err := h.service.UpdateMember(c.UserContext(), id, input)
	input.NewPassword = ""
	if err != nil {
		if verrs, ok := formvalidation.AsValidationErrors(err); ok {
			return renderer.RenderForm(c, adminMemberEditView, input, verrs, fiber.StatusUnprocessableEntity, fiber.Map{"MemberID": id})
		}
		if errors.Is(err, services.ErrDuplicateEmail) {
			errs := formvalidation.ValidationErrors{"email": "Bu e-posta adresi başka bir üye tarafından kullanılıyor."}
			return renderer.RenderForm(c, adminMemberEditView, input, errs, fiber.StatusConflict, fiber.Map{"MemberID": id})
		}
		return memberLookupError(c, err, id)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Üye bilgileri güncellendi.")
	return c.Redirect(adminMembersPath, fiber.StatusSeeOther)
}

func (h *DashboardMemberHandler) ShowDeleteMember(c *fiber.Ctx) error {
	id := utils.ParamID(c, "id")
	member, err := h.service.GetMember(c.UserContext(), id)
	if err != nil {
		return memberLookupError(c, err, id)
	}
	return renderer.Render(c, "admin/members/delete", fiber.Map{
		"Title":  "Üyeyi Sil",
		"Member": member,
	})
}

func (h *DashboardMemberHandler) DeleteMember(c *fiber.Ctx) error {
	id := utils.ParamID(c, "id")
	if err := h.service.DeleteMember(c.UserContext(), id); err != nil {
		return memberLookupError(c, err, id)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Üye ve bağlı kayıtları silindi.")
	return c.Redirect(adminMembersPath, fiber.StatusSeeOther)
}

// memberLookupError yönetici hesaplarına yönelik işlemleri hata mesajıyla listeye geri gönderir.
func memberLookupError(c *fiber.Ctx, err error, id uint) error {
	switch {
	case errors.Is(err, services.ErrMemberNotFound):
		return renderer.NotFound(c, "Üye bulunamadı.")
	case errors.Is(err, services.ErrMemberForbidden):
		configslog.Log.Warn("Yönetici hesabı üzerinde işlem denemesi", zap.Uint("member_id", id), zap.String("path", c.Path()))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Yönetici hesapları düzenlenemez veya silinemez.")
		return c.Redirect(adminMembersPath, fiber.StatusSeeOther)
	}
	configslog.Log.Error("Yönetici üye işlemi başarısız", zap.Uint("member_id", id), zap.Error(err))
	return renderer.ServerError(c, "Üye işlemi tamamlanamadı.")
}
