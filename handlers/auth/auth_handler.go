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

const (
	registerView = "account/register"
	loginView    = "account/login"
)

// AuthHandler kayıt, giriş ve çıkış işlemlerini yönetir.
type AuthHandler struct {
	service services.IAuthService
}

// NewAuthHandler yeni bir AuthHandler örneği oluşturur.
func NewAuthHandler(service services.IAuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) ShowRegister(c *fiber.Ctx) error {
	return renderer.Render(c, registerView, fiber.Map{
		"Title": "Üye Ol",
		"Form":  services.RegisterInput{},
	})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		input.Password = ""
		return renderer.InvalidBody(c, registerView, input, nil)
	}

	_, err := h.service.Register(c.UserContext(), input)
	input.Password = ""
	if err != nil {
		if verrs, ok := formvalidation.AsValidationErrors(err); ok {
			return renderer.RenderForm(c, registerView, input, verrs, fiber.StatusUnprocessableEntity, nil)
		}
		if errors.Is(err, services.ErrDuplicateEmail) {
			errs := formvalidation.ValidationErrors{"email": "Bu e-posta adresi zaten kayıtlı."}
			return renderer.RenderForm(c, registerView, input, errs, fiber.StatusConflict, nil)
		}
		configslog.Log.Error("Kayıt sırasında hata", zap.Error(err))
		return renderer.ServerError(c, "Kayıt işlemi tamamlanamadı. Lütfen daha sonra tekrar deneyin.")
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kaydınız oluşturuldu. Şimdi giriş yapabilirsiniz.")
	return c.Redirect(middlewares.LoginPath, fiber.StatusSeeOther)
}

func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	return renderer.Render(c, loginView, fiber.Map{
		"Title": "Giriş Yap",
		"Form":  services.LoginInput{ReturnURL: c.Query("returnUrl")},
	})
}

// Login başarılı girişte session kimliğini yeniler ve sadece yerel dönüş adreslerine yönlendirir.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		input.Password = ""
		return renderer.InvalidBody(c, loginView, input, nil)
	}
	if input.ReturnURL == "" {
		input.ReturnURL = c.Query("returnUrl")
	}

	identity, err := h.service.Login(c.UserContext(), input)
	input.Password = ""
	if err != nil {
		if verrs, ok := formvalidation.AsValidationErrors(err); ok {
			return renderer.RenderForm(c, loginView, input, verrs, fiber.StatusUnprocessableEntity, nil)
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			configslog.Log.Info("Başarısız giriş denemesi", zap.String("ip", c.IP()))
			errs := formvalidation.ValidationErrors{renderer.FormErrorKey: "E-posta veya şifre hatalı."}
			return renderer.RenderForm(c, loginView, input, errs, fiber.StatusUnauthorized, nil)
		}
		configslog.Log.Error("Giriş sırasında hata", zap.Error(err))
		return renderer.ServerError(c, "Giriş yapılamadı. Lütfen daha sonra tekrar deneyin.")
	}

	sess, err := utils.SessionStart(c)
	if err != nil {
		configslog.Log.Error("Giriş: session başlatılamadı", zap.Error(err))
		return renderer.ServerError(c, "Oturum başlatılamadı.")
	}
	if err := sess.Regenerate(); err != nil {
		configslog.Log.Error("Giriş: session kimliği yenilenemedi", zap.Error(err))
		return renderer.ServerError(c, "Oturum başlatılamadı.")
	}
	utils.SetIdentity(sess, identity)
	flashmessages.SetOnSession(sess, flashmessages.FlashSuccessKey, "Hoş geldiniz, "+identity.FullName+".")
	if err := sess.Save(); err != nil {
		configslog.Log.Error("Giriş: session kaydedilemedi", zap.Uint("member_id", identity.MemberID), zap.Error(err))
		return renderer.ServerError(c, "Oturum başlatılamadı.")
	}

	configslog.Log.Info("Üye giriş yaptı", zap.Uint("member_id", identity.MemberID), zap.String("role", string(identity.Role)))

	target := middlewares.LandingPath
	if utils.IsLocalURL(input.ReturnURL) {
		target = input.ReturnURL
	}
	return c.Redirect(target, fiber.StatusSeeOther)
}

// Logout session'ı koşulsuz olarak sonlandırır.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sess, err := utils.SessionStart(c); err == nil {
		if identity, ok := utils.IdentityFromSession(sess); ok {
			configslog.Log.Info("Üye çıkış yaptı", zap.Uint("member_id", identity.MemberID))
		}
		if err := sess.Destroy(); err != nil {
			configslog.Log.Warn("Çıkış: session silinemedi", zap.Error(err))
		}
	}
	return c.Redirect(middlewares.LandingPath, fiber.StatusSeeOther)
}
