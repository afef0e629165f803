package middlewares

import (
	"net/url"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/pkg/flashmessages"
	"etkinlik.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	LoginPath             = "/account/login"
	LandingPath           = "/"
	UnauthorizedRedirect  = "/?error=unauthorized"
	returnURLQueryParam   = "returnUrl"
	adminOnlyErrorMessage = "Bu sayfaya erişim yetkiniz yok."
)

// loginRedirect giriş sayfasına, istenen adresi dönüş hedefi olarak ekleyerek yönlendirir.
func loginRedirect(c *fiber.Ctx) error {
	target := LoginPath + "?" + returnURLQueryParam + "=" + url.QueryEscape(c.OriginalURL())
	return c.Redirect(target, fiber.StatusFound)
}

// RequireMember giriş yapmış bir üye ister; yoksa giriş sayfasına yönlendirir.
func RequireMember(c *fiber.Ctx) error {
	if utils.CurrentIdentity(c) == nil {
		return loginRedirect(c)
	}
	return c.Next()
}

// RequireAdmin giriş yapmış ve rolü Admin olan bir üye ister.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := utils.CurrentIdentity(c)
		if identity == nil {
			return loginRedirect(c)
		}
		if !identity.IsAdmin() {
			configslog.Log.Warn("Yönetici alanına yetkisiz erişim denemesi",
				zap.Uint("member_id", identity.MemberID),
				zap.String("path", c.Path()),
			)
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, adminOnlyErrorMessage)
			return c.Redirect(UnauthorizedRedirect, fiber.StatusFound)
		}
		return c.Next()
	}
}

// GuestOnly giriş yapmış kullanıcıları giriş/kayıt ekranlarından ana sayfaya gönderir.
func GuestOnly(c *fiber.Ctx) error {
	if utils.CurrentIdentity(c) != nil {
		return c.Redirect(LandingPath, fiber.StatusFound)
	}
	return c.Next()
}
