package configs

import (
	"etkinlik.link/configs/configslog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SetupCSRF form gönderimleri için CSRF korumasını kurar.
// Token önce X-Csrf-Token başlığından, yoksa _csrf form alanından okunur.
func SetupCSRF(cfg SessionConfig) fiber.Handler {
	fromHeader := csrf.CsrfFromHeader("X-Csrf-Token")
	fromForm := csrf.CsrfFromForm("_csrf")

	return csrf.New(csrf.Config{
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.CookieSecure,
		Expiration:     cfg.IdleTimeout,
		ContextKey:     "csrf",
		KeyGenerator:   uuid.NewString,
		Extractor: func(c *fiber.Ctx) (string, error) {
			if token, err := fromHeader(c); err == nil {
				return token, nil
			}
			return fromForm(c)
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			configslog.Log.Warn("CSRF doğrulaması başarısız", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Geçersiz veya eksik güvenlik anahtarı. Lütfen sayfayı yenileyip tekrar deneyin."})
		},
	})
}
