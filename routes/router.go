package routes

import (
	"context"
	"errors"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/middlewares"
	"etkinlik.link/pkg/metrics"
	"etkinlik.link/services"
	"etkinlik.link/utils"

	"github.com/gofiber/fiber/v2"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dependencies rotaların ihtiyaç duyduğu bileşenlerdir.
type Dependencies struct {
	Services     *services.Services
	SessionStore *session.Store
	// CSRF nil ise form gönderimleri CSRF kontrolünden geçmez.
	CSRF fiber.Handler
	// HealthCheck /health için depolama katmanını kontrol eder; nil ise her zaman sağlıklı sayılır.
	HealthCheck func(ctx context.Context) error
}

// NewApp fiber uygulamasını oluşturur ve tüm rotaları bağlar.
// Immutable açıktır: BodyParser'dan gelen metinler bellek içi depoda istekten sonra da saklanır
// ve fasthttp'nin tekrar kullanılan tamponlarına bağlı kalmamalıdır.
func NewApp(appName string, deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ErrorHandler: errorHandler,
		Immutable:    true,
	})
	SetupRoutes(app, deps)
	return app
}

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	// --- Genel Middleware'ler ---
	app.Use(recoverMiddleware.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middlewares.RequestLogger())
	app.Use(middlewares.Metrics())

	// Sağlık ve metrik uçları session açmaz
	app.Get("/health", healthHandler(deps.HealthCheck))
	app.Get("/metrics", metrics.Handler())

	if deps.CSRF != nil {
		app.Use(deps.CSRF)
	}
	app.Use(initializeSessionAndLocals(deps.SessionStore))

	// --- Rota Grupları ---
	registerPublicRoutes(app, deps.Services)
	registerAccountRoutes(app, deps.Services)
	registerPanelRoutes(app, deps.Services)
	registerAdminRoutes(app, deps.Services)

	// --- 404 Handler ---
	app.Use(notFoundHandler)
}

// initializeSessionAndLocals session store'u ve oturumdaki kimliği isteğe ekler.
// Kimlik taşıyan her istekte session kaydedilir; böylece hareketsizlik süresi yeniden başlar.
func initializeSessionAndLocals(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(utils.SessionStoreLocalsKey, store)

		sess, err := store.Get(c)
		if err != nil {
			configslog.Log.Warn("Session okunamadı", zap.Error(err))
			return c.Next()
		}

		identity, ok := utils.IdentityFromSession(sess)
		if !ok {
			return c.Next()
		}
		c.Locals(utils.IdentityLocalsKey, &identity)

		if err := sess.Save(); err != nil {
			configslog.Log.Warn("Session süresi uzatılamadı", zap.Uint("member_id", identity.MemberID), zap.Error(err))
		}
		return c.Next()
	}
}

func healthHandler(check func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if check != nil {
			if err := check(c.UserContext()); err != nil {
				configslog.Log.Error("Sağlık kontrolü başarısız", zap.Error(err))
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"view": "errors/404",
		"data": fiber.Map{"Title": "Sayfa Bulunamadı", "Message": "Aradığınız sayfa bulunamadı."},
	})
}

// errorHandler handler'lardan kaçan hataları JSON olarak döndürür.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Beklenmeyen bir hata oluştu."

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		configslog.Log.Error("İşlenmeyen hata", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{"error": message})
}
