package configs

import (
	"fmt"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/pkg/redisstore"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

// NewSessionStorage SESSION_STORE ayarına göre session verisinin tutulacağı yeri seçer.
// memory için nil döner; fiber bu durumda kendi bellek içi storage'ını kullanır.
func NewSessionStorage(cfg *AppConfig) (fiber.Storage, error) {
	switch cfg.Session.Store {
	case SessionStoreRedis:
		storage, err := redisstore.New(redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Session.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("redis session storage başlatılamadı: %w", err)
		}
		configslog.SLog.Infof("Session storage: redis (%s)", cfg.Redis.Addr)
		return storage, nil
	case SessionStoreMemory, "":
		configslog.SLog.Info("Session storage: bellek içi")
		return nil, nil
	default:
		return nil, fmt.Errorf("bilinmeyen session storage türü: %q", cfg.Session.Store)
	}
}

// SetupSession http-only çerezli, hareketsizlikte sona eren session store'u kurar.
func SetupSession(cfg SessionConfig, storage fiber.Storage) *session.Store {
	return session.New(session.Config{
		Expiration:     cfg.IdleTimeout,
		Storage:        storage,
		KeyLookup:      "cookie:" + cfg.CookieName,
		CookieHTTPOnly: true,
		CookieSecure:   cfg.CookieSecure,
		CookieSameSite: "Lax",
		KeyGenerator:   uuid.NewString,
	})
}
