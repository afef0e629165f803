package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"etkinlik.link/configs"
	"etkinlik.link/configs/configsdatabase"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/database/seeders"
	"etkinlik.link/repositories"
	"etkinlik.link/repositories/memory"
	"etkinlik.link/routes"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func main() {
	cfg, err := configs.Load()
	configslog.InitLogger()
	defer configslog.SyncLogger()
	if err != nil {
		configslog.Log.Fatal("Ayarlar yüklenemedi", zap.Error(err))
	}

	repos, healthCheck, closeStorage := openStorage(cfg)

	sessionStorage, err := configs.NewSessionStorage(cfg)
	if err != nil {
		configslog.Log.Fatal("Session storage başlatılamadı", zap.Error(err))
	}

	deps := routes.Dependencies{
		Services:     services.NewServices(repos),
		SessionStore: configs.SetupSession(cfg.Session, sessionStorage),
		HealthCheck:  healthCheck,
	}
	if cfg.Security.CSRFEnabled {
		deps.CSRF = configs.SetupCSRF(cfg.Session)
	}

	app := routes.NewApp(cfg.App.Name, deps)

	go func() {
		configslog.SLog.Infof("Sunucu %s adresinde dinleniyor (ortam: %s, depolama: %s)", cfg.App.Addr(), cfg.App.Env, cfg.App.StorageDriver)
		if err := app.Listen(cfg.App.Addr()); err != nil {
			configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	configslog.SLog.Info("Kapatma sinyali alındı, sunucu durduruluyor...")

	err = multierr.Combine(
		app.ShutdownWithTimeout(cfg.App.ShutdownTimeout),
		closeStorage(),
		closeSessionStorage(sessionStorage),
	)
	if err != nil {
		configslog.Log.Error("Kapatma sırasında hata oluştu", zap.Error(err))
		configslog.SyncLogger()
		os.Exit(1)
	}
	configslog.SLog.Info("Sunucu düzgün şekilde kapatıldı.")
}

// openStorage STORAGE_DRIVER ayarına göre depoları, sağlık kontrolünü ve kapatma fonksiyonunu hazırlar.
func openStorage(cfg *configs.AppConfig) (*repositories.Repositories, func(context.Context) error, func() error) {
	switch cfg.App.StorageDriver {
	case configs.StorageDriverPostgres:
		db := configsdatabase.InitDB(cfg.Database)
		return repositories.NewRepositories(db), configsdatabase.Ping, configsdatabase.CloseDB
	case configs.StorageDriverMemory:
		repos := memory.New()
		if err := seeders.SeedRepositories(context.Background(), repos, cfg.Seed); err != nil {
			configslog.Log.Fatal("Bellek içi depolar hazırlanamadı", zap.Error(err))
		}
		configslog.SLog.Warn("Bellek içi depolama kullanılıyor; veriler yeniden başlatmada kaybolur.")
		return repos, nil, func() error { return nil }
	default:
		configslog.Log.Fatal("Bilinmeyen depolama sürücüsü", zap.String("driver", cfg.App.StorageDriver))
		return nil, nil, nil
	}
}

func closeSessionStorage(storage fiber.Storage) error {
	if storage == nil {
		return nil
	}
	return storage.Close()
}
