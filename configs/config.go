package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Storage sürücüleri
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Session storage türleri
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// AppConfig uygulamanın tüm ayarlarını tutar.
type AppConfig struct {
	App      AppSection
	Database DatabaseConfig
	Session  SessionConfig
	Redis    RedisConfig
	Security SecurityConfig
	Seed     SeedConfig
}

type AppSection struct {
	Name            string        `env:"APP_NAME" env-default:"etkinlik.link"`
	Env             string        `env:"APP_ENV" env-default:"development"`
	Host            string        `env:"APP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"APP_PORT" env-default:"3000"`
	StorageDriver   string        `env:"STORAGE_DRIVER" env-default:"postgres"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr dinlenecek host:port değerini döndürür.
func (a AppSection) Addr() string {
	return net.JoinHostPort(a.Host, a.Port)
}

type DatabaseConfig struct {
	Host            string        `env:"DB_HOST" env-default:"localhost"`
	Port            string        `env:"DB_PORT" env-default:"5432"`
	User            string        `env:"DB_USERNAME" env-default:"postgres"`
	Password        string        `env:"DB_PASSWORD" env-default:""`
	Name            string        `env:"DB_DATABASE" env-default:"etkinlik"`
	SSLMode         string        `env:"DB_SSL_MODE" env-default:"disable"`
	TimeZone        string        `env:"DB_TIMEZONE" env-default:"Europe/Istanbul"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"30m"`
}

// DSN Postgres bağlantı cümlesini üretir.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode, d.TimeZone,
	)
}

type SessionConfig struct {
	Store        string        `env:"SESSION_STORE" env-default:"memory"`
	IdleTimeout  time.Duration `env:"SESSION_IDLE_TIMEOUT" env-default:"30m"`
	CookieName   string        `env:"SESSION_COOKIE_NAME" env-default:"etkinlik_session"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE" env-default:"false"`
	KeyPrefix    string        `env:"SESSION_KEY_PREFIX" env-default:"sess:"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" env-default:""`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

type SecurityConfig struct {
	CSRFEnabled bool `env:"SECURITY_CSRF_ENABLED" env-default:"true"`
}

type SeedConfig struct {
	AdminName     string `env:"SEED_ADMIN_NAME" env-default:"Administrator"`
	AdminEmail    string `env:"SEED_ADMIN_EMAIL" env-default:"admin@culturalcouncil.org"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD" env-default:"admin123"`
}

// Load varsa .env dosyasını ortam değişkenlerine yükler ve ayarları okur.
// .env ayar hatasından önce yüklenir; InitLogger APP_ENV değerini buradan okur.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf(".env dosyası okunamadı: %w", err)
	}

	var cfg AppConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("ortam değişkenleri okunamadı: %w", err)
	}
	return &cfg, nil
}
