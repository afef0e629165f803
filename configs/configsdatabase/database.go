package configsdatabase

import (
	"context"
	"errors"
	"time"

	"etkinlik.link/configs"
	"etkinlik.link/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

// zapGormWriter gorm logger çıktısını zap'e yönlendirir.
type zapGormWriter struct{}

func (zapGormWriter) Printf(format string, args ...interface{}) {
	configslog.SLog.Warnf(format, args...)
}

// InitDB Postgres bağlantısını açar ve havuz ayarlarını uygular.
// Bağlantı kurulamazsa uygulama sonlandırılır.
func InitDB(cfg configs.DatabaseConfig) *gorm.DB {
	gormLog := gormlogger.New(zapGormWriter{}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})

	conn, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{Logger: gormLog})
	if err != nil {
		configslog.Log.Fatal("Veritabanına bağlanılamadı", zap.String("host", cfg.Host), zap.String("database", cfg.Name), zap.Error(err))
	}

	sqlDB, err := conn.DB()
	if err != nil {
		configslog.Log.Fatal("Veritabanı havuzu alınamadı", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	db = conn
	configslog.SLog.Infof("Veritabanı bağlantısı kuruldu: %s@%s/%s", cfg.User, cfg.Host, cfg.Name)
	return db
}

// GetDB açık bağlantıyı döndürür.
func GetDB() *gorm.DB {
	return db
}

// Ping sağlık kontrolü için veritabanına erişimi doğrular.
func Ping(ctx context.Context) error {
	if db == nil {
		return errors.New("veritabanı bağlantısı başlatılmadı")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// CloseDB bağlantı havuzunu kapatır.
func CloseDB() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Veritabanı bağlantısı kapatılamadı", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Veritabanı bağlantısı kapatıldı.")
	return nil
}
