package migrations

import (
	"fmt"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"gorm.io/gorm"
)

// MigrateBookingsTables rezervasyon ve yorum tablolarını oluşturur.
// Üye ve etkinlik tablolarından sonra çalışmalıdır; yabancı anahtarlar RESTRICT ile tanımlanır.
func MigrateBookingsTables(db *gorm.DB) error {
	configslog.SLog.Info("Booking ve Review tabloları migrate ediliyor...")

	if err := db.AutoMigrate(&models.Booking{}); err != nil {
		return fmt.Errorf("booking tablosu migrate edilemedi: %w", err)
	}
	if err := db.AutoMigrate(&models.Review{}); err != nil {
		return fmt.Errorf("review tablosu migrate edilemedi: %w", err)
	}

	// Koltuk toplamı sorgusu event_id üzerinden yapılır; kapasite kontrolü bu indeksi kullanır.
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_event_quantity ON bookings (event_id, quantity)").Error; err != nil {
		return fmt.Errorf("booking indeksi oluşturulamadı: %w", err)
	}

	configslog.SLog.Info("Booking ve Review tabloları migrate işlemi tamamlandı.")
	return nil
}
