package database

import (
	"errors"
	"fmt"

	"etkinlik.link/configs"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/database/migrations"
	"etkinlik.link/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize migrasyonları ve seeder'ları tek bir transaction içinde çalıştırır.
// Herhangi bir adım başarısız olursa tüm değişiklikler geri alınır.
func Initialize(db *gorm.DB, seedCfg configs.SeedConfig, migrate bool, seed bool) (err error) {
	if !migrate && !seed {
		configslog.SLog.Info("Migrate veya seed bayrağı belirtilmedi, işlem yapılmayacak.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("veritabanı transaction başlatılamadı: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			configslog.Log.Error("Veritabanı başlatma işlemi başarısız oldu (panic)", zap.Any("panic_info", r))
			err = fmt.Errorf("veritabanı başlatma sırasında panic: %v", r)
			return
		}
		if err != nil {
			configslog.SLog.Warn("Başlatma sırasında hata oluştuğu için işlem geri alınıyor.")
			if rbErr := tx.Rollback().Error; rbErr != nil && !errors.Is(rbErr, gorm.ErrInvalidTransaction) {
				configslog.Log.Error("Rollback sırasında ek hata oluştu", zap.Error(rbErr))
			}
		}
	}()

	configslog.SLog.Info("Veritabanı başlatma işlemi başlıyor...")

	if migrate {
		configslog.SLog.Info("Migrasyonlar çalıştırılıyor...")
		if err = RunMigrationsInOrder(tx); err != nil {
			return fmt.Errorf("migrasyon başarısız oldu: %w", err)
		}
		configslog.SLog.Info("Migrasyonlar tamamlandı.")
	} else {
		configslog.SLog.Info("Migrate bayrağı belirtilmedi, migrasyon adımı atlanıyor.")
	}

	if seed {
		configslog.SLog.Info("Seeder'lar çalıştırılıyor...")
		if err = CheckAndRunSeeders(tx, seedCfg); err != nil {
			return fmt.Errorf("seeding başarısız oldu: %w", err)
		}
		configslog.SLog.Info("Seeder'lar tamamlandı.")
	} else {
		configslog.SLog.Info("Seed bayrağı belirtilmedi, seeder adımı atlanıyor.")
	}

	configslog.SLog.Info("İşlem commit ediliyor...")
	if err = tx.Commit().Error; err != nil {
		return fmt.Errorf("commit başarısız oldu: %w", err)
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başarıyla tamamlandı")
	return nil
}

// RunMigrationsInOrder tabloları yabancı anahtar bağımlılıklarına uygun sırada oluşturur.
func RunMigrationsInOrder(db *gorm.DB) error {
	steps := []struct {
		name string
		run  func(*gorm.DB) error
	}{
		{"Member", migrations.MigrateMembersTable},
		{"Event", migrations.MigrateEventsTable},
		{"Booking/Review", migrations.MigrateBookingsTables},
		{"Inquiry", migrations.MigrateInquiriesTable},
	}

	configslog.SLog.Info("Migrasyonlar sırayla çalıştırılıyor...")
	for _, step := range steps {
		configslog.SLog.Infof(" -> %s migrasyonları çalıştırılıyor...", step.name)
		if err := step.run(db); err != nil {
			configslog.Log.Error("Migrasyon adımı başarısız oldu", zap.String("step", step.name), zap.Error(err))
			return err
		}
		configslog.SLog.Infof(" -> %s migrasyonları tamamlandı.", step.name)
	}

	configslog.SLog.Info("Tüm migrasyonlar başarıyla çalıştırıldı.")
	return nil
}

func CheckAndRunSeeders(db *gorm.DB, seedCfg configs.SeedConfig) error {
	configslog.SLog.Info("Yönetici hesabı kontrol ediliyor/oluşturuluyor...")
	if err := seeders.SeedAdminMember(db, seedCfg); err != nil {
		configslog.Log.Error("Yönetici hesabı seed işlemi başarısız", zap.Error(err))
		return err
	}

	configslog.SLog.Info(" -> Etkinlik seeder çalıştırılıyor...")
	if err := seeders.SeedEvents(db); err != nil {
		configslog.Log.Error("Etkinlikler seed edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Etkinlik seeder tamamlandı.")

	configslog.SLog.Info("Tüm seeder'lar başarıyla kontrol edildi/çalıştırıldı.")
	return nil
}
