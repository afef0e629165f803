package migrations

import (
	"errors"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"gorm.io/gorm"
)

func MigrateInquiriesTable(db *gorm.DB) error {
	configslog.SLog.Info("Inquiry tablosu migrate ediliyor...")

	if err := db.AutoMigrate(&models.Inquiry{}); err != nil {
		errMsg := "Inquiry tablosu migrate edilemedi: " + err.Error()
		configslog.Log.Error(errMsg)
		return errors.New(errMsg)
	}

	configslog.SLog.Info("Inquiry tablosu migrate işlemi tamamlandı.")
	return nil
}
