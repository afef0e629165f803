package migrations

import (
	"errors"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"gorm.io/gorm"
)

func MigrateEventsTable(db *gorm.DB) error {
	configslog.SLog.Info("Event tablosu migrate ediliyor...")

	if err := db.AutoMigrate(&models.Event{}); err != nil {
		errMsg := "Event tablosu migrate edilemedi: " + err.Error()
		configslog.Log.Error(errMsg)
		return errors.New(errMsg)
	}

	configslog.SLog.Info("Event tablosu migrate işlemi tamamlandı.")
	return nil
}
