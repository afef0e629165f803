package migrations

import (
	"errors"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"gorm.io/gorm"
)

func MigrateMembersTable(db *gorm.DB) error {
	configslog.SLog.Info("Member tablosu migrate ediliyor...")

	if err := db.AutoMigrate(&models.Member{}); err != nil {
		errMsg := "Member tablosu migrate edilemedi: " + err.Error()
		configslog.Log.Error(errMsg)
		return errors.New(errMsg)
	}

	configslog.SLog.Info("Member tablosu migrate işlemi tamamlandı.")
	return nil
}
