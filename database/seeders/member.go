package seeders

import (
	"errors"
	"fmt"
	"strings"

	"etkinlik.link/configs"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/passwords"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AdminMember ayarlardaki bilgilerle yönetici kaydını hazırlar; şifre argon2id ile özetlenir.
func AdminMember(cfg configs.SeedConfig) (*models.Member, error) {
	hash, err := passwords.Hash(cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("yönetici şifresi özetlenemedi: %w", err)
	}
	return &models.Member{
		FullName:     cfg.AdminName,
		Email:        strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}, nil
}

// SeedAdminMember yönetici hesabını yoksa oluşturur. Mevcut hesabın şifresine dokunulmaz,
// sadece rolü Admin olarak düzeltilir.
func SeedAdminMember(db *gorm.DB, cfg configs.SeedConfig) error {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))

	var existing models.Member
	result := db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		if existing.Role != models.RoleAdmin {
			configslog.SLog.Warnf("'%s' hesabı yönetici değil, rolü Admin olarak güncelleniyor.", email)
			return db.Model(&existing).Update("role", models.RoleAdmin).Error
		}
		configslog.SLog.Debugf("Yönetici hesabı '%s' zaten mevcut, oluşturma atlanıyor.", email)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Yönetici hesabı kontrol edilirken veritabanı hatası", zap.String("email", email), zap.Error(result.Error))
		return result.Error
	}

	admin, err := AdminMember(cfg)
	if err != nil {
		return err
	}
	if err := db.Create(admin).Error; err != nil {
		configslog.Log.Error("Yönetici hesabı oluşturulamadı", zap.String("email", email), zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Yönetici hesabı '%s' oluşturuldu (ID: %d).", email, admin.ID)
	return nil
}
