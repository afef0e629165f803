package models

import "time"

// BaseModel tüm tablolarda ortak olan alanları içerir.
// Kayıtlar kalıcı olarak silinir; soft delete kullanılmaz.
type BaseModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
