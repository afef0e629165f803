package models

// Role üyenin yetki seviyesini belirtir.
type Role string

const (
	RoleMember Role = "Member" // Bilet alabilen, yorum yazabilen üye
	RoleAdmin  Role = "Admin"  // Etkinlik ve üye yönetimi yetkisi olan yönetici
)

// Member sisteme kayıtlı kullanıcıdır.
type Member struct {
	BaseModel
	FullName          string  `gorm:"type:varchar(100);not null" json:"full_name"`
	Email             string  `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash      string  `gorm:"type:varchar(255);not null" json:"-"` // argon2id PHC formatında
	Role              Role    `gorm:"type:varchar(20);not null;default:'Member';index" json:"role"`
	PreferredCategory *string `gorm:"type:varchar(50)" json:"preferred_category,omitempty"`

	// Sorgu sırasında hesaplanan alanlar (tabloda kolon olarak yer almaz)
	BookingCount int64 `gorm:"->;-:migration" json:"booking_count"`
	ReviewCount  int64 `gorm:"->;-:migration" json:"review_count"`
}

func (m Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}
