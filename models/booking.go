package models

import "time"

// Varsayılan koltuk türleri. Alan serbest metindir, bunlar sadece öneridir.
const (
	SeatTypeStandard = "Standard"
	SeatTypeVIP      = "VIP"
)

// Booking bir üyenin bir etkinlik için aldığı biletlerdir.
type Booking struct {
	BaseModel
	MemberID    uint      `gorm:"not null;index" json:"member_id"`
	EventID     uint      `gorm:"not null;index" json:"event_id"`
	SeatType    string    `gorm:"type:varchar(20);not null;default:'Standard'" json:"seat_type"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	BookingDate time.Time `gorm:"not null;index" json:"booking_date"`

	// Silme kısıtlı: bağımlı kayıtlar uygulama tarafında, tek transaction içinde temizlenir.
	Member *Member `gorm:"foreignKey:MemberID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"member,omitempty"`
	Event  *Event  `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"event,omitempty"`
}
