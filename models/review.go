package models

import "time"

// Review bir üyenin rezervasyon yaptığı etkinlik hakkındaki değerlendirmesidir.
// Her üye bir etkinliği yalnızca bir kez değerlendirebilir.
type Review struct {
	BaseModel
	MemberID   uint      `gorm:"not null;uniqueIndex:idx_reviews_member_event" json:"member_id"`
	EventID    uint      `gorm:"not null;uniqueIndex:idx_reviews_member_event;index" json:"event_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:varchar(500);not null" json:"comment"`
	ReviewDate time.Time `gorm:"not null" json:"review_date"`

	Member *Member `gorm:"foreignKey:MemberID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"member,omitempty"`
	Event  *Event  `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"event,omitempty"`
}
