package models

import "time"

// Inquiry ziyaretçi veya üyelerin gönderdiği iletişim mesajıdır.
type Inquiry struct {
	BaseModel
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Email       string    `gorm:"type:varchar(100);not null" json:"email"`
	Message     string    `gorm:"type:varchar(1000);not null" json:"message"`
	InquiryDate time.Time `gorm:"not null;index" json:"inquiry_date"`
}
