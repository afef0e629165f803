package repositories

import "gorm.io/gorm"

// Repositories servislerin kullandığı tüm depoları bir arada tutar.
// Postgres (NewRepositories) ve bellek içi (repositories/memory) uygulamaları aynı arayüzleri sağlar.
type Repositories struct {
	Members   IMemberRepository
	Events    IEventRepository
	Bookings  IBookingRepository
	Reviews   IReviewRepository
	Inquiries IInquiryRepository
}

// NewRepositories gorm bağlantısı üzerinde çalışan depoları oluşturur.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Members:   NewMemberRepository(db),
		Events:    NewEventRepository(db),
		Bookings:  NewBookingRepository(db),
		Reviews:   NewReviewRepository(db),
		Inquiries: NewInquiryRepository(db),
	}
}
