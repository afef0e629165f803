package services

import "etkinlik.link/repositories"

// Services handler'ların kullandığı servislerdir.
type Services struct {
	Auth      IAuthService
	Events    IEventService
	Bookings  IBookingService
	Reviews   IReviewService
	Inquiries IInquiryService
	Members   IMemberService
	Dashboard IDashboardService
}

// NewServices tüm servisleri aynı depo kümesi üzerinde kurar.
func NewServices(repos *repositories.Repositories) *Services {
	return &Services{
		Auth:      NewAuthService(repos.Members),
		Events:    NewEventService(repos),
		Bookings:  NewBookingService(repos),
		Reviews:   NewReviewService(repos),
		Inquiries: NewInquiryService(repos.Inquiries),
		Members:   NewMemberService(repos.Members),
		Dashboard: NewDashboardService(repos),
	}
}
