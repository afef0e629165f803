package memory

import (
	"context"
	"time"

	"etkinlik.link/models"
	"etkinlik.link/repositories"
)

type inquiryRepository struct {
	s *Store
}

var _ repositories.IInquiryRepository = (*inquiryRepository)(nil)

func (r *inquiryRepository) Create(_ context.Context, inquiry *models.Inquiry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.stamp("inquiries", &inquiry.BaseModel)
	r.s.inquiries[inquiry.ID] = *inquiry
	return nil
}

func (r *inquiryRepository) List(_ context.Context) ([]models.Inquiry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	inquiries := make([]models.Inquiry, 0, len(r.s.inquiries))
	for _, i := range r.s.inquiries {
		inquiries = append(inquiries, i)
	}
	newestFirst(inquiries, func(i models.Inquiry) (time.Time, uint) { return i.InquiryDate, i.ID })
	return inquiries, nil
}

func (r *inquiryRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.inquiries)), nil
}
