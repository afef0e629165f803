package services

import (
	"context"
	"strings"
	"time"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/formvalidation"
	"etkinlik.link/repositories"

	"go.uber.org/zap"
)

// InquiryServiceError iletişim servisinin hatalarıdır.
type InquiryServiceError string

func (e InquiryServiceError) Error() string { return string(e) }

const (
	ErrInquiryNotSaved InquiryServiceError = "mesaj kaydedilemedi"
)

// InquiryInput iletişim formudur.
type InquiryInput struct {
	Name    string `form:"name" json:"name" validate:"required,max=100"`
	Email   string `form:"email" json:"email" validate:"required,email,max=100"`
	Message string `form:"message" json:"message" validate:"required,max=1000"`
}

type IInquiryService interface {
	PrefillInquiry(identity *models.Identity) InquiryInput
	CreateInquiry(ctx context.Context, input InquiryInput) (*models.Inquiry, error)
	ListInquiries(ctx context.Context) ([]models.Inquiry, error)
}

type InquiryService struct {
	inquiries repositories.IInquiryRepository
	now       func() time.Time
}

// NewInquiryService yeni bir InquiryService örneği oluşturur.
func NewInquiryService(inquiries repositories.IInquiryRepository) IInquiryService {
	return &InquiryService{inquiries: inquiries, now: time.Now}
}

// PrefillInquiry oturum açmış üyenin ad ve e-postasını forma yerleştirir.
func (s *InquiryService) PrefillInquiry(identity *models.Identity) InquiryInput {
	if identity == nil {
		return InquiryInput{}
	}
	return InquiryInput{Name: identity.FullName, Email: identity.Email}
}

func (s *InquiryService) CreateInquiry(ctx context.Context, input InquiryInput) (*models.Inquiry, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Message = strings.TrimSpace(input.Message)
	if err := formvalidation.Struct(input); err != nil {
		return nil, err
	}

	inquiry := &models.Inquiry{
		Name:        input.Name,
		Email:       input.Email,
		Message:     input.Message,
		InquiryDate: s.now(),
	}
	if err := s.inquiries.Create(ctx, inquiry); err != nil {
		configslog.Log.Error("İletişim mesajı kaydedilemedi", zap.String("email", inquiry.Email), zap.Error(err))
		return nil, ErrInquiryNotSaved
	}
	configslog.Log.Info("İletişim mesajı alındı", zap.Uint("inquiry_id", inquiry.ID))
	return inquiry, nil
}

func (s *InquiryService) ListInquiries(ctx context.Context) ([]models.Inquiry, error) {
	return s.inquiries.List(ctx)
}
