package repositories

import (
	"context"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IInquiryRepository iletişim mesajları için arayüz.
type IInquiryRepository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	List(ctx context.Context) ([]models.Inquiry, error)
	Count(ctx context.Context) (int64, error)
}

type InquiryRepository struct {
	db *gorm.DB
}

var _ IInquiryRepository = (*InquiryRepository)(nil)

// NewInquiryRepository yeni bir InquiryRepository örneği oluşturur.
func NewInquiryRepository(db *gorm.DB) IInquiryRepository {
	return &InquiryRepository{db: db}
}

func (r *InquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	if err := r.db.WithContext(ctx).Create(inquiry).Error; err != nil {
		configslog.Log.Error("InquiryRepository.Create: DB error", zap.Error(err))
		return err
	}
	return nil
}

func (r *InquiryRepository) List(ctx context.Context) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	if err := r.db.WithContext(ctx).Order("inquiry_date DESC, id DESC").Find(&inquiries).Error; err != nil {
		configslog.Log.Error("InquiryRepository.List: DB error", zap.Error(err))
		return nil, err
	}
	return inquiries, nil
}

func (r *InquiryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Inquiry{}).Count(&count).Error
	return count, err
}
