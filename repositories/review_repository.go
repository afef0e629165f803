package repositories

import (
	"context"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IReviewRepository yorum veritabanı işlemleri için arayüz.
type IReviewRepository interface {
	// Create (member_id, event_id) çifti zaten varsa ErrDuplicate, üye silinmişse ErrMemberNotFound döner.
	Create(ctx context.Context, review *models.Review) error
	FindOwned(ctx context.Context, id, memberID uint) (*models.Review, error)
	ExistsForMemberEvent(ctx context.Context, memberID, eventID uint) (bool, error)
	UpdateContent(ctx context.Context, review *models.Review) error
	DeleteOwned(ctx context.Context, id, memberID uint) error
	ListByEvent(ctx context.Context, eventID uint) ([]models.Review, error)
	Count(ctx context.Context) (int64, error)
}

// ReviewRepository IReviewRepository arayüzünü uygular.
type ReviewRepository struct {
	db *gorm.DB
}

var _ IReviewRepository = (*ReviewRepository)(nil)

// NewReviewRepository yeni bir ReviewRepository örneği oluşturur.
func NewReviewRepository(db *gorm.DB) IReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.getDB(ctx).Create(review).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return ErrMemberNotFound
		}
		configslog.Log.Error("ReviewRepository.Create: DB error",
			zap.Uint("event_id", review.EventID), zap.Uint("member_id", review.MemberID), zap.Error(err))
		return err
	}
	return nil
}

func (r *ReviewRepository) FindOwned(ctx context.Context, id, memberID uint) (*models.Review, error) {
	var review models.Review
	err := r.getDB(ctx).Preload("Event", preloadEventWithSeats).
		Where("id = ? AND member_id = ?", id, memberID).
		Take(&review).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &review, nil
}

func (r *ReviewRepository) ExistsForMemberEvent(ctx context.Context, memberID, eventID uint) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Review{}).
		Where("member_id = ? AND event_id = ?", memberID, eventID).
		Count(&count).Error
	return count > 0, err
}

// UpdateContent sadece puan ve yorum metnini günceller; sahiplik koşulu sorguya dahildir.
func (r *ReviewRepository) UpdateContent(ctx context.Context, review *models.Review) error {
	result := r.getDB(ctx).Model(&models.Review{}).
		Where("id = ? AND member_id = ?", review.ID, review.MemberID).
		Updates(map[string]interface{}{
			"rating":  review.Rating,
			"comment": review.Comment,
		})
	if result.Error != nil {
		configslog.Log.Error("ReviewRepository.UpdateContent: DB error", zap.Uint("id", review.ID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) DeleteOwned(ctx context.Context, id, memberID uint) error {
	result := r.getDB(ctx).Where("id = ? AND member_id = ?", id, memberID).Delete(&models.Review{})
	if result.Error != nil {
		configslog.Log.Error("ReviewRepository.DeleteOwned: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByEvent etkinliğin yorumlarını yazar bilgisiyle, en yeniden eskiye getirir.
func (r *ReviewRepository) ListByEvent(ctx context.Context, eventID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.getDB(ctx).Preload("Member").
		Where("event_id = ?", eventID).
		Order("review_date DESC, id DESC").
		Find(&reviews).Error
	if err != nil {
		configslog.Log.Error("ReviewRepository.ListByEvent: DB error", zap.Uint("event_id", eventID), zap.Error(err))
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Review{}).Count(&count).Error
	return count, err
}
