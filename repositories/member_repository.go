package repositories

import (
	"context"
	"errors"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IMemberRepository üye veritabanı işlemleri için arayüz.
type IMemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	FindByID(ctx context.Context, id uint) (*models.Member, error)
	FindByEmail(ctx context.Context, email string) (*models.Member, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.Member, error)
	Update(ctx context.Context, member *models.Member) error
	CountByRole(ctx context.Context, role models.Role) (int64, error)
	// DeleteWithDependents üyenin yorumlarını, rezervasyonlarını ve kendisini tek transaction'da siler.
	// Yalnızca Member rolündeki kayıtlar silinebilir; diğerleri için ErrProtectedRecord döner.
	DeleteWithDependents(ctx context.Context, id uint) error
}

// MemberRepository IMemberRepository arayüzünü uygular.
type MemberRepository struct {
	db *gorm.DB
}

var _ IMemberRepository = (*MemberRepository)(nil)

// NewMemberRepository yeni bir MemberRepository örneği oluşturur.
func NewMemberRepository(db *gorm.DB) IMemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

const memberCountsSelect = "members.*, " +
	"(SELECT COUNT(*) FROM bookings WHERE bookings.member_id = members.id) AS booking_count, " +
	"(SELECT COUNT(*) FROM reviews WHERE reviews.member_id = members.id) AS review_count"

func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	if err := r.getDB(ctx).Create(member).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		configslog.Log.Error("MemberRepository.Create: DB error", zap.String("email", member.Email), zap.Error(err))
		return err
	}
	return nil
}

func (r *MemberRepository) FindByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	err := r.getDB(ctx).Model(&models.Member{}).Select(memberCountsSelect).Where("members.id = ?", id).Take(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("MemberRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member
	err := r.getDB(ctx).Where("email = ?", email).Take(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("MemberRepository.FindByEmail: DB error", zap.Error(err))
		return nil, err
	}
	return &member, nil
}

// ExistsByEmail e-postanın başka bir üyede (excludeID hariç) kullanılıp kullanılmadığını kontrol eder.
func (r *MemberRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	query := r.getDB(ctx).Model(&models.Member{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		configslog.Log.Error("MemberRepository.ExistsByEmail: DB error", zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// ListByRole verilen roldeki üyeleri ada göre sıralı, rezervasyon/yorum sayılarıyla getirir.
func (r *MemberRepository) ListByRole(ctx context.Context, role models.Role) ([]models.Member, error) {
	var members []models.Member
	err := r.getDB(ctx).Model(&models.Member{}).
		Select(memberCountsSelect).
		Where("members.role = ?", role).
		Order("members.full_name ASC").
		Find(&members).Error
	if err != nil {
		configslog.Log.Error("MemberRepository.ListByRole: DB error", zap.String("role", string(role)), zap.Error(err))
		return nil, err
	}
	return members, nil
}

func (r *MemberRepository) Update(ctx context.Context, member *models.Member) error {
	result := r.getDB(ctx).Model(&models.Member{}).Where("id = ?", member.ID).Updates(map[string]interface{}{
		"full_name":          member.FullName,
		"email":              member.Email,
		"password_hash":      member.PasswordHash,
		"role":               member.Role,
		"preferred_category": member.PreferredCategory,
	})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrDuplicate
		}
		configslog.Log.Error("MemberRepository.Update: DB error", zap.Uint("id", member.ID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MemberRepository) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Member{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (r *MemberRepository) DeleteWithDependents(ctx context.Context, id uint) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		var member models.Member
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&member, id).Error; err != nil {
			return notFoundOr(err)
		}
		if member.Role != models.RoleMember {
			return ErrProtectedRecord
		}

		if err := tx.Where("member_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			configslog.Log.Error("Üye yorumları silinemedi", zap.Uint("member_id", id), zap.Error(err))
			return err
		}
		if err := tx.Where("member_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			configslog.Log.Error("Üye rezervasyonları silinemedi", zap.Uint("member_id", id), zap.Error(err))
			return err
		}
		if err := tx.Delete(&models.Member{}, id).Error; err != nil {
			configslog.Log.Error("Üye silinemedi", zap.Uint("member_id", id), zap.Error(err))
			return err
		}
		return nil
	})
}
