package services

import (
	"context"
	"errors"
	"strings"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/formvalidation"
	"etkinlik.link/pkg/passwords"
	"etkinlik.link/repositories"

	"go.uber.org/zap"
)

// MemberServiceError üye yönetimi servisinin hatalarıdır.
type MemberServiceError string

func (e MemberServiceError) Error() string { return string(e) }

const (
	ErrMemberNotFound  MemberServiceError = "üye bulunamadı"
	ErrMemberForbidden MemberServiceError = "yönetici hesapları bu ekrandan düzenlenemez veya silinemez"
)

// MemberUpdateInput yönetici üye düzenleme formudur.
// Role alanı formda gelse bile yok sayılır; kayıt her zaman Member rolünde kalır.
type MemberUpdateInput struct {
	FullName          string `form:"full_name" json:"full_name" validate:"required,max=100"`
	Email             string `form:"email" json:"email" validate:"required,email,max=100"`
	PreferredCategory string `form:"preferred_category" json:"preferred_category" validate:"max=50"`
	Role              string `form:"role" json:"role"`
	NewPassword       string `form:"new_password" json:"new_password" validate:"omitempty,min=6,max=100"`
}

// MemberUpdateInputFrom düzenleme formunu mevcut kayıtla doldurur.
func MemberUpdateInputFrom(m *models.Member) MemberUpdateInput {
	input := MemberUpdateInput{FullName: m.FullName, Email: m.Email, Role: string(m.Role)}
	if m.PreferredCategory != nil {
		input.PreferredCategory = *m.PreferredCategory
	}
	return input
}

type IMemberService interface {
	ListMembers(ctx context.Context) ([]models.Member, error)
	GetMember(ctx context.Context, id uint) (*models.Member, error)
	UpdateMember(ctx context.Context, id uint, input MemberUpdateInput) (*models.Member, error)
	DeleteMember(ctx context.Context, id uint) error
}

type MemberService struct {
	members repositories.IMemberRepository
}

// NewMemberService yeni bir MemberService örneği oluşturur.
func NewMemberService(members repositories.IMemberRepository) IMemberService {
	return &MemberService{members: members}
}

// ListMembers yalnızca Member rolündeki kayıtları döndürür.
func (s *MemberService) ListMembers(ctx context.Context) ([]models.Member, error) {
	return s.members.ListByRole(ctx, models.RoleMember)
}

// GetMember yönetici hesapları için ErrMemberForbidden döner.
func (s *MemberService) GetMember(ctx context.Context, id uint) (*models.Member, error) {
	member, err := s.members.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if member.Role != models.RoleMember {
		return nil, ErrMemberForbidden
	}
	return member, nil
}

func (s *MemberService) UpdateMember(ctx context.Context, id uint, input MemberUpdateInput) (*models.Member, error) {
	member, err := s.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}

	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = NormalizeEmail(input.Email)
	if err := formvalidation.Struct(input); err != nil {
		return nil, err
	}

	exists, err := s.members.ExistsByEmail(ctx, input.Email, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	member.FullName = input.FullName
	member.Email = input.Email
	member.PreferredCategory = optionalString(input.PreferredCategory)
	member.Role = models.RoleMember
	if input.NewPassword != "" {
		hash, err := passwords.Hash(input.NewPassword)
		if err != nil {
			configslog.Log.Error("Şifre özeti üretilemedi", zap.Uint("member_id", id), zap.Error(err))
			return nil, err
		}
		member.PasswordHash = hash
	}

	if err := s.members.Update(ctx, member); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, ErrDuplicateEmail
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	configslog.Log.Info("Üye güncellendi", zap.Uint("member_id", id), zap.Bool("password_changed", input.NewPassword != ""))
	return member, nil
}

// DeleteMember rol kontrolünü silme transaction'ı içinde tekrar yaptırır.
func (s *MemberService) DeleteMember(ctx context.Context, id uint) error {
	if err := s.members.DeleteWithDependents(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return ErrMemberNotFound
		case errors.Is(err, repositories.ErrProtectedRecord):
			return ErrMemberForbidden
		}
		return err
	}
	configslog.Log.Info("Üye ve bağlı kayıtları silindi", zap.Uint("member_id", id))
	return nil
}
