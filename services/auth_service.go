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

// AuthServiceError kimlik doğrulama servisinin hatalarıdır.
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrDuplicateEmail      AuthServiceError = "bu e-posta adresi zaten kayıtlı"
	ErrInvalidCredentials  AuthServiceError = "geçersiz e-posta veya şifre"
	ErrRegistrationFailure AuthServiceError = "kayıt işlemi tamamlanamadı"
)

// RegisterInput kayıt formudur.
type RegisterInput struct {
	FullName          string `form:"full_name" json:"full_name" validate:"required,max=100"`
	Email             string `form:"email" json:"email" validate:"required,email,max=100"`
	Password          string `form:"password" json:"password" validate:"required,min=6,max=100"`
	PreferredCategory string `form:"preferred_category" json:"preferred_category" validate:"max=50"`
}

// LoginInput giriş formudur.
type LoginInput struct {
	Email     string `form:"email" json:"email" validate:"required"`
	Password  string `form:"password" json:"password" validate:"required"`
	ReturnURL string `form:"returnUrl" json:"returnUrl"`
}

type IAuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.Member, error)
	Login(ctx context.Context, input LoginInput) (models.Identity, error)
}

type AuthService struct {
	members repositories.IMemberRepository
}

// NewAuthService yeni bir AuthService örneği oluşturur.
func NewAuthService(members repositories.IMemberRepository) IAuthService {
	return &AuthService{members: members}
}

// NormalizeEmail e-postayı karşılaştırma ve saklama için tek biçime getirir.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.Member, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = NormalizeEmail(input.Email)
	if err := formvalidation.Struct(input); err != nil {
		return nil, err
	}

	exists, err := s.members.ExistsByEmail(ctx, input.Email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	hash, err := passwords.Hash(input.Password)
	if err != nil {
		configslog.Log.Error("Şifre özeti üretilemedi", zap.Error(err))
		return nil, ErrRegistrationFailure
	}

	member := &models.Member{
		FullName:          input.FullName,
		Email:             input.Email,
		PasswordHash:      hash,
		Role:              models.RoleMember,
		PreferredCategory: optionalString(input.PreferredCategory),
	}
	if err := s.members.Create(ctx, member); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	configslog.Log.Info("Yeni üye kaydı", zap.Uint("member_id", member.ID), zap.String("email", member.Email))
	return member, nil
}

// Login e-posta ve şifreyi doğrular; bilinmeyen e-posta ile yanlış şifre aynı hatayı verir.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (models.Identity, error) {
	input.Email = NormalizeEmail(input.Email)
	if err := formvalidation.Struct(input); err != nil {
		return models.Identity{}, err
	}

	member, err := s.members.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Identity{}, ErrInvalidCredentials
		}
		return models.Identity{}, err
	}

	ok, err := passwords.Verify(input.Password, member.PasswordHash)
	if err != nil {
		configslog.Log.Warn("Saklı şifre özeti okunamadı", zap.Uint("member_id", member.ID), zap.Error(err))
		return models.Identity{}, ErrInvalidCredentials
	}
	if !ok {
		return models.Identity{}, ErrInvalidCredentials
	}

	return models.IdentityFromMember(member), nil
}
