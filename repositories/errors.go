package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("kayıt bulunamadı")
	ErrMemberNotFound    = errors.New("kaydın bağlanacağı üye bulunamadı")
	ErrDuplicate         = errors.New("kayıt zaten mevcut")
	ErrProtectedRecord   = errors.New("korumalı kayıt üzerinde bu işlem yapılamaz")
	ErrInsufficientSeats = errors.New("yeterli koltuk yok")
	ErrSeatsBelowBooked  = errors.New("toplam koltuk sayısı satılmış koltuk sayısının altına indirilemez")
)

// InsufficientSeatsError rezervasyon anında kalan koltuk sayısını taşır.
type InsufficientSeatsError struct {
	Available int
}

func (e *InsufficientSeatsError) Error() string {
	return fmt.Sprintf("yalnızca %d koltuk mevcut", e.Available)
}

func (e *InsufficientSeatsError) Is(target error) bool {
	return target == ErrInsufficientSeats
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// notFoundOr gorm'un kayıt bulunamadı hatasını ErrNotFound'a çevirir.
func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// likePattern ILIKE için özel karakterleri kaçışlayarak %terim% kalıbı üretir.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
