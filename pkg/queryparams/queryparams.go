// Package queryparams liste ekranlarındaki filtre parametrelerini ayrıştırır.
package queryparams

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout tarih filtresinin beklenen biçimidir.
const DateLayout = "2006-01-02"

// EventFilter etkinlik listesindeki filtrelerdir. Verilen tüm filtreler birlikte (VE) uygulanır.
type EventFilter struct {
	Category   string     `json:"category,omitempty"`
	Date       *time.Time `json:"date,omitempty"` // Gün başlangıcı (yerel saat)
	Venue      string     `json:"venue,omitempty"`
	MaxPrice   *float64   `json:"max_price,omitempty"`
	SearchTerm string     `json:"search_term,omitempty"`
}

// IsEmpty hiçbir filtre verilmemişse true döner.
func (f EventFilter) IsEmpty() bool {
	return f.Category == "" && f.Date == nil && f.Venue == "" && f.MaxPrice == nil && f.SearchTerm == ""
}

// DayRange tarih filtresinin kapsadığı [başlangıç, bitiş) aralığını döndürür.
func (f EventFilter) DayRange() (time.Time, time.Time, bool) {
	if f.Date == nil {
		return time.Time{}, time.Time{}, false
	}
	start := *f.Date
	return start, start.AddDate(0, 0, 1), true
}

// ParseEventFilter sorgu değerlerinden filtre oluşturur.
// Ayrıştırılamayan tarih ve fiyat değerleri yok sayılır.
func ParseEventFilter(get func(key string) string) EventFilter {
	f := EventFilter{
		Category:   strings.TrimSpace(get("category")),
		Venue:      strings.TrimSpace(get("venue")),
		SearchTerm: strings.TrimSpace(get("searchTerm")),
	}

	if raw := strings.TrimSpace(get("date")); raw != "" {
		if day, err := time.ParseInLocation(DateLayout, raw, time.Local); err == nil {
			f.Date = &day
		}
	}

	if raw := strings.TrimSpace(get("maxPrice")); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil && price >= 0 {
			f.MaxPrice = &price
		}
	}

	return f
}

// BookingFilter yönetici rezervasyon listesindeki isteğe bağlı filtrelerdir.
type BookingFilter struct {
	EventID  *uint `json:"event_id,omitempty"`
	MemberID *uint `json:"member_id,omitempty"`
}

// ParseBookingFilter eventId ve memberId sorgu değerlerini okur. Geçersiz veya sıfır değerler yok sayılır.
func ParseBookingFilter(get func(key string) string) BookingFilter {
	return BookingFilter{
		EventID:  parseID(get("eventId")),
		MemberID: parseID(get("memberId")),
	}
}

func parseID(raw string) *uint {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return nil
	}
	id := uint(n)
	return &id
}
