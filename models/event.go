package models

import (
	"encoding/json"
	"time"
)

// Event kültür kurulunun düzenlediği bir etkinliktir.
type Event struct {
	BaseModel
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`
	Category    string    `gorm:"type:varchar(50);not null;index" json:"category"`
	EventDate   time.Time `gorm:"not null;index" json:"event_date"`
	Venue       string    `gorm:"type:varchar(200);not null" json:"venue"`
	Price       float64   `gorm:"type:numeric(18,2);not null;default:0" json:"price"`
	TotalSeats  int       `gorm:"not null" json:"total_seats"`
	Description *string   `gorm:"type:varchar(1000)" json:"description,omitempty"`

	// BookedSeats rezervasyon miktarlarının toplamıdır; sorgu sırasında SUM ile doldurulur.
	BookedSeats int `gorm:"->;-:migration" json:"booked_seats"`
}

// AvailableSeats toplam koltuktan satılanlar düşülerek bulunur.
func (e Event) AvailableSeats() int {
	return e.TotalSeats - e.BookedSeats
}

func (e Event) IsFull() bool {
	return e.AvailableSeats() <= 0
}

// MarshalJSON hesaplanan koltuk alanlarını da çıktıya ekler.
func (e Event) MarshalJSON() ([]byte, error) {
	type eventAlias Event
	return json.Marshal(struct {
		eventAlias
		AvailableSeats int  `json:"available_seats"`
		IsFull         bool `json:"is_full"`
	}{
		eventAlias:     eventAlias(e),
		AvailableSeats: e.AvailableSeats(),
		IsFull:         e.IsFull(),
	})
}
