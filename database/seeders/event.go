package seeders

import (
	"errors"
	"time"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SampleEvents tanıtım amaçlı altı etkinliği döndürür. Etkinlikler ref zamanından
// sonraki yıla yerleştirilir; böylece yaklaşan etkinlik listeleri boş kalmaz.
func SampleEvents(ref time.Time) []models.Event {
	year := ref.Year() + 1
	at := func(month time.Month, day, hour, minute int) time.Time {
		return time.Date(year, month, day, hour, minute, 0, 0, time.Local)
	}
	desc := func(s string) *string { return &s }

	return []models.Event{
		{
			Name:        "Metropolitan Orchestra: Symphony Night",
			Category:    "Music",
			EventDate:   at(time.June, 15, 19, 30),
			Venue:       "Grand Concert Hall",
			Price:       45,
			TotalSeats:  500,
			Description: desc("An enchanting evening of classical music featuring renowned orchestra performers."),
		},
		{
			Name:        "Contemporary Art Exhibition",
			Category:    "Art",
			EventDate:   at(time.May, 20, 10, 0),
			Venue:       "City Art Gallery",
			Price:       15,
			TotalSeats:  200,
			Description: desc("Explore modern art from local and international artists."),
		},
		{
			Name:        "Shakespeare's Hamlet",
			Category:    "Theater",
			EventDate:   at(time.July, 10, 20, 0),
			Venue:       "Metropolitan Theater",
			Price:       35,
			TotalSeats:  350,
			Description: desc("A dramatic performance of the classic tragedy by William Shakespeare."),
		},
		{
			Name:        "Jazz Night Live",
			Category:    "Music",
			EventDate:   at(time.May, 30, 21, 0),
			Venue:       "Blue Note Jazz Club",
			Price:       25,
			TotalSeats:  150,
			Description: desc("Smooth jazz performances by award-winning musicians."),
		},
		{
			Name:        "Cultural Dance Festival",
			Category:    "Dance",
			EventDate:   at(time.August, 5, 18, 0),
			Venue:       "City Cultural Center",
			Price:       30,
			TotalSeats:  400,
			Description: desc("A celebration of diverse cultural dance traditions from around the world."),
		},
		{
			Name:        "Photography Workshop",
			Category:    "Workshop",
			EventDate:   at(time.June, 1, 14, 0),
			Venue:       "Community Arts Space",
			Price:       50,
			TotalSeats:  30,
			Description: desc("Learn advanced photography techniques from professional photographers."),
		},
	}
}

// SeedEvents örnek etkinlikleri ada göre kontrol ederek eksik olanları ekler.
func SeedEvents(db *gorm.DB) error {
	var createdCount int64
	errorOccurred := false

	configslog.SLog.Info("Örnek etkinlik seed işlemi başlıyor...")

	for _, event := range SampleEvents(time.Now()) {
		var existing models.Event
		result := db.Where("name = ?", event.Name).First(&existing)
		if result.Error == nil {
			configslog.SLog.Debugf("Etkinlik '%s' zaten mevcut, oluşturma atlanıyor.", event.Name)
			continue
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Etkinlik kontrol edilirken veritabanı hatası", zap.String("name", event.Name), zap.Error(result.Error))
			errorOccurred = true
			continue
		}

		if err := db.Create(&event).Error; err != nil {
			configslog.Log.Error("Etkinlik oluşturulamadı", zap.String("name", event.Name), zap.Error(err))
			errorOccurred = true
			continue
		}
		createdCount++
	}

	if errorOccurred {
		return errors.New("örnek etkinlikler seed edilirken en az bir hata oluştu")
	}
	if createdCount > 0 {
		configslog.SLog.Infof("%d adet örnek etkinlik eklendi.", createdCount)
	} else {
		configslog.SLog.Info("Tüm örnek etkinlikler zaten mevcut, yeni ekleme yapılmadı.")
	}
	return nil
}
