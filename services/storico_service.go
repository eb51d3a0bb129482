package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/sim1zzo/vegan-nutrition-tracker/models"
)

// StoricoService serves the charting feed: read-only range queries over the
// daily logs, newest first.
type StoricoService struct {
	giornate *GiornataService
}

func NewStoricoService(db *gorm.DB) *StoricoService {
	return &StoricoService{giornate: NewGiornataService(db)}
}

func (s *StoricoService) Range(userID uint, da, a time.Time) ([]models.GiornataAlimentare, error) {
	return s.giornate.ListRange(userID, da, a)
}

// UltimiGiorni returns the window ending today, n days wide.
func (s *StoricoService) UltimiGiorni(userID uint, n int) ([]models.GiornataAlimentare, error) {
	if n < 1 {
		n = 7
	}
	oggi := time.Now()
	return s.giornate.ListRange(userID, oggi.AddDate(0, 0, -(n-1)), oggi)
}

// SettimanaCorrente returns the current ISO week, Monday through Sunday.
func (s *StoricoService) SettimanaCorrente(userID uint) ([]models.GiornataAlimentare, error) {
	lunedi := LunediCorrente(time.Now())
	return s.giornate.ListRange(userID, lunedi, lunedi.AddDate(0, 0, 6))
}

// MeseCorrente returns the current calendar month.
func (s *StoricoService) MeseCorrente(userID uint) ([]models.GiornataAlimentare, error) {
	oggi := time.Now()
	primo := time.Date(oggi.Year(), oggi.Month(), 1, 0, 0, 0, 0, oggi.Location())
	ultimo := primo.AddDate(0, 1, -1)
	return s.giornate.ListRange(userID, primo, ultimo)
}

// LunediCorrente returns the Monday of t's week at local midnight. AddDate
// handles month and year boundaries safely.
func LunediCorrente(t time.Time) time.Time {
	giorno := int(t.Weekday()) // 0 = Sunday
	if giorno == 0 {
		giorno = 7
	}
	return InizioGiornata(t.AddDate(0, 0, -(giorno - 1)))
}
