package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/sim1zzo/vegan-nutrition-tracker/models"
)

type RicettaService struct {
	db *gorm.DB
}

func NewRicettaService(db *gorm.DB) *RicettaService {
	return &RicettaService{db: db}
}

func (s *RicettaService) List(userID uint) ([]models.Ricetta, error) {
	var ricette []models.Ricetta
	err := s.db.
		Preload("Alimenti", func(db *gorm.DB) *gorm.DB { return db.Order("posizione ASC") }).
		Where("user_id = ?", userID).
		Order("nome ASC").
		Find(&ricette).Error
	return ricette, err
}

// Create stores a new recipe and returns the updated recipe list, the shape
// the client re-renders from.
func (s *RicettaService) Create(userID uint, nome string, alimenti []VoceInput) ([]models.Ricetta, error) {
	if nome == "" || len(alimenti) == 0 {
		return nil, errore(ErrValidation, "Nome e almeno un alimento sono richiesti")
	}

	var count int64
	err := s.db.Model(&models.Ricetta{}).
		Where("user_id = ? AND LOWER(nome) = ?", userID, strings.ToLower(nome)).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errore(ErrDuplicate, "Hai già una ricetta con questo nome")
	}

	ricetta := models.Ricetta{UserID: userID, Nome: nome}
	for i, a := range alimenti {
		ricetta.Alimenti = append(ricetta.Alimenti, models.RicettaAlimento{
			Posizione: i,
			Nome:      a.Nome,
			Quantita:  a.Quantita,
			Nutrienti: a.Nutrienti,
		})
	}

	if err := s.db.Create(&ricetta).Error; err != nil {
		return nil, err
	}
	return s.List(userID)
}

// Delete removes a recipe and returns the updated recipe list.
func (s *RicettaService) Delete(userID, ricettaID uint) ([]models.Ricetta, error) {
	var ricetta models.Ricetta
	err := s.db.Where("id = ? AND user_id = ?", ricettaID, userID).First(&ricetta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errore(ErrNotFound, "Ricetta non trovata")
	}
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ricetta_id = ?", ricetta.ID).Delete(&models.RicettaAlimento{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&ricetta).Error
	})
	if err != nil {
		return nil, err
	}
	return s.List(userID)
}
