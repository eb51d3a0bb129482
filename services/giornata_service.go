package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sim1zzo/vegan-nutrition-tracker/models"
)

type GiornataService struct {
	db *gorm.DB
}

func NewGiornataService(db *gorm.DB) *GiornataService {
	return &GiornataService{db: db}
}

type VoceInput struct {
	Nome     string  `json:"nome"`
	Quantita float64 `json:"quantita"`

	models.Nutrienti
}

type IntegratoreInput struct {
	Nome     string `json:"nome"`
	Dosaggio string `json:"dosaggio"`
}

// GiornataInput replaces the whole content of a daily log. Totals are never
// taken from the client: the server recomputes them from the entries.
type GiornataInput struct {
	Data        string                        `json:"data"` // YYYY-MM-DD
	Pasti       map[string][]VoceInput        `json:"pasti"`
	Integratori map[string][]IntegratoreInput `json:"integratori"`
}

// InizioGiornata truncates a timestamp to local midnight. A calendar day
// runs from 00:00:00.000 to 23:59:59.999 local time.
func InizioGiornata(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseData parses a YYYY-MM-DD query value in local time.
func ParseData(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, errore(ErrValidation, "Data non valida, usa il formato YYYY-MM-DD")
	}
	return t, nil
}

// GetOrCreateByDate returns the log for (user, day), creating an empty one
// on first access. A date with no entries is a valid empty log, never a 404.
func (s *GiornataService) GetOrCreateByDate(userID uint, giorno time.Time) (*models.GiornataAlimentare, error) {
	inizio := InizioGiornata(giorno)
	fine := inizio.Add(24 * time.Hour)

	var giornata models.GiornataAlimentare
	err := s.preloaded().
		Where("user_id = ? AND data >= ? AND data < ?", userID, inizio, fine).
		First(&giornata).Error
	if err == nil {
		return &giornata, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	giornata = models.GiornataAlimentare{UserID: userID, Data: inizio}
	if err := s.db.Create(&giornata).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		// Lost a concurrent create for the same day: the winner's row is
		// the log, reuse it.
		err = s.preloaded().
			Where("user_id = ? AND data >= ? AND data < ?", userID, inizio, fine).
			First(&giornata).Error
		if err != nil {
			return nil, err
		}
	}
	return &giornata, nil
}

// ListRange returns the logs between two days inclusive, newest first.
func (s *GiornataService) ListRange(userID uint, da, a time.Time) ([]models.GiornataAlimentare, error) {
	inizio := InizioGiornata(da)
	fine := InizioGiornata(a).Add(24 * time.Hour)

	var giornate []models.GiornataAlimentare
	err := s.preloaded().
		Where("user_id = ? AND data >= ? AND data < ?", userID, inizio, fine).
		Order("data DESC").
		Find(&giornate).Error
	return giornate, err
}

func (s *GiornataService) List(userID uint) ([]models.GiornataAlimentare, error) {
	var giornate []models.GiornataAlimentare
	err := s.preloaded().
		Where("user_id = ?", userID).
		Order("data DESC").
		Find(&giornate).Error
	return giornate, err
}

// Upsert creates the log for the input's day or, when one already exists,
// replaces its content. One log per user per calendar day.
func (s *GiornataService) Upsert(userID uint, input GiornataInput) (*models.GiornataAlimentare, error) {
	if input.Data == "" {
		return nil, errore(ErrValidation, "La data è obbligatoria")
	}
	giorno, err := ParseData(input.Data)
	if err != nil {
		return nil, err
	}

	giornata, err := s.GetOrCreateByDate(userID, giorno)
	if err != nil {
		return nil, err
	}
	return s.sostituisciContenuto(giornata, input)
}

// Update replaces the slots and supplements of an existing log. The date of
// the log is immutable here; concurrent updates are last-write-wins.
func (s *GiornataService) Update(userID, giornataID uint, input GiornataInput) (*models.GiornataAlimentare, error) {
	giornata, err := s.trovaDiProprieta(userID, giornataID)
	if err != nil {
		return nil, err
	}
	return s.sostituisciContenuto(giornata, input)
}

// AddVoce appends a catalog food to a meal slot, scaling the per-100g
// profile to the consumed quantity, then recomputes the totals.
func (s *GiornataService) AddVoce(userID, giornataID uint, pasto string, alimentoID uint, quantita float64) (*models.GiornataAlimentare, error) {
	if !models.PastoValido(pasto) {
		return nil, errore(ErrValidation, "Pasto non valido: %s", pasto)
	}
	if quantita <= 0 {
		return nil, errore(ErrValidation, "La quantità deve essere positiva")
	}

	giornata, err := s.trovaDiProprieta(userID, giornataID)
	if err != nil {
		return nil, err
	}

	var alimento models.Alimento
	err = s.db.
		Where("id = ? AND ((is_publico = ? AND verificato = ?) OR created_by = ?)",
			alimentoID, true, true, userID).
		First(&alimento).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errore(ErrNotFound, "Alimento non trovato")
	}
	if err != nil {
		return nil, err
	}

	voce := models.VoceAlimento{
		GiornataID: giornata.ID,
		Pasto:      pasto,
		Posizione:  s.prossimaPosizione(giornata, pasto),
		Nome:       alimento.Nome,
		Quantita:   quantita,
		Nutrienti:  alimento.Nutrienti.ScalaPer(quantita),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&voce).Error; err != nil {
			return err
		}
		giornata.Voci = append(giornata.Voci, voce)
		return s.salvaTotali(tx, giornata)
	})
	if err != nil {
		return nil, err
	}
	return giornata, nil
}

// RemoveVoce removes the entry at the given position of a slot and
// recomputes the totals.
func (s *GiornataService) RemoveVoce(userID, giornataID uint, pasto string, indice int) (*models.GiornataAlimentare, error) {
	if !models.PastoValido(pasto) {
		return nil, errore(ErrValidation, "Pasto non valido: %s", pasto)
	}

	giornata, err := s.trovaDiProprieta(userID, giornataID)
	if err != nil {
		return nil, err
	}

	voci := giornata.PastiMap()[pasto]
	if indice < 0 || indice >= len(voci) {
		return nil, errore(ErrValidation, "Indice fuori dal pasto: %d", indice)
	}
	daEliminare := voci[indice]

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.VoceAlimento{}, daEliminare.ID).Error; err != nil {
			return err
		}
		// Compact the positions left behind.
		for i := indice + 1; i < len(voci); i++ {
			if err := tx.Model(&models.VoceAlimento{}).
				Where("id = ?", voci[i].ID).
				Update("posizione", voci[i].Posizione-1).Error; err != nil {
				return err
			}
		}

		rimaste := giornata.Voci[:0]
		for _, v := range giornata.Voci {
			if v.ID != daEliminare.ID {
				rimaste = append(rimaste, v)
			}
		}
		giornata.Voci = rimaste
		return s.salvaTotali(tx, giornata)
	})
	if err != nil {
		return nil, err
	}
	return s.ricarica(giornata.ID)
}

// AddRicetta appends every entry of a recipe to a slot, in stored order,
// with a single totals recomputation at the end.
func (s *GiornataService) AddRicetta(userID, giornataID, ricettaID uint, pasto string) (*models.GiornataAlimentare, error) {
	if !models.PastoValido(pasto) {
		return nil, errore(ErrValidation, "Pasto non valido: %s", pasto)
	}

	giornata, err := s.trovaDiProprieta(userID, giornataID)
	if err != nil {
		return nil, err
	}

	var ricetta models.Ricetta
	err = s.db.
		Preload("Alimenti", func(db *gorm.DB) *gorm.DB { return db.Order("posizione ASC") }).
		Where("id = ? AND user_id = ?", ricettaID, userID).
		First(&ricetta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errore(ErrNotFound, "Ricetta non trovata")
	}
	if err != nil {
		return nil, err
	}

	posizione := s.prossimaPosizione(giornata, pasto)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, a := range ricetta.Alimenti {
			voce := models.VoceAlimento{
				GiornataID: giornata.ID,
				Pasto:      pasto,
				Posizione:  posizione,
				Nome:       a.Nome,
				Quantita:   a.Quantita,
				Nutrienti:  a.Nutrienti,
			}
			if err := tx.Create(&voce).Error; err != nil {
				return err
			}
			giornata.Voci = append(giornata.Voci, voce)
			posizione++
		}
		return s.salvaTotali(tx, giornata)
	})
	if err != nil {
		return nil, err
	}
	return giornata, nil
}

func (s *GiornataService) preloaded() *gorm.DB {
	return s.db.
		Preload("Voci", func(db *gorm.DB) *gorm.DB { return db.Order("posizione ASC") }).
		Preload("Integratori", func(db *gorm.DB) *gorm.DB { return db.Order("posizione ASC") })
}

func (s *GiornataService) ricarica(id uint) (*models.GiornataAlimentare, error) {
	var giornata models.GiornataAlimentare
	err := s.preloaded().First(&giornata, id).Error
	return &giornata, err
}

func (s *GiornataService) trovaDiProprieta(userID, id uint) (*models.GiornataAlimentare, error) {
	var giornata models.GiornataAlimentare
	err := s.preloaded().First(&giornata, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errore(ErrNotFound, "Giornata non trovata")
	}
	if err != nil {
		return nil, err
	}
	if giornata.UserID != userID {
		return nil, errore(ErrForbidden, "Non autorizzato ad accedere a questa giornata")
	}
	return &giornata, nil
}

func (s *GiornataService) prossimaPosizione(g *models.GiornataAlimentare, pasto string) int {
	max := -1
	for _, v := range g.Voci {
		if v.Pasto == pasto && v.Posizione > max {
			max = v.Posizione
		}
	}
	return max + 1
}

// sostituisciContenuto drops the stored entries and re-creates them from the
// input, then recomputes the totals. Same replace-then-reload approach as a
// whole-document update.
func (s *GiornataService) sostituisciContenuto(giornata *models.GiornataAlimentare, input GiornataInput) (*models.GiornataAlimentare, error) {
	for pasto := range input.Pasti {
		if !models.PastoValido(pasto) {
			return nil, errore(ErrValidation, "Pasto non valido: %s", pasto)
		}
	}
	for pasto := range input.Integratori {
		if !models.PastoValido(pasto) {
			return nil, errore(ErrValidation, "Pasto non valido: %s", pasto)
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("giornata_id = ?", giornata.ID).Delete(&models.VoceAlimento{}).Error; err != nil {
			return err
		}
		if err := tx.Where("giornata_id = ?", giornata.ID).Delete(&models.Integratore{}).Error; err != nil {
			return err
		}

		giornata.Voci = nil
		giornata.Integratori = nil

		for _, pasto := range models.PastiValidi {
			for i, in := range input.Pasti[pasto] {
				voce := models.VoceAlimento{
					GiornataID: giornata.ID,
					Pasto:      pasto,
					Posizione:  i,
					Nome:       in.Nome,
					Quantita:   in.Quantita,
					Nutrienti:  in.Nutrienti,
				}
				if err := tx.Create(&voce).Error; err != nil {
					return err
				}
				giornata.Voci = append(giornata.Voci, voce)
			}
			for i, in := range input.Integratori[pasto] {
				integratore := models.Integratore{
					GiornataID: giornata.ID,
					Pasto:      pasto,
					Posizione:  i,
					Nome:       in.Nome,
					Dosaggio:   in.Dosaggio,
				}
				if err := tx.Create(&integratore).Error; err != nil {
					return err
				}
				giornata.Integratori = append(giornata.Integratori, integratore)
			}
		}

		return s.salvaTotali(tx, giornata)
	})
	if err != nil {
		return nil, err
	}
	return giornata, nil
}

// salvaTotali recomputes the denormalized totals from the in-memory entries
// and persists only the log row, never touching the association rows.
func (s *GiornataService) salvaTotali(tx *gorm.DB, giornata *models.GiornataAlimentare) error {
	giornata.RicalcolaTotali()
	return tx.Omit(clause.Associations).Save(giornata).Error
}
