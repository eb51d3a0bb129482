package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/sim1zzo/vegan-nutrition-tracker/models"
)

type AlimentoService struct {
	db *gorm.DB
}

func NewAlimentoService(db *gorm.DB) *AlimentoService {
	return &AlimentoService{db: db}
}

// AlimentiFilter narrows the public catalog listing.
type AlimentiFilter struct {
	Categoria    string
	Search       string
	AltoProteico bool // proteine >= 15 g/100g
	Ipocalorico  bool // calorie <= 100 kcal/100g
	Page         int
	Limit        int
	IncludiMiei  bool
}

type AlimentoInput struct {
	Nome      string `json:"nome"`
	Categoria string `json:"categoria"`

	models.Nutrienti

	Porzione float64  `json:"porzione"`
	Tags     []string `json:"tags"`
}

// AlimentoPatch carries a partial update; nil means "leave unchanged".
type AlimentoPatch struct {
	Nome      *string `json:"nome"`
	Categoria *string `json:"categoria"`

	Proteine    *float64 `json:"proteine"`
	Carboidrati *float64 `json:"carboidrati"`
	Grassi      *float64 `json:"grassi"`
	Fibre       *float64 `json:"fibre"`
	Ferro       *float64 `json:"ferro"`
	Calcio      *float64 `json:"calcio"`
	VitB12      *float64 `json:"vitB12"`
	VitB2       *float64 `json:"vitB2"`
	VitD        *float64 `json:"vitD"`
	Omega3      *float64 `json:"omega3"`
	Iodio       *float64 `json:"iodio"`
	Zinco       *float64 `json:"zinco"`
	Calorie     *float64 `json:"calorie"`

	Porzione  *float64  `json:"porzione"`
	Tags      *[]string `json:"tags"`
	IsPublico *bool     `json:"isPublico"`
}

// List returns catalog entries visible to the caller: public-and-verified,
// plus the caller's own foods when requested.
func (s *AlimentoService) List(f AlimentiFilter, callerID *uint) ([]models.Alimento, int64, error) {
	q := s.db.Model(&models.Alimento{})

	if f.IncludiMiei && callerID != nil {
		q = q.Where("(is_publico = ? AND verificato = ?) OR created_by = ?", true, true, *callerID)
	} else {
		q = q.Where("is_publico = ? AND verificato = ?", true, true)
	}

	if f.Categoria != "" && f.Categoria != "tutti" {
		q = q.Where("categoria = ?", f.Categoria)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(nome) LIKE ? OR LOWER(tags) LIKE ?", pattern, pattern)
	}
	if f.AltoProteico {
		q = q.Where("proteine >= ?", 15.0)
	}
	if f.Ipocalorico {
		q = q.Where("calorie <= ?", 100.0)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 1000
	}

	var alimenti []models.Alimento
	err := q.Order("nome ASC").Limit(limit).Offset((page - 1) * limit).Find(&alimenti).Error
	return alimenti, count, err
}

func (s *AlimentoService) GetByCategoria(categoria string) ([]models.Alimento, error) {
	var alimenti []models.Alimento
	err := s.db.
		Where("categoria = ? AND is_publico = ? AND verificato = ?", categoria, true, true).
		Order("nome ASC").
		Find(&alimenti).Error
	return alimenti, err
}

func (s *AlimentoService) Miei(userID uint) ([]models.Alimento, error) {
	var alimenti []models.Alimento
	err := s.db.
		Where("created_by = ?", userID).
		Order("created_at DESC").
		Find(&alimenti).Error
	return alimenti, err
}

func (s *AlimentoService) Create(userID uint, input AlimentoInput) (*models.Alimento, error) {
	if input.Nome == "" || input.Categoria == "" {
		return nil, errore(ErrValidation, "Nome e categoria sono obbligatori")
	}

	if err := s.verificaNomeDuplicato(input.Nome, userID, 0); err != nil {
		return nil, err
	}

	porzione := input.Porzione
	if porzione <= 0 {
		porzione = 100
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	alimento := models.Alimento{
		Nome:      input.Nome,
		Categoria: input.Categoria,
		Nutrienti: input.Nutrienti,
		Porzione:  porzione,
		Tags:      tags,
		// Custom foods start private and unverified.
		IsPublico:  false,
		Verificato: false,
		CreatedBy:  &userID,
	}

	if err := s.db.Create(&alimento).Error; err != nil {
		return nil, err
	}
	return &alimento, nil
}

func (s *AlimentoService) Update(userID, id uint, patch AlimentoPatch) (*models.Alimento, error) {
	alimento, err := s.trovaDiProprieta(userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Nome != nil && !strings.EqualFold(*patch.Nome, alimento.Nome) {
		if err := s.verificaNomeDuplicato(*patch.Nome, userID, alimento.ID); err != nil {
			return nil, err
		}
		alimento.Nome = *patch.Nome
	}
	if patch.Categoria != nil {
		alimento.Categoria = *patch.Categoria
	}

	applica := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	applica(&alimento.Proteine, patch.Proteine)
	applica(&alimento.Carboidrati, patch.Carboidrati)
	applica(&alimento.Grassi, patch.Grassi)
	applica(&alimento.Fibre, patch.Fibre)
	applica(&alimento.Ferro, patch.Ferro)
	applica(&alimento.Calcio, patch.Calcio)
	applica(&alimento.VitB12, patch.VitB12)
	applica(&alimento.VitB2, patch.VitB2)
	applica(&alimento.VitD, patch.VitD)
	applica(&alimento.Omega3, patch.Omega3)
	applica(&alimento.Iodio, patch.Iodio)
	applica(&alimento.Zinco, patch.Zinco)
	applica(&alimento.Calorie, patch.Calorie)

	if patch.Porzione != nil && *patch.Porzione > 0 {
		alimento.Porzione = *patch.Porzione
	}
	if patch.Tags != nil {
		alimento.Tags = *patch.Tags
	}
	if patch.IsPublico != nil && *patch.IsPublico != alimento.IsPublico {
		alimento.IsPublico = *patch.IsPublico
		// Going public re-enters the review queue.
		if alimento.IsPublico {
			alimento.Verificato = false
		}
	}

	if err := s.db.Save(alimento).Error; err != nil {
		return nil, err
	}
	return alimento, nil
}

func (s *AlimentoService) Delete(userID, id uint) error {
	alimento, err := s.trovaDiProprieta(userID, id)
	if err != nil {
		return err
	}
	// Removing the row also removes it from the owner's custom-foods list,
	// which is the created_by relation.
	return s.db.Delete(alimento).Error
}

// Verifica marks a food as verified. Admin-equivalent action; public foods
// only enter the shared catalog once verified.
func (s *AlimentoService) Verifica(id uint) (*models.Alimento, error) {
	var alimento models.Alimento
	if err := s.db.First(&alimento, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errore(ErrNotFound, "Alimento non trovato")
		}
		return nil, err
	}
	if err := s.db.Model(&alimento).Update("verificato", true).Error; err != nil {
		return nil, err
	}
	alimento.Verificato = true
	return &alimento, nil
}

func (s *AlimentoService) trovaDiProprieta(userID, id uint) (*models.Alimento, error) {
	var alimento models.Alimento
	if err := s.db.First(&alimento, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errore(ErrNotFound, "Alimento non trovato")
		}
		return nil, err
	}
	if alimento.CreatedBy == nil || *alimento.CreatedBy != userID {
		return nil, errore(ErrForbidden, "Non autorizzato a modificare questo alimento")
	}
	return &alimento, nil
}

// verificaNomeDuplicato enforces case-insensitive name uniqueness across the
// public catalog and the caller's own foods.
func (s *AlimentoService) verificaNomeDuplicato(nome string, userID uint, excludeID uint) error {
	var count int64
	err := s.db.Model(&models.Alimento{}).
		Where("LOWER(nome) = ? AND (is_publico = ? OR created_by = ?) AND id <> ?",
			strings.ToLower(strings.TrimSpace(nome)), true, userID, excludeID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return errore(ErrDuplicate, "Esiste già un alimento con questo nome")
	}
	return nil
}
