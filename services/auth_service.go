package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sim1zzo/vegan-nutrition-tracker/models"
	"github.com/sim1zzo/vegan-nutrition-tracker/utils"
)

type AuthService struct {
	db     *gorm.DB
	secret []byte
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{db: db, secret: []byte(jwtSecret)}
}

type RegistrazioneInput struct {
	Nome            string  `json:"nome"`
	Cognome         string  `json:"cognome"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	Peso            float64 `json:"peso"`
	Altezza         float64 `json:"altezza"`
	Eta             int     `json:"eta"`
	Sesso           string  `json:"sesso"`
	LivelloAttivita string  `json:"livelloAttivita"`
}

// ProfiloInput patches the profile. Pointer fields distinguish "not sent"
// from zero values.
type ProfiloInput struct {
	Nome            *string  `json:"nome"`
	Cognome         *string  `json:"cognome"`
	Peso            *float64 `json:"peso"`
	Altezza         *float64 `json:"altezza"`
	Eta             *int     `json:"eta"`
	Sesso           *string  `json:"sesso"`
	LivelloAttivita *string  `json:"livelloAttivita"`
	Avatar          *string  `json:"avatar"`
}

func (s *AuthService) Register(input RegistrazioneInput) (*models.User, string, error) {
	if input.Nome == "" || input.Email == "" || input.Password == "" || input.Peso <= 0 {
		return nil, "", errore(ErrValidation, "Nome, email, password e peso sono obbligatori")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var esistente models.User
	if err := s.db.Where("email = ?", email).First(&esistente).Error; err == nil {
		return nil, "", errore(ErrDuplicate, "Email già registrata")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	livello := input.LivelloAttivita
	if livello == "" {
		livello = "moderato"
	}
	if _, ok := models.FattoriAttivita[livello]; !ok {
		return nil, "", errore(ErrValidation, "Livello di attività non valido")
	}
	if input.Sesso != "" && input.Sesso != "M" && input.Sesso != "F" {
		return nil, "", errore(ErrValidation, "Sesso deve essere M o F")
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		Email:           email,
		Password:        hash,
		Nome:            input.Nome,
		Cognome:         input.Cognome,
		Peso:            input.Peso,
		Altezza:         input.Altezza,
		Eta:             input.Eta,
		Sesso:           input.Sesso,
		LivelloAttivita: livello,
		UltimoAccesso:   time.Now(),
	}
	user.CalcolaObiettivi()

	if err := s.db.Create(&user).Error; err != nil {
		return nil, "", seDuplicato(err, "Email già registrata")
	}

	token, err := utils.GenerateJWT(user.ID, s.secret)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", errore(ErrValidation, "Email e password sono obbligatori")
	}

	var user models.User
	err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil || !utils.CheckPasswordHash(password, user.Password) {
		// Same message for unknown email and wrong password, no user data leaked.
		return nil, "", errore(ErrUnauthorized, "Credenziali non valide")
	}

	user.UltimoAccesso = time.Now()
	if err := s.db.Save(&user).Error; err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateJWT(user.ID, s.secret)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) GetProfile(userID uint) (*models.User, error) {
	var user models.User
	err := s.db.Preload("AlimentiPersonalizzati").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errore(ErrNotFound, "Utente non trovato")
	}
	return &user, err
}

func (s *AuthService) UpdateProfile(userID uint, input ProfiloInput) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errore(ErrNotFound, "Utente non trovato")
		}
		return nil, err
	}

	if input.LivelloAttivita != nil {
		if _, ok := models.FattoriAttivita[*input.LivelloAttivita]; !ok {
			return nil, errore(ErrValidation, "Livello di attività non valido")
		}
	}
	if input.Sesso != nil && *input.Sesso != "" && *input.Sesso != "M" && *input.Sesso != "F" {
		return nil, errore(ErrValidation, "Sesso deve essere M o F")
	}
	if input.Peso != nil && *input.Peso <= 0 {
		return nil, errore(ErrValidation, "Il peso deve essere positivo")
	}

	if input.Nome != nil {
		user.Nome = *input.Nome
	}
	if input.Cognome != nil {
		user.Cognome = *input.Cognome
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}

	ricalcola := false
	if input.Peso != nil {
		user.Peso = *input.Peso
		ricalcola = true
	}
	if input.Altezza != nil {
		user.Altezza = *input.Altezza
		ricalcola = true
	}
	if input.Eta != nil {
		user.Eta = *input.Eta
		ricalcola = true
	}
	if input.Sesso != nil {
		user.Sesso = *input.Sesso
		ricalcola = true
	}
	if input.LivelloAttivita != nil {
		user.LivelloAttivita = *input.LivelloAttivita
		ricalcola = true
	}

	if ricalcola {
		user.CalcolaObiettivi()
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword requires re-submission of the current password.
func (s *AuthService) ChangePassword(userID uint, corrente, nuova string) error {
	if corrente == "" || nuova == "" {
		return errore(ErrValidation, "Password corrente e nuova password sono obbligatorie")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errore(ErrNotFound, "Utente non trovato")
		}
		return err
	}

	if !utils.CheckPasswordHash(corrente, user.Password) {
		return errore(ErrUnauthorized, "Password corrente non valida")
	}

	hash, err := utils.HashPassword(nuova)
	if err != nil {
		return err
	}
	return s.db.Model(&user).Update("password", hash).Error
}

// DeleteAccount verifies the password, then removes the user and everything
// it owns: daily logs with their entries, recipes, private foods.
func (s *AuthService) DeleteAccount(userID uint, password string) error {
	if password == "" {
		return errore(ErrValidation, "Password richiesta per eliminare l'account")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errore(ErrNotFound, "Utente non trovato")
		}
		return err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return errore(ErrUnauthorized, "Password non valida")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var giornataIDs []uint
		if err := tx.Model(&models.GiornataAlimentare{}).
			Where("user_id = ?", userID).
			Pluck("id", &giornataIDs).Error; err != nil {
			return err
		}
		if len(giornataIDs) > 0 {
			if err := tx.Where("giornata_id IN ?", giornataIDs).Delete(&models.VoceAlimento{}).Error; err != nil {
				return err
			}
			if err := tx.Where("giornata_id IN ?", giornataIDs).Delete(&models.Integratore{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.GiornataAlimentare{}).Error; err != nil {
			return err
		}

		var ricettaIDs []uint
		if err := tx.Model(&models.Ricetta{}).
			Where("user_id = ?", userID).
			Pluck("id", &ricettaIDs).Error; err != nil {
			return err
		}
		if len(ricettaIDs) > 0 {
			if err := tx.Where("ricetta_id IN ?", ricettaIDs).Delete(&models.RicettaAlimento{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Ricetta{}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("created_by = ?", userID).Delete(&models.Alimento{}).Error; err != nil {
			return err
		}

		return tx.Unscoped().Delete(&user).Error
	})
}
