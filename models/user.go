package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

// FattoriAttivita maps activity level to its calorie multiplier. It is also
// the source of truth for valid livelloAttivita values.
var FattoriAttivita = map[string]float64{
	"sedentario": 1.2,
	"leggero":    1.375,
	"moderato":   1.55,
	"intenso":    1.725,
	"atleta":     1.9,
}

// Obiettivi holds the user's daily nutrient targets, recomputed whenever an
// input of the goal formula changes.
type Obiettivi struct {
	Proteine    float64 `json:"proteine"`
	Carboidrati float64 `json:"carboidrati"`
	Grassi      float64 `json:"grassi"`
	Fibre       float64 `json:"fibre"`
	Ferro       float64 `json:"ferro"`
	Calcio      float64 `json:"calcio"`
	VitB12      float64 `json:"vitB12"`
	VitB2       float64 `json:"vitB2"`
	VitD        float64 `json:"vitD"`
	Omega3      float64 `json:"omega3"`
	Iodio       float64 `json:"iodio"`
	Zinco       float64 `json:"zinco"`
	Calorie     float64 `json:"calorie"`
}

type User struct {
	gorm.Model
	Email           string    `gorm:"uniqueIndex;not null" json:"email"`
	Password        string    `gorm:"not null" json:"-"`
	Nome            string    `gorm:"not null" json:"nome"`
	Cognome         string    `json:"cognome"`
	Peso            float64   `json:"peso"`
	Altezza         float64   `json:"altezza"` // cm
	Eta             int       `json:"eta"`
	Sesso           string    `json:"sesso"` // "M" | "F" | ""
	LivelloAttivita string    `gorm:"default:moderato" json:"livelloAttivita"`
	Avatar          string    `json:"avatar"`
	UltimoAccesso   time.Time `json:"ultimoAccesso"`

	Obiettivi Obiettivi `gorm:"embedded;embeddedPrefix:ob_" json:"obiettivi"`

	AlimentiPersonalizzati []Alimento `gorm:"foreignKey:CreatedBy" json:"alimentiPersonalizzati,omitempty"`
	Ricette                []Ricetta  `gorm:"foreignKey:UserID" json:"ricette,omitempty"`
}

// CalcolaObiettivi derives the daily targets from the physical profile.
// Calories use Mifflin-St Jeor when age, height and sex are all known,
// otherwise a flat weight-based estimate. Micro targets are fixed RDA-style
// values for an adult on a plant-based diet.
func (u *User) CalcolaObiettivi() {
	fattore, ok := FattoriAttivita[u.LivelloAttivita]
	if !ok {
		fattore = FattoriAttivita["moderato"]
	}

	var calorie float64
	if u.Eta > 0 && u.Altezza > 0 && (u.Sesso == "M" || u.Sesso == "F") {
		bmr := 10*u.Peso + 6.25*u.Altezza - 5*float64(u.Eta)
		if u.Sesso == "M" {
			bmr += 5
		} else {
			bmr -= 161
		}
		calorie = bmr * fattore
	} else {
		calorie = u.Peso * 22 * fattore
	}

	arrotonda := func(v float64) float64 { return math.Round(v*10) / 10 }

	u.Obiettivi = Obiettivi{
		Proteine:    arrotonda(u.Peso * 0.9),
		Carboidrati: arrotonda(calorie * 0.55 / 4),
		Grassi:      arrotonda(calorie * 0.25 / 9),
		Fibre:       30,
		Ferro:       15,
		Calcio:      1000,
		VitB12:      3,
		VitB2:       1.4,
		VitD:        20,
		Omega3:      1.6,
		Iodio:       200,
		Zinco:       10,
		Calorie:     math.Round(calorie),
	}
}
