package models

import "gorm.io/gorm"

// Ricetta is a reusable, named list of food entries a user can append to a
// meal slot in one shot. Name is unique per user, case-insensitive.
type Ricetta struct {
	gorm.Model
	UserID   uint              `gorm:"index;not null" json:"-"`
	Nome     string            `gorm:"not null" json:"nome"`
	Alimenti []RicettaAlimento `gorm:"foreignKey:RicettaID" json:"alimenti"`
}

// RicettaAlimento has the same shape as a meal-slot entry: name, quantity
// and the absolute nutrient snapshot for that quantity.
type RicettaAlimento struct {
	ID        uint `gorm:"primarykey" json:"-"`
	RicettaID uint `gorm:"index;not null" json:"-"`
	Posizione int  `gorm:"not null" json:"-"`

	Nome     string  `json:"nome"`
	Quantita float64 `json:"quantita"`

	Nutrienti `gorm:"embedded"`
}
