package models

import "gorm.io/gorm"

// Alimento is a catalog entry: a nutrient profile per 100 g of product.
// Seed entries are public and verified; user-created entries start private
// and unverified.
type Alimento struct {
	gorm.Model
	Nome      string `gorm:"not null;index" json:"nome"`
	Categoria string `gorm:"not null;index" json:"categoria"`

	Nutrienti `gorm:"embedded"`

	Porzione   float64  `gorm:"default:100" json:"porzione"` // reference portion, grams
	Tags       []string `gorm:"serializer:json;type:text" json:"tags"`
	IsPublico  bool     `json:"isPublico"`
	Verificato bool     `json:"verificato"`
	CreatedBy  *uint    `gorm:"index" json:"createdBy,omitempty"`
}
