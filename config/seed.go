package config

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sim1zzo/vegan-nutrition-tracker/models"
)

// alimentiBase is the starting catalog: public, verified entries with values
// per 100 g of cooked product where relevant.
var alimentiBase = []models.Alimento{
	{
		Nome: "Lenticchie rosse", Categoria: "legumi",
		Nutrienti: models.Nutrienti{Proteine: 9, Carboidrati: 20, Grassi: 0.4, Fibre: 7.9, Ferro: 3.3, Calcio: 19, VitB2: 0.07, Omega3: 0.04, Zinco: 1.3, Calorie: 116},
		Porzione:  80, Tags: []string{"proteine", "ferro"}, IsPublico: true, Verificato: true,
	},
	{
		Nome: "Ceci", Categoria: "legumi",
		Nutrienti: models.Nutrienti{Proteine: 8.9, Carboidrati: 27.4, Grassi: 2.6, Fibre: 7.6, Ferro: 2.9, Calcio: 49, VitB2: 0.06, Omega3: 0.04, Zinco: 1.5, Calorie: 164},
		Porzione:  80, Tags: []string{"proteine"}, IsPublico: true, Verificato: true,
	},
	{
		Nome: "Tofu al naturale", Categoria: "legumi",
		Nutrienti: models.Nutrienti{Proteine: 12, Carboidrati: 2, Grassi: 7, Fibre: 1, Ferro: 2.7, Calcio: 350, VitB2: 0.05, Omega3: 0.4, Zinco: 0.8, Calorie: 120},
		Porzione:  100, Tags: []string{"proteine", "calcio", "soia"}, IsPublico: true, Verificato: true,
	},
	{
		Nome: "Pasta integrale", Categoria: "cereali",
		Nutrienti: models.Nutrienti{Proteine: 4.5, Carboidrati: 26, Grassi: 0.9, Fibre: 4.5, Ferro: 1.3, Calcio: 11, VitB2: 0.05, Zinco: 0.8, Calorie: 131},
		Porzione:  80, Tags: []string{"fibre"}, IsPublico: true, Verificato: true,
	},
	{
		Nome: "Riso integrale", Categoria: "cereali",
		Nutrienti: models.Nutrienti{Proteine: 2.6, Carboidrati: 23, Grassi: 0.9, Fibre: 1.8, Ferro: 0.4, Calcio: 10, VitB2: 0.02, Zinco: 0.6, Calorie: 111},
		Porzione:  80, Tags: []string{}, IsPublico: true, Verificato: true,
	},
	{
		Nome: "Fiocchi di avena", Categoria: "cereali",
		Nutrienti: models.Nutrienti{Proteine: 13.5, Carboidrati: 58.7, Grassi: 7, Fibre: 10.1, Ferro: 4.2, Calcio: 52, VitB2: 0.14, Omega3: 0.1, Zinco: 3.6, Calorie: 379},
		Porzione:  40, Tags: []string{"colazione", "fibre"}, IsPublico: true, Verificato: true,
	},
	{
		Nome: "Spinaci", Categoria: "verdura",
		Nutrienti: models.Nutrienti{Proteine: 2.9, Carboidrati: 3.6, Grassi: 0.4, Fibre: 2.2, Ferro: 2.7, Calcio: 99, VitB2: 0.19, Omega3: 0.14, Iodio: 12, Zinco: 0.5, Calorie: 23},
		Porzione:  100, Tags: []string{"ferro"}, IsPublico: true, Verificato: true,
	},
	{
		Nome: "Semi di lino", Categoria: "frutta secca",
		Nutrienti: models.Nutrienti{Proteine: 18.3, Carboidrati: 28.9, Grassi: 42.2, Fibre: 27.3, Ferro: 5.7, Calcio: 255, VitB2: 0.16, Omega3: 22.8, Zinco: 4.3, Calorie: 534},
		Porzione:  10, Tags: []string{"omega3"}, IsPublico: true, Verificato: true,
	},
	{
		Nome: "Mandorle", Categoria: "frutta secca",
		Nutrienti: models.Nutrienti{Proteine: 21.2, Carboidrati: 21.6, Grassi: 49.9, Fibre: 12.5, Ferro: 3.7, Calcio: 269, VitB2: 1.14, Zinco: 3.1, Calorie: 579},
		Porzione:  30, Tags: []string{"calcio"}, IsPublico: true, Verificato: true,
	},
	{
		Nome: "Latte di soia arricchito", Categoria: "bevande",
		Nutrienti: models.Nutrienti{Proteine: 3.3, Carboidrati: 2.5, Grassi: 1.8, Fibre: 0.5, Ferro: 0.4, Calcio: 120, VitB12: 0.38, VitB2: 0.21, VitD: 0.75, Zinco: 0.3, Calorie: 39},
		Porzione:  200, Tags: []string{"colazione", "B12", "soia"}, IsPublico: true, Verificato: true,
	},
	{
		Nome: "Alga nori", Categoria: "altro",
		Nutrienti: models.Nutrienti{Proteine: 5.8, Carboidrati: 5.1, Grassi: 0.3, Fibre: 0.3, Ferro: 1.8, Calcio: 70, VitB12: 0.12, VitB2: 0.45, Iodio: 2320, Zinco: 1, Calorie: 35},
		Porzione:  3, Tags: []string{"iodio"}, IsPublico: true, Verificato: true,
	},
	{
		Nome: "Olio extravergine di oliva", Categoria: "condimenti",
		Nutrienti: models.Nutrienti{Grassi: 100, Omega3: 0.76, Calorie: 884},
		Porzione:  10, Tags: []string{}, IsPublico: true, Verificato: true,
	},
}

// SeedAlimenti loads the base catalog the first time the application starts
// against an empty database.
func SeedAlimenti(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&models.Alimento{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if err := db.Create(&alimentiBase).Error; err != nil {
		return err
	}
	log.Info("catalogo alimenti inizializzato", zap.Int("alimenti", len(alimentiBase)))
	return nil
}
