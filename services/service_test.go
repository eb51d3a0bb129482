package services

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sim1zzo/vegan-nutrition-tracker/config"
	"github.com/sim1zzo/vegan-nutrition-tracker/models"
)

// setupDB opens the test database named by TEST_DATABASE_URL, migrates the
// schema and empties every table. Tests are skipped when the variable is
// not set.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL non impostato, salto i test su database")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	// Child tables first.
	for _, tabella := range []string{
		"voce_alimentos", "integratores", "giornata_alimentares",
		"ricetta_alimentos", "ricettas", "alimentos", "users",
	} {
		require.NoError(t, db.Exec("DELETE FROM "+tabella).Error)
	}
	return db
}

func mustParse(t *testing.T, data string) time.Time {
	t.Helper()
	giorno, err := ParseData(data)
	require.NoError(t, err)
	return giorno
}

func creaUtente(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user, _, err := NewAuthService(db, "segreto-di-test").Register(RegistrazioneInput{
		Nome:     "Test",
		Email:    email,
		Password: "password123",
		Peso:     70,
	})
	require.NoError(t, err)
	return user
}

func creaAlimentoPubblico(t *testing.T, db *gorm.DB, nome, categoria string, n models.Nutrienti) *models.Alimento {
	t.Helper()
	alimento := models.Alimento{
		Nome:       nome,
		Categoria:  categoria,
		Nutrienti:  n,
		Porzione:   100,
		Tags:       []string{},
		IsPublico:  true,
		Verificato: true,
	}
	require.NoError(t, db.Create(&alimento).Error)
	return &alimento
}
