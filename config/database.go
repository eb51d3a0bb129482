package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sim1zzo/vegan-nutrition-tracker/models"
)

// ConnectDB opens the Postgres connection, retrying with exponential backoff
// so the server survives the database coming up after it.
func ConnectDB(dsn string, log *zap.Logger) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 1; i <= 10; i++ {
		// TranslateError turns driver unique-violations into
		// gorm.ErrDuplicatedKey, which the services map to ErrDuplicate.
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil && sqlDB.Ping() == nil {
				log.Info("database connected", zap.Int("attempt", i))
				return db, nil
			}
		}

		log.Warn("database connection failed", zap.Int("attempt", i), zap.Error(err))

		wait := time.Duration(1<<uint(i-1)) * time.Second
		if wait > 10*time.Second {
			wait = 10 * time.Second
		}
		time.Sleep(wait)
	}

	return nil, fmt.Errorf("connessione al database fallita dopo 10 tentativi: %w", err)
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Alimento{},
		&models.GiornataAlimentare{},
		&models.VoceAlimento{},
		&models.Integratore{},
		&models.Ricetta{},
		&models.RicettaAlimento{},
	)
}
