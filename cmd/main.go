package main

import (
	"go.uber.org/zap"

	"github.com/sim1zzo/vegan-nutrition-tracker/config"
	"github.com/sim1zzo/vegan-nutrition-tracker/routes"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("inizializzazione logger fallita: " + err.Error())
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configurazione non valida", zap.Error(err))
	}

	db, err := config.ConnectDB(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("connessione al database fallita", zap.Error(err))
	}

	if err := config.Migrate(db); err != nil {
		logger.Fatal("migrazione fallita", zap.Error(err))
	}

	if err := config.SeedAlimenti(db, logger); err != nil {
		logger.Fatal("seed del catalogo fallito", zap.Error(err))
	}

	r := routes.SetupRouter(db, cfg, logger)

	logger.Info("server in ascolto", zap.String("porta", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server terminato", zap.Error(err))
	}
}
