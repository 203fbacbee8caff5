package main

import (
	"court_queue/internal/config"
	"court_queue/internal/logger"
	"court_queue/internal/storage"

	"gorm.io/gorm"
)

// Создаёт таблицы queue_rows и history_rows для SQL-хранилищ.
func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", true)
		bootLog.Fatal().Err(err).Msg("Ошибка конфигурации")
	}
	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	var db *gorm.DB
	switch cfg.StoreBackend {
	case "postgres":
		db, err = storage.ConnectDatabase(cfg.DB)
	case "sqlite":
		db, err = storage.ConnectSQLite(cfg.SQLitePath)
	default:
		log.Info().Str("backend", cfg.StoreBackend).Msg("миграция не требуется")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Ошибка подключения к базе")
	}

	if err := storage.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Ошибка при миграции...")
	}
	log.Info().Str("backend", cfg.StoreBackend).Msg("миграция выполнена")
}
