package storage

import (
	"context"
	"errors"
	"fmt"

	"court_queue/internal/config"
	"court_queue/internal/models"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func ConnectDatabase(cfg config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("подключение к базе данных: %w", err)
	}
	return db, nil
}

func ConnectSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("открытие sqlite %s: %w", path, err)
	}
	return db, nil
}

// Migrate создаёт таблицы очереди и истории.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.QueueRow{}, &models.HistoryRow{}); err != nil {
		return fmt.Errorf("миграция: %w", err)
	}
	return nil
}

func InitRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// SQLGateway хранит таблицы в postgres или sqlite через gorm.
type SQLGateway struct {
	db *gorm.DB
}

func NewSQLGateway(db *gorm.DB) *SQLGateway {
	return &SQLGateway{db: db}
}

func (g *SQLGateway) Load(ctx context.Context) ([]models.Participant, []models.HistoryEntry, error) {
	var queueRows []models.QueueRow
	if err := g.db.WithContext(ctx).Order("position ASC").Find(&queueRows).Error; err != nil {
		return nil, nil, fmt.Errorf("загрузка очереди: %w", err)
	}
	var historyRows []models.HistoryRow
	if err := g.db.WithContext(ctx).Order("id ASC").Find(&historyRows).Error; err != nil {
		return nil, nil, fmt.Errorf("загрузка истории: %w", err)
	}

	rows := make([][]string, 0, len(queueRows))
	for _, r := range queueRows {
		rows = append(rows, []string{"", r.Name, r.Paid})
	}
	hrows := make([][]string, 0, len(historyRows))
	for _, r := range historyRows {
		hrows = append(hrows, []string{r.Players, r.Timestamp})
	}
	return DecodeQueue(rows), DecodeHistory(hrows), nil
}

// Save перезаписывает обе таблицы в одной транзакции.
func (g *SQLGateway) Save(ctx context.Context, queue []models.Participant, history []models.HistoryEntry) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("1 = 1").Delete(&models.QueueRow{}).Error; err != nil {
			return fmt.Errorf("очистка очереди: %w", err)
		}
		if err := tx.Unscoped().Where("1 = 1").Delete(&models.HistoryRow{}).Error; err != nil {
			return fmt.Errorf("очистка истории: %w", err)
		}

		queueRows := make([]models.QueueRow, 0, len(queue))
		for i, p := range queue {
			queueRows = append(queueRows, models.QueueRow{Position: i + 1, Name: p.Name, Paid: paidCell(p.Paid)})
		}
		if len(queueRows) > 0 {
			if err := tx.Create(&queueRows).Error; err != nil {
				return fmt.Errorf("запись очереди: %w", err)
			}
		}

		historyRows := make([]models.HistoryRow, 0, len(history))
		for _, row := range EncodeHistory(history) {
			historyRows = append(historyRows, models.HistoryRow{Players: row[0], Timestamp: row[1]})
		}
		if len(historyRows) > 0 {
			if err := tx.Create(&historyRows).Error; err != nil {
				return fmt.Errorf("запись истории: %w", err)
			}
		}
		return nil
	})
}

// Open выбирает хранилище по STORE_BACKEND.
func Open(ctx context.Context, cfg *config.Config) (Gateway, error) {
	switch cfg.StoreBackend {
	case "postgres", "sqlite":
		var (
			db  *gorm.DB
			err error
		)
		if cfg.StoreBackend == "postgres" {
			db, err = ConnectDatabase(cfg.DB)
		} else {
			db, err = ConnectSQLite(cfg.SQLitePath)
		}
		if err != nil {
			return nil, err
		}
		if err := Migrate(db); err != nil {
			return nil, err
		}
		return NewSQLGateway(db), nil
	case "redis":
		client := InitRedis(cfg.Redis)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("подключение к redis: %w", err)
		}
		return NewRedisGateway(client, cfg.Redis.KeyPrefix), nil
	case "sheets":
		return NewSheetsGatewayFromFile(ctx, cfg.Sheets)
	case "none":
		return NopGateway{}, nil
	}
	return nil, errors.New("unknown store backend " + cfg.StoreBackend)
}
