package storage

import (
	"context"

	"court_queue/internal/models"
)

// Gateway описывает внешнее табличное хранилище очереди и истории.
type Gateway interface {
	Load(ctx context.Context) ([]models.Participant, []models.HistoryEntry, error)
	Save(ctx context.Context, queue []models.Participant, history []models.HistoryEntry) error
}

// NopGateway ничего не хранит; нужен для локального запуска без базы.
type NopGateway struct{}

func (NopGateway) Load(context.Context) ([]models.Participant, []models.HistoryEntry, error) {
	return []models.Participant{}, []models.HistoryEntry{}, nil
}

func (NopGateway) Save(context.Context, []models.Participant, []models.HistoryEntry) error {
	return nil
}
