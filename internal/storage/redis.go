package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"court_queue/internal/models"

	"github.com/go-redis/redis/v8"
)

// RedisGateway хранит каждую таблицу как список, по строке в JSON на элемент.
type RedisGateway struct {
	client     *redis.Client
	queueKey   string
	historyKey string
}

func NewRedisGateway(client *redis.Client, prefix string) *RedisGateway {
	return &RedisGateway{
		client:     client,
		queueKey:   prefix + ":queue",
		historyKey: prefix + ":history",
	}
}

func (g *RedisGateway) Load(ctx context.Context) ([]models.Participant, []models.HistoryEntry, error) {
	queueRows, err := g.readRows(ctx, g.queueKey)
	if err != nil {
		return nil, nil, err
	}
	historyRows, err := g.readRows(ctx, g.historyKey)
	if err != nil {
		return nil, nil, err
	}
	return DecodeQueue(queueRows), DecodeHistory(historyRows), nil
}

func (g *RedisGateway) Save(ctx context.Context, queue []models.Participant, history []models.HistoryEntry) error {
	queueVals, err := encodeRows(EncodeQueue(queue))
	if err != nil {
		return err
	}
	historyVals, err := encodeRows(EncodeHistory(history))
	if err != nil {
		return err
	}

	_, err = g.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, g.queueKey, g.historyKey)
		if len(queueVals) > 0 {
			pipe.RPush(ctx, g.queueKey, queueVals...)
		}
		if len(historyVals) > 0 {
			pipe.RPush(ctx, g.historyKey, historyVals...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("запись в redis: %w", err)
	}
	return nil
}

func (g *RedisGateway) readRows(ctx context.Context, key string) ([][]string, error) {
	raw, err := g.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("чтение %s: %w", key, err)
	}
	rows := make([][]string, 0, len(raw))
	for _, item := range raw {
		var row []string
		if err := json.Unmarshal([]byte(item), &row); err != nil {
			return nil, fmt.Errorf("разбор строки %s: %w", key, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func encodeRows(rows [][]string) ([]interface{}, error) {
	vals := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		b, err := json.Marshal(row)
		if err != nil {
			return nil, err
		}
		vals = append(vals, string(b))
	}
	return vals, nil
}
