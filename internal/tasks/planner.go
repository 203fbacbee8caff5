package tasks

import (
	"context"
	"fmt"
	"time"

	"court_queue/internal/queue"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type SnapshotSource interface {
	Snapshot(ctx context.Context) (queue.Snapshot, error)
}

// Checkpoint снимает текущее состояние и отдаёт его Saver.
// Так до хранилища доходят изменения, которые сами сохранение не вызывают
// (добавление, перестановка, оплата), и повторяются неудавшиеся записи.
// Пока состояние не загружено, снимок не сохраняется: иначе пустая очередь
// затёрла бы данные в хранилище.
func Checkpoint(src SnapshotSource, saver *Saver, timeout time.Duration, log zerolog.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		snap, err := src.Snapshot(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("checkpoint snapshot failed")
			return
		}
		if !snap.Initialized {
			log.Debug().Msg("checkpoint skipped, state not loaded yet")
			return
		}
		saver.Request(snap)
	}
}

// InitScheduler запускает cron-задачу контрольного сохранения.
func InitScheduler(spec string, job func(), log zerolog.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	if _, err := c.AddFunc(spec, job); err != nil {
		return nil, fmt.Errorf("cron-задача checkpoint %q: %w", spec, err)
	}

	c.Start()
	log.Info().Str("schedule", spec).Msg("cron scheduler started")
	return c, nil
}
