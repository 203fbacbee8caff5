package tasks

import (
	"context"
	"sync"
	"time"

	"court_queue/internal/queue"
	"court_queue/internal/storage"

	"github.com/rs/zerolog"
)

// Saver пишет снимки в хранилище в отдельной горутине.
// Одновременно выполняется не больше одного сохранения; запросы, пришедшие
// во время записи, схлопываются в один, сохраняется самый свежий снимок.
type Saver struct {
	gw      storage.Gateway
	timeout time.Duration
	log     zerolog.Logger

	mu       sync.Mutex
	pending  *queue.Snapshot
	savedRev uint64
	saved    bool

	// saveMu держится на время gw.Save.
	saveMu sync.Mutex
	kick   chan struct{}
}

func NewSaver(gw storage.Gateway, timeout time.Duration, log zerolog.Logger) *Saver {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Saver{
		gw:      gw,
		timeout: timeout,
		log:     log.With().Str("component", "saver").Logger(),
		kick:    make(chan struct{}, 1),
	}
}

// Request запоминает снимок и будит воркер. Никогда не блокирует.
func (s *Saver) Request(snap queue.Snapshot) {
	s.mu.Lock()
	s.pending = &snap
	s.mu.Unlock()

	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// Run обрабатывает запросы до отмены ctx.
func (s *Saver) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.kick:
			for {
				snap, ok := s.takePending()
				if !ok {
					break
				}
				s.save(ctx, snap)
			}
		}
	}
}

// Flush синхронно сохраняет snap; используется при остановке сервиса.
func (s *Saver) Flush(ctx context.Context, snap queue.Snapshot) error {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
	return s.save(ctx, snap)
}

// SavedRevision возвращает ревизию последнего успешно записанного снимка.
func (s *Saver) SavedRevision() (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savedRev, s.saved
}

func (s *Saver) takePending() (queue.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return queue.Snapshot{}, false
	}
	snap := *s.pending
	s.pending = nil
	return snap, true
}

func (s *Saver) save(ctx context.Context, snap queue.Snapshot) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if rev, ok := s.SavedRevision(); ok && snap.Revision <= rev {
		return nil
	}

	saveCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	if err := s.gw.Save(saveCtx, snap.Queue, snap.History); err != nil {
		s.log.Warn().Err(err).Uint64("revision", snap.Revision).Msg("save failed, in-memory state kept")
		return err
	}

	s.mu.Lock()
	s.savedRev, s.saved = snap.Revision, true
	s.mu.Unlock()
	s.log.Debug().
		Uint64("revision", snap.Revision).
		Int("queue", len(snap.Queue)).
		Int("history", len(snap.History)).
		Dur("took", time.Since(started)).
		Msg("state saved")
	return nil
}
