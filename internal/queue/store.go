package queue

import (
	"time"

	"court_queue/internal/models"
)

// TimestampLayout повторяет формат, в котором история уже лежит во внешней таблице.
const TimestampLayout = "1/2/2006, 3:04:05 PM"

// Store хранит очередь, текущую пару на корте и историю игр.
// Store не синхронизирован: все вызовы должны идти из одной горутины (см. engine).
type Store struct {
	queue   []models.Participant
	playing []models.Participant
	history []models.HistoryEntry

	now           func() time.Time
	loc           *time.Location
	legacyArchive bool
	revision      uint64
	initialized   bool
}

type Option func(*Store)

// WithClock подменяет источник времени для меток в истории.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLocation задаёт часовой пояс меток в истории.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLegacyArchive включает старый порядок в PromoteTopPair: текущая пара
// сначала очищается, а потом архивируется, и в историю попадает пустой список имён.
func WithLegacyArchive(enabled bool) Option {
	return func(s *Store) { s.legacyArchive = enabled }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		queue:   []models.Participant{},
		playing: []models.Participant{},
		history: []models.HistoryEntry{},
		now:     time.Now,
		loc:     time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize полностью заменяет очередь и историю данными из хранилища.
func (s *Store) Initialize(queue []models.Participant, history []models.HistoryEntry) {
	s.queue = copyParticipants(queue)
	s.history = copyHistory(history)
	s.initialized = true
	s.revision++
}

func (s *Store) AddParticipant(name string) {
	s.queue = append(s.queue, models.Participant{Name: name, Paid: false})
	s.revision++
}

func (s *Store) Swap(pos1, pos2 int) error {
	if !s.inRange(pos1) || !s.inRange(pos2) {
		return ErrOutOfRange
	}
	s.queue[pos1], s.queue[pos2] = s.queue[pos2], s.queue[pos1]
	s.revision++
	return nil
}

// DeleteTopPair убирает до двух первых участников и возвращает, сколько убрано.
func (s *Store) DeleteTopPair() int {
	n := min(2, len(s.queue))
	if n == 0 {
		return 0
	}
	s.queue = append(s.queue[:0:0], s.queue[n:]...)
	s.revision++
	return n
}

func (s *Store) DeleteAt(pos int) error {
	if !s.inRange(pos) {
		return ErrOutOfRange
	}
	s.queue = append(s.queue[:pos:pos], s.queue[pos+1:]...)
	s.revision++
	return nil
}

func (s *Store) MarkPaid(pos int) error {
	if !s.inRange(pos) {
		return ErrOutOfRange
	}
	s.queue[pos].Paid = true
	s.revision++
	return nil
}

// PeekTopPair возвращает имена первых двух участников или пустой срез.
func (s *Store) PeekTopPair() []string {
	if len(s.queue) < 2 {
		return []string{}
	}
	return []string{s.queue[0].Name, s.queue[1].Name}
}

// PromoteTopPair переводит двух первых участников очереди на корт.
// Если корт был занят, уходящая пара записывается в историю.
// Пара проверяется до изменений, при ошибке состояние не меняется.
func (s *Store) PromoteTopPair() error {
	if len(s.queue) < 2 {
		return ErrNotEnoughPlayers
	}
	pair := copyParticipants(s.queue[:2])
	if err := checkPair(pair); err != nil {
		return err
	}
	s.queue = append(s.queue[:0:0], s.queue[2:]...)

	if len(s.playing) > 0 {
		outgoing := models.Names(s.playing)
		if s.legacyArchive {
			outgoing = []string{}
		}
		s.archive(outgoing)
	}
	s.playing = pair
	s.revision++
	return nil
}

// ClearCurrentlyPlaying освобождает корт. Возвращает false, если он и так свободен.
func (s *Store) ClearCurrentlyPlaying() bool {
	if len(s.playing) == 0 {
		return false
	}
	s.archive(models.Names(s.playing))
	s.playing = []models.Participant{}
	s.revision++
	return true
}

func (s *Store) Queue() []models.Participant {
	return copyParticipants(s.queue)
}

func (s *Store) CurrentlyPlaying() []models.Participant {
	return copyParticipants(s.playing)
}

func (s *Store) History() []models.HistoryEntry {
	return copyHistory(s.history)
}

// Revision растёт на каждой мутации; по нему сохранение понимает, что уже записано.
func (s *Store) Revision() uint64 {
	return s.revision
}

// Initialized сообщает, применялся ли Initialize.
func (s *Store) Initialized() bool {
	return s.initialized
}

func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Queue:            s.Queue(),
		CurrentlyPlaying: s.CurrentlyPlaying(),
		History:          s.History(),
		Revision:         s.revision,
		Initialized:      s.initialized,
	}
}

// Timestamp форматирует текущее время так же, как метки в истории.
func (s *Store) Timestamp() string {
	return s.now().In(s.loc).Format(TimestampLayout)
}

func (s *Store) archive(players []string) {
	s.history = append(s.history, models.HistoryEntry{
		Players:   players,
		Timestamp: s.Timestamp(),
	})
}

// checkPair: на корте не больше двух игроков.
func checkPair(pair []models.Participant) error {
	if len(pair) > 2 {
		return ErrPairOverflow
	}
	return nil
}

func (s *Store) inRange(pos int) bool {
	return pos >= 0 && pos < len(s.queue)
}
