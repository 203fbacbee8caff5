package engine

import (
	"context"

	"court_queue/internal/models"
	"court_queue/internal/queue"

	"github.com/rs/zerolog"
)

// Engine единолично владеет queue.Store. Все команды, подключения и
// чтения состояния выполняются по очереди в горутине Run, поэтому Store без блокировок.
type Engine struct {
	store *queue.Store
	disp  Dispatcher
	saver Saver
	auth  Authenticator

	openMutations bool
	log           zerolog.Logger
	ops           chan func()
}

type Options struct {
	// OpenMutations отключает проверку capability у изменяющих команд.
	OpenMutations bool
	Logger        zerolog.Logger
	// Backlog: сколько операций может ждать исполнения.
	Backlog int
}

func New(store *queue.Store, disp Dispatcher, saver Saver, auth Authenticator, opts Options) *Engine {
	backlog := opts.Backlog
	if backlog <= 0 {
		backlog = 256
	}
	return &Engine{
		store:         store,
		disp:          disp,
		saver:         saver,
		auth:          auth,
		openMutations: opts.OpenMutations,
		log:           opts.Logger.With().Str("component", "engine").Logger(),
		ops:           make(chan func(), backlog),
	}
}

// Run исполняет операции до отмены ctx.
func (e *Engine) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case op := <-e.ops:
			op()
		}
	}
}

func (e *Engine) enqueue(ctx context.Context, op func()) error {
	select {
	case e.ops <- op:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Submit ставит команду клиента в очередь на исполнение.
func (e *Engine) Submit(ctx context.Context, cmd Command) error {
	return e.enqueue(ctx, func() { e.handle(cmd) })
}

// Connect регистрирует сессию и отправляет ей текущее состояние.
// Регистрация и снимок делаются одной операцией, поэтому новый клиент
// не пропустит и не получит раньше времени ни одного обновления.
func (e *Engine) Connect(ctx context.Context, s Session) error {
	return e.enqueue(ctx, func() {
		e.disp.Attach(s)
		e.disp.Reply(s, Event{Name: EventQueueUpdate, Data: e.store.Queue()})
		e.disp.Reply(s, Event{Name: EventPlayingUpdate, Data: e.store.CurrentlyPlaying()})
		e.disp.Reply(s, Event{Name: EventHistoryUpdate, Data: e.store.History()})
	})
}

// Disconnect снимает сессию с рассылки. Идёт через тот же цикл, что и Connect,
// поэтому не может обогнать регистрацию.
func (e *Engine) Disconnect(ctx context.Context, s Session) error {
	return e.enqueue(ctx, func() { e.disp.Detach(s) })
}

// Initialize подменяет очередь и историю данными из хранилища и рассылает их всем.
func (e *Engine) Initialize(ctx context.Context, q []models.Participant, h []models.HistoryEntry) error {
	return e.enqueue(ctx, func() {
		e.store.Initialize(q, h)
		e.log.Info().Int("queue", len(q)).Int("history", len(h)).Msg("state initialized from storage")
		e.broadcastQueue()
		e.broadcastHistory()
	})
}

// Snapshot возвращает копию состояния, снятую внутри цикла.
func (e *Engine) Snapshot(ctx context.Context) (queue.Snapshot, error) {
	result := make(chan queue.Snapshot, 1)
	if err := e.enqueue(ctx, func() { result <- e.store.Snapshot() }); err != nil {
		return queue.Snapshot{}, err
	}
	select {
	case snap := <-result:
		return snap, nil
	case <-ctx.Done():
		return queue.Snapshot{}, ctx.Err()
	}
}
