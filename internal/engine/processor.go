package engine

import (
	"encoding/json"
	"errors"

	"court_queue/internal/models"
	"court_queue/internal/queue"
)

// handle применяет одну команду к Store и рассылает результат.
// Вызывается только из горутины Run.
func (e *Engine) handle(cmd Command) {
	log := e.log.With().Str("cmd", cmd.Name).Str("session", cmd.From.ID()).Logger()
	log.Debug().Msg("command received")

	switch cmd.Name {
	case CmdAdminLogin:
		var password string
		if !e.decode(cmd, &password) {
			return
		}
		e.login(cmd.From, password)

	case CmdAdminLogout:
		cmd.From.SetCapability("")
		e.disp.Reply(cmd.From, Event{Name: EventLogoutSuccess})

	case CmdAddPlayer:
		var name string
		if !e.authorized(cmd) || !e.decode(cmd, &name) {
			return
		}
		e.store.AddParticipant(name)
		e.broadcastQueue()

	case CmdSwapPlayers:
		var p swapPayload
		if !e.authorized(cmd) || !e.decode(cmd, &p) {
			return
		}
		if err := e.store.Swap(p.Pos1, p.Pos2); err != nil {
			log.Debug().Err(err).Int("pos1", p.Pos1).Int("pos2", p.Pos2).Msg("swap ignored")
			return
		}
		e.broadcastQueue()

	case CmdDeleteTopPair:
		if !e.authorized(cmd) {
			return
		}
		if e.store.DeleteTopPair() > 0 {
			e.broadcastQueue()
		}

	case CmdDeletePlayerByPosition:
		var pos int
		if !e.authorized(cmd) || !e.decode(cmd, &pos) {
			return
		}
		if err := e.store.DeleteAt(pos); err != nil {
			log.Debug().Err(err).Int("pos", pos).Msg("delete ignored")
			return
		}
		e.broadcastQueue()

	case CmdMarkPlayerPaid:
		var pos int
		if !e.authorized(cmd) || !e.decode(cmd, &pos) {
			return
		}
		if err := e.store.MarkPaid(pos); err != nil {
			log.Debug().Err(err).Int("pos", pos).Msg("mark paid ignored")
			return
		}
		e.broadcastQueue()

	case CmdDisplayCurrentPair:
		e.disp.Reply(cmd.From, Event{Name: EventDisplayCurrentPair, Data: e.store.PeekTopPair()})

	case CmdNextPairPlaying:
		if !e.authorized(cmd) {
			return
		}
		if err := e.store.PromoteTopPair(); err != nil {
			if !errors.Is(err, queue.ErrNotEnoughPlayers) {
				log.Error().Err(err).Msg("promote failed")
			}
			e.replyError(cmd.From, MsgNotEnoughPlayers)
			return
		}
		log.Info().Strs("players", models.Names(e.store.CurrentlyPlaying())).Msg("next pair on court")
		e.broadcastQueue()
		e.broadcastPlaying()
		e.broadcastHistory()
		e.persist()

	case CmdDeleteCurrentlyPlaying:
		if !e.authorized(cmd) {
			return
		}
		if !e.store.ClearCurrentlyPlaying() {
			return
		}
		e.broadcastPlaying()
		e.broadcastHistory()
		e.persist()

	default:
		e.replyError(cmd.From, "Unknown command "+cmd.Name+".")
	}
}

func (e *Engine) login(s Session, password string) {
	token, expires, err := e.auth.Login(password, s.ID())
	if err != nil {
		e.log.Info().Str("session", s.ID()).Msg("admin login failed")
		e.disp.Reply(s, Event{Name: EventLoginFailed})
		return
	}
	s.SetCapability(token)
	e.log.Info().Str("session", s.ID()).Time("expires_at", expires).Msg("admin logged in")
	e.disp.Reply(s, Event{Name: EventLoginSuccess, Data: loginPayload{ExpiresAt: expires}})
}

// authorized проверяет capability сессии у изменяющей команды.
func (e *Engine) authorized(cmd Command) bool {
	if e.openMutations {
		return true
	}
	if err := e.auth.Verify(cmd.From.Capability(), cmd.From.ID()); err != nil {
		e.replyError(cmd.From, MsgAdminRequired)
		return false
	}
	return true
}

func (e *Engine) decode(cmd Command, v interface{}) bool {
	if err := json.Unmarshal(cmd.Data, v); err != nil {
		e.log.Debug().Err(err).Str("cmd", cmd.Name).Msg("bad payload")
		e.replyError(cmd.From, "Invalid payload for "+cmd.Name+".")
		return false
	}
	return true
}

func (e *Engine) replyError(s Session, msg string) {
	e.disp.Reply(s, Event{Name: EventErrorMessage, Data: msg})
}

func (e *Engine) broadcastQueue() {
	e.disp.Broadcast(Event{Name: EventQueueUpdate, Data: e.store.Queue()})
}

func (e *Engine) broadcastPlaying() {
	e.disp.Broadcast(Event{Name: EventPlayingUpdate, Data: e.store.CurrentlyPlaying()})
}

func (e *Engine) broadcastHistory() {
	e.disp.Broadcast(Event{Name: EventHistoryUpdate, Data: e.store.History()})
}

// persist отдаёт снимок на сохранение; ошибки сохранения сюда не возвращаются.
func (e *Engine) persist() {
	e.saver.Request(e.store.Snapshot())
}
