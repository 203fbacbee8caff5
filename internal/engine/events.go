package engine

import (
	"encoding/json"
	"time"

	"court_queue/internal/queue"
)

// Входящие команды.
const (
	CmdAdminLogin             = "adminLogin"
	CmdAdminLogout            = "adminLogout"
	CmdAddPlayer              = "addPlayer"
	CmdSwapPlayers            = "swapPlayers"
	CmdDeleteTopPair          = "deleteTopPair"
	CmdDeletePlayerByPosition = "deletePlayerByPosition"
	CmdMarkPlayerPaid         = "markPlayerPaid"
	CmdDisplayCurrentPair     = "displayCurrentPair"
	CmdNextPairPlaying        = "nextPairPlaying"
	CmdDeleteCurrentlyPlaying = "deleteCurrentlyPlaying"
)

// Исходящие события.
const (
	EventQueueUpdate   = "queueUpdate"
	EventPlayingUpdate = "playingUpdate"
	EventHistoryUpdate = "historyUpdate"

	EventLoginSuccess       = "loginSuccess"
	EventLoginFailed        = "loginFailed"
	EventLogoutSuccess      = "logoutSuccess"
	EventDisplayCurrentPair = "displayCurrentPair"
	EventErrorMessage       = "errorMessage"
)

const (
	MsgNotEnoughPlayers = "Not enough players in the queue."
	MsgAdminRequired    = "Admin login required."
)

// Event уходит наблюдателям как {"event": ..., "data": ...}.
type Event struct {
	Name string      `json:"event"`
	Data interface{} `json:"data"`
}

// Command приходит от клиента вместе с его сессией.
type Command struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data,omitempty"`
	From Session         `json:"-"`
}

type swapPayload struct {
	Pos1 int `json:"pos1"`
	Pos2 int `json:"pos2"`
}

type loginPayload struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// Session описывает одно подключение наблюдателя. Capability меняется только из цикла Engine.
type Session interface {
	ID() string
	Capability() string
	SetCapability(token string)
}

// Dispatcher доставляет события: всем подключённым или только одной сессии.
type Dispatcher interface {
	Attach(s Session)
	Detach(s Session)
	Broadcast(ev Event)
	Reply(s Session, ev Event)
}

// Saver принимает снимок на сохранение и не блокирует вызывающего.
type Saver interface {
	Request(snap queue.Snapshot)
}

type Authenticator interface {
	Login(password, sessionID string) (string, time.Time, error)
	Verify(token, sessionID string) error
}
