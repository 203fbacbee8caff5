package handlers

import (
	"context"
	"time"

	"court_queue/internal/queue"
)

// StateSource отдаёт согласованный снимок состояния.
type StateSource interface {
	Snapshot(ctx context.Context) (queue.Snapshot, error)
}

// SaveRequester принимает снимок на сохранение.
type SaveRequester interface {
	Request(snap queue.Snapshot)
}

// Credentials выдаёт токен администратора.
type Credentials interface {
	Login(password, sessionID string) (string, time.Time, error)
}

// ClientCounter сообщает, сколько WebSocket-клиентов подключено.
type ClientCounter interface {
	Clients() int
}

type Handler struct {
	state   StateSource
	saver   SaveRequester
	creds   Credentials
	clients ClientCounter
	timeout time.Duration
}

func New(state StateSource, saver SaveRequester, creds Credentials, clients ClientCounter) *Handler {
	return &Handler{
		state:   state,
		saver:   saver,
		creds:   creds,
		clients: clients,
		timeout: 5 * time.Second,
	}
}
