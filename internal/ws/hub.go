package ws

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"court_queue/internal/engine"

	"github.com/rs/zerolog"
)

// Hub хранит подключения наблюдателей и доставляет им события.
// Карта клиентов принадлежит горутине Run.
type Hub struct {
	clients map[string]*Client
	// Канал для регистрации нового клиента.
	register chan *Client
	// Канал для удаления клиента.
	unregister chan *Client
	// Канал для рассылки всем клиентам.
	broadcast chan []byte
	// Канал для ответа одному клиенту.
	direct chan directMessage

	count atomic.Int64
	done  chan struct{}
	log   zerolog.Logger
}

type directMessage struct {
	clientID string
	message  []byte
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		direct:     make(chan directMessage),
		done:       make(chan struct{}),
		log:        log.With().Str("component", "hub").Logger(),
	}
}

// Run запускает цикл обработки каналов хаба до отмены ctx.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for id, client := range h.clients {
			close(client.Send)
			delete(h.clients, id)
		}
		h.count.Store(0)
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.clients[client.ID()] = client
			h.count.Store(int64(len(h.clients)))
			h.log.Debug().Str("client", client.ID()).Int("clients", len(h.clients)).Msg("client registered")
		case client := <-h.unregister:
			if existing, ok := h.clients[client.ID()]; ok && existing == client {
				h.drop(client)
				h.log.Debug().Str("client", client.ID()).Int("clients", len(h.clients)).Msg("client unregistered")
			}
		case message := <-h.broadcast:
			for _, client := range h.clients {
				h.deliver(client, message)
			}
		case msg := <-h.direct:
			if client, ok := h.clients[msg.clientID]; ok {
				h.deliver(client, msg.message)
			}
		}
	}
}

// deliver не ждёт медленного клиента: если его буфер полон, клиент отключается.
func (h *Hub) deliver(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		h.log.Warn().Str("client", client.ID()).Msg("send buffer full, dropping client")
		h.drop(client)
	}
}

func (h *Hub) drop(client *Client) {
	close(client.Send)
	delete(h.clients, client.ID())
	h.count.Store(int64(len(h.clients)))
}

// Clients возвращает число подключённых наблюдателей.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}

// Attach регистрирует клиента. Вызывается из цикла engine.
func (h *Hub) Attach(s engine.Session) {
	client, ok := s.(*Client)
	if !ok {
		return
	}
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Detach удаляет клиента и закрывает его канал Send.
func (h *Hub) Detach(s engine.Session) {
	client, ok := s.(*Client)
	if !ok {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) Broadcast(ev engine.Event) {
	message, err := json.Marshal(ev)
	if err != nil {
		h.log.Error().Err(err).Str("event", ev.Name).Msg("encode broadcast")
		return
	}
	select {
	case h.broadcast <- message:
	case <-h.done:
	}
}

func (h *Hub) Reply(s engine.Session, ev engine.Event) {
	message, err := json.Marshal(ev)
	if err != nil {
		h.log.Error().Err(err).Str("event", ev.Name).Msg("encode reply")
		return
	}
	select {
	case h.direct <- directMessage{clientID: s.ID(), message: message}:
	case <-h.done:
	}
}
