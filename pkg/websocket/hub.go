package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Hub fans deck messages out to every connected client.
// All client bookkeeping happens on the Run goroutine.
type Hub struct {
	register   chan registration
	unregister chan *Client
	broadcast  chan Message
	count      chan chan int

	done     chan struct{}
	stopOnce sync.Once

	clients map[*Client]bool
	logger  *zap.Logger
}

type registration struct {
	client   *Client
	greeting func() Message
}

// Message is the envelope written to clients.
type Message struct {
	Type      string `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp string `json:"timestamp"`
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		register:   make(chan registration),
		unregister: make(chan *Client),
		broadcast:  make(chan Message, 256),
		count:      make(chan chan int),
		done:       make(chan struct{}),
		clients:    map[*Client]bool{},
		logger:     logger,
	}
}

// Run processes hub events until Stop is called. Remaining clients are
// disconnected on exit.
func (h *Hub) Run() {
	defer func() {
		for c := range h.clients {
			h.removeClient(c)
		}
	}()
	for {
		select {
		case <-h.done:
			return
		case r := <-h.register:
			h.admit(r)
		case c := <-h.unregister:
			h.removeClient(c)
		case m := <-h.broadcast:
			h.send(m)
		case reply := <-h.count:
			reply <- len(h.clients)
		}
	}
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Done is closed once Stop has been called.
func (h *Hub) Done() <-chan struct{} { return h.done }

func (h *Hub) Register(c *Client) { h.RegisterWithGreeting(c, "", nil) }

// RegisterWithGreeting registers c and queues typ/payload() as its first
// message. payload runs on the hub goroutine when c is admitted, so every
// broadcast queued after it reaches c later than the greeting.
func (h *Hub) RegisterWithGreeting(c *Client, typ string, payload func() any) {
	r := registration{client: c}
	if payload != nil {
		r.greeting = func() Message { return newMessage(typ, payload()) }
	}
	select {
	case h.register <- r:
	case <-h.done:
		c.closeSend()
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues a message for every client. It never blocks: when the
// queue is full the message is dropped and logged.
func (h *Hub) Broadcast(typ string, payload any) {
	m := newMessage(typ, payload)
	select {
	case <-h.done:
	case h.broadcast <- m:
	default:
		h.logger.Warn("ws broadcast queue full; dropping message", zap.String("type", typ))
	}
}

// ClientCount reports the number of registered clients, or 0 once stopped.
func (h *Hub) ClientCount() int {
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
		return <-reply
	case <-h.done:
		return 0
	}
}

func newMessage(typ string, payload any) Message {
	return Message{Type: typ, Payload: payload, Timestamp: time.Now().UTC().Format(time.RFC3339Nano)}
}

// admit adds r.client, writing its greeting first. Send is still empty here
// so the greeting never blocks.
func (h *Hub) admit(r registration) {
	if r.greeting != nil {
		m := r.greeting()
		data, err := json.Marshal(m)
		if err != nil {
			h.logger.Error("ws greeting marshal error", zap.String("type", m.Type), zap.Error(err))
			r.client.closeSend()
			return
		}
		select {
		case r.client.Send <- data:
		default:
		}
	}
	h.clients[r.client] = true
}

func (h *Hub) removeClient(c *Client) {
	if c == nil {
		return
	}
	delete(h.clients, c)
	c.closeSend()
}

func (h *Hub) send(m Message) {
	if len(h.clients) == 0 {
		return
	}
	data, err := json.Marshal(m)
	if err != nil {
		h.logger.Error("ws broadcast marshal error", zap.String("type", m.Type), zap.Error(err))
		return
	}
	for c := range h.clients {
		select {
		case c.Send <- data:
		default:
			// Backpressure / dead client.
			h.logger.Debug("ws client too slow; disconnecting", zap.String("subject", c.Subject))
			h.removeClient(c)
		}
	}
}
