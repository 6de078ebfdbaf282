package stream

import (
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 16
)

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub fans encoded frames out to every connected spectator. Publishers
// never block: a client whose buffer is full misses that frame.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*client
	latest  []byte
	closed  bool
	logger  *log.Logger
}

// NewHub creates an empty hub. A nil logger discards.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{clients: make(map[string]*client), logger: logger}
}

// Publish encodes f and queues it for every spectator. The frame is kept
// as the greeting for spectators that join later.
func (h *Hub) Publish(f Frame) error {
	data, err := f.Encode()
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.latest = data
	for _, c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
	return nil
}

// Count returns the number of connected spectators.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) subscribe(conn *websocket.Conn) (*client, bool) {
	c := &client{id: uuid.NewString(), conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, false
	}
	if h.latest != nil {
		c.send <- h.latest
	}
	h.clients[c.id] = c
	return c, true
}

func (h *Hub) unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(c.send)
	}
}

// Close disconnects every spectator and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
}

// Handler upgrades HTTP requests to spectator websockets.
type Handler struct {
	hub      *Hub
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewHandler constructs a websocket handler for hub.
func NewHandler(hub *Hub) *Handler {
	return &Handler{
		hub:    hub,
		logger: hub.logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ServeHTTP runs one spectator connection until it closes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c, ok := h.hub.subscribe(conn)
	if !ok {
		message := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
		//nolint:errcheck // closing anyway
		conn.WriteMessage(websocket.CloseMessage, message)
		conn.Close()
		return
	}
	h.logger.Info("spectator connected", "id", c.id, "remote", r.RemoteAddr)

	go c.writePump()
	c.readPump()

	h.hub.unsubscribe(c.id)
	h.logger.Info("spectator disconnected", "id", c.id)
}

// readPump discards client messages; it exists to notice the close and to
// answer pings.
func (c *client) readPump() {
	c.conn.SetReadLimit(512)
	//nolint:errcheck // a failed deadline surfaces on the next read
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			//nolint:errcheck // a failed deadline surfaces on the write
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				//nolint:errcheck // closing anyway
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			//nolint:errcheck // a failed deadline surfaces on the write
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
