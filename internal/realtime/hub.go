// Package realtime fans the task change feed out to websocket subscribers.
// The write path publishes row changes to redis; the hub holds the single
// subscription and forwards every event to all connected clients. The feed
// is authoritative for subscribers: they apply events directly without
// reconciliation.
package realtime

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The REST surface is origin-agnostic; the socket is too.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type connection struct {
	id   string
	ws   *websocket.Conn
	send chan []byte
}

type Hub struct {
	client *redis.Client
	log    *logrus.Entry

	mu    sync.RWMutex
	conns map[string]*connection

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewHub(client *redis.Client) *Hub {
	return &Hub{
		client: client,
		log:    logrus.WithField("component", "realtime"),
		conns:  make(map[string]*connection),
	}
}

// Start subscribes to the change channel and begins forwarding. It returns
// once the subscription is established.
func (h *Hub) Start(channel string) error {
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel

	sub := h.client.Subscribe(ctx, channel)
	// Receive forces the SUBSCRIBE handshake so a broken redis fails fast.
	if _, err := sub.Receive(ctx); err != nil {
		cancel()
		return err
	}

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer sub.Close()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				h.broadcast([]byte(msg.Payload))
			}
		}
	}()

	h.log.WithField("channel", channel).Info("change feed subscription started")
	return nil
}

func (h *Hub) Stop() {
	if h.cancel != nil {
		h.cancel()
	}

	h.mu.Lock()
	for id, conn := range h.conns {
		close(conn.send)
		delete(h.conns, id)
	}
	h.mu.Unlock()

	h.wg.Wait()
}

// broadcast forwards one event to every connection. A subscriber that cannot
// drain its buffer is dropped rather than allowed to stall the feed.
func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, conn := range h.conns {
		select {
		case conn.send <- data:
		default:
			h.log.WithField("conn_id", id).Warn("dropping slow subscriber")
			close(conn.send)
			delete(h.conns, id)
		}
	}
}

// ConnCount reports the number of active subscribers.
func (h *Hub) ConnCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Handle upgrades the request and serves the feed until the client goes away.
func (h *Hub) Handle(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return
	}

	id, err := uuid.NewV4()
	if err != nil {
		ws.Close()
		return
	}

	conn := &connection{
		id:   id.String(),
		ws:   ws,
		send: make(chan []byte, sendBufferSize),
	}

	h.mu.Lock()
	h.conns[conn.id] = conn
	h.mu.Unlock()

	h.log.WithFields(logrus.Fields{
		"conn_id": conn.id,
		"user":    c.GetString("user_identifier"),
	}).Info("subscriber connected")

	go h.writeLoop(conn)
	h.readLoop(conn)
}

func (h *Hub) writeLoop(conn *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.ws.Close()
	}()

	for {
		select {
		case data, ok := <-conn.send:
			conn.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			conn.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readLoop drains the client side. Subscribers never send application data;
// reads exist to process pongs and notice disconnects.
func (h *Hub) readLoop(conn *connection) {
	defer h.remove(conn.id)

	conn.ws.SetReadLimit(512)
	conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	conn.ws.SetPongHandler(func(string) error {
		conn.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ws.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, ok := h.conns[id]; ok {
		close(conn.send)
		delete(h.conns, id)
		h.log.WithField("conn_id", id).Info("subscriber disconnected")
	}
}
