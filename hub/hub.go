package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/parlor-billing/utils"
)

const writeWait = 5 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`

	tenantID uint
}

// Hub holds the dashboard websocket clients and fans committed events out
// to them.
type Hub struct {
	clients map[*websocket.Conn]uint // conn -> tenant
	mutex   sync.Mutex
	queue   chan Message
	done    chan struct{}
}

func New() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]uint),
		queue:   make(chan Message, 256),
		done:    make(chan struct{}),
	}
}

// Start runs the broadcast loop until Stop is called.
func (h *Hub) Start() {
	go func() {
		for {
			select {
			case msg := <-h.queue:
				h.broadcast(msg)
			case <-h.done:
				return
			}
		}
	}()
}

func (h *Hub) Stop() {
	close(h.done)
}

// RegisterClient adds a connection for the given tenant.
func (h *Hub) RegisterClient(conn *websocket.Conn, tenantID uint) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = tenantID
}

// UnregisterClient removes and closes a connection.
func (h *Hub) UnregisterClient(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

// ClientCount reports the number of connected dashboards.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Publish queues an event for the dashboards of tenantID. When the queue is
// full the event is dropped; dashboards catch up on their next poll.
func (h *Hub) Publish(tenantID uint, event string, data interface{}) {
	select {
	case h.queue <- Message{Event: event, Data: data, tenantID: tenantID}:
	default:
		utils.ErrorLogger.Printf("Hub queue full, dropping %s event", event)
	}
}

func (h *Hub) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling message: %v", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, tenantID := range h.clients {
		if tenantID != msg.tenantID {
			continue
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending message to client: %v", err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
