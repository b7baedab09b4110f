// Package kds fans order and menu events out to kitchen-display websocket
// clients.
package kds

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mi-restaurante/backend/models"
	"github.com/mi-restaurante/backend/utils"
)

// Event types
const (
	EventOrderCreated = "order_created"
	EventMenuUpdated  = "menu_updated"
	EventMenuDeleted  = "menu_deleted"
)

const writeWait = 5 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds the connected clients keyed by connection, with the email of
// the signed-in user as value.
type Hub struct {
	clients map[*websocket.Conn]string
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

func (h *Hub) Register(conn *websocket.Conn, user string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = user
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// OrderCreated broadcasts a freshly stored order.
func (h *Hub) OrderCreated(order models.Order) {
	h.Broadcast(Message{Event: EventOrderCreated, Data: order})
}

func (h *Hub) MenuUpdated(dish models.Dish) {
	h.Broadcast(Message{Event: EventMenuUpdated, Data: dish})
}

func (h *Hub) MenuDeleted(id string) {
	h.Broadcast(Message{Event: EventMenuDeleted, Data: map[string]string{"_id": id}})
}

// Broadcast writes msg to every client. Clients that fail the write are
// dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Errorf("Error marshaling %s message: %v", msg.Event, err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	utils.InfoLogger.Debugf("Broadcasting %s to %d clients", msg.Event, len(h.clients))
	for conn, user := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Warnf("Dropping kitchen client %s: %v", user, err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
