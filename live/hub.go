package live

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tomdewit/bartab-app/utils"
)

// Event types pushed to subscribed bar clients.
const (
	EventSessionCreated = "session_created"
	EventSessionLocked  = "session_locked"
	EventSessionEnded   = "session_ended"
	EventBillCreated    = "bill_created"
	EventBillPaid       = "bill_paid"
	EventOrderAdded     = "order_added"
)

type Message struct {
	Event string      `json:"event"`
	BarID uuid.UUID   `json:"bar_id"`
	Data  interface{} `json:"data"`
}

// Hub holds the websocket connections of bartenders watching a bar.
// Each connection subscribes to exactly one bar; events for other bars are
// never delivered to it.
type Hub struct {
	clients map[*websocket.Conn]uuid.UUID // conn -> barID
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]uuid.UUID),
}

// RegisterClient subscribes a connection to a bar's event stream.
func RegisterClient(conn *websocket.Conn, barID uuid.UUID) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = barID
}

// UnregisterClient drops a connection and closes it.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// Broadcast sends an event to every client subscribed to the bar.
func Broadcast(event string, barID uuid.UUID, data interface{}) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	payload, err := json.Marshal(Message{Event: event, BarID: barID, Data: data})
	if err != nil {
		utils.ErrorLogger.Printf("marshal live event %s: %v", event, err)
		return
	}

	for conn, subscribed := range hub.clients {
		if subscribed != barID {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			utils.ErrorLogger.Printf("send live event %s: %v", event, err)
		}
	}
}
