package libraries

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// WebSocketMessageType enumerates the editor gesture and reply frames.
type WebSocketMessageType string

const (
	WebSocketMessageTypePing  WebSocketMessageType = "ping"
	WebSocketMessageTypePong  WebSocketMessageType = "pong"
	WebSocketMessageTypeError WebSocketMessageType = "error"

	// Session setup
	WebSocketMessageTypeOpenPlan  WebSocketMessageType = "open_plan"
	WebSocketMessageTypeOpenBlank WebSocketMessageType = "open_blank"

	// Editing gestures
	WebSocketMessageTypeDropBuilding WebSocketMessageType = "drop_building"
	WebSocketMessageTypeDropFixture  WebSocketMessageType = "drop_fixture"
	WebSocketMessageTypeSetViewport  WebSocketMessageType = "set_viewport"
	WebSocketMessageTypeSelect       WebSocketMessageType = "select"
	WebSocketMessageTypeDragStart    WebSocketMessageType = "drag_start"
	WebSocketMessageTypeDragMove     WebSocketMessageType = "drag_move"
	WebSocketMessageTypeDragEnd      WebSocketMessageType = "drag_end"
	WebSocketMessageTypeLabelOpen    WebSocketMessageType = "label_open"
	WebSocketMessageTypeLabelCommit  WebSocketMessageType = "label_commit"
	WebSocketMessageTypeLabelCancel  WebSocketMessageType = "label_cancel"
	WebSocketMessageTypeResize       WebSocketMessageType = "resize"
	WebSocketMessageTypeRemoveNode   WebSocketMessageType = "remove_node"
	WebSocketMessageTypeSave         WebSocketMessageType = "save"

	// Replies
	WebSocketMessageTypeState WebSocketMessageType = "state"
	WebSocketMessageTypeSaved WebSocketMessageType = "saved"
)

type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
	once sync.Once
}

type Hub struct {
	Clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan []byte
}

// WebSocketMessage is the envelope for every frame in both directions.
type WebSocketMessage struct {
	Type WebSocketMessageType `json:"type"`
	Data interface{}          `json:"data,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan []byte),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client.ID] = client
		case client := <-h.Unregister:
			if _, exists := h.Clients[client.ID]; exists {
				delete(h.Clients, client.ID)
				client.once.Do(func() {
					close(client.Send)
				})
			}
		case message := <-h.Broadcast:
			for _, client := range h.Clients {
				client.Send <- message
			}
		}
	}
}

func (h *Hub) BroadcastMessage(message []byte) {
	h.Broadcast <- message
}

func (h *Hub) SendMessage(client *Client, message []byte) {
	client.Send <- message
}

// SendErrorMessage sends a standardized error message to a client
func SendErrorMessage(hub *Hub, client *Client, errorMsg string) {
	SendWebSocketMessage(hub, client, WebSocketMessageTypeError, &ErrorPayload{Message: errorMsg})
}

// sendPongMessage sends a standardized pong message to a client
func sendPongMessage(hub *Hub, client *Client) {
	SendWebSocketMessage(hub, client, WebSocketMessageTypePong, nil)
}

// SendWebSocketMessage marshals and sends one framed message to a client
func SendWebSocketMessage(hub *Hub, client *Client, msgType WebSocketMessageType, data interface{}) {
	resp := WebSocketMessage{
		Type: msgType,
		Data: data,
	}
	bytes, err := json.Marshal(resp)
	if err != nil {
		log.Println("failed to marshal websocket message:", err)
		return
	}
	hub.SendMessage(client, bytes)
}

// inboundMessage keeps the payload raw; the processor decodes it per type.
type inboundMessage struct {
	Type WebSocketMessageType `json:"type"`
	Data json.RawMessage      `json:"data,omitempty"`
}

// GestureProcessor handles editor gestures for one client. Gestures run
// serially on the connection's read loop, so a save always sees the model
// exactly as of the moment it was requested.
type GestureProcessor interface {
	ProcessGesture(hub *Hub, client *Client, msgType WebSocketMessageType, data json.RawMessage)
	ClientClosed(client *Client)
}

func WebSocketHandler(hub *Hub, processor GestureProcessor) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := &Client{
			ID:   uuid.NewString(),
			Conn: conn,
			Send: make(chan []byte, 256),
		}

		hub.Register <- client

		// Write loop
		go func() {
			defer conn.Close()
			for msg := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					log.Println("write error:", err)
					return
				}
			}
		}()

		// Read loop
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}

			var message inboundMessage
			if err := json.Unmarshal(msg, &message); err != nil {
				log.Println("failed to parse JSON:", err)
				SendErrorMessage(hub, client, "Invalid JSON format")
				continue
			}

			if message.Type == WebSocketMessageTypePing {
				sendPongMessage(hub, client)
				continue
			}
			if message.Type == "" {
				SendErrorMessage(hub, client, "Type is invalid or not provided")
				continue
			}
			// Serial dispatch, on purpose: gesture ordering is the session's
			// correctness guarantee.
			processor.ProcessGesture(hub, client, message.Type, message.Data)
		}

		processor.ClientClosed(client)
		hub.Unregister <- client
		conn.Close()
	})
}
