package connections

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/lusotown/lusotown-backend/internal/auth"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Configure origin checking in production
		return true
	},
}

// Hub pushes connection events to members with an open socket.
type Hub struct {
	clients    map[string]*Client
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
}

type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan Event
	memberID string
}

type Event struct {
	Type     string      `json:"type"`
	MemberID string      `json:"member_id"`
	Data     interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Event),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client.memberID] = client
			log.Printf("Member %s connected", client.memberID)

		case client := <-h.unregister:
			if _, ok := h.clients[client.memberID]; ok {
				delete(h.clients, client.memberID)
				close(client.send)
				log.Printf("Member %s disconnected", client.memberID)
			}

		case event := <-h.broadcast:
			if client, ok := h.clients[event.MemberID]; ok {
				select {
				case client.send <- event:
				default:
					close(client.send)
					delete(h.clients, client.memberID)
				}
			}
		}
	}
}

func (h *Hub) NotifyConnectionRequest(receiverID string, request *ConnectionRequest) {
	h.broadcast <- Event{
		Type:     "connection_request",
		MemberID: receiverID,
		Data:     request,
	}
}

func (h *Hub) NotifyConnectionAccepted(senderID string, request *ConnectionRequest) {
	h.broadcast <- Event{
		Type:     "connection_accepted",
		MemberID: senderID,
		Data:     request,
	}
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	memberID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	client := &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan Event, 256),
		memberID: memberID,
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for event := range c.send {
		if err := c.conn.WriteJSON(event); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
