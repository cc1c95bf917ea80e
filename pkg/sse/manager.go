// package sse fans server-sent events out to the connections of each user.
package sse

import (
	"io"

	"github.com/gin-gonic/gin"
)

type Message struct {
	UserID string
	Event  string
	Data   interface{}
}

type client struct {
	userID string
	send   chan Message
}

// Manager routes messages to every open connection of the addressed user.
// Run must be started (typically via `go manager.Run()`) before clients
// connect.
type Manager struct {
	register   chan *client
	unregister chan *client
	broadcast  chan Message
	clients    map[string]map[*client]struct{}
}

func NewManager() *Manager {
	return &Manager{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan Message, 64),
		clients:    make(map[string]map[*client]struct{}),
	}
}

func (m *Manager) Run() {
	for {
		select {
		case cl := <-m.register:
			if m.clients[cl.userID] == nil {
				m.clients[cl.userID] = make(map[*client]struct{})
			}
			m.clients[cl.userID][cl] = struct{}{}
		case cl := <-m.unregister:
			if conns, ok := m.clients[cl.userID]; ok {
				if _, ok := conns[cl]; ok {
					delete(conns, cl)
					close(cl.send)
					if len(conns) == 0 {
						delete(m.clients, cl.userID)
					}
				}
			}
		case msg := <-m.broadcast:
			for cl := range m.clients[msg.UserID] {
				select {
				case cl.send <- msg:
				default:
					// slow consumer, drop rather than block the loop
				}
			}
		}
	}
}

// SendToUser queues an event for all of the user's connections.
func (m *Manager) SendToUser(userID, event string, data interface{}) {
	m.broadcast <- Message{UserID: userID, Event: event, Data: data}
}

// ServeHTTP streams events to one connection until the client disconnects.
func (m *Manager) ServeHTTP(c *gin.Context, userID string) {
	cl := &client{userID: userID, send: make(chan Message, 8)}
	m.register <- cl
	defer func() { m.unregister <- cl }()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-cl.send:
			if !ok {
				return false
			}
			c.SSEvent(msg.Event, msg.Data)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
