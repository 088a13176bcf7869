// Package ws implements Volt channels on top of gorilla/websocket.
//
// A Channel is a broadcast group. Generated channel files declare one,
// start its loop, and mount an upgrade handler on a route:
//
//	var Chat = ws.Open("chat")
//
//	router.Get("/ws/chat", "ws.chat", ctx.Wrap(func(c *ctx.Context) {
//	    ws.Join(c.W, c.R, Chat)
//	}))
//
//	Chat.Broadcast([]byte("hello everyone"))
package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/voltframework/volt/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins by default. Restrict in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SetCheckOrigin replaces the default allow-all origin checker.
func SetCheckOrigin(fn func(r *http.Request) bool) {
	upgrader.CheckOrigin = fn
}

// Conn is one connected subscriber of a channel.
type Conn struct {
	channel *Channel
	sock    *websocket.Conn
	send    chan []byte
}

// Send queues a message for this subscriber. Full buffers drop the message
// rather than block the channel loop.
func (c *Conn) Send(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

func (c *Conn) readPump() {
	defer func() {
		c.channel.leave <- c
		c.sock.Close()
	}()
	c.sock.SetReadLimit(maxMessageSize)
	c.sock.SetReadDeadline(time.Now().Add(pongWait))
	c.sock.SetPongHandler(func(string) error {
		c.sock.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, msg, err := c.sock.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("ws: unexpected close", "channel", c.channel.name, "error", err)
			}
			return
		}
		c.channel.inbound <- Message{Conn: c, Data: msg}
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.sock.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.sock.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.sock.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.sock.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Message is an inbound frame from one subscriber.
type Message struct {
	Conn *Conn
	Data []byte
}

// Channel is a named broadcast group with its own event loop.
type Channel struct {
	name      string
	conns     map[*Conn]bool
	broadcast chan []byte
	inbound   chan Message
	join      chan *Conn
	leave     chan *Conn
	done      chan struct{}

	// OnMessage, when set, is invoked by the channel loop for every
	// inbound frame.
	OnMessage func(ch *Channel, msg Message)
}

// NewChannel creates an unregistered channel. Most callers want Open.
func NewChannel(name string) *Channel {
	return &Channel{
		name:      name,
		conns:     make(map[*Conn]bool),
		broadcast: make(chan []byte, 256),
		inbound:   make(chan Message, 256),
		join:      make(chan *Conn),
		leave:     make(chan *Conn),
		done:      make(chan struct{}),
	}
}

// Name returns the channel's registered name.
func (ch *Channel) Name() string { return ch.name }

// Broadcast sends data to every current subscriber.
func (ch *Channel) Broadcast(data []byte) {
	select {
	case ch.broadcast <- data:
	case <-ch.done:
	}
}

// Count returns the number of connected subscribers. Only safe to call
// from the channel loop's own callbacks or tests that control the loop.
func (ch *Channel) Count() int { return len(ch.conns) }

// Close stops the channel loop and disconnects all subscribers.
func (ch *Channel) Close() {
	close(ch.done)
}

// Run drives the channel until Close is called. Open starts this for you.
func (ch *Channel) Run() {
	for {
		select {
		case c := <-ch.join:
			ch.conns[c] = true
			logger.Info("ws: joined", "channel", ch.name, "subscribers", len(ch.conns))

		case c := <-ch.leave:
			if _, ok := ch.conns[c]; ok {
				delete(ch.conns, c)
				close(c.send)
				logger.Info("ws: left", "channel", ch.name, "subscribers", len(ch.conns))
			}

		case msg := <-ch.broadcast:
			for c := range ch.conns {
				select {
				case c.send <- msg:
				default:
					close(c.send)
					delete(ch.conns, c)
				}
			}

		case msg := <-ch.inbound:
			if ch.OnMessage != nil {
				ch.OnMessage(ch, msg)
			}

		case <-ch.done:
			for c := range ch.conns {
				close(c.send)
				delete(ch.conns, c)
			}
			return
		}
	}
}

var (
	mu       sync.Mutex
	channels = map[string]*Channel{}
)

// Open returns the channel registered under name, creating and starting
// it on first use.
func Open(name string) *Channel {
	mu.Lock()
	defer mu.Unlock()
	if ch, ok := channels[name]; ok {
		return ch
	}
	ch := NewChannel(name)
	channels[name] = ch
	go ch.Run()
	return ch
}

// Join upgrades the HTTP connection and subscribes it to the channel.
func Join(w http.ResponseWriter, r *http.Request, ch *Channel) {
	sock, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("ws: upgrade failed", "channel", ch.name, "error", err)
		return
	}
	c := &Conn{channel: ch, sock: sock, send: make(chan []byte, 256)}
	select {
	case ch.join <- c:
	case <-ch.done:
		sock.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}
