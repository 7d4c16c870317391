package web

import (
	"math"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type Client struct {
	mu         sync.RWMutex
	hub        *Hub
	conn       *websocket.Conn
	Send       chan []byte
	ID         uint8
	RemoteAddr string
	UserAgent  string

	avgLatency  uint16
	connectedAt time.Time
}

// ReadPump handles setting changes from the client until the connection
// closes.
func (c *Client) ReadPump() {
	defer func() {
		c.leave()
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(message) == 0 {
			continue
		}

		switch message[0] {
		case System:
			if len(message) < 3 {
				continue
			}
			if message[1] == KeepAlive {
				continue
			}
			c.hub.set(message[1], message[2])
			c.hub.log.Debugf("web: client %d set %d to %d", c.ID, message[1], message[2])
		case Closing:
			return
		}
	}
}

// WritePump writes queued messages until the hub closes Send.
func (c *Client) WritePump() {
	defer func() {
		c.leave()
		c.conn.Close()
	}()

	for message := range c.Send {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
			return
		}

		if tcp, ok := c.conn.UnderlyingConn().(*net.TCPConn); ok {
			if rtt, err := roundTrip(tcp); err == nil {
				c.mu.Lock()
				c.avgLatency = smooth(c.avgLatency, rtt)
				c.mu.Unlock()
			}
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *Client) leave() {
	select {
	case c.hub.unregister <- c:
	case <-c.hub.done:
	}
}

// latency returns the smoothed round trip time in milliseconds.
func (c *Client) latency() uint16 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.avgLatency
}

// smooth folds rtt into the running average avg, saturating at the
// largest latency a ServerInfo message can carry.
func smooth(avg uint16, rtt time.Duration) uint16 {
	ms := rtt.Milliseconds()
	if ms > math.MaxUint16 {
		ms = math.MaxUint16
	}
	return uint16((uint32(avg)*9 + uint32(ms)) / 10)
}
