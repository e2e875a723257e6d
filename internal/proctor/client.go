package proctor

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/saulo-duarte/quiz-proctor/internal/config"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 << 10
	sendBuffer     = 32
)

// Client is one socket. GroupID is set when the connection carried a valid
// group token.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	GroupID string
}

func newClient(hub *Hub, conn *websocket.Conn, groupID string) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		GroupID: groupID,
	}
}

func (c *Client) readPump(ctx context.Context, dispatch func(context.Context, *Client, Message)) {
	log := config.WithContext(ctx)
	defer func() {
		c.hub.detach(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithError(err).Warn("Socket read error")
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.WithError(err).Debug("Ignoring malformed frame")
			continue
		}
		if !c.safeDispatch(ctx, dispatch, msg) {
			return
		}
	}
}

// safeDispatch reports false when handling the frame panicked; the caller
// then drops this socket only.
func (c *Client) safeDispatch(ctx context.Context, dispatch func(context.Context, *Client, Message), msg Message) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			config.WithContext(ctx).WithFields(logrus.Fields{
				"panic":    r,
				"type":     msg.Type,
				"group_id": c.GroupID,
			}).Error("Socket handler panicked, closing connection")
			ok = false
		}
	}()
	dispatch(ctx, c, msg)
	return true
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
