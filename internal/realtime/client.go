package realtime

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/hyukkyo/demon-tournament/internal/constants"
	"github.com/hyukkyo/demon-tournament/internal/logging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Session describes one websocket subscription to a match.
type Session struct {
	Code string
	// PlayerID is empty for spectators.
	PlayerID string
	// Initial is sent before any published message, if non-nil.
	Initial *Message
	// OnDisconnect runs when a player's current connection goes away.
	OnDisconnect func(code, playerID string)
}

type client struct {
	hub   *Hub
	conn  *websocket.Conn
	sess  Session
	subID string
	send  chan Message
}

// Serve upgrades the request and pumps match messages to the connection
// until either side closes it. It blocks for the life of the connection.
func Serve(hub *Hub, w http.ResponseWriter, r *http.Request, sess Session) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	subID := sess.PlayerID
	if subID == "" {
		subID = "spectator-" + uuid.NewString()
	}
	c := &client{hub: hub, conn: conn, sess: sess, subID: subID}
	c.send = hub.Subscribe(sess.Code, subID)
	logging.Info("websocket subscribed", logging.Fields{
		constants.LogFieldMatchCode: sess.Code,
		constants.LogFieldPlayerID:  sess.PlayerID,
		"subscriber":                subID,
	})

	go c.writePump()
	c.readPump()
	return nil
}

// readPump drains client frames so pongs and close frames are processed.
func (c *client) readPump() {
	defer func() {
		current := c.hub.Unsubscribe(c.sess.Code, c.subID, c.send)
		if err := c.conn.Close(); err != nil {
			logging.Debug("failed to close websocket connection", logging.Fields{"error": err.Error()})
		}
		logging.Info("websocket disconnected", logging.Fields{
			constants.LogFieldMatchCode: c.sess.Code,
			constants.LogFieldPlayerID:  c.sess.PlayerID,
		})
		if current && c.sess.PlayerID != "" && c.sess.OnDisconnect != nil {
			c.sess.OnDisconnect(c.sess.Code, c.sess.PlayerID)
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logging.Warn("failed to set read deadline", logging.Fields{"error": err.Error()})
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Error("websocket read failed", err, logging.Fields{constants.LogFieldMatchCode: c.sess.Code})
			}
			return
		}
	}
}

// writePump sends queued messages and keeps the connection alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	if c.sess.Initial != nil {
		if err := c.write(*c.sess.Initial); err != nil {
			return
		}
	}

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.write(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logging.Debug("ping failed", logging.Fields{"error": err.Error()})
				return
			}
		}
	}
}

func (c *client) write(msg Message) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(msg); err != nil {
		logging.Debug("write json message failed", logging.Fields{"error": err.Error()})
		return err
	}
	return nil
}
