package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/gravitas-games/lightsout/internal/network"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	// Redis writes after a win get their own deadline
	statsWriteTimeout = 5 * time.Second
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	ws      *websocket.Conn
	server  *Server
	session *Session

	// Buffered channel for outbound messages
	send chan []byte

	// Close runs once even when shutdown and the read pump race
	closeOnce sync.Once
}

// NewConnection creates a new connection wrapping an authenticated
// player's session.
func NewConnection(ws *websocket.Conn, server *Server, session *Session) *Connection {
	return &Connection{
		ws:      ws,
		server:  server,
		session: session,
		send:    make(chan []byte, 256),
	}
}

// Handle manages the connection lifecycle
func (c *Connection) Handle() {
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Start read and write pumps
	go c.writePump()

	c.sendWelcome()
	c.readPump() // Blocking
}

// readPump pumps messages from the WebSocket connection to the server
func (c *Connection) readPump() {
	defer func() {
		c.Close()
	}()

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var clientMsg network.ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			log.Printf("Failed to parse client message: %v", err)
			c.SendError("invalid_message", "Failed to parse message")
			continue
		}

		c.handleMessage(&clientMsg)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.server.ctx.Done():
			// Server shutting down
			return
		}
	}
}

// handleMessage routes messages to appropriate handlers
func (c *Connection) handleMessage(msg *network.ClientMessage) {
	log.Printf("Received message type: %s", msg.Type)

	switch msg.Type {
	case network.MsgTypeNewGame:
		c.handleNewGame(msg.Payload)

	case network.MsgTypeFlip:
		c.handleFlip(msg.Payload)

	case network.MsgTypeHint:
		c.handleHint()

	case network.MsgTypeStats:
		c.handleStats()

	case network.MsgTypePing:
		c.handlePing()

	default:
		log.Printf("Unknown message type: %s", msg.Type)
		c.SendError("unknown_message_type", "Unknown message type")
	}
}

// sendWelcome greets the client with its identity and the configured
// board defaults.
func (c *Connection) sendWelcome() {
	player := c.session.Player
	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeWelcome,
		Payload: network.WelcomePayload{
			PlayerID: player.ID,
			Username: player.Username,
			Guest:    player.Guest,
			Defaults: network.GameDefaults{
				Rows:                c.server.config.Game.Rows,
				Cols:                c.server.config.Game.Cols,
				ChanceLightStartsOn: c.server.config.Game.ChanceLightStartsOn,
			},
		},
	})
}

// handleNewGame starts a fresh board for this session
func (c *Connection) handleNewGame(payload json.RawMessage) {
	var req network.NewGamePayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			log.Printf("Failed to parse new_game payload: %v", err)
			c.SendError("invalid_payload", "Invalid new_game payload")
			return
		}
	}

	state, err := c.session.NewGame(req.Rows, req.Cols, req.ChanceLightStartsOn)
	if err != nil {
		c.SendError("new_game_failed", err.Error())
		return
	}

	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypeBoardState,
		Payload: state,
	})

	// A lucky scramble can come up already solved.
	if state.Won {
		c.recordWin(state.Moves)
	}
}

// handleFlip applies a press to the session's board
func (c *Connection) handleFlip(payload json.RawMessage) {
	var req network.FlipPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		log.Printf("Failed to parse flip payload: %v", err)
		c.SendError("invalid_payload", "Invalid flip payload")
		return
	}

	state, err := c.session.Flip(req.Row, req.Col)
	if err != nil {
		c.SendError(errorCode(err), err.Error())
		return
	}

	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypeBoardState,
		Payload: state,
	})

	if state.Won {
		log.Printf("Player %s won in %d moves", c.session.Player.ID, state.Moves)
		c.recordWin(state.Moves)
	}
}

// handleHint answers with the next press of a minimal solution
func (c *Connection) handleHint() {
	press, err := c.session.Hint()
	if err != nil {
		c.SendError(errorCode(err), err.Error())
		return
	}

	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypeHintResult,
		Payload: network.HintPayload{Row: press.Row, Col: press.Col},
	})
}

// handleStats answers with the player's accumulated results
func (c *Connection) handleStats() {
	ctx, cancel := context.WithTimeout(c.server.ctx, statsWriteTimeout)
	defer cancel()

	st, err := c.server.stats.PlayerStats(ctx, c.session.Player.ID)
	if err != nil {
		log.Printf("Failed to read stats for %s: %v", c.session.Player.ID, err)
		c.SendError("stats_unavailable", "Failed to read stats")
		return
	}

	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypeStatsResult,
		Payload: network.StatsPayload{Wins: st.Wins, BestMoves: st.BestMoves},
	})
}

// handlePing handles ping requests
func (c *Connection) handlePing() {
	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypePong,
		Payload: map[string]interface{}{"timestamp": time.Now().Unix()},
	})
}

// recordWin persists the result off the connection goroutine so a slow
// Redis never stalls the read pump.
func (c *Connection) recordWin(moves int) {
	playerID := c.session.Player.ID
	go func() {
		ctx, cancel := context.WithTimeout(c.server.ctx, statsWriteTimeout)
		defer cancel()

		if err := c.server.stats.RecordWin(ctx, playerID, moves); err != nil {
			log.Printf("Failed to record win for %s: %v", playerID, err)
		}
	}()
}

// errorCode maps session errors to protocol error codes
func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrNoGame):
		return "no_game"
	case errors.Is(err, ErrGameWon):
		return "game_won"
	case errors.Is(err, ErrOutOfBounds):
		return "out_of_bounds"
	default:
		return "move_failed"
	}
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *network.ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("Send buffer full, dropping message")
	}
}

// SendError sends an error message to the client
func (c *Connection) SendError(code, message string) {
	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeError,
		Payload: network.ErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}

// Close closes the connection
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
		c.ws.Close()
	})
}
