package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"royale-chess/internal/room"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Hub struct {
	mu            sync.RWMutex
	rooms         map[string]map[*client]struct{}
	manager       RoomManager
	adminPassword string
}

func NewHub(manager RoomManager, adminPassword string) *Hub {
	return &Hub{
		rooms:         make(map[string]map[*client]struct{}),
		manager:       manager,
		adminPassword: adminPassword,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// client serializes writes; broadcasts and per-caller replies share the conn.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *client) reply(action string, data interface{}) {
	if err := c.writeJSON(gin.H{"action": action, "data": data}); err != nil {
		log.Printf("failed to send reply: %v", err)
	}
}

func (h *Hub) HandleWS(c *gin.Context) {
	roomID := c.Query("room_id")
	sessionID := c.Query("session_id")
	if roomID == "" || sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing room_id or session_id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("failed to upgrade connection: %v", err)
		return
	}
	cl := &client{conn: conn}

	h.mu.Lock()
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[*client]struct{})
	}
	h.rooms[roomID][cl] = struct{}{}
	h.mu.Unlock()

	var playerID string
	defer func() {
		h.mu.Lock()
		delete(h.rooms[roomID], cl)
		h.mu.Unlock()
		_ = conn.Close()
		if playerID != "" {
			if rx, ok := h.manager.Get(roomID); ok {
				rx.Post(room.Disconnect{PlayerID: playerID})
			}
		}
	}()

	for {
		var msg struct {
			Action string          `json:"action"`
			Data   json.RawMessage `json:"data"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}

		switch msg.Action {
		case "join":
			playerID = h.handleJoin(cl, roomID, sessionID, msg.Data, playerID)
		case "start_game":
			h.handleStart(cl, roomID, playerID)
		case "move_piece":
			h.handleMove(cl, roomID, playerID, msg.Data)
		case "reset_game":
			h.handleReset(cl, roomID, playerID)
		default:
			log.Printf("unknown action: %s", msg.Action)
		}
	}
}

func (h *Hub) handleJoin(cl *client, roomID, sessionID string, raw json.RawMessage, current string) string {
	var req struct {
		Name          string `json:"name"`
		AdminPassword string `json:"admin_password"`
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &req); err != nil {
			log.Printf("invalid join data: %v", err)
			return current
		}
	}
	wantsAdmin := req.AdminPassword != ""
	if wantsAdmin && req.AdminPassword != h.adminPassword {
		cl.reply("join_rejected", gin.H{"reason": "invalid_admin_password"})
		return current
	}

	// The reaper can stop a room between lookup and delivery; take a fresh
	// one and try again.
	for attempt := 0; attempt < 2; attempt++ {
		rx := h.manager.GetOrCreate(roomID)
		reply := make(chan room.JoinReply, 1)
		if !rx.Post(room.Join{SessionID: sessionID, Name: req.Name, WantsAdmin: wantsAdmin, Reply: reply}) {
			continue
		}
		res, ok := awaitReply(reply, rx.Done())
		if !ok || res.Reason == room.ReasonRoomClosed {
			continue
		}
		if res.Reason != "" {
			cl.reply("join_rejected", gin.H{"reason": res.Reason})
			return current
		}
		action := "joined"
		if res.Reconnect {
			action = "reconnected"
		}
		cl.reply(action, gin.H{
			"player_id": res.PlayerID,
			"self":      res.Self,
			"snapshot":  res.Snapshot,
		})
		return res.PlayerID
	}
	cl.reply("join_rejected", gin.H{"reason": room.ReasonRoomClosed})
	return current
}

// awaitReply waits for the room's answer, giving up when the room stops
// first. A reply racing the stop is still honored.
func awaitReply[T any](reply <-chan T, done <-chan struct{}) (T, bool) {
	select {
	case res := <-reply:
		return res, true
	case <-done:
		select {
		case res := <-reply:
			return res, true
		default:
			var zero T
			return zero, false
		}
	}
}

func (h *Hub) handleStart(cl *client, roomID, playerID string) {
	rx, ok := h.requireRoom(roomID, playerID)
	if !ok {
		return
	}
	reply := make(chan room.ActionReply, 1)
	if !rx.Post(room.Start{PlayerID: playerID, Reply: reply}) {
		cl.reply("start_rejected", gin.H{"reason": room.ReasonRoomClosed})
		return
	}
	res, ok := awaitReply(reply, rx.Done())
	if !ok {
		cl.reply("start_rejected", gin.H{"reason": room.ReasonRoomClosed})
		return
	}
	if res.Reason != "" {
		cl.reply("start_rejected", gin.H{"reason": res.Reason})
		return
	}
	cl.reply("start_ok", gin.H{"snapshot": res.Snapshot})
}

func (h *Hub) handleMove(cl *client, roomID, playerID string, raw json.RawMessage) {
	rx, ok := h.requireRoom(roomID, playerID)
	if !ok {
		return
	}
	var req struct {
		PieceID string `json:"piece_id"`
		ToRow   int    `json:"to_row"`
		ToCol   int    `json:"to_col"`
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		log.Printf("invalid move data: %v", err)
		return
	}
	reply := make(chan room.MoveReply, 1)
	if !rx.Post(room.Move{PlayerID: playerID, PieceID: req.PieceID, ToRow: req.ToRow, ToCol: req.ToCol, Reply: reply}) {
		cl.reply("invalid_move", gin.H{})
		return
	}
	res, ok := awaitReply(reply, rx.Done())
	if !ok || !res.Valid {
		cl.reply("invalid_move", gin.H{})
		return
	}
	cl.reply("move_ok", gin.H{"snapshot": res.Snapshot})
}

func (h *Hub) handleReset(cl *client, roomID, playerID string) {
	rx, ok := h.requireRoom(roomID, playerID)
	if !ok {
		return
	}
	reply := make(chan room.ActionReply, 1)
	if !rx.Post(room.Reset{PlayerID: playerID, Reply: reply}) {
		cl.reply("reset_rejected", gin.H{"reason": room.ReasonRoomClosed})
		return
	}
	res, ok := awaitReply(reply, rx.Done())
	if !ok || res.Reason != "" {
		cl.reply("reset_rejected", gin.H{"reason": room.ReasonRoomClosed})
		return
	}
	cl.reply("reset_ok", gin.H{"snapshot": res.Snapshot})
}

func (h *Hub) requireRoom(roomID, playerID string) (*room.Room, bool) {
	if playerID == "" {
		return nil, false
	}
	rx, ok := h.manager.Get(roomID)
	if !ok {
		log.Printf("room not found: %s", roomID)
		return nil, false
	}
	return rx, true
}

// Broadcast sends an action envelope to every connection in a room.
func (h *Hub) Broadcast(roomID string, action string, data interface{}) {
	h.mu.RLock()
	clients, ok := h.rooms[roomID]
	if !ok {
		h.mu.RUnlock()
		return
	}
	message := gin.H{"action": action, "data": data}
	var failed []*client
	for cl := range clients {
		if err := cl.writeJSON(message); err != nil {
			log.Printf("failed to send message: %v", err)
			failed = append(failed, cl)
		}
	}
	h.mu.RUnlock()

	if len(failed) > 0 {
		h.mu.Lock()
		for _, cl := range failed {
			_ = cl.conn.Close()
			delete(h.rooms[roomID], cl)
		}
		h.mu.Unlock()
	}
}
