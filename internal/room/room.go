package room

import (
	"sync"
	"sync/atomic"
	"time"

	"royale-chess/internal/config"
	"royale-chess/internal/game"

	"github.com/gin-gonic/gin"
)

// Room owns one match and serializes every mutation through its inbox: player
// commands, the shrink tick, and timer callbacks all land in the same loop.
type Room struct {
	ID    string
	Inbox chan any

	match *game.Match
	cfg   config.Config
	bc    Broadcaster

	shrinkTicker   *time.Ticker
	shrinkC        <-chan time.Time
	cooldownTimers map[string]*time.Timer
	removalTimers  map[string]*time.Timer

	createdAt    time.Time
	lastActivity atomic.Int64
	infoPlayers  atomic.Int64
	infoPhase    atomic.Value

	quit     chan struct{}
	stopOnce sync.Once
}

func New(id string, cfg config.Config, bc Broadcaster) *Room {
	r := &Room{
		ID:             id,
		Inbox:          make(chan any, 256),
		match:          game.NewMatch(cfg, time.Now().UnixNano()),
		cfg:            cfg,
		bc:             bc,
		cooldownTimers: make(map[string]*time.Timer),
		removalTimers:  make(map[string]*time.Timer),
		createdAt:      time.Now(),
		quit:           make(chan struct{}),
	}
	r.touch()
	r.publishInfo()
	return r
}

func (r *Room) Run() {
	for {
		// Quit wins over a still-loaded inbox.
		select {
		case <-r.quit:
			r.shutdown()
			return
		default:
		}
		select {
		case <-r.quit:
			r.shutdown()
			return
		case cmd := <-r.Inbox:
			r.handle(cmd)
			r.publishInfo()
		case <-r.shrinkC:
			r.handleShrinkTick()
			r.publishInfo()
		}
	}
}

func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.quit) })
}

// Done is closed when the room stops. Callers blocked on a reply select on
// it so a reaped room cannot strand them.
func (r *Room) Done() <-chan struct{} {
	return r.quit
}

// Post delivers a command into the inbox. It reports false when the room has
// been stopped and the command was not delivered.
func (r *Room) Post(msg any) bool {
	select {
	case <-r.quit:
		return false
	default:
	}
	select {
	case r.Inbox <- msg:
		return true
	case <-r.quit:
		return false
	}
}

// shutdown cancels timers and answers anything still queued so no caller is
// left waiting on a reply from a stopped room.
func (r *Room) shutdown() {
	r.stopShrink()
	r.cancelTimers()
	for {
		select {
		case cmd := <-r.Inbox:
			r.refuse(cmd)
		default:
			return
		}
	}
}

func (r *Room) refuse(cmd any) {
	switch c := cmd.(type) {
	case Join:
		c.Reply <- JoinReply{Reason: ReasonRoomClosed}
	case Start:
		c.Reply <- ActionReply{Reason: ReasonRoomClosed}
	case Reset:
		c.Reply <- ActionReply{Reason: ReasonRoomClosed}
	case Move:
		c.Reply <- MoveReply{Valid: false}
	}
}

func (r *Room) handle(cmd any) {
	switch c := cmd.(type) {
	case Join:
		r.handleJoin(c)
	case Start:
		r.handleStart(c)
	case Move:
		r.handleMove(c)
	case Reset:
		r.handleReset(c)
	case Disconnect:
		r.handleDisconnect(c)
	case cooldownExpired:
		r.handleCooldownExpired(c)
	case removalCheck:
		r.handleRemovalCheck(c)
	}
}

func (r *Room) handleJoin(c Join) {
	p, reconnect, err := r.match.AddPlayer(c.SessionID, c.Name, c.WantsAdmin)
	if err != nil {
		reason := ReasonRoomFull
		if err == game.ErrAlreadyStarted {
			reason = ReasonAlreadyStarted
		}
		c.Reply <- JoinReply{Reason: reason}
		return
	}
	r.touch()
	if reconnect {
		if t, ok := r.removalTimers[p.ID]; ok {
			t.Stop()
			delete(r.removalTimers, p.ID)
		}
	}
	self, _ := r.match.PlayerDetail(p.ID)
	snap := r.match.Snapshot()
	c.Reply <- JoinReply{PlayerID: p.ID, Reconnect: reconnect, Self: self, Snapshot: snap}

	action := "player_joined"
	if reconnect {
		action = "player_reconnected"
	}
	r.bc.Broadcast(r.ID, action, gin.H{
		"player_id": p.ID,
		"name":      p.Name,
		"snapshot":  snap,
	})
}

func (r *Room) handleStart(c Start) {
	if err := r.match.Start(c.PlayerID); err != nil {
		reason := ReasonNotAdmin
		switch err {
		case game.ErrAlreadyStarted:
			reason = ReasonAlreadyStarted
		case game.ErrNotEnoughPlayers:
			reason = ReasonNotEnoughPlayers
		}
		c.Reply <- ActionReply{Reason: reason}
		return
	}
	r.touch()
	r.startShrink()
	snap := r.match.Snapshot()
	c.Reply <- ActionReply{Snapshot: snap}
	r.bc.Broadcast(r.ID, "game_started", gin.H{"snapshot": snap})
}

func (r *Room) handleMove(c Move) {
	res, ok := r.match.AttemptMove(c.PlayerID, c.PieceID, c.ToRow, c.ToCol)
	if !ok {
		c.Reply <- MoveReply{Valid: false, Snapshot: r.match.Snapshot()}
		return
	}
	r.touch()
	if res.Piece.Type != game.King {
		r.scheduleCooldown(res.Piece.ID)
	}
	snap := r.match.Snapshot()
	c.Reply <- MoveReply{Valid: true, Snapshot: snap}

	data := gin.H{
		"player_id": c.PlayerID,
		"piece_id":  res.Piece.ID,
		"from_row":  res.FromRow,
		"from_col":  res.FromCol,
		"to_row":    res.ToRow,
		"to_col":    res.ToCol,
		"snapshot":  snap,
	}
	if res.Captured != nil {
		data["captured_piece_id"] = res.Captured.ID
	}
	r.bc.Broadcast(r.ID, "move", data)
	r.checkWin()
}

func (r *Room) handleReset(c Reset) {
	if err := r.match.Reset(c.PlayerID); err == nil {
		r.touch()
		r.stopShrink()
		r.cancelCooldowns()
		r.bc.Broadcast(r.ID, "game_reset", gin.H{"snapshot": r.match.Snapshot()})
	}
	// Non-admin resets are silently ignored; the caller still gets state.
	c.Reply <- ActionReply{Snapshot: r.match.Snapshot()}
}

func (r *Room) handleDisconnect(c Disconnect) {
	if !r.match.MarkDisconnected(c.PlayerID) {
		return
	}
	r.touch()
	r.bc.Broadcast(r.ID, "player_disconnected", gin.H{
		"player_id": c.PlayerID,
		"snapshot":  r.match.Snapshot(),
	})
	if t, ok := r.removalTimers[c.PlayerID]; ok {
		t.Stop()
	}
	grace := time.Duration(r.cfg.GraceSeconds) * time.Second
	playerID := c.PlayerID
	r.removalTimers[playerID] = time.AfterFunc(grace, func() {
		r.Post(removalCheck{playerID: playerID})
	})
}

func (r *Room) handleRemovalCheck(c removalCheck) {
	delete(r.removalTimers, c.playerID)
	p, ok := r.match.Players[c.playerID]
	if !ok || p.Connected {
		return
	}
	newAdmin, _ := r.match.RemovePlayer(c.playerID)
	r.touch()
	data := gin.H{
		"player_id": c.playerID,
		"snapshot":  r.match.Snapshot(),
	}
	if newAdmin != "" {
		data["new_admin_id"] = newAdmin
	}
	r.bc.Broadcast(r.ID, "player_removed", data)
	r.checkWin()
}

func (r *Room) handleCooldownExpired(c cooldownExpired) {
	delete(r.cooldownTimers, c.pieceID)
	if r.match.ExpireCooldown(c.pieceID) {
		r.bc.Broadcast(r.ID, "cooldown_expired", gin.H{"piece_id": c.pieceID})
	}
}

func (r *Room) handleShrinkTick() {
	// A tick can already be queued when the match ends and the ticker stops;
	// it must not broadcast on top of game_over.
	if r.match.Phase != game.PhasePlaying {
		return
	}
	res := r.match.ShrinkTick()
	data := gin.H{
		"shrink_countdown": r.match.ShrinkCountdown,
		"danger_zones":     r.match.DangerZones.List(),
	}
	if len(res.Claimed) > 0 {
		data["claimed"] = res.Claimed
	}
	r.bc.Broadcast(r.ID, "shrink_tick", data)
	if len(res.Eliminated) > 0 {
		r.checkWin()
	}
}

func (r *Room) checkWin() {
	res := r.match.CheckWin()
	if !res.Ended {
		return
	}
	r.stopShrink()
	winner := ""
	if res.Winner != nil {
		winner = res.Winner.Name
	}
	r.bc.Broadcast(r.ID, "game_over", gin.H{
		"winner":   winner,
		"snapshot": r.match.Snapshot(),
	})
}

func (r *Room) scheduleCooldown(pieceID string) {
	if t, ok := r.cooldownTimers[pieceID]; ok {
		t.Stop()
	}
	d := time.Duration(r.cfg.CooldownSeconds) * time.Second
	r.cooldownTimers[pieceID] = time.AfterFunc(d, func() {
		r.Post(cooldownExpired{pieceID: pieceID})
	})
}

func (r *Room) startShrink() {
	r.stopShrink()
	r.shrinkTicker = time.NewTicker(time.Second)
	r.shrinkC = r.shrinkTicker.C
}

func (r *Room) stopShrink() {
	if r.shrinkTicker != nil {
		r.shrinkTicker.Stop()
		r.shrinkTicker = nil
		r.shrinkC = nil
	}
}

func (r *Room) cancelCooldowns() {
	for id, t := range r.cooldownTimers {
		t.Stop()
		delete(r.cooldownTimers, id)
	}
}

func (r *Room) cancelTimers() {
	r.cancelCooldowns()
	for id, t := range r.removalTimers {
		t.Stop()
		delete(r.removalTimers, id)
	}
}

func (r *Room) touch() {
	r.lastActivity.Store(time.Now().UnixNano())
}

// LastActivity is read by the reaper without entering the actor.
func (r *Room) LastActivity() time.Time {
	return time.Unix(0, r.lastActivity.Load())
}

func (r *Room) publishInfo() {
	r.infoPlayers.Store(int64(len(r.match.Players)))
	r.infoPhase.Store(string(r.match.Phase))
}

// Info is a racy-but-safe view for the room listing endpoint.
type Info struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
	Phase   string `json:"phase"`
}

func (r *Room) Info() Info {
	phase, _ := r.infoPhase.Load().(string)
	return Info{
		ID:      r.ID,
		Players: int(r.infoPlayers.Load()),
		Phase:   phase,
	}
}
