package game

import (
	"errors"
	"math/rand"
	"sort"
	"time"

	"royale-chess/internal/config"

	"github.com/google/uuid"
)

type Phase string

const (
	PhaseLobby   Phase = "lobby"
	PhasePlaying Phase = "playing"
	PhaseEnded   Phase = "ended"
)

var (
	ErrRoomFull         = errors.New("room is full")
	ErrAlreadyStarted   = errors.New("game already started")
	ErrNotAdmin         = errors.New("caller is not the room admin")
	ErrNotEnoughPlayers = errors.New("not enough players")
)

// Match holds the authoritative state of one battle-royale chess game. It is
// not safe for concurrent use; the room actor serializes every call.
type Match struct {
	Phase           Phase
	Players         map[string]*Player
	Board           *Board
	Woods           CoordSet
	DangerZones     CoordSet
	ShrinkCountdown int
	TurnCounter     int
	AdminID         string

	cfg     config.Config
	rng     *rand.Rand
	joinSeq int
}

func NewMatch(cfg config.Config, seed int64) *Match {
	m := &Match{
		Phase:   PhaseLobby,
		Players: make(map[string]*Player),
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
	}
	m.regenerateBoard()
	return m
}

func (m *Match) regenerateBoard() {
	m.Board = NewBoard(m.cfg.BoardSize)
	m.Woods = GenerateWoods(m.cfg.BoardSize, m.cfg.WoodsDensity, m.rng)
	for c := range m.Woods {
		m.Board.Cells[c.Row][c.Col].Woods = true
	}
	m.DangerZones = NewCoordSet()
	m.ShrinkCountdown = m.cfg.ShrinkInitialSeconds
	m.TurnCounter = 0
}

// AddPlayer joins a new player or, when the session key is already known,
// reconnects the existing one. The second return reports a reconnect.
func (m *Match) AddPlayer(sessionID, name string, wantsAdmin bool) (*Player, bool, error) {
	for _, p := range m.Players {
		if p.SessionID == sessionID {
			p.Connected = true
			p.DisconnectedAt = time.Time{}
			return p, true, nil
		}
	}
	if len(m.Players) >= m.cfg.MaxPlayers {
		return nil, false, ErrRoomFull
	}
	if m.Phase != PhaseLobby {
		return nil, false, ErrAlreadyStarted
	}
	p := &Player{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Name:      name,
		Color:     playerPalette[m.joinSeq%len(playerPalette)],
		IsAdmin:   wantsAdmin && m.AdminID == "",
		Alive:     true,
		Connected: true,
		JoinedAt:  time.Now(),
	}
	m.joinSeq++
	if p.IsAdmin {
		m.AdminID = p.ID
	}
	m.Players[p.ID] = p
	return p, false, nil
}

// Start moves the room into the playing phase and spawns every player's
// piece set onto the board.
func (m *Match) Start(playerID string) error {
	if playerID != m.AdminID || m.AdminID == "" {
		return ErrNotAdmin
	}
	if m.Phase != PhaseLobby {
		return ErrAlreadyStarted
	}
	if len(m.Players) < m.cfg.MinPlayers {
		return ErrNotEnoughPlayers
	}

	ids := m.playerIDs()
	spawns := PlaceSpawns(len(ids), m.cfg.BoardSize, m.cfg.SpawnInset,
		m.cfg.SpawnAttempts, m.cfg.SpawnMinDist, m.rng)
	m.placeSets(ids, spawns)
	m.Phase = PhasePlaying
	m.ShrinkCountdown = m.cfg.ShrinkInitialSeconds
	return nil
}

// placeSets spawns one piece set per player. Clamped or fallback spawns can
// land a new piece on an occupied cell; the newly placed piece wins and the
// occupant leaves through the shared removal path, so a set can come up
// short-handed while board-piece duality holds.
func (m *Match) placeSets(ids []string, spawns []Coord) {
	for i, id := range ids {
		p := m.Players[id]
		p.Pieces = NewPieceSet(p.ID, spawns[i], m.cfg.BoardSize, m.rng)
		// Iterate a copy: displacing a clamped set-mate mutates p.Pieces.
		set := append([]*Piece(nil), p.Pieces...)
		for _, pc := range set {
			if prev := m.Board.PieceAt(pc.Row, pc.Col); prev != nil {
				m.RemovePiece(prev)
			}
			m.Board.Place(pc, pc.Row, pc.Col)
		}
	}
}

// Reset returns the room to the lobby with a fresh board and terrain.
// Players are kept, revived, and stripped of their pieces.
func (m *Match) Reset(playerID string) error {
	if playerID != m.AdminID || m.AdminID == "" {
		return ErrNotAdmin
	}
	m.Phase = PhaseLobby
	m.regenerateBoard()
	for _, p := range m.Players {
		p.Alive = true
		p.Pieces = nil
	}
	return nil
}

// RemovePiece detaches a piece from the board and from its owner. Owners
// left with no pieces are marked dead. Shared by capture, shrink
// elimination, and player removal.
func (m *Match) RemovePiece(pc *Piece) {
	if cur := m.Board.PieceAt(pc.Row, pc.Col); cur == pc {
		m.Board.Clear(pc.Row, pc.Col)
	}
	owner, ok := m.Players[pc.OwnerID]
	if !ok {
		return
	}
	for i, p := range owner.Pieces {
		if p == pc {
			owner.Pieces = append(owner.Pieces[:i], owner.Pieces[i+1:]...)
			break
		}
	}
	if len(owner.Pieces) == 0 {
		owner.Alive = false
	}
}

// MarkDisconnected flags a player as gone without removing them; the room
// actor schedules the grace-period removal.
func (m *Match) MarkDisconnected(playerID string) bool {
	p, ok := m.Players[playerID]
	if !ok {
		return false
	}
	p.Connected = false
	p.DisconnectedAt = time.Now()
	return true
}

// RemovePlayer erases a player and their pieces. When the removed player
// held admin, the role moves to the remaining player with the smallest id.
// Returns the new admin id (empty when unchanged or no players remain).
func (m *Match) RemovePlayer(playerID string) (string, bool) {
	p, ok := m.Players[playerID]
	if !ok {
		return "", false
	}
	for len(p.Pieces) > 0 {
		m.RemovePiece(p.Pieces[0])
	}
	delete(m.Players, playerID)

	newAdmin := ""
	if m.AdminID == playerID {
		m.AdminID = ""
		if ids := m.playerIDs(); len(ids) > 0 {
			m.AdminID = ids[0]
			m.Players[ids[0]].IsAdmin = true
			newAdmin = ids[0]
		}
	}
	return newAdmin, true
}

func (m *Match) playerIDs() []string {
	ids := make([]string, 0, len(m.Players))
	for id := range m.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
