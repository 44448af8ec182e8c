package game

import "time"

const leashDistance = 10

// MoveResult describes one executed move for broadcasting.
type MoveResult struct {
	Piece    *Piece
	FromRow  int
	FromCol  int
	ToRow    int
	ToCol    int
	Captured *Piece
}

// AttemptMove validates and executes a single-piece move. Invalid requests
// leave the match untouched and report ok=false; they are never errors.
//
// Movement shapes are deliberately not enforced: any destination passing the
// bounds, woods, danger-zone, cooldown, and king-leash checks is legal.
// Captures make no distinction between friend and foe.
func (m *Match) AttemptMove(playerID, pieceID string, toRow, toCol int) (MoveResult, bool) {
	if m.Phase != PhasePlaying {
		return MoveResult{}, false
	}
	actor, ok := m.Players[playerID]
	if !ok || !actor.Alive {
		return MoveResult{}, false
	}
	pc := m.findPiece(pieceID)
	if pc == nil || pc.OwnerID != playerID {
		return MoveResult{}, false
	}
	if !m.Board.InBounds(toRow, toCol) {
		return MoveResult{}, false
	}
	dest := Coord{Row: toRow, Col: toCol}
	if m.Woods.Has(dest) || m.DangerZones.Has(dest) {
		return MoveResult{}, false
	}
	if pc.Type != King && !pc.Movable {
		return MoveResult{}, false
	}
	if king := actor.King(); king != nil {
		if chebyshev(toRow, toCol, king.Row, king.Col) > leashDistance {
			return MoveResult{}, false
		}
	}

	res := MoveResult{Piece: pc, FromRow: pc.Row, FromCol: pc.Col, ToRow: toRow, ToCol: toCol}
	m.Board.Clear(pc.Row, pc.Col)
	if occupant := m.Board.PieceAt(toRow, toCol); occupant != nil {
		res.Captured = occupant
		m.RemovePiece(occupant)
	}
	m.Board.Place(pc, toRow, toCol)
	if pc.Type != King {
		pc.Movable = false
		pc.CooldownExpiresAt = time.Now().Add(time.Duration(m.cfg.CooldownSeconds) * time.Second)
	}
	m.TurnCounter++
	return res, true
}

// ExpireCooldown flips a piece back to movable once its cooldown has run
// out. A stale expiry for a piece that has since been removed is a no-op.
func (m *Match) ExpireCooldown(pieceID string) bool {
	pc := m.findPiece(pieceID)
	if pc == nil || pc.Movable {
		return false
	}
	pc.Movable = true
	return true
}

func (m *Match) findPiece(pieceID string) *Piece {
	for _, p := range m.Players {
		if pc := p.findPiece(pieceID); pc != nil {
			return pc
		}
	}
	return nil
}

func chebyshev(r1, c1, r2, c2 int) int {
	dr := abs(r1 - r2)
	dc := abs(c1 - c2)
	if dr > dc {
		return dr
	}
	return dc
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
