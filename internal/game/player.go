package game

import "time"

// Player is one human participant in a match. SessionID is the opaque
// reconnection key supplied by the transport layer.
type Player struct {
	ID             string
	SessionID      string
	Name           string
	Color          string
	IsAdmin        bool
	Alive          bool
	Connected      bool
	Pieces         []*Piece
	JoinedAt       time.Time
	DisconnectedAt time.Time
}

var playerPalette = []string{
	"red", "green", "blue", "purple",
	"orange", "cyan", "magenta", "yellow",
	"teal", "pink",
}

func (p *Player) King() *Piece {
	for _, pc := range p.Pieces {
		if pc.Type == King {
			return pc
		}
	}
	return nil
}

func (p *Player) findPiece(pieceID string) *Piece {
	for _, pc := range p.Pieces {
		if pc.ID == pieceID {
			return pc
		}
	}
	return nil
}
