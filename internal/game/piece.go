package game

import (
	"math/rand"
	"strconv"
	"time"
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Piece is a single chess unit on the board. Color is cosmetic only.
type Piece struct {
	ID                string
	Type              PieceType
	Color             string
	OwnerID           string
	Row               int
	Col               int
	Movable           bool
	CooldownExpiresAt time.Time
}

// pieceLayout gives each unit's row/col offset relative to the spawn center.
var pieceLayout = []struct {
	Type PieceType
	DRow int
	DCol int
}{
	{King, 0, 0},
	{Queen, 0, 1},
	{Rook, 0, -1},
	{Rook, 0, 2},
	{Bishop, 0, -2},
	{Bishop, 0, 3},
	{Knight, 0, -3},
	{Knight, 0, 4},
	{Pawn, 1, -3},
	{Pawn, 1, -2},
	{Pawn, 1, -1},
	{Pawn, 1, 0},
	{Pawn, 1, 1},
	{Pawn, 1, 2},
	{Pawn, 1, 3},
	{Pawn, 1, 4},
}

// NewPieceSet builds a player's 16-piece set around a spawn center. Every
// coordinate is clamped per axis into the board. The whole set shares one
// randomly drawn cosmetic color.
func NewPieceSet(ownerID string, center Coord, boardSize int, rng *rand.Rand) []*Piece {
	color := "white"
	if rng.Intn(2) == 1 {
		color = "black"
	}
	pieces := make([]*Piece, 0, len(pieceLayout))
	for i, l := range pieceLayout {
		pieces = append(pieces, &Piece{
			ID:      ownerID + "-" + strconv.Itoa(i),
			Type:    l.Type,
			Color:   color,
			OwnerID: ownerID,
			Row:     clamp(center.Row+l.DRow, 0, boardSize-1),
			Col:     clamp(center.Col+l.DCol, 0, boardSize-1),
			Movable: true,
		})
	}
	return pieces
}
