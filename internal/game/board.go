package game

// Coord addresses a single board cell by row and column.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// CoordSet provides O(1) membership over coordinates.
type CoordSet map[Coord]struct{}

func NewCoordSet() CoordSet {
	return make(CoordSet)
}

func (s CoordSet) Add(c Coord) {
	s[c] = struct{}{}
}

func (s CoordSet) Has(c Coord) bool {
	_, ok := s[c]
	return ok
}

func (s CoordSet) List() []Coord {
	out := make([]Coord, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	return out
}

// Cell is one board slot. The Woods flag mirrors the room's woods set for
// rendering; the authoritative obstruction check is the set itself.
type Cell struct {
	Piece *Piece
	Woods bool
}

type Board struct {
	Size  int
	Cells [][]Cell
}

func NewBoard(size int) *Board {
	c := make([][]Cell, size)
	for i := range c {
		c[i] = make([]Cell, size)
	}
	return &Board{Size: size, Cells: c}
}

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.Size && col >= 0 && col < b.Size
}

func (b *Board) PieceAt(row, col int) *Piece {
	if !b.InBounds(row, col) {
		return nil
	}
	return b.Cells[row][col].Piece
}

func (b *Board) Place(p *Piece, row, col int) {
	b.Cells[row][col].Piece = p
	p.Row = row
	p.Col = col
}

func (b *Board) Clear(row, col int) {
	if b.InBounds(row, col) {
		b.Cells[row][col].Piece = nil
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
