package game

// ShrinkResult reports the outcome of one scheduler tick.
type ShrinkResult struct {
	Fired      bool
	Claimed    []Coord
	Eliminated []*Piece
}

// ShrinkTick decrements the countdown and, when it runs out, converts up to
// ShrinkCellsPerEvent cells of the original outer ring into danger zones,
// eliminating any occupants. Once the ring is exhausted the event is a
// no-op. After the first firing the countdown restarts at the short repeat
// interval, so later shrinks come back-to-back.
func (m *Match) ShrinkTick() ShrinkResult {
	if m.Phase != PhasePlaying {
		return ShrinkResult{}
	}
	m.ShrinkCountdown--
	if m.ShrinkCountdown > 0 {
		return ShrinkResult{}
	}
	m.ShrinkCountdown = m.cfg.ShrinkRepeatSeconds

	res := ShrinkResult{Fired: true}
	candidates := m.openBorderCells()
	for i := 0; i < m.cfg.ShrinkCellsPerEvent && len(candidates) > 0; i++ {
		idx := m.rng.Intn(len(candidates))
		c := candidates[idx]
		candidates[idx] = candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]

		m.DangerZones.Add(c)
		res.Claimed = append(res.Claimed, c)
		if pc := m.Board.PieceAt(c.Row, c.Col); pc != nil {
			res.Eliminated = append(res.Eliminated, pc)
			m.RemovePiece(pc)
		}
	}
	return res
}

// openBorderCells lists the original outer-ring coordinates not yet claimed.
// The ring never moves inward.
func (m *Match) openBorderCells() []Coord {
	size := m.Board.Size
	out := make([]Coord, 0, 4*size-4)
	appendOpen := func(c Coord) {
		if !m.DangerZones.Has(c) {
			out = append(out, c)
		}
	}
	for col := 0; col < size; col++ {
		appendOpen(Coord{Row: 0, Col: col})
		appendOpen(Coord{Row: size - 1, Col: col})
	}
	for row := 1; row < size-1; row++ {
		appendOpen(Coord{Row: row, Col: 0})
		appendOpen(Coord{Row: row, Col: size - 1})
	}
	return out
}
