package game

// Snapshot is the only externally observable shape of a room. Players carry
// a piece count rather than their piece lists; positions travel on move
// broadcasts only.
type Snapshot struct {
	Phase           string           `json:"phase"`
	Players         []PlayerSnapshot `json:"players"`
	BoardSize       int              `json:"boardSize"`
	Woods           []Coord          `json:"woods"`
	DangerZones     []Coord          `json:"dangerZones"`
	ShrinkCountdown int              `json:"shrinkCountdown"`
	TurnCounter     int              `json:"turnCounter"`
}

type PlayerSnapshot struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	IsAdmin    bool   `json:"isAdmin"`
	Alive      bool   `json:"alive"`
	Connected  bool   `json:"connected"`
	PieceCount int    `json:"pieceCount"`
}

// PlayerDetail is the joining caller's own record: the snapshot row plus the
// full piece list, so a reconnecting client can restore its units.
type PlayerDetail struct {
	PlayerSnapshot
	Pieces []PieceSnapshot `json:"pieces"`
}

type PieceSnapshot struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Color   string `json:"color"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Movable bool   `json:"movable"`
}

func (m *Match) Snapshot() Snapshot {
	s := Snapshot{
		Phase:           string(m.Phase),
		Players:         make([]PlayerSnapshot, 0, len(m.Players)),
		BoardSize:       m.Board.Size,
		Woods:           m.Woods.List(),
		DangerZones:     m.DangerZones.List(),
		ShrinkCountdown: m.ShrinkCountdown,
		TurnCounter:     m.TurnCounter,
	}
	for _, id := range m.playerIDs() {
		s.Players = append(s.Players, m.Players[id].snapshotRow())
	}
	return s
}

func (m *Match) PlayerDetail(playerID string) (PlayerDetail, bool) {
	p, ok := m.Players[playerID]
	if !ok {
		return PlayerDetail{}, false
	}
	d := PlayerDetail{
		PlayerSnapshot: p.snapshotRow(),
		Pieces:         make([]PieceSnapshot, 0, len(p.Pieces)),
	}
	for _, pc := range p.Pieces {
		d.Pieces = append(d.Pieces, PieceSnapshot{
			ID:      pc.ID,
			Type:    string(pc.Type),
			Color:   pc.Color,
			Row:     pc.Row,
			Col:     pc.Col,
			Movable: pc.Movable,
		})
	}
	return d, true
}

func (p *Player) snapshotRow() PlayerSnapshot {
	return PlayerSnapshot{
		ID:         p.ID,
		Name:       p.Name,
		Color:      p.Color,
		IsAdmin:    p.IsAdmin,
		Alive:      p.Alive,
		Connected:  p.Connected,
		PieceCount: len(p.Pieces),
	}
}
