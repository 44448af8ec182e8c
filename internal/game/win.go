package game

// WinResult carries the outcome of an elimination check.
type WinResult struct {
	Ended  bool
	Winner *Player // nil on simultaneous elimination
}

// CheckWin evaluates elimination state after a capture, shrink elimination,
// or player removal. When at most one player is left alive with pieces the
// match ends. Calling it again after the match ended is a no-op.
func (m *Match) CheckWin() WinResult {
	if m.Phase != PhasePlaying {
		return WinResult{}
	}
	var survivor *Player
	count := 0
	for _, p := range m.Players {
		if p.Alive && len(p.Pieces) > 0 {
			survivor = p
			count++
		}
	}
	if count > 1 {
		return WinResult{}
	}
	m.Phase = PhaseEnded
	if count == 0 {
		survivor = nil
	}
	return WinResult{Ended: true, Winner: survivor}
}
