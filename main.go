package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"royale-chess/internal/config"
	"royale-chess/internal/game"
)

// Offline simulator: runs a two-player match against the engine directly and
// prints what happens, no server required.
func main() {
	cfg := config.Load()
	m := game.NewMatch(cfg, time.Now().UnixNano())

	alice, _, err := m.AddPlayer("sess-alice", "Alice", true)
	if err != nil {
		panic(err)
	}
	bob, _, err := m.AddPlayer("sess-bob", "Bob", false)
	if err != nil {
		panic(err)
	}
	if err := m.Start(alice.ID); err != nil {
		panic(err)
	}
	fmt.Printf("match started: %d pieces on the board\n", len(alice.Pieces)+len(bob.Pieces))

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for turn := 0; turn < 2000 && m.Phase == game.PhasePlaying; turn++ {
		for _, p := range []*game.Player{alice, bob} {
			if !p.Alive || len(p.Pieces) == 0 {
				continue
			}
			pc := p.Pieces[rng.Intn(len(p.Pieces))]
			toRow := pc.Row + rng.Intn(7) - 3
			toCol := pc.Col + rng.Intn(7) - 3
			res, ok := m.AttemptMove(p.ID, pc.ID, toRow, toCol)
			if !ok {
				continue
			}
			if res.Captured != nil {
				fmt.Printf("%s's %s takes %s at (%d,%d)\n",
					p.Name, pc.Type, res.Captured.Type, res.ToRow, res.ToCol)
			}
			m.CheckWin()
			// no real clock here, release the cooldown immediately
			m.ExpireCooldown(pc.ID)
		}
		if res := m.ShrinkTick(); len(res.Eliminated) > 0 {
			fmt.Printf("shrink claims %d piece(s), %d danger zones total\n",
				len(res.Eliminated), len(m.DangerZones))
			m.CheckWin()
		}
	}

	snap := m.Snapshot()
	summary := map[string]interface{}{
		"phase":       snap.Phase,
		"turnCounter": snap.TurnCounter,
		"dangerZones": len(snap.DangerZones),
		"woods":       len(snap.Woods),
		"players":     snap.Players,
	}
	js, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(js))
}
