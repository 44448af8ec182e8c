package game

import (
	"math"
	"math/rand"
)

// PlaceSpawns picks one starting center per player. Each center is drawn from
// the inset region and must keep a minimum Euclidean distance from every
// earlier center; when the attempt budget runs out the center falls back to a
// random point on one of the four sides of the inset region, accepted
// unconditionally, so every player always receives a spawn.
func PlaceSpawns(count, size, inset, attempts int, minDist float64, rng *rand.Rand) []Coord {
	accepted := make([]Coord, 0, count)
	for i := 0; i < count; i++ {
		accepted = append(accepted, drawSpawn(accepted, size, inset, attempts, minDist, rng))
	}
	return accepted
}

func drawSpawn(taken []Coord, size, inset, attempts int, minDist float64, rng *rand.Rand) Coord {
	span := size - 2*inset
	for a := 0; a < attempts; a++ {
		c := Coord{
			Row: inset + rng.Intn(span),
			Col: inset + rng.Intn(span),
		}
		ok := true
		for _, t := range taken {
			if euclidean(c, t) < minDist {
				ok = false
				break
			}
		}
		if ok {
			return c
		}
	}
	// Budget exhausted: pin to a random side of the inset region.
	switch rng.Intn(4) {
	case 0:
		return Coord{Row: inset, Col: rng.Intn(size)}
	case 1:
		return Coord{Row: size - inset, Col: rng.Intn(size)}
	case 2:
		return Coord{Row: rng.Intn(size), Col: inset}
	default:
		return Coord{Row: rng.Intn(size), Col: size - inset}
	}
}

func euclidean(a, b Coord) float64 {
	dr := float64(a.Row - b.Row)
	dc := float64(a.Col - b.Col)
	return math.Sqrt(dr*dr + dc*dc)
}
