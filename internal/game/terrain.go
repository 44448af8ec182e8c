package game

import "math/rand"

const (
	patchSizeMin = 3
	patchSizeMax = 10
	patchSpread  = 3
)

// GenerateWoods produces the static obstruction field: density*size*size seed
// draws, each splattering a small patch of offsets around a random center.
// Out-of-bounds splatters are dropped, duplicates collapse into the set.
func GenerateWoods(size int, density float64, rng *rand.Rand) CoordSet {
	woods := NewCoordSet()
	seeds := int(float64(size*size) * density)
	for i := 0; i < seeds; i++ {
		center := Coord{Row: rng.Intn(size), Col: rng.Intn(size)}
		patch := patchSizeMin + rng.Intn(patchSizeMax-patchSizeMin+1)
		for j := 0; j < patch; j++ {
			c := Coord{
				Row: center.Row + rng.Intn(2*patchSpread+1) - patchSpread,
				Col: center.Col + rng.Intn(2*patchSpread+1) - patchSpread,
			}
			if c.Row >= 0 && c.Row < size && c.Col >= 0 && c.Col < size {
				woods.Add(c)
			}
		}
	}
	return woods
}
