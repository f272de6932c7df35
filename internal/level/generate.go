package level

import (
	"fmt"

	"github.com/vovakirdan/hexlanes/internal/patterns"
)

// Default generation parameters.
const (
	DefaultIntroLength = 4
	DefaultLength      = 300
)

// Rand is the randomness the generator draws from. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Params controls generation.
type Params struct {
	IntroLength int // Empty positions before the first pattern
	Length      int // Total positions
}

// DefaultParams returns the standard level shape.
func DefaultParams() Params {
	return Params{IntroLength: DefaultIntroLength, Length: DefaultLength}
}

// Placement records where one pattern was stamped.
type Placement struct {
	Pattern int // Index into the catalog
	Pos     int
	Lane0   int
	Dir     int
}

// Generate fills a timeline by stitching random catalog patterns end to end.
// Each pattern gets a random starting lane and direction. Generation stops at
// the first pattern that would reach the last position; everything after it
// stays empty.
func Generate(cat *patterns.Catalog, rng Rand, p Params) (*Timeline, error) {
	t, _, err := GenerateTrace(cat, rng, p)
	return t, err
}

// GenerateTrace is Generate that also returns the placements it made.
func GenerateTrace(cat *patterns.Catalog, rng Rand, p Params) (*Timeline, []Placement, error) {
	if len(cat.Patterns) == 0 {
		return nil, nil, fmt.Errorf("level: %w", patterns.ErrEmptyCatalog)
	}
	if p.IntroLength < 0 || p.IntroLength > p.Length {
		return nil, nil, fmt.Errorf("level: intro length %d not in [0, %d]", p.IntroLength, p.Length)
	}

	t, err := NewTimeline(cat.Lanes, p.Length)
	if err != nil {
		return nil, nil, err
	}

	var placed []Placement
	for pos := p.IntroLength; ; {
		idx := rng.Intn(len(cat.Patterns))
		lane0 := rng.Intn(cat.Lanes)
		dir := -1 + 2*rng.Intn(2)

		pat := cat.Patterns[idx]
		if pos+pat.Len() >= p.Length {
			break
		}

		t.Place(pat, pos, lane0, dir)
		placed = append(placed, Placement{Pattern: idx, Pos: pos, Lane0: lane0, Dir: dir})
		pos += pat.Len()
	}
	return t, placed, nil
}
