// Package level builds the obstacle timeline a run scrolls through.
package level

import (
	"fmt"

	"github.com/vovakirdan/hexlanes/internal/core"
	"github.com/vovakirdan/hexlanes/internal/patterns"
)

// Cell is the obstacle at one lane and timeline position.
type Cell = patterns.Symbol

// Cell values.
const (
	None   = patterns.SymbolNone
	Wall   = patterns.SymbolWall
	Hurdle = patterns.SymbolHurdle
)

// Timeline holds cells[lane][position] for a fixed number of positions.
type Timeline struct {
	lanes  int
	length int
	cells  [][]Cell
}

// NewTimeline creates an empty timeline.
func NewTimeline(lanes, length int) (*Timeline, error) {
	if lanes < patterns.LanesMin || lanes > patterns.LanesMax {
		return nil, fmt.Errorf("level: %w: %d", patterns.ErrLaneCount, lanes)
	}
	if length <= 0 {
		return nil, fmt.Errorf("level: length must be positive, got %d", length)
	}

	cells := make([][]Cell, lanes)
	for i := range cells {
		cells[i] = make([]Cell, length)
	}
	return &Timeline{lanes: lanes, length: length, cells: cells}, nil
}

// Lanes returns the lane count.
func (t *Timeline) Lanes() int { return t.lanes }

// Length returns the number of positions.
func (t *Timeline) Length() int { return t.length }

// At returns the cell at (lane, pos). The lane wraps around the ring;
// positions outside the timeline are empty.
func (t *Timeline) At(lane, pos int) Cell {
	if pos < 0 || pos >= t.length {
		return None
	}
	return t.cells[core.Mod(lane, t.lanes)][pos]
}

// Place stamps p onto the timeline with its first row at pos. Pattern lane k
// lands on lane (lane0 + dir*k) mod Lanes, so dir = -1 mirrors the pattern.
// Empty symbols never overwrite, and rows past the end are dropped.
func (t *Timeline) Place(p patterns.Pattern, pos, lane0, dir int) {
	for j, row := range p.Rows {
		at := pos + j
		if at < 0 || at >= t.length {
			continue
		}
		for k, s := range row {
			if s == None {
				continue
			}
			t.cells[core.Mod(lane0+dir*k, t.lanes)][at] = s
		}
	}
}

// Row returns the cells of every lane at pos.
func (t *Timeline) Row(pos int) []Cell {
	row := make([]Cell, t.lanes)
	for lane := range row {
		row[lane] = t.At(lane, pos)
	}
	return row
}

// String renders the timeline one position per line, lanes left to right,
// in pattern file notation.
func (t *Timeline) String() string {
	buf := make([]byte, 0, t.length*(t.lanes+1))
	for pos := 0; pos < t.length; pos++ {
		for lane := 0; lane < t.lanes; lane++ {
			buf = append(buf, t.cells[lane][pos].String()...)
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
