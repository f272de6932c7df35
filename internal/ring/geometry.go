// Package ring precomputes the polar layout of the playfield: which lane
// every pixel belongs to, how far it lies along that lane's axis, and which
// band that distance falls into. The table is pure geometry and carries no
// obstacle data, so it is reused across restarts with the same lane count.
package ring

import (
	"fmt"
	"math"
)

// Dims describes the radial layout of the playfield in pixels.
type Dims struct {
	InnerSpread   int // Radius of the inner disk
	BorderSize    int // Width of the ring around the inner disk
	BandSize      int // Radial length of one band (one timeline position)
	NBands        int // Bands visible between the border and the canvas edge
	BandThickness int // Drawn thickness of an isolated obstacle
}

// DefaultDims returns the layout the game is tuned for.
func DefaultDims() Dims {
	return Dims{
		InnerSpread:   32,
		BorderSize:    16,
		BandSize:      32,
		NBands:        7,
		BandThickness: 16,
	}
}

// Size returns the side of the square canvas.
func (d Dims) Size() int {
	return 2*d.InnerSpread + 2*d.BorderSize + 2*d.NBands*d.BandSize
}

// InnerBorder returns the distance at which the outer (band) region starts.
func (d Dims) InnerBorder() int {
	return d.InnerSpread + d.BorderSize
}

// Validate checks that the dimensions describe a drawable canvas.
func (d Dims) Validate() error {
	if d.InnerSpread < 0 || d.BorderSize < 0 {
		return fmt.Errorf("ring: negative inner spread or border size")
	}
	if d.BandSize <= 0 || d.NBands <= 0 {
		return fmt.Errorf("ring: band size and band count must be positive")
	}
	if d.BandThickness <= 0 || d.BandThickness > d.BandSize {
		return fmt.Errorf("ring: band thickness must be in [1, %d]", d.BandSize)
	}
	return nil
}

// Zone classifies a pixel by radial distance.
type Zone uint8

const (
	ZoneInner  Zone = iota // Inside the inner disk
	ZoneBorder             // On the border ring
	ZoneOuter              // In the banded region
)

// Table holds the per-pixel lane, distance and band for one lane count.
type Table struct {
	dims   Dims
	lanes  int
	width  int
	height int
	lane   []int
	dist   []float64
	band   []int
}

// Build computes the table for nlanes lanes on a canvas sized by d.
//
// Angles run clockwise from straight up. The circle is split into 2*nlanes
// half-wedges and adjacent pairs are merged, offset by one half-wedge, so
// each lane's sector is centered on its own axis. Distance is the signed
// projection onto that axis rather than the Euclidean radius, which turns
// the bands into straight segments and the ring into a polygon.
func Build(nlanes int, d Dims) *Table {
	size := d.Size()
	t := &Table{
		dims:   d,
		lanes:  nlanes,
		width:  size,
		height: size,
		lane:   make([]int, size*size),
		dist:   make([]float64, size*size),
		band:   make([]int, size*size),
	}

	wedgeAngle := math.Pi / float64(nlanes)
	laneAngle := 2 * math.Pi / float64(nlanes)
	innerBorder := float64(d.InnerBorder())

	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			dx := float64(x) - float64(t.width-1)/2
			dy := float64(y) - float64(t.height-1)/2

			theta := math.Atan2(dx, dy) + math.Pi
			wedge := int(theta / wedgeAngle)
			lane := ((wedge + 1) % (2 * nlanes)) / 2

			rho := float64(lane) * laneAngle
			dist := -math.Sin(rho)*dx - math.Cos(rho)*dy

			band := 0
			if dist >= innerBorder {
				band = int((dist - innerBorder) / float64(d.BandSize))
			}

			i := y*t.width + x
			t.lane[i] = lane
			t.dist[i] = dist
			t.band[i] = band
		}
	}
	return t
}

// Lanes returns the lane count the table was built for.
func (t *Table) Lanes() int { return t.lanes }

// Dims returns the layout the table was built with.
func (t *Table) Dims() Dims { return t.dims }

// Width returns the canvas width in pixels.
func (t *Table) Width() int { return t.width }

// Height returns the canvas height in pixels.
func (t *Table) Height() int { return t.height }

// Lane returns the lane index of pixel (x, y).
func (t *Table) Lane(x, y int) int { return t.lane[y*t.width+x] }

// Dist returns the signed distance of pixel (x, y) along its lane's axis.
func (t *Table) Dist(x, y int) float64 { return t.dist[y*t.width+x] }

// Band returns the band index of pixel (x, y); 0 inside the border.
func (t *Table) Band(x, y int) int { return t.band[y*t.width+x] }

// Zone classifies pixel (x, y) as inner disk, border ring or banded region.
func (t *Table) Zone(x, y int) Zone {
	dist := t.Dist(x, y)
	switch {
	case dist < float64(t.dims.InnerSpread):
		return ZoneInner
	case dist < float64(t.dims.InnerBorder()):
		return ZoneBorder
	default:
		return ZoneOuter
	}
}

// InBand returns how far pixel (x, y) lies past the inner edge of its band.
// Only meaningful in the outer zone.
func (t *Table) InBand(x, y int) float64 {
	outer := t.Dist(x, y) - float64(t.dims.InnerBorder())
	return outer - float64(t.dims.BandSize*t.Band(x, y))
}
