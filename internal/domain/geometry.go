package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	axisZ = r3.Vec{Z: 1}
	axisX = r3.Vec{X: 1}
)

// LatticeXY maps a lattice (row, col) to the Cartesian position of the
// helix axis in the plane perpendicular to the helices.
func LatticeXY(l Lattice, row, col int, p Parameters) (x, y float64) {
	r := p.HelixDistance / 2
	switch l {
	case LatticeSquare:
		return float64(col) * 2 * r, -float64(row) * 2 * r
	default:
		x = float64(col) * r * math.Sqrt(3)
		y = float64(row) * 3 * r
		if oddParity(row, col) {
			y += r
		}
		return x, -y
	}
}

// oddParity follows the caDNAno convention: odd helices run their scaffold 3'->5'
func oddParity(row, col int) bool {
	return (row%2 == 0) != (col%2 == 0)
}

// newHelix computes the axis frame of a design helix
func newHelix(h *DesignHelix, loadOrder int, l Lattice, p Parameters) (Helix, error) {
	if h.Row < 0 || h.Col < 0 {
		return Helix{}, fmt.Errorf("helix %d has invalid lattice coordinate (%d, %d)", h.Num, h.Row, h.Col)
	}
	x, y := LatticeXY(l, h.Row, h.Col, p)

	// Antiparallel neighbours start half a turn apart so their backbones face each other.
	phase := 0.0
	if oddParity(h.Row, h.Col) {
		phase = math.Pi
	}

	size := h.Size()
	mods := make([]int, size)
	for pos := range size {
		mods[pos] = slotModifier(h, pos)
	}

	return Helix{
		Num:       h.Num,
		Row:       h.Row,
		Col:       h.Col,
		LoadOrder: loadOrder,
		Size:      size,
		Modifiers: mods,
		Origin:    r3.Vec{X: x, Y: y},
		Axis:      axisZ,
		Reference: r3.NewRotation(phase, axisZ).Rotate(axisX),
	}, nil
}

// slotModifier merges the per-track markers; caDNAno stores one loop/skip
// array per helix so both tracks normally agree.
func slotModifier(h *DesignHelix, pos int) int {
	if m := h.Slot(TrackScaffold, pos).Modifier; m != 0 {
		return m
	}
	return h.Slot(TrackStaple, pos).Modifier
}

// BasePosition returns the backbone coordinate of the offset-th base of a
// slot holding count bases. Inserted bases share the slot's rise and twist.
func (h *Helix) BasePosition(p Parameters, l Lattice, track Track, pos, offset, count int) r3.Vec {
	t := float64(pos)
	if count > 1 {
		t += float64(offset) / float64(count)
	}
	angle := t * p.Twist(l) * math.Pi / 180
	if track == TrackStaple {
		angle += p.MinorGrooveAngle * math.Pi / 180
	}
	radial := r3.NewRotation(angle, h.Axis).Rotate(h.Reference)
	point := r3.Add(h.Origin, r3.Scale(t*p.BaseRise, h.Axis))
	return r3.Add(point, r3.Scale(p.HelixRadius(), radial))
}

// AxisPoint returns the helix axis point at a lattice position
func (h *Helix) AxisPoint(p Parameters, pos int) r3.Vec {
	return r3.Add(h.Origin, r3.Scale(float64(pos)*p.BaseRise, h.Axis))
}
