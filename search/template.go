// Package search holds the compiled, matcher-facing form of a
// fingerprint template. Compiling adds a spatial bucket grid so a
// matching engine can run neighbor queries without scanning every
// minutia; decompiling recovers the canonical template exactly,
// indices discarded. Compiled templates are never serialized directly.
package search

import (
	"fmt"

	"github.com/emirpasic/gods/maps/hashmap"
	"golang.org/x/exp/slices"

	"github.com/high-horse/afis/templates"
)

// cellSize is the edge length in pixels of one grid bucket. 32 px keeps
// buckets around one ridge period wide at 500 dpi.
const cellSize = 32

// Template is the compiled form. It keeps the canonical fields
// verbatim, minutia order included, and owns a bucket grid keyed by
// cell coordinates. Immutable after Compile and safe for concurrent
// reads.
type Template struct {
	width   int
	height  int
	dpi     int
	pattern templates.PatternClass

	minutiae    []templates.Minutia
	ridgeCounts []templates.RidgeCount

	grid *hashmap.Map // cell key -> []int minutia indices
}

func cellKey(x, y int) int64 {
	return int64(y/cellSize)<<32 | int64(x/cellSize)
}

// Compile builds the runtime template from a canonical one. Geometry
// the matcher cannot work with is rejected rather than corrected: two
// minutiae on the same pixel yield a DecodeError.
func Compile(t *templates.Template) (*Template, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	grid := hashmap.New()
	seen := make(map[[2]int]int, len(t.Minutiae))
	for i, m := range t.Minutiae {
		at := [2]int{m.X, m.Y}
		if j, ok := seen[at]; ok {
			return nil, &templates.DecodeError{
				Format: "search",
				Field:  "minutiae",
				Offset: -1,
				Reason: fmt.Sprintf("minutiae %d and %d coincide at (%d,%d)", j, i, m.X, m.Y),
			}
		}
		seen[at] = i
		key := cellKey(m.X, m.Y)
		var bucket []int
		if v, ok := grid.Get(key); ok {
			bucket = v.([]int)
		}
		grid.Put(key, append(bucket, i))
	}
	c := t.Clone()
	return &Template{
		width:       c.Width,
		height:      c.Height,
		dpi:         c.Dpi,
		pattern:     c.Pattern,
		minutiae:    c.Minutiae,
		ridgeCounts: c.RidgeCounts,
		grid:        grid,
	}, nil
}

// Canonical rebuilds the format-neutral template this one was compiled
// from. Every canonical field survives exactly, including minutia
// order; only the grid is discarded.
func (t *Template) Canonical() *templates.Template {
	c := &templates.Template{
		Width:       t.width,
		Height:      t.height,
		Dpi:         t.dpi,
		Pattern:     t.pattern,
		Minutiae:    t.minutiae,
		RidgeCounts: t.ridgeCounts,
	}
	return c.Clone()
}

// Clone returns a structurally independent copy, grid included.
func (t *Template) Clone() *Template {
	c, err := Compile(t.Canonical())
	if err != nil {
		// a compiled template always recompiles
		panic(err)
	}
	return c
}

func (t *Template) Width() int                      { return t.width }
func (t *Template) Height() int                     { return t.height }
func (t *Template) Dpi() int                        { return t.dpi }
func (t *Template) Pattern() templates.PatternClass { return t.pattern }

// Len returns the number of minutiae.
func (t *Template) Len() int { return len(t.minutiae) }

// Minutia returns the minutia at index i in canonical order.
func (t *Template) Minutia(i int) templates.Minutia { return t.minutiae[i] }

// Neighbors returns the indices of all minutiae within radius pixels of
// (x, y), in ascending index order. Only grid cells overlapping the
// query square are visited.
func (t *Template) Neighbors(x, y, radius int) []int {
	if radius < 0 {
		return nil
	}
	loX, hiX := x-radius, x+radius
	loY, hiY := y-radius, y+radius
	if loX < 0 {
		loX = 0
	}
	if loY < 0 {
		loY = 0
	}
	var out []int
	rr := radius * radius
	for cy := loY / cellSize; cy <= hiY/cellSize; cy++ {
		for cx := loX / cellSize; cx <= hiX/cellSize; cx++ {
			v, ok := t.grid.Get(int64(cy)<<32 | int64(cx))
			if !ok {
				continue
			}
			for _, i := range v.([]int) {
				dx, dy := t.minutiae[i].X-x, t.minutiae[i].Y-y
				if dx*dx+dy*dy <= rr {
					out = append(out, i)
				}
			}
		}
	}
	slices.Sort(out)
	return out
}
