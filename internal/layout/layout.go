// Package layout computes the home positions of logo items inside their
// container.
package layout

import (
	"fmt"
	"math"

	"github.com/san-kum/studiofx/internal/dynamo"
)

// Responsive breakpoints of the flow grid, in container pixels.
const (
	smallBreakpoint  = 640
	mediumBreakpoint = 768
)

// GridColumns returns the column count and gap the flow grid uses at width.
func GridColumns(width float64) (int, float64) {
	switch {
	case width < smallBreakpoint:
		return 4, 16
	case width < mediumBreakpoint:
		return 6, 16
	default:
		return 8, 24
	}
}

// Grid places n square cells row-major in cols columns across width, with gap
// between cells and top padding above the first row. It returns each cell's
// centre and the cell side.
func Grid(n, cols int, width, gap, top float64) ([]dynamo.Vec, float64) {
	if n <= 0 || cols <= 0 {
		return nil, 0
	}
	cell := (width - gap*float64(cols-1)) / float64(cols)
	if cell < 0 {
		cell = 0
	}
	out := make([]dynamo.Vec, n)
	for i := range out {
		row, col := i/cols, i%cols
		out[i] = dynamo.Vec{
			X: float64(col)*(cell+gap) + cell/2,
			Y: top + float64(row)*(cell+gap) + cell/2,
		}
	}
	return out, cell
}

// Honeycomb places n items of side item in rows of perRow, shifting odd rows
// by half a column. Columns sit 0.9 item apart and rows 0.75 item, so
// neighbours overlap like cells of a comb.
func Honeycomb(n, perRow int, item float64) []dynamo.Vec {
	if n <= 0 || perRow <= 0 {
		return nil
	}
	h, v := item*0.9, item*0.75
	out := make([]dynamo.Vec, n)
	for i := range out {
		row, col := i/perRow, i%perRow
		x := float64(col) * h
		if row%2 == 1 {
			x += h / 2
		}
		out[i] = dynamo.Vec{X: x + item/2, Y: float64(row)*v + item/2}
	}
	return out
}

// HoneycombSize is the container a honeycomb of n items needs.
func HoneycombSize(n, perRow int, item float64) (float64, float64) {
	if n <= 0 || perRow <= 0 {
		return 0, 0
	}
	h, v := item*0.9, item*0.75
	rows := math.Ceil(float64(n) / float64(perRow))
	return float64(perRow)*h + h/2, rows*v + item
}

const (
	KindGrid      = "grid"
	KindHoneycomb = "honeycomb"
)

type Config struct {
	Kind  string `yaml:"kind"`
	Count int    `yaml:"count"`
	// Width is the container width of the flow grid.
	Width float64 `yaml:"width"`
	// Columns and Gap override the responsive grid when positive.
	Columns    int     `yaml:"columns"`
	Gap        float64 `yaml:"gap"`
	PaddingTop float64 `yaml:"padding_top"`
	// Item and PerRow size the honeycomb.
	Item   float64 `yaml:"item"`
	PerRow int     `yaml:"per_row"`
}

func DefaultConfig() Config {
	return Config{
		Kind:       KindGrid,
		Count:      16,
		Width:      1152,
		PaddingTop: 48,
		Item:       96,
		PerRow:     8,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Kind != KindGrid && c.Kind != KindHoneycomb:
		return fmt.Errorf("%w: layout kind %q", dynamo.ErrParameterBounds, c.Kind)
	case c.Count <= 0:
		return fmt.Errorf("%w: layout count %d", dynamo.ErrParameterBounds, c.Count)
	case c.Kind == KindGrid && c.Width <= 0:
		return fmt.Errorf("%w: grid width %f", dynamo.ErrParameterBounds, c.Width)
	case c.Columns < 0 || c.Gap < 0 || c.PaddingTop < 0:
		return fmt.Errorf("%w: grid columns=%d gap=%f padding=%f", dynamo.ErrParameterBounds, c.Columns, c.Gap, c.PaddingTop)
	case c.Kind == KindHoneycomb && (c.Item <= 0 || c.PerRow <= 0):
		return fmt.Errorf("%w: honeycomb item=%f per_row=%d", dynamo.ErrParameterBounds, c.Item, c.PerRow)
	}
	return nil
}

// Placement is a computed layout: item centres, the item side and the
// container size, all in container coordinates.
type Placement struct {
	Homes         []dynamo.Vec
	Cell          float64
	Width, Height float64
}

func (c Config) Place() (Placement, error) { return c.PlaceIn(c.Width) }

// PlaceIn lays the items out in a container no wider than avail. The flow grid
// takes min(Width, avail) and picks its columns for that width; the honeycomb
// ignores avail.
func (c Config) PlaceIn(avail float64) (Placement, error) {
	if err := c.Validate(); err != nil {
		return Placement{}, err
	}
	if c.Kind == KindHoneycomb {
		w, h := HoneycombSize(c.Count, c.PerRow, c.Item)
		return Placement{Homes: Honeycomb(c.Count, c.PerRow, c.Item), Cell: c.Item, Width: w, Height: h}, nil
	}

	width := c.Width
	if avail > 0 {
		width = min(width, avail)
	}
	cols, gap := GridColumns(width)
	if c.Columns > 0 {
		cols = c.Columns
	}
	if c.Gap > 0 {
		gap = c.Gap
	}
	homes, cell := Grid(c.Count, cols, width, gap, c.PaddingTop)
	rows := (c.Count + cols - 1) / cols
	height := c.PaddingTop + float64(rows)*cell + float64(rows-1)*gap
	return Placement{Homes: homes, Cell: cell, Width: width, Height: height}, nil
}
