package analysis

import (
	"math"
	"strings"
)

// Point2 is one sample of a path.
type Point2 struct{ X, Y float64 }

// Path is the trajectory of one entity in snapshot space.
type Path struct {
	Entity int
	Points []Point2
}

// TracePath pulls entity's (xOff, yOff) components out of every snapshot,
// e.g. a flock item's offset from home.
func TracePath(states [][]float64, stride, entity, xOff, yOff int) *Path {
	xi, yi := entity*stride+xOff, entity*stride+yOff
	p := &Path{Entity: entity, Points: make([]Point2, 0, len(states))}
	for _, s := range states {
		if xi >= len(s) || yi >= len(s) {
			continue
		}
		p.Points = append(p.Points, Point2{X: s[xi], Y: s[yi]})
	}
	return p
}

// Extent returns the largest distance of the path from the origin.
func (p *Path) Extent() float64 {
	best := 0.0
	for _, pt := range p.Points {
		if d := pt.X*pt.X + pt.Y*pt.Y; d > best {
			best = d
		}
	}
	return math.Sqrt(best)
}

// PathToASCII plots the path on a width×height character grid with the axes
// through the origin drawn where visible. Screen y grows downward, so does
// the plot.
func PathToASCII(path *Path, width, height int) string {
	if path == nil || len(path.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := path.Points[0].X, path.Points[0].X
	minY, maxY := path.Points[0].Y, path.Points[0].Y
	for _, p := range path.Points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			canvas[row][col] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := int((0 - minY) / rangeY * float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == '│' {
				canvas[row][col] = '┼'
			} else {
				canvas[row][col] = '─'
			}
		}
	}

	for _, p := range path.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := int((p.Y - minY) / rangeY * float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
