package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/studiofx/internal/analysis"
	"github.com/san-kum/studiofx/internal/surface"
)

// FrameToSVG converts the drawing calls of one recorded frame to SVG. Every
// gradient fill gets its own radialGradient definition.
func FrameToSVG(width, height int, ops []surface.Op) string {
	var defs, body strings.Builder
	grad := 0

	gradient := func(g surface.RadialGradient) string {
		id := fmt.Sprintf("g%d", grad)
		grad++
		defs.WriteString(fmt.Sprintf(`<radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%.2f" cy="%.2f" r="%.2f">
<stop offset="0" stop-color="%s" stop-opacity="%.3f"/>
<stop offset="1" stop-color="%s" stop-opacity="0"/>
</radialGradient>
`, id, g.Center.X, g.Center.Y, g.Radius, g.Color.Hex(), g.Color.A, g.Color.Hex()))
		return id
	}

	for _, op := range ops {
		switch op.Kind {
		case surface.OpRect:
			body.WriteString(fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" fill-opacity="%.3f"/>
`, op.Points[0].X, op.Points[0].Y, op.Points[1].X, op.Points[1].Y, op.Color.Hex(), op.Color.A))
		case surface.OpCircle:
			id := gradient(op.Gradient)
			body.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="url(#%s)"/>
`, op.Points[0].X, op.Points[0].Y, op.Radius, id))
		case surface.OpLine:
			body.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f"/>
`, op.Points[0].X, op.Points[0].Y, op.Points[1].X, op.Points[1].Y, op.Color.Hex(), op.Color.A, op.Width))
		case surface.OpTriangle:
			id := gradient(op.Gradient)
			body.WriteString(fmt.Sprintf(`<polygon points="%.2f,%.2f %.2f,%.2f %.2f,%.2f" fill="url(#%s)"/>
`, op.Points[0].X, op.Points[0].Y, op.Points[1].X, op.Points[1].Y, op.Points[2].X, op.Points[2].Y, id))
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#000000"/>
`, width, height, width, height))
	if defs.Len() > 0 {
		sb.WriteString("<defs>\n")
		sb.WriteString(defs.String())
		sb.WriteString("</defs>\n")
	}
	sb.WriteString(body.String())
	sb.WriteString("</svg>")
	return sb.String()
}

// PathToSVG draws an item's offset path scaled to fit, y growing downward as
// on screen.
func PathToSVG(path *analysis.Path, width, height int, strokeColor string) string {
	if path == nil || len(path.Points) < 2 {
		return ""
	}
	points := path.Points

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
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

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := (p.Y - minY) / rangeY * float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
