// Package export renders analysis results to standalone SVG documents,
// for sharing outside the terminal.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/phaseplane/internal/store"
)

const (
	background  = "#0a0a0a"
	xNullColor  = "#00ffff"
	yNullColor  = "#ff00ff"
	stableCol   = "#00ff00"
	unstableCol = "#ff5555"
	fpColor     = "#ffffff"
	textColor   = "#888888"
)

// ResultToSVG renders the fixed points, nullclines and manifold branches of
// a result into one SVG image. Coordinates are auto-scaled to the bounding
// box of everything drawn, with 10% padding.
func ResultToSVG(res *store.Result, width, height int) string {
	minX, maxX, minY, maxY, ok := bounds(res)
	if !ok {
		return ""
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
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	toPx := func(x, y float64) (float64, float64) {
		px := (x - minX) / rangeX * float64(width)
		py := float64(height) - (y-minY)/rangeY*float64(height)
		return px, py
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	for _, n := range res.Nullclines {
		col := yNullColor
		if n.Var == res.XVar {
			col = xNullColor
		}
		writePolyline(&sb, n.Points, col, toPx)
	}
	for _, m := range res.Manifolds {
		col := stableCol
		if m.Kind == "unstable" {
			col = unstableCol
		}
		writePolyline(&sb, m.Points, col, toPx)
	}
	for _, fp := range res.FixedPoints {
		px, py := toPx(fp.X, fp.Y)
		switch {
		case fp.Class == "saddle":
			sb.WriteString(fmt.Sprintf(
				`<path stroke="%s" stroke-width="1.5" d="M%.1f,%.1f l8,8 m0,-8 l-8,8"/>`,
				fpColor, px-4, py-4))
		case fp.Stability == "stable":
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>`,
				px, py, fpColor))
		default:
			sb.WriteString(fmt.Sprintf(
				`<circle cx="%.1f" cy="%.1f" r="4" fill="none" stroke="%s" stroke-width="1.5"/>`,
				px, py, fpColor))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" font-family="monospace" font-size="11" fill="%s">%s: %s vs %s</text>
`, height-8, textColor, res.Model, res.YVar, res.XVar))
	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteSVG renders the result and writes it to path.
func WriteSVG(path string, res *store.Result, width, height int) error {
	svg := ResultToSVG(res, width, height)
	if svg == "" {
		return fmt.Errorf("nothing to draw")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}

func writePolyline(sb *strings.Builder, pts [][2]float64, col string, toPx func(x, y float64) (float64, float64)) {
	if len(pts) < 2 {
		return
	}
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, col))
	for i, p := range pts {
		px, py := toPx(p[0], p[1])
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px, py))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px, py))
		}
	}
	sb.WriteString("\"/>\n")
}

func bounds(res *store.Result) (minX, maxX, minY, maxY float64, ok bool) {
	update := func(x, y float64) {
		if !ok {
			minX, maxX, minY, maxY = x, x, y, y
			ok = true
			return
		}
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	for _, fp := range res.FixedPoints {
		update(fp.X, fp.Y)
	}
	for _, n := range res.Nullclines {
		for _, p := range n.Points {
			update(p[0], p[1])
		}
	}
	for _, m := range res.Manifolds {
		for _, p := range m.Points {
			update(p[0], p[1])
		}
	}
	return
}
