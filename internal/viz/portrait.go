package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/phaseplane/internal/field"
	"github.com/san-kum/phaseplane/internal/phase"
)

// Portrait composes phase-plane features onto one canvas: nullclines,
// manifold branches, fixed-point markers and sample orbits. Features
// outside the window are clipped.
type Portrait struct {
	canvas   *Canvas
	xiv, yiv field.Interval
	theme    Theme
	legend   []string
}

func NewPortrait(w, h int, xiv, yiv field.Interval, theme Theme) *Portrait {
	return &Portrait{
		canvas: NewCanvas(w, h),
		xiv:    xiv,
		yiv:    yiv,
		theme:  theme,
	}
}

// toPixel maps data coordinates to sub-pixel coordinates; the y axis is
// flipped so larger values render higher.
func (p *Portrait) toPixel(x, y float64) (int, int, bool) {
	if !p.xiv.Contains(x) || !p.yiv.Contains(y) {
		return 0, 0, false
	}
	px := int((x - p.xiv.Lo) / p.xiv.Width() * float64(p.canvas.Width*2-1))
	py := int((p.yiv.Hi - y) / p.yiv.Width() * float64(p.canvas.Height*4-1))
	return px, py, true
}

// AddCurve draws an ordered polyline.
func (p *Portrait) AddCurve(pts []field.State) {
	for i := 1; i < len(pts); i++ {
		x0, y0, ok0 := p.toPixel(pts[i-1][0], pts[i-1][1])
		x1, y1, ok1 := p.toPixel(pts[i][0], pts[i][1])
		if ok0 && ok1 {
			p.canvas.DrawLine(x0, y0, x1, y1)
		}
	}
}

// AddCloud draws unordered points as individual pixels.
func (p *Portrait) AddCloud(pts []field.State) {
	for _, pt := range pts {
		if x, y, ok := p.toPixel(pt[0], pt[1]); ok {
			p.canvas.Set(x, y)
		}
	}
}

// AddNullcline draws a nullcline, as a polyline when its points are
// arclength-ordered and as a point cloud otherwise. ofX selects the legend
// color for the x-variable's nullcline.
func (p *Portrait) AddNullcline(n *phase.Nullcline, ofX bool) {
	if n == nil {
		return
	}
	col := p.theme.YNullcline
	if ofX {
		col = p.theme.XNullcline
	}
	if n.Ordered {
		p.AddCurve(n.Points)
	} else {
		p.AddCloud(n.Points)
	}
	p.addLegend(col, fmt.Sprintf("d%s/dt = 0", n.Var))
}

// AddBranch draws a saddle sub-manifold branch.
func (p *Portrait) AddBranch(b *phase.Branch) {
	if b == nil {
		return
	}
	p.AddCurve(b.Points)
	col := p.theme.Stable
	if b.Kind == phase.UnstableBranch {
		col = p.theme.Unstable
	}
	p.addLegend(col, b.Kind.String()+" manifold")
}

// AddFixedPoint places a class-dependent marker: x for saddles, filled
// circles for attractors, open circles for repellors and centers.
func (p *Portrait) AddFixedPoint(fp *phase.FixedPoint) {
	if fp == nil || fp.Point.Len() < 2 {
		return
	}
	var r rune
	switch {
	case fp.Class == phase.Saddle:
		r = '✕'
	case fp.Stability == phase.Stable:
		r = '●'
	default:
		r = '○'
	}
	x, y, ok := p.toPixel(fp.Point.At(0), fp.Point.At(1))
	if !ok {
		return
	}
	style := lipgloss.NewStyle().Foreground(p.theme.FixedPoint).Bold(true)
	p.canvas.Mark(x, y, r, style)
	p.addLegend(p.theme.FixedPoint,
		fmt.Sprintf("%c %s %s at %s", r, fp.Stability, fp.Class, fp.Point))
}

// AddOrbit draws an integrated trajectory.
func (p *Portrait) AddOrbit(states []field.State) {
	p.AddCurve(states)
	p.addLegend(p.theme.Orbit, "orbit")
}

func (p *Portrait) addLegend(col lipgloss.Color, label string) {
	sw := lipgloss.NewStyle().Foreground(col).Render("⣿")
	p.legend = append(p.legend, sw+" "+label)
}

// Render returns the composed portrait with axis bounds and a legend.
func (p *Portrait) Render() string {
	var b strings.Builder
	b.WriteString(p.canvas.String())
	muted := lipgloss.NewStyle().Foreground(p.theme.Muted)
	b.WriteString(muted.Render(fmt.Sprintf("x ∈ [%g, %g]   y ∈ [%g, %g]",
		p.xiv.Lo, p.xiv.Hi, p.yiv.Lo, p.yiv.Hi)))
	b.WriteByte('\n')
	for _, entry := range p.legend {
		b.WriteString(entry)
		b.WriteByte('\n')
	}
	return b.String()
}
