// Package cont traces the solution curve of a scalar implicit equation
// g(x,y)=0 in the plane by pseudo-arclength continuation: a tangent
// predictor followed by Newton projection back onto the curve along the
// gradient. Curves grow in bounded batches from a seed, separately in the
// forward and backward tangent directions, and report failure per
// direction.
package cont

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/phaseplane/internal/field"
)

// ErrContinuation indicates curve stepping failed in one direction.
var ErrContinuation = errors.New("cont: continuation step failed")

// Options configures curve tracing.
type Options struct {
	MaxStep   float64 // largest predictor step, default 5e-1
	MinStep   float64 // smallest step before giving up, default 1e-4
	Tol       float64 // corrector residual tolerance, default 1e-4
	BatchSize int     // points per Forward/Backward call, default 5
}

func (o *Options) defaults() {
	if o.MaxStep <= 0 {
		o.MaxStep = 5e-1
	}
	if o.MinStep <= 0 {
		o.MinStep = 1e-4
	}
	if o.Tol <= 0 {
		o.Tol = 1e-4
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 5
	}
}

// Curve is a growing continuation curve. Not safe for concurrent use.
type Curve struct {
	g    func(x, y float64) (float64, error)
	opts Options

	fwd, bwd         []field.State // points beyond the seed in each direction
	seed             field.State
	fwdTan, bwdTan   field.State
	fwdStep, bwdStep float64
}

// NewCurve corrects seed onto the curve and prepares both directions.
func NewCurve(g func(x, y float64) (float64, error), seedX, seedY float64, opts Options) (*Curve, error) {
	opts.defaults()
	c := &Curve{g: g, opts: opts, fwdStep: opts.MaxStep / 2, bwdStep: opts.MaxStep / 2}
	seed, err := c.project(field.State{seedX, seedY})
	if err != nil {
		return nil, fmt.Errorf("cont: seed projection: %w", err)
	}
	c.seed = seed
	tan, err := c.tangent(seed)
	if err != nil {
		return nil, fmt.Errorf("cont: seed tangent: %w", err)
	}
	c.fwdTan = tan
	c.bwdTan = tan.Scale(-1)
	return c, nil
}

// Forward extends the curve by one batch in the forward tangent direction
// and returns the newly computed segment.
func (c *Curve) Forward() ([]field.State, error) {
	seg, err := c.grow(&c.fwd, &c.fwdTan, &c.fwdStep)
	if err != nil {
		return nil, fmt.Errorf("%w (forward)", err)
	}
	return seg, nil
}

// Backward is Forward along the opposite tangent.
func (c *Curve) Backward() ([]field.State, error) {
	seg, err := c.grow(&c.bwd, &c.bwdTan, &c.bwdStep)
	if err != nil {
		return nil, fmt.Errorf("%w (backward)", err)
	}
	return seg, nil
}

// Solution returns the accumulated curve ordered along arclength, backward
// end to forward end.
func (c *Curve) Solution() []field.State {
	out := make([]field.State, 0, len(c.bwd)+1+len(c.fwd))
	for i := len(c.bwd) - 1; i >= 0; i-- {
		out = append(out, c.bwd[i].Clone())
	}
	out = append(out, c.seed.Clone())
	for _, p := range c.fwd {
		out = append(out, p.Clone())
	}
	return out
}

func (c *Curve) grow(pts *[]field.State, tan *field.State, h *float64) ([]field.State, error) {
	seg := make([]field.State, 0, c.opts.BatchSize)
	last := c.seed
	if len(*pts) > 0 {
		last = (*pts)[len(*pts)-1]
	}
	for n := 0; n < c.opts.BatchSize; n++ {
		var next field.State
		for {
			pred := last.Add((*tan).Scale(*h))
			proj, err := c.project(pred)
			if err == nil {
				next = proj
				break
			}
			*h /= 2
			if *h < c.opts.MinStep {
				return nil, ErrContinuation
			}
		}
		newTan, err := c.tangent(next)
		if err != nil {
			return nil, ErrContinuation
		}
		// keep orientation consistent with the previous tangent
		if dot(newTan, *tan) < 0 {
			newTan = newTan.Scale(-1)
		}
		*tan = newTan
		if *h < c.opts.MaxStep {
			*h = math.Min(*h*1.5, c.opts.MaxStep)
		}
		*pts = append(*pts, next)
		seg = append(seg, next.Clone())
		last = next
	}
	return seg, nil
}

// project applies Newton steps along the gradient until g vanishes to
// tolerance.
func (c *Curve) project(x field.State) (field.State, error) {
	p := x.Clone()
	for i := 0; i < 25; i++ {
		v, err := c.g(p[0], p[1])
		if err != nil {
			return nil, err
		}
		if math.Abs(v) < c.opts.Tol {
			return p, nil
		}
		gr, err := c.gradient(p)
		if err != nil {
			return nil, err
		}
		n2 := gr[0]*gr[0] + gr[1]*gr[1]
		if n2 < 1e-300 {
			return nil, ErrContinuation
		}
		p = p.Sub(gr.Scale(v / n2))
		if !p.IsValid() {
			return nil, ErrContinuation
		}
	}
	return nil, ErrContinuation
}

func (c *Curve) tangent(p field.State) (field.State, error) {
	gr, err := c.gradient(p)
	if err != nil {
		return nil, err
	}
	n := gr.Norm(2)
	if n == 0 {
		return nil, ErrContinuation
	}
	return field.Perp(gr.Scale(1 / n)), nil
}

func (c *Curve) gradient(p field.State) (field.State, error) {
	const h = 1e-7
	gx1, err := c.g(p[0]+h, p[1])
	if err != nil {
		return nil, err
	}
	gx0, err := c.g(p[0]-h, p[1])
	if err != nil {
		return nil, err
	}
	gy1, err := c.g(p[0], p[1]+h)
	if err != nil {
		return nil, err
	}
	gy0, err := c.g(p[0], p[1]-h)
	if err != nil {
		return nil, err
	}
	return field.State{(gx1 - gx0) / (2 * h), (gy1 - gy0) / (2 * h)}, nil
}

func dot(a, b field.State) float64 {
	return a[0]*b[0] + a[1]*b[1]
}
