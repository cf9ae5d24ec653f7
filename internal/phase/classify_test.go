package phase_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/phaseplane/internal/field"
	"github.com/san-kum/phaseplane/internal/models"
	"github.com/san-kum/phaseplane/internal/phase"
)

var _ = Describe("Classify", func() {
	origin := field.PointFrom(map[string]float64{"x": 0, "y": 0}, 2)

	It("classifies the linear saddle", func() {
		fp, err := phase.Classify(models.NewLinearSaddle(), origin, phase.ClassifyOptions{})
		Expect(err).NotTo(HaveOccurred())
		Expect(fp.Class).To(Equal(phase.Saddle))
		Expect(fp.Stability).To(Equal(phase.Unstable))
		Expect(fp.Degenerate).To(BeFalse())

		evalS, evalU, evecS, evecU := fp.StableUnstable()
		Expect(real(evalS)).To(BeNumerically("~", -1.0, 1e-10))
		Expect(real(evalU)).To(BeNumerically("~", 1.0, 1e-10))
		Expect(imag(evalS)).To(BeZero())
		Expect(imag(evalU)).To(BeZero())

		// stable direction is the y axis, unstable the x axis
		sx, _ := evecS.Coord("x")
		uy, _ := evecU.Coord("y")
		Expect(math.Abs(sx)).To(BeNumerically("<", 1e-10))
		Expect(math.Abs(uy)).To(BeNumerically("<", 1e-10))
	})

	It("classifies a stable node", func() {
		m := models.NewLinearSaddle()
		Expect(m.SetParam("lambda_u", -2)).To(Succeed())
		fp, err := phase.Classify(m, origin, phase.ClassifyOptions{})
		Expect(err).NotTo(HaveOccurred())
		Expect(fp.Class).To(Equal(phase.Node))
		Expect(fp.Stability).To(Equal(phase.Stable))
	})

	It("classifies the van der Pol origin as an unstable spiral", func() {
		fp, err := phase.Classify(models.NewVanDerPol(), origin, phase.ClassifyOptions{})
		Expect(err).NotTo(HaveOccurred())
		Expect(fp.Class).To(Equal(phase.Spiral))
		Expect(fp.Stability).To(Equal(phase.Unstable))
		Expect(imag(fp.Eigenvalues[0])).NotTo(BeZero())
	})

	It("classifies the frictionless pendulum origin as a center", func() {
		m := models.NewPendulum()
		Expect(m.SetParam("damping", 0)).To(Succeed())
		pt := field.PointFrom(map[string]float64{"theta": 0, "omega": 0}, 2)
		fp, err := phase.Classify(m, pt, phase.ClassifyOptions{})
		Expect(err).NotTo(HaveOccurred())
		Expect(fp.Class).To(Equal(phase.Spiral))
		Expect(fp.Stability).To(Equal(phase.Center))
		Expect(fp.Degenerate).To(BeFalse())
	})

	It("rejects a point where the field does not vanish", func() {
		pt := field.PointFrom(map[string]float64{"x": 0.5, "y": 0.5}, 2)
		_, err := phase.Classify(models.NewLinearSaddle(), pt, phase.ClassifyOptions{})
		Expect(err).To(MatchError(phase.ErrNotEquilibrium))
	})

	It("falls back to a finite-difference Jacobian", func() {
		// strip the analytic Jacobian by wrapping the model
		fp, err := phase.Classify(rhsOnly{models.NewLinearSaddle()}, origin, phase.ClassifyOptions{Eps: 1e-6})
		Expect(err).NotTo(HaveOccurred())
		Expect(fp.Class).To(Equal(phase.Saddle))
	})
})

// rhsOnly forwards a model's Field methods without its Jacobian, forcing
// numeric differentiation.
type rhsOnly struct {
	m field.Field
}

func (r rhsOnly) Dim() int                                   { return r.m.Dim() }
func (r rhsOnly) Vars() []string                             { return r.m.Vars() }
func (r rhsOnly) Domain(name string) (field.Interval, error) { return r.m.Domain(name) }
func (r rhsOnly) Params() field.Params                       { return r.m.Params() }
func (r rhsOnly) SetParam(name string, v float64) error      { return r.m.SetParam(name, v) }
func (r rhsOnly) Rhs(t float64, x field.State, p field.Params) (field.State, error) {
	return r.m.Rhs(t, x, p)
}

var _ field.Field = rhsOnly{}
