package quad_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/perturb/internal/quad"
)

var _ = Describe("Kronrod15", func() {
	It("integrates low-order polynomials exactly", func() {
		est := quad.Kronrod15(func(x float64) float64 { return 3*x*x + 2*x + 1 }, 0, 2)
		Expect(est.Value).To(BeNumerically("~", 14, 1e-12))
		Expect(est.AbsErr).To(BeNumerically("<", 1e-10))
	})

	It("keeps the sign of a reversed interval", func() {
		fwd := quad.Kronrod15(math.Exp, 0, 1)
		rev := quad.Kronrod15(math.Exp, 1, 0)
		Expect(rev.Value).To(Equal(-fwd.Value))
		Expect(rev.AbsErr).To(Equal(fwd.AbsErr))
	})
})

var _ = Describe("GaussKronrod", func() {
	var opts quad.Options

	BeforeEach(func() {
		opts = quad.DefaultOptions()
	})

	It("accepts smooth integrands after one rule application", func() {
		res, err := quad.Integrate(math.Exp, 0, 1, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Value).To(BeNumerically("~", math.E-1, 1e-14))
		Expect(res.Intervals).To(Equal(1))
		Expect(res.Evals).To(Equal(15))
	})

	It("returns zero without evaluating on a degenerate interval", func() {
		calls := 0
		res, err := quad.Integrate(func(x float64) float64 {
			calls++
			return 1 / x
		}, 0, 0, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Value).To(BeZero())
		Expect(calls).To(BeZero())
	})

	It("negates the integral for reversed bounds", func() {
		fwd, err := quad.Integrate(math.Sin, 0, 2, opts)
		Expect(err).NotTo(HaveOccurred())
		rev, err := quad.Integrate(math.Sin, 2, 0, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(rev.Value).To(BeNumerically("~", -fwd.Value, 1e-15))
	})

	It("subdivides around an endpoint singularity", func() {
		opts.EpsRel = 1e-6
		res, err := quad.Integrate(math.Sqrt, 0, 1, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Intervals).To(BeNumerically(">", 1))
		Expect(res.Value).To(BeNumerically("~", 2.0/3.0, 1e-6))
	})

	It("resolves a narrow peak", func() {
		opts.EpsRel = 1e-10
		peak := func(x float64) float64 { return math.Exp(-1e4 * (x - 0.5) * (x - 0.5)) }
		res, err := quad.Integrate(peak, 0, 1, opts)
		Expect(err).NotTo(HaveOccurred())
		want := math.Sqrt(math.Pi / 1e4)
		Expect(math.Abs(res.Value-want) / want).To(BeNumerically("<", 1e-9))
	})

	It("controls relative error for tiny magnitudes", func() {
		scale := 1e-40
		res, err := quad.Integrate(func(x float64) float64 { return scale * math.Sqrt(x) }, 0, 1, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Intervals).To(BeNumerically(">", 1))
		Expect(res.Value / scale).To(BeNumerically("~", 2.0/3.0, 1e-7))
	})

	It("reports the best estimate when the limit is reached", func() {
		opts.EpsRel = 1e-13
		opts.Limit = 1
		res, err := quad.Integrate(math.Sqrt, 0, 1, opts)
		Expect(err).To(MatchError(quad.ErrNoConvergence))
		Expect(res.Value).To(BeNumerically("~", 2.0/3.0, 1e-3))
	})

	It("rejects unusable tolerances", func() {
		opts.EpsAbs = 0
		opts.EpsRel = 0
		_, err := quad.Integrate(math.Exp, 0, 1, opts)
		Expect(err).To(MatchError(quad.ErrInvalidTolerance))

		opts.EpsRel = math.NaN()
		_, err = quad.Integrate(math.Exp, 0, 1, opts)
		Expect(err).To(MatchError(quad.ErrInvalidTolerance))
	})

	It("validates options without integrating", func() {
		Expect(quad.DefaultOptions().Validate()).To(Succeed())
		Expect(quad.Options{EpsRel: 1e-15}.Validate()).To(MatchError(quad.ErrInvalidTolerance))
		Expect(quad.Options{EpsAbs: 1e-30, EpsRel: 1e-15}.Validate()).To(Succeed())
		Expect(quad.Options{EpsRel: math.Inf(1)}.Validate()).To(MatchError(quad.ErrInvalidTolerance))
	})

	It("fails on non-finite integrands", func() {
		_, err := quad.Integrate(func(float64) float64 { return math.NaN() }, 0, 1, opts)
		Expect(err).To(MatchError(quad.ErrNonFinite))

		_, err = quad.Integrate(math.Exp, 0, math.Inf(1), opts)
		Expect(err).To(MatchError(quad.ErrNonFinite))
	})

	It("defaults the subdivision limit", func() {
		g := quad.New(quad.Options{EpsRel: 1e-8})
		Expect(g.Options().Limit).To(Equal(quad.DefaultLimit))
	})
})
