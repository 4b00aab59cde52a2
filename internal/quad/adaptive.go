package quad

import (
	"container/heap"
	"fmt"
	"math"
)

const (
	DefaultEpsAbs = 0.0
	DefaultEpsRel = 1.49e-8
	DefaultLimit  = 50
)

// Options controls the adaptive integrator.
type Options struct {
	EpsAbs float64 `yaml:"eps_abs"`
	EpsRel float64 `yaml:"eps_rel"`
	// Limit caps the number of subintervals.
	Limit int `yaml:"limit"`
}

func DefaultOptions() Options {
	return Options{
		EpsAbs: DefaultEpsAbs,
		EpsRel: DefaultEpsRel,
		Limit:  DefaultLimit,
	}
}

// Validate reports tolerances the integrator cannot honour. EpsRel must stay
// above the rule's roundoff floor when EpsAbs is 0.
func (o Options) Validate() error {
	if math.IsNaN(o.EpsAbs) || math.IsNaN(o.EpsRel) || math.IsInf(o.EpsAbs, 0) || math.IsInf(o.EpsRel, 0) {
		return fmt.Errorf("%w: eps_abs=%g eps_rel=%g", ErrInvalidTolerance, o.EpsAbs, o.EpsRel)
	}
	if o.EpsAbs <= 0 && o.EpsRel < 50*epmach {
		return fmt.Errorf("%w: eps_rel must be at least %g when eps_abs is 0, got %g",
			ErrInvalidTolerance, 50*epmach, o.EpsRel)
	}
	return nil
}

// Result of an adaptive integration.
type Result struct {
	Value     float64
	AbsErr    float64
	Evals     int
	Intervals int
}

type GaussKronrod struct {
	opts Options
}

func New(opts Options) *GaussKronrod {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	return &GaussKronrod{opts: opts}
}

func (g *GaussKronrod) Options() Options { return g.opts }

// Integrate is shorthand for New(opts).Integrate(f, lo, hi).
func Integrate(f Func, lo, hi float64, opts Options) (Result, error) {
	return New(opts).Integrate(f, lo, hi)
}

// Integrate approximates the integral of f over [lo, hi]. When lo > hi the
// result is the negated integral over [hi, lo]. On ErrNoConvergence and
// ErrRoundoff the returned Result still holds the best estimate.
func (g *GaussKronrod) Integrate(f Func, lo, hi float64) (Result, error) {
	if err := g.opts.Validate(); err != nil {
		return Result{}, err
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return Result{}, fmt.Errorf("%w: bounds [%g, %g]", ErrNonFinite, lo, hi)
	}
	if lo == hi {
		return Result{}, nil
	}

	first := Kronrod15(f, lo, hi)
	res := Result{Value: first.Value, AbsErr: first.AbsErr, Evals: 15, Intervals: 1}
	if !first.finite() {
		return res, fmt.Errorf("%w on [%g, %g]", ErrNonFinite, lo, hi)
	}

	tol := g.tolerance(first.Value)
	if first.AbsErr <= tol || first.AbsErr == 0 {
		return res, nil
	}
	if first.AbsErr <= 50*epmach*first.ResAbs {
		return res, ErrRoundoff
	}

	pending := &estimateHeap{first}
	area, errsum := first.Value, first.AbsErr

	for pending.Len() < g.opts.Limit {
		worst := heap.Pop(pending).(Estimate)

		mid := 0.5 * (worst.Lo + worst.Hi)
		if !canBisect(worst.Lo, mid, worst.Hi) {
			heap.Push(pending, worst)
			res.Value, res.AbsErr, res.Intervals = area, errsum, pending.Len()
			return res, ErrRoundoff
		}

		left := Kronrod15(f, worst.Lo, mid)
		right := Kronrod15(f, mid, worst.Hi)
		res.Evals += 30
		if !left.finite() || !right.finite() {
			return res, fmt.Errorf("%w on [%g, %g]", ErrNonFinite, worst.Lo, worst.Hi)
		}

		area += left.Value + right.Value - worst.Value
		errsum += left.AbsErr + right.AbsErr - worst.AbsErr
		heap.Push(pending, left)
		heap.Push(pending, right)

		if errsum <= g.tolerance(area) {
			// recompute from parts to drop accumulated cancellation error
			res.Value, res.AbsErr = pending.sum()
			res.Intervals = pending.Len()
			return res, nil
		}
	}

	res.Value, res.AbsErr = pending.sum()
	res.Intervals = pending.Len()
	return res, fmt.Errorf("%w: %d intervals, abserr=%g", ErrNoConvergence, res.Intervals, res.AbsErr)
}

func (g *GaussKronrod) tolerance(value float64) float64 {
	return math.Max(g.opts.EpsAbs, g.opts.EpsRel*math.Abs(value))
}

func canBisect(lo, mid, hi float64) bool {
	a, b := math.Min(lo, hi), math.Max(lo, hi)
	return mid > a && mid < b &&
		math.Max(math.Abs(a), math.Abs(b)) > (1+100*epmach)*(math.Abs(mid)+1000*uflow)
}

// estimateHeap is a max-heap on AbsErr.
type estimateHeap []Estimate

func (h estimateHeap) Len() int           { return len(h) }
func (h estimateHeap) Less(i, j int) bool { return h[i].AbsErr > h[j].AbsErr }
func (h estimateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *estimateHeap) Push(x any)        { *h = append(*h, x.(Estimate)) }
func (h *estimateHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

func (h estimateHeap) sum() (value, abserr float64) {
	for _, e := range h {
		value += e.Value
		abserr += e.AbsErr
	}
	return value, abserr
}
