package sweep

import (
	"fmt"
	"math"
)

// Point is one (x, y) sample handed to plotting and export.
type Point struct {
	X, Y  float64
	Valid bool
}

// Series pairs a sweep domain with its results. Y[i] belongs to X[i].
type Series struct {
	X     []float64
	Y     []float64
	Valid []bool
}

// NewSeries allocates a series over domain with every sample invalid and NaN.
func NewSeries(domain []float64) Series {
	s := Series{
		X:     make([]float64, len(domain)),
		Y:     make([]float64, len(domain)),
		Valid: make([]bool, len(domain)),
	}
	copy(s.X, domain)
	for i := range s.Y {
		s.Y[i] = math.NaN()
	}
	return s
}

func (s Series) Len() int { return len(s.X) }

func (s Series) Validate() error {
	if len(s.Y) != len(s.X) || len(s.Valid) != len(s.X) {
		return fmt.Errorf("%w: x=%d y=%d valid=%d", ErrLengthMismatch, len(s.X), len(s.Y), len(s.Valid))
	}
	return nil
}

func (s Series) Points() []Point {
	pts := make([]Point, s.Len())
	for i := range s.X {
		pts[i] = Point{X: s.X[i], Y: s.Y[i], Valid: s.Valid[i]}
	}
	return pts
}

func (s Series) InvalidCount() int {
	n := 0
	for _, ok := range s.Valid {
		if !ok {
			n++
		}
	}
	return n
}

// Scale returns a copy with every y multiplied by factor.
func (s Series) Scale(factor float64) Series {
	out := Series{
		X:     make([]float64, len(s.X)),
		Y:     make([]float64, len(s.Y)),
		Valid: make([]bool, len(s.Valid)),
	}
	copy(out.X, s.X)
	copy(out.Valid, s.Valid)
	for i, y := range s.Y {
		out.Y[i] = y * factor
	}
	return out
}

// ValidY returns the y values of valid samples, in order.
func (s Series) ValidY() []float64 {
	ys := make([]float64, 0, len(s.Y))
	for i, y := range s.Y {
		if s.Valid[i] {
			ys = append(ys, y)
		}
	}
	return ys
}
