package metrics

import "math"

// Peak tracks the largest valid sample. Value is NaN until a valid sample
// has been observed.
type Peak struct {
	name  string
	atX   bool
	x, y  float64
	found bool
}

func NewPeak() *Peak {
	return &Peak{name: "peak"}
}

// NewPeakX reports the x position of the peak instead of its height.
func NewPeakX() *Peak {
	return &Peak{name: "peak_x", atX: true}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(x, y float64, valid bool) {
	if !valid {
		return
	}
	if !p.found || y > p.y {
		p.x, p.y, p.found = x, y, true
	}
}

func (p *Peak) Value() float64 {
	if !p.found {
		return math.NaN()
	}
	if p.atX {
		return p.x
	}
	return p.y
}

func (p *Peak) Reset() {
	p.x, p.y, p.found = 0, 0, false
}
