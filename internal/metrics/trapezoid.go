package metrics

// Trapezoid integrates the series over x with the trapezoid rule. Segments
// touching an invalid sample are skipped.
type Trapezoid struct {
	name      string
	sum       float64
	lastX     float64
	lastY     float64
	lastValid bool
}

func NewTrapezoid() *Trapezoid {
	return &Trapezoid{name: "trapezoid"}
}

func (t *Trapezoid) Name() string { return t.name }

func (t *Trapezoid) Observe(x, y float64, valid bool) {
	if valid && t.lastValid {
		t.sum += 0.5 * (x - t.lastX) * (y + t.lastY)
	}
	t.lastX, t.lastY, t.lastValid = x, y, valid
}

func (t *Trapezoid) Value() float64 { return t.sum }

func (t *Trapezoid) Reset() {
	t.sum = 0
	t.lastX, t.lastY, t.lastValid = 0, 0, false
}
