package metrics

type Invalid struct {
	name     string
	failures int
}

func NewInvalid() *Invalid {
	return &Invalid{name: "invalid"}
}

func (i *Invalid) Name() string { return i.name }

func (i *Invalid) Observe(x, y float64, valid bool) {
	if !valid {
		i.failures++
	}
}

func (i *Invalid) Value() float64 { return float64(i.failures) }

func (i *Invalid) Reset() { i.failures = 0 }
