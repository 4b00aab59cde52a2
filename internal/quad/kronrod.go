package quad

import "math"

// 15-point Kronrod abscissae on [-1, 1]. Odd indices are the 7-point Gauss nodes.
var xgk = [8]float64{
	0.991455371120812639206854697526329,
	0.949107912342758524526189684047851,
	0.864864423359769072789712788640926,
	0.741531185599394439863864773280788,
	0.586087235467691130294144845693013,
	0.405845151377397166906606412076961,
	0.207784955007898467600689403773245,
	0.000000000000000000000000000000000,
}

var wgk = [8]float64{
	0.022935322010529224963732008058970,
	0.063092092629978553290700663189204,
	0.104790010322250183839876322541518,
	0.140653259715525918745189590510238,
	0.169004726639267902826583426598550,
	0.190350578064785409913256402421014,
	0.204432940075298892414161999234649,
	0.209482141084727828012999174891714,
}

var wg = [4]float64{
	0.129484966168869693270611432679082,
	0.279705391489276667901467771423780,
	0.381830050505118944950369775488975,
	0.417959183673469387755102040816327,
}

const (
	epmach = 2.220446049250313e-16
	uflow  = 2.2250738585072014e-308
)

// Func is a scalar integrand.
type Func func(x float64) float64

// Estimate is the outcome of one rule application on [Lo, Hi].
type Estimate struct {
	Lo, Hi float64
	Value  float64
	AbsErr float64
	// ResAbs approximates the integral of |f|, used for roundoff checks.
	ResAbs float64
}

// Kronrod15 applies the 15-point Kronrod rule to f on [lo, hi] and uses the
// embedded 7-point Gauss rule for the error estimate.
func Kronrod15(f Func, lo, hi float64) Estimate {
	centr := 0.5 * (lo + hi)
	hlgth := 0.5 * (hi - lo)
	dhlgth := math.Abs(hlgth)

	var fv1, fv2 [7]float64

	fc := f(centr)
	resg := fc * wg[3]
	resk := fc * wgk[7]
	resabs := math.Abs(resk)

	for j := 0; j < 3; j++ {
		jtw := 2*j + 1
		absc := hlgth * xgk[jtw]
		f1 := f(centr - absc)
		f2 := f(centr + absc)
		fv1[jtw], fv2[jtw] = f1, f2
		fsum := f1 + f2
		resg += wg[j] * fsum
		resk += wgk[jtw] * fsum
		resabs += wgk[jtw] * (math.Abs(f1) + math.Abs(f2))
	}

	for j := 0; j < 4; j++ {
		jtwm1 := 2 * j
		absc := hlgth * xgk[jtwm1]
		f1 := f(centr - absc)
		f2 := f(centr + absc)
		fv1[jtwm1], fv2[jtwm1] = f1, f2
		fsum := f1 + f2
		resk += wgk[jtwm1] * fsum
		resabs += wgk[jtwm1] * (math.Abs(f1) + math.Abs(f2))
	}

	reskh := resk * 0.5
	resasc := wgk[7] * math.Abs(fc-reskh)
	for j := 0; j < 7; j++ {
		resasc += wgk[j] * (math.Abs(fv1[j]-reskh) + math.Abs(fv2[j]-reskh))
	}

	value := resk * hlgth
	resabs *= dhlgth
	resasc *= dhlgth
	abserr := math.Abs((resk - resg) * hlgth)

	if resasc != 0 && abserr != 0 {
		abserr = resasc * math.Min(1, math.Pow(200*abserr/resasc, 1.5))
	}
	if resabs > uflow/(50*epmach) {
		abserr = math.Max(epmach*50*resabs, abserr)
	}

	return Estimate{Lo: lo, Hi: hi, Value: value, AbsErr: abserr, ResAbs: resabs}
}

func (e Estimate) finite() bool {
	return !math.IsNaN(e.Value) && !math.IsInf(e.Value, 0) &&
		!math.IsNaN(e.AbsErr) && !math.IsInf(e.AbsErr, 0)
}
