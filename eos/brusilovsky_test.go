package eos

import (
	"math"
	"testing"

	"github.com/rickykimani/vtflash"
	"github.com/rickykimani/vtflash/antoine"
)

func methaneLike() vtflash.Component {
	return vtflash.Component{
		Name: "methane-like",
		Ac:   0.42748 * 8.314 * 8.314 * 190.6 * 190.6 / 46.0,
		B:    0.001,
		C:    0,
		D:    0.0008,
		Psi:  1,
		Pc:   46.0,
		RTc:  8.314 * 190.6,
		Omega: 0.008,
	}
}

func ethaneLike() vtflash.Component {
	c := methaneLike()
	c.Name = "ethane-like"
	c.Ac = 0.42748 * 8.314 * 8.314 * 305.3 * 305.3 / 48.7
	c.B = 0.0015
	c.D = 0.0012
	c.Pc = 48.7
	c.RTc = 8.314 * 305.3
	c.Omega = 0.1
	return c
}

func TestPressureCompressibilityRoundTrip(t *testing.T) {
	mix, err := vtflash.NewMixture([]vtflash.Component{methaneLike()}, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewMixture: %v", err)
	}
	b := Brusilovsky{}
	N := []float64{1.0}
	RT := 8.314 * 250
	V := 0.02 // a large, gas-like molar volume

	p, err := b.Pressure(mix, N, V, RT)
	if err != nil {
		t.Fatalf("Pressure: %v", err)
	}
	if p <= 0 {
		t.Fatalf("expected positive pressure, got %g", p)
	}

	z, err := b.Compressibility(mix, N, p, RT, RootGas)
	if err != nil {
		t.Fatalf("Compressibility: %v", err)
	}
	n := N[0]
	gotV := z * n * RT / p
	if math.Abs(gotV-V) > 1e-6*V {
		t.Errorf("round-tripped V = %g, want %g", gotV, V)
	}
}

func TestLogActivityJacobianSymmetric(t *testing.T) {
	mix, err := vtflash.NewMixture([]vtflash.Component{methaneLike(), ethaneLike()}, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewMixture: %v", err)
	}
	b := Brusilovsky{}
	N := []float64{0.6, 0.4}
	RT := 8.314 * 250
	V := 0.02

	_, jac, err := b.LogActivityJacobian(mix, N, V, RT)
	if err != nil {
		t.Fatalf("LogActivityJacobian: %v", err)
	}
	r, c := jac.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if math.Abs(jac.At(i, j)-jac.At(j, i)) > 1e-9*(1+math.Abs(jac.At(i, j))) {
				t.Errorf("Jacobian not symmetric at (%d,%d): %g vs %g", i, j, jac.At(i, j), jac.At(j, i))
			}
		}
	}
}

func TestWilsonSaturationPressureAtCriticalPoint(t *testing.T) {
	b := Brusilovsky{}
	c := methaneLike()
	got := b.WilsonSaturationPressure(&c, c.RTc)
	if math.Abs(got-c.Pc) > 1e-9*c.Pc {
		t.Errorf("Wilson Psat at Tr=1 = %g, want Pc = %g", got, c.Pc)
	}
}

func TestWilsonSaturationPressurePrefersAntoine(t *testing.T) {
	b := Brusilovsky{}
	c := methaneLike()
	tCelsius := c.RTc/vtflash.R - 273.15
	c.Antoine = &antoine.Antoine{
		Name: "methane-like", A: 8.0, B: 1000, C: 50,
		Range: antoine.TempRange{Low: tCelsius - 50, High: tCelsius + 50},
	}
	want, err := c.Antoine.Pressure(tCelsius)
	if err != nil {
		t.Fatalf("Antoine.Pressure: %v", err)
	}

	got := b.WilsonSaturationPressure(&c, c.RTc)
	if math.Abs(got-want) > 1e-9*want {
		t.Errorf("WilsonSaturationPressure did not prefer Antoine: got %g, want %g", got, want)
	}
}

func TestWilsonSaturationPressureFallsBackOutsideAntoineRange(t *testing.T) {
	b := Brusilovsky{}
	c := methaneLike()
	c.Antoine = &antoine.Antoine{
		Name: "methane-like", A: 8.0, B: 1000, C: 50,
		Range: antoine.TempRange{Low: -200, High: -190},
	}
	tr := c.RTc / c.RTc
	want := c.Pc * math.Exp(5.373*(1+c.Omega)*(1-1/tr))

	got := b.WilsonSaturationPressure(&c, c.RTc)
	if math.Abs(got-want) > 1e-9*want {
		t.Errorf("expected a Wilson fallback outside the Antoine range: got %g, want %g", got, want)
	}
}

func TestLowPressureCompressibilityNearIdealGas(t *testing.T) {
	c := methaneLike()
	// Low pressure, high Tr: Z should sit close to, but below, 1,
	// since B0(1.5) is negative and outweighs the small omega*B1 term
	// (attractive-dominated virial correction).
	z, err := LowPressureCompressibility(&c, 1.0, c.RTc*1.5)
	if err != nil {
		t.Fatalf("LowPressureCompressibility: %v", err)
	}
	if z <= 0 || z > 1.2 {
		t.Errorf("Z = %g, expected a near-ideal-gas value in (0, 1.2]", z)
	}
}
