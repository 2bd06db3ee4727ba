// Package flash implements VT-Flash: constrained minimization of the
// Helmholtz free-energy difference between a one-phase and a
// candidate two-phase configuration, seeded by the stability test's
// winning trial and preconditioned by an analytical Hessian.
package flash

import (
	"math"

	"github.com/rickykimani/vtflash"
	"github.com/rickykimani/vtflash/eos"
)

// Objective builds ΔA(x), its gradient, and its feasibility
// step-limiter from a fixed base state (mix, N, V, RT), per spec.md
// §4.4. x is the flash state vector: xᵢ = Nᵢ'/Nᵢ (i=1..c),
// x_{c+1} = V'/V.
type Objective struct {
	facade eos.Facade
	mix    *vtflash.Mixture
	N      []float64
	V, RT  float64

	logaBase []float64 // logφ(N,V) + log(N/V), the "base phase" activity
	pBase    float64

	bTilde []float64 // (N1*b1,...,Nc*bc, -V), the covolume direction
}

// NewObjective precomputes the base-state quantities ΔA reuses at
// every trial x: the base-phase activity (in the same
// logφ+log(N/V) convention used throughout) and base pressure. If the
// base state itself cannot be evaluated it returns a
// *vtflash.EoSDomainError wrapping the cause.
func NewObjective(facade eos.Facade, mix *vtflash.Mixture, N []float64, V, RT float64) (*Objective, error) {
	loga, err := facade.LogActivity(mix, N, V, RT)
	if err != nil {
		return nil, &vtflash.EoSDomainError{Op: "flash.NewObjective", Cause: err}
	}
	pBase, err := facade.Pressure(mix, N, V, RT)
	if err != nil {
		return nil, &vtflash.EoSDomainError{Op: "flash.NewObjective", Cause: err}
	}

	c := len(N)
	logaBase := make([]float64, c)
	bTilde := make([]float64, c+1)
	for i, n := range N {
		logaBase[i] = loga[i] + math.Log(n/V)
		bTilde[i] = n * mix.Components[i].B
	}
	bTilde[c] = -V

	return &Objective{facade: facade, mix: mix, N: N, V: V, RT: RT, logaBase: logaBase, pBase: pBase, bTilde: bTilde}, nil
}

// split returns phase 1 (N', V') and phase 2 (N'', V'') for a state x.
func (o *Objective) split(x []float64) (nPrime []float64, vPrime float64, nDouble []float64, vDouble float64) {
	c := len(o.N)
	nPrime = make([]float64, c)
	nDouble = make([]float64, c)
	for i, n := range o.N {
		nPrime[i] = n * x[i]
		nDouble[i] = n - nPrime[i]
	}
	vPrime = o.V * x[c]
	vDouble = o.V - vPrime
	return
}

// phaseActivity evaluates logφ(N,V) + log(N/V) for a candidate phase,
// the convention shared with the base-state and stability conventions.
func (o *Objective) phaseActivity(N []float64, V float64) ([]float64, error) {
	loga, err := o.facade.LogActivity(o.mix, N, V, o.RT)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(N))
	for i, n := range N {
		out[i] = loga[i] + math.Log(n/V)
	}
	return out, nil
}

// Eval is ΔA(x) with gradient, shaped as an optimize.Func. It uses the
// identity Δμᵢ = RT*(loga'ᵢ - loga''ᵢ) (in the logφ+log(N/V)
// convention) to avoid a separate Δμ_base computation: loga''
// computed for the gradient is reused directly in the energy term.
func (o *Objective) Eval(x []float64, grad []float64) float64 {
	nPrime, vPrime, nDouble, vDouble := o.split(x)

	logaPrime, err := o.phaseActivity(nPrime, vPrime)
	if err != nil {
		return nanFill(grad)
	}
	pPrime, err := o.facade.Pressure(o.mix, nPrime, vPrime, o.RT)
	if err != nil {
		return nanFill(grad)
	}
	logaDouble, err := o.phaseActivity(nDouble, vDouble)
	if err != nil {
		return nanFill(grad)
	}
	pDouble, err := o.facade.Pressure(o.mix, nDouble, vDouble, o.RT)
	if err != nil {
		return nanFill(grad)
	}

	c := len(o.N)
	dot := 0.0
	baseTerm := 0.0
	for i, n := range o.N {
		grad[i] = n * o.RT * (logaPrime[i] - logaDouble[i])
		dot += grad[i] * x[i]
		baseTerm += n * o.RT * (o.logaBase[i] - logaDouble[i])
	}
	grad[c] = o.V * (pDouble - pPrime)
	dot += grad[c] * x[c]

	return dot + (o.pBase-pDouble)*o.V - baseTerm
}

func nanFill(grad []float64) float64 {
	for i := range grad {
		grad[i] = math.NaN()
	}
	return math.NaN()
}

// MaxStep implements the §4.4 feasibility step-limiter: the box
// constraint 0 < xᵢ + α dᵢ < 1 on every coordinate, plus the covolume
// bound along b̃ = (N₁b₁,...,N_cb_c,-V), scaled by the 0.9 safety
// back-off that keeps iterates strictly interior (unlike the
// stability limiter, which applies no such back-off).
func (o *Objective) MaxStep(x, d []float64) float64 {
	alpha := math.Inf(1)
	for i, xi := range x {
		switch {
		case d[i] > 0:
			if bound := (1 - xi) / d[i]; bound < alpha {
				alpha = bound
			}
		case d[i] < 0:
			if bound := -xi / d[i]; bound < alpha {
				alpha = bound
			}
		}
	}

	dB := dot(d, o.bTilde)
	if dB > 0 {
		if bound := -dot(x, o.bTilde) / dB; bound > 0 && bound < alpha {
			alpha = bound
		}
	}

	return 0.9 * alpha
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
