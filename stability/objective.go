// Package stability implements the VT-Stability test: tangent-plane
// distance minimization from four Wilson-seeded starting points, with
// early exit on the first negative minimum.
package stability

import (
	"math"

	"github.com/rickykimani/vtflash"
	"github.com/rickykimani/vtflash/eos"
)

// Objective builds the tangent-plane distance functional D(eta) and
// its feasibility step-limiter for a fixed parent state (mix, N, V,
// RT), per spec.md §4.2. One Objective is shared across all four
// stability tries for a given parent, since loga_parent and p_parent
// depend only on the parent.
type Objective struct {
	facade eos.Facade
	mix    *vtflash.Mixture

	logaParent []float64
	pParent    float64
	RT         float64
}

// NewObjective precomputes the parent-state quantities shared by
// every trial minimization: loga_parent := log_activity(mix,N,V,RT) +
// log(N/V), p_parent := pressure(mix,N,V,RT).
func NewObjective(facade eos.Facade, mix *vtflash.Mixture, N []float64, V, RT float64) (*Objective, error) {
	loga, err := facade.LogActivity(mix, N, V, RT)
	if err != nil {
		return nil, &vtflash.EoSDomainError{Op: "stability.NewObjective", Cause: err}
	}
	pParent, err := facade.Pressure(mix, N, V, RT)
	if err != nil {
		return nil, &vtflash.EoSDomainError{Op: "stability.NewObjective", Cause: err}
	}
	logaParent := make([]float64, len(N))
	for i, n := range N {
		logaParent[i] = loga[i] + math.Log(n/V)
	}
	return &Objective{facade: facade, mix: mix, logaParent: logaParent, pParent: pParent, RT: RT}, nil
}

// Eval is the D(eta) functional with gradient, shaped as an
// optimize.Func: grad is filled with d D/d eta and the value is
// returned. It evaluates the trial phase at unit volume, per
// spec.md §4.2.
func (o *Objective) Eval(eta []float64, grad []float64) float64 {
	logaTrial, err := o.facade.LogActivity(o.mix, eta, 1, o.RT)
	if err != nil {
		// The caller's line search treats NaN as infeasible and backs
		// off; this mirrors an EoS domain failure at a trial point
		// that is not the optimizer's current iterate.
		for i := range grad {
			grad[i] = math.NaN()
		}
		return math.NaN()
	}
	pTrial, err := o.facade.Pressure(o.mix, eta, 1, o.RT)
	if err != nil {
		for i := range grad {
			grad[i] = math.NaN()
		}
		return math.NaN()
	}

	dot := 0.0
	for i, e := range eta {
		grad[i] = logaTrial[i] + math.Log(e) - o.logaParent[i]
		dot += grad[i] * e
	}
	return dot - (pTrial-o.pParent)/o.RT
}

// MaxStep implements the §4.2 feasibility step-limiter: the largest
// alpha > 0 such that eta + alpha*d stays strictly positive
// componentwise and the trial covolume stays below unit volume. No
// 0.9 safety back-off is applied here, unlike the flash limiter (see
// spec.md design note on the stability/flash asymmetry).
func (o *Objective) MaxStep(eta, d []float64) float64 {
	alpha := math.Inf(1)
	for i, e := range eta {
		if d[i] < 0 {
			if bound := -e / d[i]; bound < alpha {
				alpha = bound
			}
		}
	}

	bEta, dB := 0.0, 0.0
	for i, comp := range o.mix.Components {
		bEta += eta[i] * comp.B
		dB += d[i] * comp.B
	}
	if dB > 0 {
		if bound := (1 - bEta) / dB; bound < alpha {
			alpha = bound
		}
	}
	return alpha
}
