package stability

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/rickykimani/vtflash"
	"github.com/rickykimani/vtflash/eos"
	"github.com/rickykimani/vtflash/optimize"
)

const (
	tau     = -1e-5
	gtol    = 1e-3
	maxiter = 1000
)

// Try records one of the four stability minimizations: its resulting
// trial concentration, its minimized D value, and whether that try
// alone cleared the stability threshold.
type Try struct {
	Eta           []float64
	D             float64
	IsStableLocal bool
}

// Result is the stability_result spec.md §3 names.
type Result struct {
	Stable bool
	Tries  []Try
}

// Run is the library entry point for the VT-Stability test (the
// "stability(mix, N, V, RT)" operation of spec.md §6). It lives as a
// subpackage function rather than a root-package wrapper because
// package vtflash must not import stability (stability imports
// vtflash for shared types), and a wrapper the other direction would
// cycle; see DESIGN.md.
func Run(facade eos.Facade, mix *vtflash.Mixture, state vtflash.ThermoState) (Result, error) {
	if err := state.Validate(mix); err != nil {
		return Result{}, err
	}

	obj, err := NewObjective(facade, mix, state.N, state.V, state.RT)
	if err != nil {
		return Result{}, err
	}

	c := mix.N()
	pSat := make([]float64, c)
	for i := range mix.Components {
		pSat[i] = facade.WilsonSaturationPressure(&mix.Components[i], state.RT)
	}

	total := state.Total()
	z := make([]float64, c)
	for i, n := range state.N {
		z[i] = n / total
	}

	// Parent-gas seed (spec.md §4.3.1): weight N by the Wilson vector.
	pInitGas := dot(pSat, z)
	seedGas := make([]float64, c)
	for i, n := range state.N {
		seedGas[i] = n * pSat[i] / pInitGas
	}

	// Parent-liquid seed (§4.3.2): weight N by the inverse Wilson vector.
	invSum := 0.0
	nOverPsat := make([]float64, c)
	for i, n := range state.N {
		nOverPsat[i] = n / pSat[i]
		invSum += nOverPsat[i]
	}
	seedLiquid := make([]float64, c)
	for i := range seedLiquid {
		seedLiquid[i] = nOverPsat[i] / invSum
	}
	pInitLiquid := dot(pSat, seedLiquid)

	type basis struct {
		eta0           []float64
		pInit          float64
		isLiquidParent bool
	}
	bases := []basis{{seedGas, pInitGas, false}, {seedLiquid, pInitLiquid, true}}
	roots := []eos.Root{eos.RootGas, eos.RootLiquid}

	var tries []Try
	anyNonNaN := false

	for _, b := range bases {
		for _, root := range roots {
			var etaR []float64
			var ok bool
			if b.isLiquidParent && root == eos.RootLiquid {
				etaR, ok = rackettSeed(mix, b.eta0, state.RT)
			}
			if !ok {
				etaR, ok = seedFromRoot(facade, mix, b.eta0, b.pInit, state.RT, root)
			}
			if !ok {
				tries = append(tries, Try{Eta: etaR, D: math.NaN()})
				continue
			}

			h0, err := preconditioner(facade, mix, etaR, state.RT)
			if err != nil {
				tries = append(tries, Try{Eta: etaR, D: math.NaN()})
				continue
			}

			problem := optimize.Problem{
				Func:    obj.Eval,
				Limiter: obj.MaxStep,
				GTol:    gtol,
				MaxIter: maxiter,
				Op:      "stability.Run",
			}
			res, err := optimize.Minimize(problem, etaR, h0)
			if err != nil {
				return Result{}, err
			}

			dMin := res.F
			try := Try{Eta: res.X, D: dMin, IsStableLocal: !math.IsNaN(dMin) && dMin >= tau}
			tries = append(tries, try)

			if math.IsNaN(dMin) {
				continue
			}
			anyNonNaN = true

			if dMin < tau {
				return Result{Stable: false, Tries: tries}, nil
			}
		}
	}

	if !anyNonNaN {
		return Result{}, &vtflash.AllTriesNaNError{}
	}
	return Result{Stable: true, Tries: tries}, nil
}

// seedFromRoot computes the root-specific starting concentration of
// spec.md §4.3: eta_r = eta0 * p_init / (Z_r * RT * sum(eta0)).
func seedFromRoot(facade eos.Facade, mix *vtflash.Mixture, eta0 []float64, pInit, RT float64, root eos.Root) ([]float64, bool) {
	z, err := facade.Compressibility(mix, eta0, pInit, RT, root)
	if err != nil || z <= 0 {
		return nil, false
	}
	sum := 0.0
	for _, v := range eta0 {
		sum += v
	}
	scale := pInit / (z * RT * sum)

	eta := make([]float64, len(eta0))
	for i, v := range eta0 {
		eta[i] = v * scale
		if eta[i] <= 0 || math.IsNaN(eta[i]) {
			return nil, false
		}
	}
	return eta, true
}

// rackettSeed refines the liquid-root try of the parent-liquid basis
// using the Rackett-correlation molar volumes (eos.LiquidVolumeSeed)
// instead of a cubic-root compressibility lookup, when every
// component's critical compressibility factor is known. Treating eta0
// as a composition of relative molar amounts, the total volume implied
// by ideal liquid mixing is sum(eta0_i * v_i); eta_i = eta0_i / V
// takes the place of the concentration a cubic-root-derived Z would
// give, without needing the EoS at all. Falls back (ok=false) the moment any
// component lacks Zc, letting the caller retry with seedFromRoot.
func rackettSeed(mix *vtflash.Mixture, eta0 []float64, RT float64) (eta []float64, ok bool) {
	v := make([]float64, len(eta0))
	for i := range mix.Components {
		vi, vok := eos.LiquidVolumeSeed(&mix.Components[i], RT)
		if !vok {
			return nil, false
		}
		v[i] = vi
	}
	total := dot(eta0, v)
	if total <= 0 {
		return nil, false
	}
	eta = make([]float64, len(eta0))
	for i, n := range eta0 {
		eta[i] = n / total
		if eta[i] <= 0 || math.IsNaN(eta[i]) {
			return nil, false
		}
	}
	return eta, true
}

// preconditioner builds H0 = jacobian(log_activity(mix,eta,1,RT)) +
// diag(1/eta), per spec.md §4.3, symmetrized defensively against
// floating-point asymmetry in the Jacobian evaluation.
func preconditioner(facade eos.Facade, mix *vtflash.Mixture, eta []float64, RT float64) (*mat.SymDense, error) {
	_, jac, err := facade.LogActivityJacobian(mix, eta, 1, RT)
	if err != nil {
		return nil, err
	}
	c := len(eta)
	h0 := mat.NewSymDense(c, nil)
	for i := 0; i < c; i++ {
		for j := i; j < c; j++ {
			v := (jac.At(i, j) + jac.At(j, i)) / 2
			if i == j {
				v += 1 / eta[i]
			}
			h0.SetSym(i, j, v)
		}
	}
	return h0, nil
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
