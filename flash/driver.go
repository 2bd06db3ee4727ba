package flash

import (
	"github.com/rickykimani/vtflash"
	"github.com/rickykimani/vtflash/eos"
	"github.com/rickykimani/vtflash/optimize"
	"github.com/rickykimani/vtflash/stability"
)

const (
	flashGtol    = 1e-3
	flashMaxiter = 100
)

// Run is the library entry point for VT-Flash (the "flash(mix, N, V,
// RT)" operation of spec.md §6), implementing the C8 state machine:
// START -> STABILITY -> {SINGLE_PHASE_DONE | INIT_SEARCH} -> HESSIAN
// -> OPTIMIZE -> CLASSIFY -> DONE. Like stability.Run, it is a
// subpackage entry point rather than a root-level wrapper, to avoid
// an import cycle with the shared types in package vtflash; see
// DESIGN.md.
func Run(facade eos.Facade, mix *vtflash.Mixture, state vtflash.ThermoState) (Result, error) {
	stabRes, err := stability.Run(facade, mix, state)
	if err != nil {
		return nil, err
	}
	if stabRes.Stable {
		return SinglePhaseResult{RT: state.RT, N: state.N, V: state.V, Converged: true}, nil
	}

	// The try that triggered the early-exit rule is the last one
	// recorded: stability.Run stops appending as soon as D_min < tau.
	etaBest := stabRes.Tries[len(stabRes.Tries)-1].Eta

	obj, err := NewObjective(facade, mix, state.N, state.V, state.RT)
	if err != nil {
		return nil, err
	}

	x0, err := FindInitialState(obj, state.N, state.V, etaBest)
	if err != nil {
		return nil, err
	}

	h0, err := Hessian(facade, mix, state.N, state.V, state.RT, x0)
	if err != nil {
		return nil, err
	}

	problem := optimize.Problem{
		Func:    obj.Eval,
		Limiter: obj.MaxStep,
		GTol:    flashGtol,
		MaxIter: flashMaxiter,
		Op:      "flash.Run",
	}
	res, err := optimize.Minimize(problem, x0, h0)
	if err != nil {
		return nil, err
	}

	return classify(facade, mix, state, res)
}

// classify extracts the two phases from the optimizer's final state
// and labels phase 1 as the gas phase (higher Z), per spec.md §4.7-4.8.
func classify(facade eos.Facade, mix *vtflash.Mixture, state vtflash.ThermoState, res *optimize.Result) (Result, error) {
	c := len(state.N)
	x := res.X

	n1 := make([]float64, c)
	n2 := make([]float64, c)
	for i, n := range state.N {
		n1[i] = n * x[i]
		n2[i] = n - n1[i]
	}
	v1 := state.V * x[c]
	v2 := state.V - v1

	z1, err := phaseZ(facade, mix, n1, v1, state.RT)
	if err != nil {
		return nil, &vtflash.EoSDomainError{Op: "flash.classify", Cause: err}
	}
	z2, err := phaseZ(facade, mix, n2, v2, state.RT)
	if err != nil {
		return nil, &vtflash.EoSDomainError{Op: "flash.classify", Cause: err}
	}

	if z2 > z1 {
		n1, n2 = n2, n1
		v1, v2 = v2, v1
		z1, z2 = z2, z1
	}

	return TwoPhaseResult{
		RT: state.RT, N1: n1, N2: n2, V1: v1, V2: v2,
		Z1: z1, Z2: z2, Converged: res.Converged,
	}, nil
}

func phaseZ(facade eos.Facade, mix *vtflash.Mixture, N []float64, V, RT float64) (float64, error) {
	p, err := facade.Pressure(mix, N, V, RT)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, n := range N {
		total += n
	}
	return p * V / (total * RT), nil
}
