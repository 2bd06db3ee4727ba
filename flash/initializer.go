package flash

import (
	"math"

	"github.com/rickykimani/vtflash"
)

const (
	satMax      = 0.25
	initSteps   = 200
	initScale0  = 1.0
	initFactor  = 0.5
	tauA        = -1e-7
)

// FindInitialState implements the flash initializer (C6, spec.md
// §4.5): a geometric contraction along the ray defined by the
// stability test's winning trial concentration, seeking a feasible,
// ΔA-negative starting state for the flash optimizer.
func FindInitialState(obj *Objective, N []float64, V float64, etaBest []float64) ([]float64, error) {
	c := len(N)
	grad := make([]float64, c+1)

	for k := 0; k < initSteps; k++ {
		s := satMax * initScale0 * math.Pow(initFactor, float64(k))

		x := make([]float64, c+1)
		for i := range N {
			x[i] = etaBest[i] * (s * V) / N[i]
		}
		x[c] = s

		a := obj.Eval(x, grad)
		if math.IsNaN(a) || math.IsInf(a, 0) {
			continue
		}
		if a < tauA {
			return x, nil
		}
	}
	return nil, &vtflash.InitialStateNotFoundError{Steps: initSteps}
}
