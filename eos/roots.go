package eos

import (
	"fmt"

	"github.com/rickykimani/vtflash"
)

// Compressibility implements Facade. It rearranges
// p*(V-B)*(V+C)*(V+D) = nRT*(V+C)*(V+D) - A*(V-B) into a cubic in V,
// solves it with vtflash.SolveCubic (the same substance-agnostic
// cubic solver the teacher used for molar volume), and reports
// Z = p*V/(n*RT) for whichever real, physically valid root (V > B) the
// caller asked for.
func (b Brusilovsky) Compressibility(mix *vtflash.Mixture, N []float64, p, RT float64, root Root) (float64, error) {
	par := aggregates(mix, N, RT)
	n := totalMoles(N)

	e := p
	f := p*(par.C+par.D-par.B) - n*RT
	g := p*(par.C*par.D-par.B*(par.C+par.D)) - n*RT*(par.C+par.D) + par.A
	h := -p*par.B*par.C*par.D - n*RT*par.C*par.D - par.A*par.B

	cplx, err := vtflash.SolveCubic(e, f, g, h)
	if err != nil {
		return 0, fmt.Errorf("eos: compressibility cubic: %w", err)
	}
	reals := vtflash.RealRoots(cplx, 1e-7)

	var feasible []float64
	for _, v := range reals {
		if v > par.B {
			feasible = append(feasible, v)
		}
	}
	if len(feasible) == 0 {
		return 0, fmt.Errorf("eos: no physically valid molar volume root at p=%g, RT=%g", p, RT)
	}

	var V float64
	switch root {
	case RootGas:
		V = feasible[len(feasible)-1]
	case RootLiquid:
		V = feasible[0]
	default:
		return 0, fmt.Errorf("eos: unknown root selector %v", root)
	}
	return p * V / (n * RT), nil
}
