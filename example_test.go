package vtflash_test

import (
	"fmt"

	"github.com/rickykimani/vtflash"
	"github.com/rickykimani/vtflash/eos"
	"github.com/rickykimani/vtflash/flash"
)

// This example builds a single-component mixture and runs the flash
// driver on it. It has no "Output:" comment, so it is compiled as
// documentation but not executed as a doctest against stdout, since
// exact convergence iteration counts are not part of the module's
// stable contract.
func Example() {
	methane := vtflash.Component{
		Name:  "methane",
		Ac:    0.42748 * 8.314 * 8.314 * 190.6 * 190.6 / 46.0,
		B:     0.001,
		D:     0.0008,
		Psi:   1,
		Pc:    46.0,
		RTc:   8.314 * 190.6,
		Omega: 0.008,
	}
	mix, err := vtflash.NewMixture([]vtflash.Component{methane}, nil, nil, nil)
	if err != nil {
		fmt.Println("invalid mixture:", err)
		return
	}

	state := vtflash.ThermoState{N: []float64{1}, V: 0.1, RT: methane.RTc * 1.5}
	result, err := flash.Run(eos.Brusilovsky{}, mix, state)
	if err != nil {
		fmt.Println("flash failed:", err)
		return
	}

	switch r := result.(type) {
	case flash.SinglePhaseResult:
		fmt.Println("single phase, converged:", r.Converged)
	case flash.TwoPhaseResult:
		fmt.Println("two phase split, converged:", r.Converged)
	}
}
