package flash

import (
	"gonum.org/v1/gonum/mat"

	"github.com/rickykimani/vtflash"
	"github.com/rickykimani/vtflash/eos"
)

// Hessian assembles the exact (c+1)x(c+1) Hessian of ΔA at state x,
// per spec.md §4.6, from the two phases' log-activity Jacobians and
// pressure gradients. It is used only as a BFGS preconditioner (C7),
// never as a standalone Newton step.
func Hessian(facade eos.Facade, mix *vtflash.Mixture, N []float64, V, RT float64, x []float64) (*mat.SymDense, error) {
	c := len(N)
	nPrime := make([]float64, c)
	nDouble := make([]float64, c)
	for i, n := range N {
		nPrime[i] = n * x[i]
		nDouble[i] = n - nPrime[i]
	}
	vPrime := V * x[c]
	vDouble := V - vPrime

	_, jPrime, err := facade.LogActivityJacobian(mix, nPrime, vPrime, RT)
	if err != nil {
		return nil, &vtflash.EoSDomainError{Op: "flash.Hessian", Cause: err}
	}
	_, jDouble, err := facade.LogActivityJacobian(mix, nDouble, vDouble, RT)
	if err != nil {
		return nil, &vtflash.EoSDomainError{Op: "flash.Hessian", Cause: err}
	}
	dpdNPrime, dpdVPrime, err := facade.PressureGradient(mix, nPrime, vPrime, RT)
	if err != nil {
		return nil, &vtflash.EoSDomainError{Op: "flash.Hessian", Cause: err}
	}
	dpdNDouble, dpdVDouble, err := facade.PressureGradient(mix, nDouble, vDouble, RT)
	if err != nil {
		return nil, &vtflash.EoSDomainError{Op: "flash.Hessian", Cause: err}
	}

	h := mat.NewSymDense(c+1, nil)
	for i := 0; i < c; i++ {
		for j := i; j < c; j++ {
			b := RT * N[i] * N[j] * (jPrime.At(i, j) + jDouble.At(i, j))
			h.SetSym(i, j, b)
		}
	}
	for i := 0; i < c; i++ {
		col := -V * N[i] * (dpdNPrime[i] + dpdNDouble[i])
		h.SetSym(i, c, col)
	}
	d := -V * V * (dpdVPrime + dpdVDouble)
	h.SetSym(c, c, d)

	return h, nil
}
