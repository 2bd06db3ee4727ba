package eos

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/rickykimani/vtflash"
)

// alpha is the Soave-type temperature correction generalizing the
// teacher's pr.Alpha (cubic/cubic.go): alpha(Tr, omega) =
// (1 + m(omega)*(1-sqrt(Tr)))^2, m(omega) = 0.37464+1.54226*omega-0.26992*omega^2.
// Brusilovsky's per-component Ac/Psi play the role of the teacher's
// R^2*Tc^2/Pc scale factor and Psi weight in calculatea.
func alpha(tr, omega float64) float64 {
	m := 0.37464 + 1.54226*omega - 0.26992*omega*omega
	f := 1 + m*(1-math.Sqrt(tr))
	return f * f
}

// attraction returns each component's own temperature-dependent
// attraction parameter a_ii(RT) = Ac*Psi*alpha(Tr, omega).
func attraction(mix *vtflash.Mixture, RT float64) []float64 {
	out := make([]float64, mix.N())
	for i, comp := range mix.Components {
		tr := RT / comp.RTc
		out[i] = comp.Ac * comp.Psi * alpha(tr, comp.Omega)
	}
	return out
}

// pairAij combines the per-component attraction parameters with the
// mixture's RT-dependent binary-interaction correction into the
// single symmetric aij(RT) table spec.md §3 describes:
// aij(RT) = sqrt(aii*ajj) * (1 - kij(RT)).
func pairAij(mix *vtflash.Mixture, RT float64) [][]float64 {
	aii := attraction(mix, RT)
	kij := mix.InteractionCorrection(RT)
	c := mix.N()
	out := make([][]float64, c)
	for i := 0; i < c; i++ {
		out[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			out[i][j] = math.Sqrt(aii[i]*aii[j]) * (1 - kij[i][j])
		}
	}
	return out
}

// aggregates computes the extensive (A, B, C, D, aij) parameters
// spec.md §4.1's eos_parameters names: B = sum N_i*b_i, C = sum N_i*c_i,
// D = sum N_i*d_i, A = sum_ij N_i*N_j*aij(RT).
func aggregates(mix *vtflash.Mixture, N []float64, RT float64) Parameters {
	aij := pairAij(mix, RT)
	var A, B, C, D float64
	for i, comp := range mix.Components {
		B += N[i] * comp.B
		C += N[i] * comp.C
		D += N[i] * comp.D
		for j := range mix.Components {
			A += N[i] * N[j] * aij[i][j]
		}
	}
	return Parameters{A: A, B: B, C: C, D: D, Aij: aij}
}

// Parameters implements Facade.
func (Brusilovsky) Parameters(mix *vtflash.Mixture, N []float64, RT float64) Parameters {
	return aggregates(mix, N, RT)
}

// Pressure implements Facade: P = n*RT/(V-B) - A/((V+C)*(V+D)).
func (b Brusilovsky) Pressure(mix *vtflash.Mixture, N []float64, V, RT float64) (float64, error) {
	p := aggregates(mix, N, RT)
	n := totalMoles(N)
	if V <= p.B {
		return 0, fmt.Errorf("eos: V (%g) does not exceed covolume B (%g)", V, p.B)
	}
	return n*RT/(V-p.B) - p.A/((V+p.C)*(V+p.D)), nil
}

// PressureGradient implements Facade.
func (b Brusilovsky) PressureGradient(mix *vtflash.Mixture, N []float64, V, RT float64) ([]float64, float64, error) {
	p := aggregates(mix, N, RT)
	n := totalMoles(N)
	if V <= p.B {
		return nil, 0, fmt.Errorf("eos: V (%g) does not exceed covolume B (%g)", V, p.B)
	}
	Q := (V + p.C) * (V + p.D)
	dpdN := make([]float64, mix.N())
	for i, comp := range mix.Components {
		Ai := rowSum(p.Aij, N, i)
		dQdNi := comp.C*(V+p.D) + comp.D*(V+p.C)
		dpdN[i] = RT/(V-p.B) + n*RT*comp.B/((V-p.B)*(V-p.B)) - Ai/Q + p.A*dQdNi/(Q*Q)
	}
	dpdV := -n*RT/((V-p.B)*(V-p.B)) + p.A*(2*V+p.C+p.D)/(Q*Q)
	return dpdN, dpdV, nil
}

// LogActivity implements Facade.
func (b Brusilovsky) LogActivity(mix *vtflash.Mixture, N []float64, V, RT float64) ([]float64, error) {
	lp, _, err := logActivity(mix, N, V, RT, false)
	return lp, err
}

// LogActivityJacobian implements Facade.
func (b Brusilovsky) LogActivityJacobian(mix *vtflash.Mixture, N []float64, V, RT float64) ([]float64, *mat.Dense, error) {
	lp, jac, err := logActivity(mix, N, V, RT, true)
	return lp, jac, err
}

// logActivity is the shared implementation behind LogActivity and
// LogActivityJacobian: computing the Jacobian is a strict superset of
// computing the values, so both share one pass over the aggregates.
//
// Grounded on cubic/saturation.go's LogFugacity (term1 = Z-1-ln(Z-B),
// term2 = A/(B*(eps-sigma))*ln((Z+sigma*B)/(Z+eps*B))) generalized from
// the residual-Helmholtz form to independent C, D aggregates: ln phi_i
// is the N_i-derivative of -n*ln(1-B/V) - A/(RT*(D-C))*ln((V+D)/(V+C)),
// and the Jacobian is its second derivative.
func logActivity(mix *vtflash.Mixture, N []float64, V, RT float64, withJacobian bool) ([]float64, *mat.Dense, error) {
	p := aggregates(mix, N, RT)
	c := mix.N()
	n := totalMoles(N)
	if V <= p.B {
		return nil, nil, fmt.Errorf("eos: V (%g) does not exceed covolume B (%g)", V, p.B)
	}
	E := p.D - p.C
	if E == 0 {
		return nil, nil, fmt.Errorf("eos: degenerate mixture (C == D), unsupported")
	}
	F := math.Log((V + p.D) / (V + p.C))
	H := p.A / E

	bs := make([]float64, c)
	cs := make([]float64, c)
	ds := make([]float64, c)
	Ai := make([]float64, c)
	for i, comp := range mix.Components {
		bs[i], cs[i], ds[i] = comp.B, comp.C, comp.D
		Ai[i] = rowSum(p.Aij, N, i)
	}

	lnPhi := make([]float64, c)
	dHdN := make([]float64, c)
	dFdN := make([]float64, c)
	for i := 0; i < c; i++ {
		dHdN[i] = Ai[i]/E - p.A*(ds[i]-cs[i])/(E*E)
		dFdN[i] = ds[i]/(V+p.D) - cs[i]/(V+p.C)

		term1 := -math.Log(1-p.B/V) + n*bs[i]/(V-p.B)
		term2 := -(dHdN[i]*F + H*dFdN[i]) / RT
		lnPhi[i] = term1 + term2
	}

	if !withJacobian {
		return lnPhi, nil, nil
	}

	jac := mat.NewDense(c, c, nil)
	for i := 0; i < c; i++ {
		for j := 0; j < c; j++ {
			dterm1 := (bs[i]+bs[j])/(V-p.B) + n*bs[i]*bs[j]/((V-p.B)*(V-p.B))

			d2F := -ds[i]*ds[j]/((V+p.D)*(V+p.D)) + cs[i]*cs[j]/((V+p.C)*(V+p.C))
			d2H := 2*p.Aij[i][j]/E - Ai[i]*(ds[j]-cs[j])/(E*E) - (ds[i]-cs[i])*Ai[j]/(E*E) +
				2*p.A*(ds[i]-cs[i])*(ds[j]-cs[j])/(E*E*E)
			dterm2 := -(d2H*F + dHdN[i]*dFdN[j] + dHdN[j]*dFdN[i] + H*d2F) / RT

			jac.Set(i, j, dterm1+dterm2)
		}
	}
	return lnPhi, jac, nil
}

func totalMoles(N []float64) float64 {
	n := 0.0
	for _, v := range N {
		n += v
	}
	return n
}

// rowSum returns 2*sum_j(N_j*aij[i][j]), i.e. dA/dN_i.
func rowSum(aij [][]float64, N []float64, i int) float64 {
	s := 0.0
	for j, nj := range N {
		s += nj * aij[i][j]
	}
	return 2 * s
}
