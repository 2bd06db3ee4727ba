package vtflash

import "github.com/rickykimani/vtflash/antoine"

// Component carries the Brusilovsky EoS coefficients and critical
// properties of a single pure species. Fields are immutable once a
// Mixture is built from them.
type Component struct {
	Name string

	// Ac, B, C, D are the four substance-specific Brusilovsky cubic
	// coefficients; Psi is the primary coefficient multiplying the
	// temperature-dependent attraction term. B, C, D are additive
	// across components in the mixing rule; Ac and Psi combine with
	// the mixture's interaction matrices to form aij(RT).
	Ac, B, C, D, Psi float64

	Pc        float64 // critical pressure
	RTc       float64 // critical RT (R * critical temperature)
	Omega     float64 // acentric factor
	MolarMass float64

	// Zc is the critical compressibility factor, used only to refine
	// the parent-liquid stability seed via the Rackett correlation
	// (liquids.Vsat). Zero means "unknown"; the seed falls back to the
	// plain Wilson construction.
	Zc float64

	// Antoine, if non-nil, is preferred over the Wilson correlation
	// when computing this component's saturation-pressure seed; see
	// eos.WilsonSaturationPressure.
	Antoine *antoine.Antoine
}

// Mixture is an ordered, immutable sequence of components plus the
// three symmetric interaction-coefficient matrices that combine at a
// given RT into the binary-interaction correction
// kij(RT) = K0 + K1*RT + K2*RT^2 (see InteractionCorrection).
type Mixture struct {
	Components []Component
	K0, K1, K2 [][]float64
}

// NewMixture validates and constructs a Mixture. Interaction matrices
// may be passed as nil, in which case they default to zero (kij = 0,
// so aij(RT) reduces to the geometric mean sqrt(aii*ajj)).
func NewMixture(components []Component, k0, k1, k2 [][]float64) (*Mixture, error) {
	c := len(components)
	if c == 0 {
		return nil, &InputError{Msg: "mixture must have at least one component"}
	}
	for i := range components {
		if components[i].B <= 0 {
			return nil, &InputError{Msg: "component covolume B must be positive"}
		}
		if components[i].Pc <= 0 || components[i].RTc <= 0 {
			return nil, &InputError{Msg: "component critical properties (Pc, RTc) must be positive"}
		}
	}
	k0 = squareOrZero(k0, c)
	k1 = squareOrZero(k1, c)
	k2 = squareOrZero(k2, c)
	if err := checkSymmetric(k0, c); err != nil {
		return nil, err
	}
	if err := checkSymmetric(k1, c); err != nil {
		return nil, err
	}
	if err := checkSymmetric(k2, c); err != nil {
		return nil, err
	}
	return &Mixture{Components: components, K0: k0, K1: k1, K2: k2}, nil
}

// N returns the number of components in the mixture.
func (m *Mixture) N() int { return len(m.Components) }

// InteractionCorrection returns the dimensionless binary-interaction
// correction kij(RT) = K0 + K1*RT + K2*RT^2. Package eos combines this
// with each component's own temperature-dependent attraction parameter
// (via the usual sqrt(aii*ajj)*(1-kij) combining rule) to build the
// single symmetric aij(RT) table spec.md §3 describes; it is not
// itself that table, since it carries no information about a
// component's own attraction scale.
func (m *Mixture) InteractionCorrection(RT float64) [][]float64 {
	c := m.N()
	out := make([][]float64, c)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = m.K0[i][j] + m.K1[i][j]*RT + m.K2[i][j]*RT*RT
		}
	}
	return out
}

func squareOrZero(k [][]float64, c int) [][]float64 {
	if k != nil {
		return k
	}
	out := make([][]float64, c)
	for i := range out {
		out[i] = make([]float64, c)
	}
	return out
}

func checkSymmetric(k [][]float64, c int) error {
	if len(k) != c {
		return &InputError{Msg: "interaction matrix dimension mismatch"}
	}
	for i := 0; i < c; i++ {
		if len(k[i]) != c {
			return &InputError{Msg: "interaction matrix dimension mismatch"}
		}
		for j := 0; j < c; j++ {
			if k[i][j] != k[j][i] {
				return &InputError{Msg: "interaction matrix must be symmetric"}
			}
		}
	}
	return nil
}
