// Package eos provides a concrete Brusilovsky cubic equation-of-state
// facade: pressure, log-activity (with and without its Jacobian),
// pressure gradients, EoS parameter aggregates, compressibility root
// selection, and Wilson-correlation saturation-pressure seeding.
//
// Facade is the capability interface named in spec.md's design notes;
// Brusilovsky is its sole implementation, but stability and flash
// drivers depend only on Facade so an alternative cubic model can be
// substituted without touching them.
package eos

import (
	"gonum.org/v1/gonum/mat"

	"github.com/rickykimani/vtflash"
)

// Root selects which real root of the compressibility cubic to
// report: the largest (gas/vapor) or the smallest physically valid
// (liquid) root.
type Root int

const (
	RootGas Root = iota
	RootLiquid
)

// Parameters bundles the scalar aggregates and pair matrix spec.md
// §4.1 names: eos_parameters(mix, N, RT) -> (A, B, C, D, aij).
type Parameters struct {
	A, B, C, D float64
	Aij        [][]float64
}

// Facade is the EoS capability boundary consumed by packages stability
// and flash.
type Facade interface {
	// Pressure returns the Brusilovsky pressure at (N, V, RT).
	Pressure(mix *vtflash.Mixture, N []float64, V, RT float64) (float64, error)

	// LogActivity returns ln(phi_i) for each component.
	LogActivity(mix *vtflash.Mixture, N []float64, V, RT float64) ([]float64, error)

	// LogActivityJacobian returns ln(phi_i) together with the
	// Jacobian d(ln phi_i)/d(N_j) at fixed V, RT.
	LogActivityJacobian(mix *vtflash.Mixture, N []float64, V, RT float64) ([]float64, *mat.Dense, error)

	// Parameters returns the (A, B, C, D, aij) aggregates at (N, RT).
	Parameters(mix *vtflash.Mixture, N []float64, RT float64) Parameters

	// PressureGradient returns dp/dN_i for every component and dp/dV,
	// used by the flash analytical Hessian (C7).
	PressureGradient(mix *vtflash.Mixture, N []float64, V, RT float64) (dpdN []float64, dpdV float64, err error)

	// Compressibility solves for the molar volume consistent with
	// (N, p, RT) and returns Z = pV/(nRT) for the requested root.
	Compressibility(mix *vtflash.Mixture, N []float64, p, RT float64, root Root) (float64, error)

	// WilsonSaturationPressure estimates a pure component's vapor
	// pressure at the given RT, used only to seed stability tries.
	WilsonSaturationPressure(c *vtflash.Component, RT float64) float64
}

// Brusilovsky is the module's concrete Facade implementation,
// generalizing the teacher's single-substance cubic.EOSCfg/Pressure/
// LogFugacity to a multicomponent extensive form (see
// brusilovsky.go, roots.go).
type Brusilovsky struct{}

var _ Facade = Brusilovsky{}
