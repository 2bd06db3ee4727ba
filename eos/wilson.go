package eos

import (
	"math"

	"github.com/rickykimani/vtflash"
	"github.com/rickykimani/vtflash/liquids"
)

// WilsonSaturationPressure implements Facade. It prefers a component's
// Antoine coefficients when present — the teacher's antoine.Antoine,
// evaluated at the Celsius temperature implied by RT — as long as
// antoine.Antoine.Pressure returns no error (that temperature lies in
// the Antoine validity range); otherwise it uses the Wilson correlation
//
//	ln(Pr_sat) = 5.373*(1+omega)*(1 - 1/Tr)
//
// used only to seed the four VT-Stability tries (C4), never as an
// input to the cubic itself.
func (b Brusilovsky) WilsonSaturationPressure(c *vtflash.Component, RT float64) float64 {
	if c.Antoine != nil {
		tCelsius := RT/vtflash.R - 273.15
		if p, err := c.Antoine.Pressure(tCelsius); err == nil {
			return p
		}
	}
	tr := RT / c.RTc
	return c.Pc * math.Exp(5.373*(1+c.Omega)*(1-1/tr))
}

// LiquidVolumeSeed refines a component's parent-liquid stability seed
// using the Rackett correlation (liquids.Vsat), for package stability's
// parent-liquid try construction (C4), when the component carries a
// known critical compressibility factor. The critical molar volume is
// recovered from Pc*Vc = Zc*R*Tc, i.e. Vc = Zc*RTc/Pc. Returns
// ok=false when Zc is unknown (zero), letting the caller fall back to
// the Wilson seed scaled by a cubic-root compressibility.
func LiquidVolumeSeed(c *vtflash.Component, RT float64) (v float64, ok bool) {
	if c.Zc <= 0 {
		return 0, false
	}
	vc := c.Zc * c.RTc / c.Pc
	tr := RT / c.RTc
	vsat, err := liquids.Vsat(vc, c.Zc, tr)
	if err != nil {
		return 0, false
	}
	return vsat, true
}
