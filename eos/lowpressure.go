package eos

import (
	"fmt"

	"github.com/rickykimani/vtflash"
	"github.com/rickykimani/vtflash/abbott"
	"github.com/rickykimani/vtflash/virial"
)

// LowPressureCompressibility estimates Z for a single component at a
// low pressure (below the two-term virial equation's ~15 bar validity
// limit) using the Pitzer/Abbott generalized correlation for the
// second virial coefficient: B*Pc/RTc = B0(Tr) + omega*B1(Tr).
//
// This is not part of the Brusilovsky cubic pipeline itself — it is a
// cheap, substance-agnostic cross-check available to callers seeding
// or sanity-checking a near-ideal-gas state, reusing the teacher's
// abbott and virial packages rather than duplicating their
// correlations inside the cubic EoS.
func LowPressureCompressibility(c *vtflash.Component, p, RT float64) (float64, error) {
	tr := RT / c.RTc
	b0, err := abbott.B0(tr)
	if err != nil {
		return 0, fmt.Errorf("eos: low-pressure compressibility: %w", err)
	}
	b1, err := abbott.B1(tr)
	if err != nil {
		return 0, fmt.Errorf("eos: low-pressure compressibility: %w", err)
	}
	bReduced := b0 + c.Omega*b1
	b := bReduced * c.RTc / c.Pc

	t := RT / vtflash.R
	z, err := virial.CompressibilityTwoTerm(t, p, vtflash.R, b)
	if err != nil {
		return 0, fmt.Errorf("eos: low-pressure compressibility: %w", err)
	}
	return z, nil
}
