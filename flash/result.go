package flash

// Result is the flash_result sum type spec.md §9 design notes call
// for: single_phase and two_phase are mutually exclusive, so they are
// modeled as distinct types rather than a flag plus possibly
// uninitialized fields. Exactly one of SinglePhaseResult or
// TwoPhaseResult is produced by Run.
type Result interface {
	isFlashResult()
}

// SinglePhaseResult is returned when the VT-Stability test finds the
// input already stable: no split is computed.
type SinglePhaseResult struct {
	RT        float64
	N         []float64
	V         float64
	Converged bool
}

func (SinglePhaseResult) isFlashResult() {}

// TwoPhaseResult is returned when the input is unstable and VT-Flash
// converges (or exhausts its iteration budget) on a split. Phase 1 is
// always the gas phase (higher Z), per spec.md §4.8.
type TwoPhaseResult struct {
	RT        float64
	N1, N2    []float64
	V1, V2    float64
	Z1, Z2    float64
	Converged bool
}

func (TwoPhaseResult) isFlashResult() {}
