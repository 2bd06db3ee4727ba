package vtflash

// ThermoState is a closed system's specification: component molar
// amounts N, total volume V, and thermal parameter RT.
type ThermoState struct {
	N  []float64
	V  float64
	RT float64
}

// Validate checks the invariants spec.md §3 requires: Nᵢ > 0, V > 0,
// RT > 0, and V exceeds the mixture's total covolume at N.
func (s *ThermoState) Validate(mix *Mixture) error {
	if len(s.N) != mix.N() {
		return &InputError{Msg: "N length does not match mixture component count"}
	}
	if s.V <= 0 {
		return &InputError{Msg: "V must be positive"}
	}
	if s.RT <= 0 {
		return &InputError{Msg: "RT must be positive"}
	}
	covolume := 0.0
	for i, n := range s.N {
		if n <= 0 {
			return &InputError{Msg: "all component amounts N must be positive"}
		}
		covolume += n * mix.Components[i].B
	}
	if s.V <= covolume {
		return &InputError{Msg: "V must exceed the mixture's total covolume at N"}
	}
	return nil
}

// Total returns the total number of moles, sum(N).
func (s *ThermoState) Total() float64 {
	total := 0.0
	for _, n := range s.N {
		total += n
	}
	return total
}
