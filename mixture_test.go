package vtflash

import "testing"

func validComponent() Component {
	return Component{Name: "a", Ac: 1, B: 0.001, D: 0.0008, Psi: 1, Pc: 40, RTc: 8.314 * 200, Omega: 0.01}
}

func TestNewMixtureRejectsEmpty(t *testing.T) {
	if _, err := NewMixture(nil, nil, nil, nil); err == nil {
		t.Errorf("expected an error for an empty mixture")
	}
}

func TestNewMixtureRejectsNonPositiveCovolume(t *testing.T) {
	c := validComponent()
	c.B = 0
	if _, err := NewMixture([]Component{c}, nil, nil, nil); err == nil {
		t.Errorf("expected an error for a non-positive covolume")
	}
}

func TestNewMixtureRejectsBadCriticalProps(t *testing.T) {
	c := validComponent()
	c.RTc = 0
	if _, err := NewMixture([]Component{c}, nil, nil, nil); err == nil {
		t.Errorf("expected an error for a non-positive critical RT")
	}
}

func TestNewMixtureDefaultsNilInteractionMatrices(t *testing.T) {
	mix, err := NewMixture([]Component{validComponent(), validComponent()}, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewMixture: %v", err)
	}
	k := mix.InteractionCorrection(1000)
	for i := range k {
		for j := range k[i] {
			if k[i][j] != 0 {
				t.Errorf("expected zero default interaction correction at (%d,%d), got %g", i, j, k[i][j])
			}
		}
	}
}

func TestNewMixtureRejectsAsymmetricInteractionMatrix(t *testing.T) {
	k0 := [][]float64{{0, 0.1}, {0.2, 0}}
	if _, err := NewMixture([]Component{validComponent(), validComponent()}, k0, nil, nil); err == nil {
		t.Errorf("expected an error for an asymmetric interaction matrix")
	}
}

func TestThermoStateValidate(t *testing.T) {
	mix, err := NewMixture([]Component{validComponent()}, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewMixture: %v", err)
	}

	ok := ThermoState{N: []float64{1}, V: 1, RT: 1000}
	if err := ok.Validate(mix); err != nil {
		t.Errorf("expected a valid state to pass validation, got %v", err)
	}

	belowCovolume := ThermoState{N: []float64{10000}, V: 1, RT: 1000}
	if err := belowCovolume.Validate(mix); err == nil {
		t.Errorf("expected a covolume-infeasible state to be rejected")
	}

	negativeN := ThermoState{N: []float64{-1}, V: 1, RT: 1000}
	if err := negativeN.Validate(mix); err == nil {
		t.Errorf("expected a non-positive N to be rejected")
	}
}
