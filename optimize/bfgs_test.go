package optimize

import (
	"errors"
	"math"
	"testing"

	"github.com/rickykimani/vtflash"
)

// booth is the textbook Booth function: f(x,y) = (x+2y-7)^2 + (2x+y-5)^2,
// with a unique global minimum f=0 at (x,y)=(1,3).
func booth(x []float64, grad []float64) float64 {
	a := x[0] + 2*x[1] - 7
	b := 2*x[0] + x[1] - 5
	if grad != nil {
		grad[0] = 2*a + 4*b
		grad[1] = 4*a + 2*b
	}
	return a*a + b*b
}

func TestMinimizeBooth(t *testing.T) {
	p := Problem{
		Func:    booth,
		GTol:    1e-10,
		MaxIter: 200,
	}
	res, err := Minimize(p, []float64{0, 0}, nil)
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	if !res.Converged {
		t.Fatalf("did not converge in %d iterations, f=%g, grad=%v", res.Iters, res.F, res.Grad)
	}
	if math.Abs(res.X[0]-1) > 1e-4 || math.Abs(res.X[1]-3) > 1e-4 {
		t.Errorf("argmin = %v, want (1,3)", res.X)
	}
	if res.F > 1e-8 {
		t.Errorf("f(argmin) = %g, want ~0", res.F)
	}
}

func TestMinimizeRespectsStepLimiter(t *testing.T) {
	calls := 0
	limiter := func(x, d []float64) float64 {
		calls++
		// Forbid any step: the minimizer should stop immediately
		// after the first gradient evaluation rather than loop.
		return 0
	}
	p := Problem{
		Func:    booth,
		Limiter: limiter,
		GTol:    1e-10,
		MaxIter: 50,
		Op:      "test",
	}
	res, err := Minimize(p, []float64{0, 0}, nil)
	var stepErr *vtflash.StepLimitError
	if !errors.As(err, &stepErr) {
		t.Fatalf("Minimize: expected a *vtflash.StepLimitError, got %v", err)
	}
	if stepErr.Op != "test" {
		t.Errorf("StepLimitError.Op = %q, want %q", stepErr.Op, "test")
	}
	if calls == 0 {
		t.Errorf("expected the step limiter to be consulted")
	}
	if res.X[0] != 0 || res.X[1] != 0 {
		t.Errorf("x moved despite a zero step limit: %v", res.X)
	}
}
