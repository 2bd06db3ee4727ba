// Package optimize implements a bounded-step BFGS minimizer with a
// modified-Cholesky preconditioner, used by packages stability and
// flash to minimize their respective tangent-plane-distance and
// Helmholtz-free-energy objectives over a feasible region that a
// stock unconstrained optimizer (gonum.org/v1/gonum/optimize's BFGS)
// has no hook to express: see DESIGN.md.
package optimize

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/rickykimani/vtflash"
)

// Func is the objective an Problem minimizes: it must fill grad with
// the gradient at x and return the function value.
type Func func(x []float64, grad []float64) float64

// StepLimiter bounds the step length along a descent direction so the
// line search never evaluates Func outside the feasible region (e.g.
// negative mole numbers). It returns the largest alpha in (0, max]
// such that x + alpha*d stays feasible; a limiter may return
// math.Inf(1) when no constraint is active along d.
type StepLimiter func(x, d []float64) float64

// Problem bundles everything BFGS needs: the objective, an optional
// step limiter, and convergence controls.
type Problem struct {
	Func    Func
	Limiter StepLimiter

	// GTol is the gradient-infinity-norm convergence tolerance.
	GTol float64
	// MaxIter bounds the number of BFGS iterations.
	MaxIter int

	// Op names the caller for a *vtflash.StepLimitError, e.g.
	// "stability.Run" or "flash.Run".
	Op string
}

// Result holds the outcome of a Minimize call.
type Result struct {
	X         []float64
	F         float64
	Grad      []float64
	Iters     int
	Converged bool
}

// Minimize runs bounded-step BFGS from x0 with (forward) Hessian state
// seeded from h0 (nil means identity). It never resets the
// approximation mid-run: a single bad curvature update degrades the
// preconditioner for the remainder of that call but does not restart
// it, matching the reset=false behavior spec.md's design notes call
// for (see DESIGN.md open-question resolution).
//
// If the step limiter ever reports no finite positive step, Minimize
// stops and returns a *vtflash.StepLimitError rather than silently
// treating it as ordinary non-convergence; callers that want this to
// be non-fatal must check for it explicitly (none currently do, per
// spec.md §7: fatal for flash, and for stability, where it is rare).
//
// Grounded on the teacher's SolveCubic iterative trig/Cardano solve
// for "roll a numerical method by hand against gonum where no stock
// routine fits" idiom; the BFGS recurrence itself follows Nocedal &
// Wright's standard two-term update, generalized here to carry an
// explicit feasibility bound absent from gonum's optimize.BFGS.
func Minimize(p Problem, x0 []float64, h0 *mat.SymDense) (*Result, error) {
	n := len(x0)
	x := append([]float64(nil), x0...)
	grad := make([]float64, n)
	f := p.Func(x, grad)

	var h *mat.SymDense
	if h0 != nil {
		h = mat.NewSymDense(n, nil)
		h.CopySym(h0)
	} else {
		h = identitySym(n)
	}

	result := &Result{X: x, F: f, Grad: grad}

	for iter := 0; iter < p.MaxIter; iter++ {
		result.Iters = iter + 1

		if infNorm(grad) < p.GTol {
			result.Converged = true
			break
		}

		dir := descentDirection(h, grad)

		maxStep := math.Inf(1)
		if p.Limiter != nil {
			maxStep = p.Limiter(x, dir)
		}
		if maxStep <= 0 {
			return result, &vtflash.StepLimitError{Op: p.Op}
		}

		alpha, fNew, gradNew, ok := backtrack(p.Func, x, dir, f, grad, maxStep)
		if !ok {
			break
		}

		xNew := make([]float64, n)
		for i := range x {
			xNew[i] = x[i] + alpha*dir[i]
		}

		s := make([]float64, n)
		y := make([]float64, n)
		for i := range x {
			s[i] = xNew[i] - x[i]
			y[i] = gradNew[i] - grad[i]
		}
		updateHessian(h, s, y)

		x, f, grad = xNew, fNew, gradNew
		result.X, result.F, result.Grad = x, f, grad
	}

	return result, nil
}

// descentDirection returns -H*grad via the modified-Cholesky factor
// of H, so the direction is a genuine descent direction even when the
// raw BFGS update has drifted indefinite.
func descentDirection(h *mat.SymDense, grad []float64) []float64 {
	l := modifiedCholesky(h)
	neg := make([]float64, len(grad))
	for i, g := range grad {
		neg[i] = -g
	}
	return solveLLT(l, neg)
}

// backtrack performs Armijo backtracking line search bounded above by
// maxStep, halving the step on failure.
func backtrack(f Func, x, dir []float64, f0 float64, grad0 []float64, maxStep float64) (alpha, fNew float64, gradNew []float64, ok bool) {
	const c1 = 1e-4
	const shrink = 0.5
	const minAlpha = 1e-16

	directional := dot(grad0, dir)
	alpha = maxStep
	if alpha > 1 {
		alpha = 1
	}

	n := len(x)
	trial := make([]float64, n)
	gradTrial := make([]float64, n)

	for alpha > minAlpha {
		for i := range x {
			trial[i] = x[i] + alpha*dir[i]
		}
		fTrial := f(trial, gradTrial)
		if math.IsNaN(fTrial) {
			alpha *= shrink
			continue
		}
		if fTrial <= f0+c1*alpha*directional {
			return alpha, fTrial, append([]float64(nil), gradTrial...), true
		}
		alpha *= shrink
	}
	return 0, 0, nil, false
}

// updateHessian applies the BFGS rank-two *forward*-Hessian update
//
//	B' = B - (Bs)(Bs)^T/(s^T B s) + y*y^T/(y^T s)
//
// rather than the textbook inverse-Hessian update, because h is
// consumed by descentDirection via a modified-Cholesky solve of
// h*dir = -grad: that only produces a Newton-like descent direction
// when h is the Hessian itself, not its inverse. Curvature pairs with
// s.y <= 1e-12 (or s^T B s <= 1e-12) are skipped rather than applied,
// which is what lets the
// preconditioner stay well-defined without an explicit reset.
func updateHessian(h *mat.SymDense, s, y []float64) {
	sy := dot(s, y)
	if sy <= 1e-12 {
		return
	}
	n := len(s)

	bs := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += h.At(i, j) * s[j]
		}
		bs[i] = sum
	}
	sBs := dot(s, bs)
	if sBs <= 1e-12 {
		return
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := h.At(i, j) - bs[i]*bs[j]/sBs + y[i]*y[j]/sy
			h.SetSym(i, j, v)
		}
	}
}

func identitySym(n int) *mat.SymDense {
	h := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		h.SetSym(i, i, 1)
	}
	return h
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func infNorm(v []float64) float64 {
	m := 0.0
	for _, x := range v {
		if a := math.Abs(x); a > m {
			m = a
		}
	}
	return m
}
