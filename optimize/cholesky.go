package optimize

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// modifiedCholesky factors a symmetric matrix H as L*L^T, raising any
// pivot that falls below delta to delta (a per-pivot correction, not a
// uniform multiple of the identity), in the spirit of Gill-Murray's
// modified Cholesky. It returns
// the lower-triangular factor L; H itself is left untouched.
//
// This is what keeps BFGS's Hessian estimate usable as a descent
// preconditioner when curvature updates make it indefinite, which
// happens routinely near the stability/flash objective's saddle
// regions.
func modifiedCholesky(h *mat.SymDense) *mat.Dense {
	n := h.SymmetricDim()
	const delta = 1e-10

	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			a[i][j] = h.At(i, j)
		}
	}

	l := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		sum := a[j][j]
		for k := 0; k < j; k++ {
			sum -= l.At(j, k) * l.At(j, k)
		}
		if sum < delta {
			sum = delta
		}
		ljj := math.Sqrt(sum)
		l.Set(j, j, ljj)

		for i := j + 1; i < n; i++ {
			sum := a[i][j]
			for k := 0; k < j; k++ {
				sum -= l.At(i, k) * l.At(j, k)
			}
			l.Set(i, j, sum/ljj)
		}
	}
	return l
}

// solveLLT solves (L*L^T)*x = b for x given the lower-triangular
// factor L returned by modifiedCholesky, via forward then back
// substitution.
func solveLLT(l *mat.Dense, b []float64) []float64 {
	n := len(b)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := b[i]
		for k := 0; k < i; k++ {
			sum -= l.At(i, k) * y[k]
		}
		y[i] = sum / l.At(i, i)
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := y[i]
		for k := i + 1; k < n; k++ {
			sum -= l.At(k, i) * x[k]
		}
		x[i] = sum / l.At(i, i)
	}
	return x
}
