// SPDX-License-Identifier: MIT

package divergence

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Canonical calibration points of the beta-divergence family.
const (
	// ItakuraSaito selects the Itakura–Saito divergence (β = 0).
	ItakuraSaito = 0.0

	// KullbackLeibler selects the generalized KL divergence (β = 1).
	KullbackLeibler = 1.0

	// Euclidean selects half the squared Euclidean distance (β = 2).
	Euclidean = 2.0
)

var (
	// ErrDimensionMismatch indicates that estimate and target have
	// different dimensions.
	ErrDimensionMismatch = errors.New("divergence: dimension mismatch")

	// ErrNonPositive indicates an entry ≤ 0 where the selected beta
	// requires strict positivity (estimates for β < 2, targets for β ≤ 1).
	// Callers are expected to clamp inputs to a positive floor first.
	ErrNonPositive = errors.New("divergence: non-positive entry")
)

// Loss returns the total beta-divergence D_β(target ‖ est) summed over
// all entries.
//
// Calibration points:
//   - β = 2: ½·Σ (x−v)²           (squared Euclidean)
//   - β = 1: Σ x·ln(x/v) − x + v  (generalized KL)
//   - β = 0: Σ x/v − ln(x/v) − 1  (Itakura–Saito)
//   - else : Σ (x^β + (β−1)·v^β − β·x·v^(β−1)) / (β(β−1))
//
// Errors:
//   - ErrDimensionMismatch — est and target dims differ.
//   - ErrNonPositive       — positivity violated for the selected β.
//
// Complexity: Time O(m·n), Space O(1).
func Loss(est, target mat.Matrix, beta float64) (float64, error) {
	if err := validate(est, target, beta); err != nil {
		return 0, err
	}

	r, c := est.Dims()
	var sum float64
	switch beta {
	case Euclidean:
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				d := target.At(i, j) - est.At(i, j)
				sum += 0.5 * d * d
			}
		}
	case KullbackLeibler:
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				x, v := target.At(i, j), est.At(i, j)
				sum += x*math.Log(x/v) - x + v
			}
		}
	case ItakuraSaito:
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				x, v := target.At(i, j), est.At(i, j)
				ratio := x / v
				sum += ratio - math.Log(ratio) - 1
			}
		}
	default:
		norm := beta * (beta - 1)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				x, v := target.At(i, j), est.At(i, j)
				sum += (math.Pow(x, beta) + (beta-1)*math.Pow(v, beta) - beta*x*math.Pow(v, beta-1)) / norm
			}
		}
	}

	return sum, nil
}

// Grad returns the element-wise gradient of Loss with respect to the
// estimate: ∂D_β/∂v = v^(β−1) − x·v^(β−2), valid for every real β.
//
// Fast paths:
//   - β = 2: v − x
//   - β = 1: 1 − x/v
//   - β = 0: (v − x) / v²
//
// Errors: same taxonomy as Loss.
//
// Complexity: Time O(m·n), Space O(m·n) for the returned matrix.
func Grad(est, target mat.Matrix, beta float64) (*mat.Dense, error) {
	if err := validate(est, target, beta); err != nil {
		return nil, err
	}

	r, c := est.Dims()
	g := mat.NewDense(r, c, nil)
	switch beta {
	case Euclidean:
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				g.Set(i, j, est.At(i, j)-target.At(i, j))
			}
		}
	case KullbackLeibler:
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				g.Set(i, j, 1-target.At(i, j)/est.At(i, j))
			}
		}
	case ItakuraSaito:
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				x, v := target.At(i, j), est.At(i, j)
				g.Set(i, j, (v-x)/(v*v))
			}
		}
	default:
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				x, v := target.At(i, j), est.At(i, j)
				g.Set(i, j, math.Pow(v, beta-1)-x*math.Pow(v, beta-2))
			}
		}
	}

	return g, nil
}

// validate enforces the shared preconditions of Loss and Grad:
// equal dims, strictly positive estimates for β < 2, strictly positive
// targets for β ≤ 1.
func validate(est, target mat.Matrix, beta float64) error {
	er, ec := est.Dims()
	tr, tc := target.Dims()
	if er != tr || ec != tc {
		return ErrDimensionMismatch
	}
	needEstPos := beta < Euclidean
	needTargetPos := beta <= KullbackLeibler
	if !needEstPos && !needTargetPos {
		return nil
	}
	for i := 0; i < er; i++ {
		for j := 0; j < ec; j++ {
			if needEstPos && est.At(i, j) <= 0 {
				return ErrNonPositive
			}
			if needTargetPos && target.At(i, j) <= 0 {
				return ErrNonPositive
			}
		}
	}

	return nil
}
