package divergence_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/betanmf/divergence"
)

// TestLoss_EuclideanCalibration verifies the β=2 point against a
// hand-computed 2×2 example: ½·Σ (x−v)².
func TestLoss_EuclideanCalibration(t *testing.T) {
	est := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	target := mat.NewDense(2, 2, []float64{2, 2, 2, 2})

	got, err := divergence.Loss(est, target, divergence.Euclidean)
	require.NoError(t, err, "Euclidean loss on positive matrices must not error")

	// ½·((2−1)² + (2−2)² + (2−3)² + (2−4)²) = ½·(1+0+1+4) = 3
	assert.InDelta(t, 3.0, got, 1e-12, "β=2 must reduce to half squared Euclidean distance")
}

// TestLoss_KLCalibration verifies the β=1 point against the generalized
// KL formula Σ x·ln(x/v) − x + v on a hand-computed 2×2 example.
func TestLoss_KLCalibration(t *testing.T) {
	est := mat.NewDense(2, 2, []float64{1, 1, 1, 1})
	target := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	got, err := divergence.Loss(est, target, divergence.KullbackLeibler)
	require.NoError(t, err)

	want := 0.0
	for _, x := range []float64{1, 2, 3, 4} {
		want += x*math.Log(x) - x + 1
	}
	assert.InDelta(t, want, got, 1e-12, "β=1 must reduce to generalized KL divergence")
}

// TestLoss_ItakuraSaitoZeroAtIdentity verifies D_0(X‖X) = 0.
func TestLoss_ItakuraSaitoZeroAtIdentity(t *testing.T) {
	x := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})

	got, err := divergence.Loss(x, x, divergence.ItakuraSaito)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got, 1e-12, "Itakura–Saito divergence of a matrix with itself must be zero")
}

// TestLoss_GeneralBetaContinuity checks the general branch stays close to
// the KL fast path just off β=1 (the family is continuous in β).
func TestLoss_GeneralBetaContinuity(t *testing.T) {
	est := mat.NewDense(2, 2, []float64{0.5, 1.5, 2.5, 3.5})
	target := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	kl, err := divergence.Loss(est, target, divergence.KullbackLeibler)
	require.NoError(t, err)

	near, err := divergence.Loss(est, target, 1.0001)
	require.NoError(t, err)

	assert.InDelta(t, kl, near, 1e-2, "general branch must approach KL as β → 1")
}

// TestLoss_DimensionMismatch verifies the sentinel on incompatible dims.
func TestLoss_DimensionMismatch(t *testing.T) {
	est := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	target := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})

	_, err := divergence.Loss(est, target, divergence.Euclidean)
	assert.ErrorIs(t, err, divergence.ErrDimensionMismatch, "mismatched dims must return ErrDimensionMismatch")

	_, err = divergence.Grad(est, target, divergence.Euclidean)
	assert.ErrorIs(t, err, divergence.ErrDimensionMismatch, "Grad shares the Loss error taxonomy")
}

// TestLoss_NonPositive verifies positivity enforcement where the selected
// beta divides or takes logarithms.
func TestLoss_NonPositive(t *testing.T) {
	withZero := mat.NewDense(2, 2, []float64{0, 2, 3, 4})
	positive := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	// β=1 requires strictly positive estimates.
	_, err := divergence.Loss(withZero, positive, divergence.KullbackLeibler)
	assert.ErrorIs(t, err, divergence.ErrNonPositive, "zero estimate must be rejected for β=1")

	// β=1 requires strictly positive targets as well.
	_, err = divergence.Loss(positive, withZero, divergence.KullbackLeibler)
	assert.ErrorIs(t, err, divergence.ErrNonPositive, "zero target must be rejected for β=1")

	// β=2 tolerates zeros everywhere.
	_, err = divergence.Loss(withZero, withZero, divergence.Euclidean)
	assert.NoError(t, err, "β=2 places no positivity requirement")
}

// TestGrad_EuclideanFastPath verifies the exact β=2 gradient v − x.
func TestGrad_EuclideanFastPath(t *testing.T) {
	est := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	target := mat.NewDense(2, 2, []float64{2, 2, 2, 2})

	g, err := divergence.Grad(est, target, divergence.Euclidean)
	require.NoError(t, err)

	want := mat.NewDense(2, 2, []float64{-1, 0, 1, 2})
	assert.True(t, mat.EqualApprox(want, g, 1e-12), "β=2 gradient must equal est − target")
}

// TestGrad_MatchesFiniteDifferences cross-checks the closed-form gradient
// against central finite differences for several beta values.
func TestGrad_MatchesFiniteDifferences(t *testing.T) {
	target := mat.NewDense(2, 3, []float64{0.7, 1.2, 2.1, 0.4, 3.3, 1.8})
	base := mat.NewDense(2, 3, []float64{1.1, 0.9, 1.7, 0.6, 2.4, 2.2})

	const h = 1e-6
	for _, beta := range []float64{0, 0.5, 1, 1.5, 2, 2.5} {
		g, err := divergence.Grad(base, target, beta)
		require.NoError(t, err, "beta=%v", beta)

		for i := 0; i < 2; i++ {
			for j := 0; j < 3; j++ {
				bumped := mat.DenseCopyOf(base)

				bumped.Set(i, j, base.At(i, j)+h)
				up, err := divergence.Loss(bumped, target, beta)
				require.NoError(t, err)

				bumped.Set(i, j, base.At(i, j)-h)
				down, err := divergence.Loss(bumped, target, beta)
				require.NoError(t, err)

				numeric := (up - down) / (2 * h)
				assert.InDelta(t, numeric, g.At(i, j), 1e-4,
					"closed-form gradient must match finite differences at beta=%v entry (%d,%d)", beta, i, j)
			}
		}
	}
}
