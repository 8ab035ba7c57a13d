package nmf_test

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/betanmf/nmf"
)

// benchmarkFit is a helper that factorizes a deterministic m×n target at
// the given rank and beta. It rebuilds a fresh model per loop step so
// every pass starts from the same initialization, resets the timer
// before entering the loop and fails on unexpected errors.
func benchmarkFit(b *testing.B, m, n, rank int, beta float64) {
	rnd := rand.New(rand.NewSource(42))
	data := make([]float64, m*n)
	for i := range data {
		data[i] = rnd.Float64() + 0.1 // keep entries strictly positive
	}
	x := mat.NewDense(m, n, data)

	opts := nmf.DefaultFitOptions()
	opts.Beta = beta
	opts.Tol = 0
	opts.MaxIter = 10

	b.ResetTimer() // ignore setup time
	for i := 0; i < b.N; i++ {
		model, err := nmf.New(m, n, rank, nmf.WithRandSource(rand.NewSource(1)))
		if err != nil {
			b.Fatalf("New failed: %v", err)
		}
		if _, err = model.Fit(x, &opts); err != nil {
			b.Fatalf("Fit failed: %v", err)
		}
	}
}

// BenchmarkFit_EuclideanSmall benchmarks the β=2 fast path on a 20×15 target, rank 3.
func BenchmarkFit_EuclideanSmall(b *testing.B) {
	benchmarkFit(b, 20, 15, 3, 2)
}

// BenchmarkFit_EuclideanMedium benchmarks the β=2 fast path on a 100×80 target, rank 8.
func BenchmarkFit_EuclideanMedium(b *testing.B) {
	benchmarkFit(b, 100, 80, 8, 2)
}

// BenchmarkFit_KLSmall benchmarks β=1 with its vector-denominator cache on a 20×15 target.
func BenchmarkFit_KLSmall(b *testing.B) {
	benchmarkFit(b, 20, 15, 3, 1)
}

// BenchmarkFit_KLMedium benchmarks β=1 with its vector-denominator cache on a 100×80 target.
func BenchmarkFit_KLMedium(b *testing.B) {
	benchmarkFit(b, 100, 80, 8, 1)
}

// BenchmarkFit_ItakuraSaitoSmall benchmarks β=0, the general power path with γ=½.
func BenchmarkFit_ItakuraSaitoSmall(b *testing.B) {
	benchmarkFit(b, 20, 15, 3, 0)
}

// BenchmarkFit_FractionalBetaSmall benchmarks a non-integer β on the general path.
func BenchmarkFit_FractionalBetaSmall(b *testing.B) {
	benchmarkFit(b, 20, 15, 3, 1.5)
}
