// SPDX-License-Identifier: MIT
// Package nmf: factorization models. A Model supplies its forward
// reconstruction graph and the two analytic positive-term oracles; loss
// computation, gradients and the update mechanics are generic.

package nmf

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/betanmf/divergence"
	"github.com/katalvlaran/betanmf/grad"
)

// Model is a reconstruction model fit by multiplicative updates.
//
// A concrete model owns two factor collections W (m×k) and H (k×n) and
// defines how they combine into an estimate of X. The two positive-term
// oracles return the analytic MU denominator for the respective factor —
// the only beta- and shape-specific computation a model contributes; the
// matching numerator is recovered generically from the tape gradient via
// the identity grad = pos − numerator.
//
// Oracles may return a broadcast vector (1×k for W, k×1 for H) instead
// of a full-shape denominator; the update engine handles both. The sum
// return value is a cache valid while the *other* factor is unchanged
// (only used at β=1, where the denominator ignores the reconstruction);
// callers pass the previous cache in and store the returned one.
type Model interface {
	// Factors returns the model's factor collections, W then H.
	Factors() (W, H *Factors)

	// Epsilon is the positivity floor applied to X and reconstructions.
	Epsilon() float64

	// Reconstruct builds the estimate of X on the tape from the given
	// factor nodes. It must be a pure function of its inputs.
	Reconstruct(t *grad.Tape, H, W *grad.Var) *grad.Var

	// WPositive returns the analytic MU denominator for W given the
	// current reconstruction, plus the (possibly refreshed) β=1 cache of
	// H row sums.
	WPositive(WH *mat.Dense, beta float64, hSum *mat.Dense) (pos, sum *mat.Dense)

	// HPositive is the H-side counterpart, caching W column sums.
	HPositive(WH *mat.Dense, beta float64, wSum *mat.Dense) (pos, sum *mat.Dense)
}

// NMF is the plain matrix-product model: X ≈ W·H.
type NMF struct {
	w, h *Factors
	rank int
	eps  float64
}

// New constructs an NMF model for an m×n target with the given rank.
// W is m blocks of 1×rank (one per example); H is rank blocks of 1×n
// (one per component). Factors are initialized uniformly at random in
// [0,1) unless explicit values are supplied via options.
//
// Errors: ErrBadShape (m, n or rank ≤ 0, malformed initial block),
// ErrBlockCount, ErrNegativeInit — all before any allocation is retained.
func New(m, n, rank int, opts ...Option) (*NMF, error) {
	if m <= 0 || n <= 0 || rank <= 0 {
		return nil, ErrBadShape
	}

	o := gatherOptions(opts...)
	rnd := rand.New(o.src)

	w, err := NewFactors(m, rank, o.initialW, o.fixedW, rnd)
	if err != nil {
		return nil, err
	}
	h, err := NewFactors(rank, n, o.initialH, o.fixedH, rnd)
	if err != nil {
		return nil, err
	}

	return &NMF{w: w, h: h, rank: rank, eps: o.epsilon}, nil
}

// Factors returns the W and H collections.
func (nm *NMF) Factors() (*Factors, *Factors) { return nm.w, nm.h }

// Epsilon returns the positivity floor.
func (nm *NMF) Epsilon() float64 { return nm.eps }

// Rank returns the factorization rank k.
func (nm *NMF) Rank() int { return nm.rank }

// W returns a snapshot of the concatenated m×k weight matrix.
func (nm *NMF) W() *mat.Dense { return nm.w.Matrix() }

// H returns a snapshot of the concatenated k×n component matrix.
func (nm *NMF) H() *mat.Dense { return nm.h.Matrix() }

// Reconstruct is the plain matrix product W·H.
func (nm *NMF) Reconstruct(t *grad.Tape, H, W *grad.Var) *grad.Var {
	return t.MatMul(W, H)
}

// WPositive returns the analytic MU denominator for W.
//
// At β=1 the denominator is independent of the reconstruction: it is the
// row-sum vector of H, broadcast over all m rows — computed once and
// cached until H changes. Otherwise it is WH^(β−1)·Hᵀ, with the power
// skipped at β=2 where the exponent is 1.
func (nm *NMF) WPositive(WH *mat.Dense, beta float64, hSum *mat.Dense) (pos, sum *mat.Dense) {
	if beta == divergence.KullbackLeibler {
		if hSum == nil {
			h := nm.h.Matrix()
			sums := make([]float64, nm.rank)
			for i := range sums {
				sums[i] = floats.Sum(h.RawRowView(i))
			}
			hSum = mat.NewDense(1, nm.rank, sums)
		}

		return hSum, hSum
	}

	v := WH
	if beta != divergence.Euclidean {
		v = powElem(WH, beta-1)
	}
	var denom mat.Dense
	denom.Mul(v, nm.h.Matrix().T())

	return &denom, hSum
}

// HPositive returns the analytic MU denominator for H: the column-sum
// vector of W at β=1 (broadcast over all n columns), Wᵀ·WH^(β−1)
// otherwise.
func (nm *NMF) HPositive(WH *mat.Dense, beta float64, wSum *mat.Dense) (pos, sum *mat.Dense) {
	if beta == divergence.KullbackLeibler {
		if wSum == nil {
			w := nm.w.Matrix()
			m, _ := w.Dims()
			sums := make([]float64, nm.rank)
			for i := 0; i < nm.rank; i++ {
				for r := 0; r < m; r++ {
					sums[i] += w.At(r, i)
				}
			}
			wSum = mat.NewDense(nm.rank, 1, sums)
		}

		return wSum, wSum
	}

	v := WH
	if beta != divergence.Euclidean {
		v = powElem(WH, beta-1)
	}
	var denom mat.Dense
	denom.Mul(nm.w.Matrix().T(), v)

	return &denom, wSum
}

// Loss reconstructs from the current factors with no gradient tracking,
// clamps both sides to the positivity floor and returns the total
// (un-normalized) beta-divergence. Monitoring only — the fit loop
// recomputes its loss on the tape.
func (nm *NMF) Loss(X *mat.Dense, beta float64) (float64, error) {
	if X == nil {
		return 0, ErrNilMatrix
	}

	var wh mat.Dense
	wh.Mul(nm.w.Matrix(), nm.h.Matrix())

	return divergence.Loss(clampFloor(&wh, nm.eps), clampFloor(X, nm.eps), beta)
}

// Fit runs the alternating MU loop on this model; see the package-level
// Fit for semantics.
func (nm *NMF) Fit(X *mat.Dense, opts *FitOptions) (int, error) {
	return Fit(nm, X, opts)
}

// FitTransform fits the model and additionally returns the learned W.
func (nm *NMF) FitTransform(X *mat.Dense, opts *FitOptions) (int, *mat.Dense, error) {
	iters, err := Fit(nm, X, opts)
	if err != nil {
		return iters, nil, err
	}

	return iters, nm.W(), nil
}

// powElem returns a^p element-wise in fresh storage.
func powElem(a *mat.Dense, p float64) *mat.Dense {
	var out mat.Dense
	out.Apply(func(_, _ int, v float64) float64 {
		return math.Pow(v, p)
	}, a)

	return &out
}

// clampFloor returns a copy of a with entries ≤ 0 replaced by floor.
func clampFloor(a *mat.Dense, floor float64) *mat.Dense {
	var out mat.Dense
	out.Apply(func(_, _ int, v float64) float64 {
		if v > 0 {
			return v
		}

		return floor
	}, a)

	return &out
}
