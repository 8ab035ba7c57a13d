// SPDX-License-Identifier: MIT
// Package nmf: the convergence driver. A plain sequential state machine:
// INIT → (W-STEP → H-STEP)* → CONVERGED | MAX-ITER-REACHED. No
// concurrency, no retries; bounded by MaxIter.

package nmf

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/betanmf/grad"
)

// gammaFor returns the majorization-minimization exponent that keeps the
// MU descent guarantee for the given beta: 1/(2−β) below 1, 1/(β−1)
// above 2, and exactly 1 on [1,2].
func gammaFor(beta float64) float64 {
	switch {
	case beta < 1:
		return 1 / (2 - beta)
	case beta > 2:
		return 1 / (beta - 1)
	default:
		return 1
	}
}

// Fit runs the alternating multiplicative-update loop on m until the
// relative loss improvement drops below opts.Tol or opts.MaxIter outer
// iterations have run. It returns the number of iterations performed
// (so tol=0 with MaxIter=N returns exactly N).
//
// Each outer iteration:
//  1. W-STEP (skipped when disabled or no W block is trainable): zero W
//     gradients, reconstruct from the detached H and the live W, clamp,
//     backward-propagate the beta-divergence, ask the oracle for the
//     analytic denominator (reusing the β=1 H-sum cache) and apply the
//     multiplicative update; the W-sum cache is invalidated.
//  2. H-STEP: symmetric, invalidating the H-sum cache.
//  3. Report the last sub-step's loss, normalized by the element count
//     of X, to opts.Progress. Convergence monitors this same value, not
//     a freshly recomputed joint loss.
//
// Errors (all before the first iteration): ErrNilMatrix,
// ErrDimensionMismatch, ErrBadFitOptions, ErrNothingToUpdate. The loop
// itself is error-free: a degenerate zero denominator propagates as
// non-finite factor values, the documented MU hazard.
func Fit(m Model, X *mat.Dense, opts *FitOptions) (int, error) {
	if X == nil {
		return 0, ErrNilMatrix
	}

	o := DefaultFitOptions()
	if opts != nil {
		o = *opts
	}
	if err := o.validate(); err != nil {
		return 0, err
	}

	w, h := m.Factors()
	xr, xc := X.Dims()
	if xr != w.Rows() || xc != h.Cols() || w.Cols() != h.Rows() {
		return 0, ErrDimensionMismatch
	}

	updateW := o.UpdateW && w.Trainable()
	updateH := o.UpdateH && h.Trainable()
	if !updateW && !updateH {
		return 0, ErrNothingToUpdate
	}

	eps := m.Epsilon()
	target := clampFloor(X, eps)

	gamma := gammaFor(o.Beta)
	l1Reg := o.Alpha * o.L1Ratio
	l2Reg := o.Alpha * (1 - o.L1Ratio)
	scale := float64(xr * xc)

	// β=1 denominator caches; each survives until its factor changes.
	var hSum, wSum *mat.Dense

	var loss, previous, initial float64
	iters := 0
	for iter := 0; iter < o.MaxIter; iter++ {
		if updateW {
			w.ZeroGrads()
			t := grad.NewTape()
			wLive := w.Graph(t)
			hDetached := grad.Constant(h.Matrix())
			recon := m.Reconstruct(t, hDetached, wLive)
			est := t.ClampFloor(recon, eps)
			node := t.BetaDivergence(est, target, o.Beta)
			t.Backward(node)

			var pos *mat.Dense
			pos, hSum = m.WPositive(recon.Value(), o.Beta, hSum)
			muUpdate(w, pos, gamma, l1Reg, l2Reg)
			wSum = nil // W changed; its column sums are stale

			loss = node.Value().At(0, 0)
		}

		if updateH {
			h.ZeroGrads()
			t := grad.NewTape()
			hLive := h.Graph(t)
			wDetached := grad.Constant(w.Matrix())
			recon := m.Reconstruct(t, hLive, wDetached)
			est := t.ClampFloor(recon, eps)
			node := t.BetaDivergence(est, target, o.Beta)
			t.Backward(node)

			var pos *mat.Dense
			pos, wSum = m.HPositive(recon.Value(), o.Beta, wSum)
			muUpdate(h, pos, gamma, l1Reg, l2Reg)
			hSum = nil // H changed; its row sums are stale

			loss = node.Value().At(0, 0)
		}

		loss /= scale
		iters = iter + 1
		if o.Progress != nil {
			o.Progress(iter, loss)
		}

		if iter == 0 {
			initial = loss
		} else if (previous-loss)/initial < o.Tol {
			break // CONVERGED
		}
		previous = loss
	}

	return iters, nil
}
