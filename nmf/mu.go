// SPDX-License-Identifier: MIT
// Package nmf: the multiplicative-update engine. It fuses the analytic
// denominator from a positive-term oracle with the tape gradient of the
// loss, exploiting the identity grad = pos − numerator to recover the MU
// numerator without a second model-specific derivation.

package nmf

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// muUpdate applies one multiplicative update to every trainable block of
// f, in place.
//
// Inputs:
//   - pos:   analytic MU denominator, either full-shape (rows×cols) or a
//     broadcast vector (1×cols or rows×1).
//   - gamma: majorization exponent for the active beta (1 for 1 ≤ β ≤ 2;
//     the power is skipped entirely when gamma == 1).
//   - l1Reg, l2Reg: regularization added to the denominator — L1 as a
//     constant shift, L2 as l2Reg·w per entry.
//
// Per trainable entry:
//
//	num   = max(0, pos − grad)   // relu reconstructs the MU numerator
//	den   = pos + l1Reg + l2Reg·w
//	w    *= (num / den)^gamma
//
// Fixed blocks are skipped silently: no gradient exists for them and
// their values must stay bit-identical. A trainable block without a
// gradient (possible when its rows were fully clamped out of the loss)
// is treated as zero gradient.
//
// Because factors start non-negative and the multiplier is always ≥ 0,
// non-negativity is preserved without clamping. A zero denominator
// yields a non-finite multiplier — the documented MU hazard, deliberately
// not special-cased here.
func muUpdate(f *Factors, pos *mat.Dense, gamma, l1Reg, l2Reg float64) {
	posRows, posCols := pos.Dims()

	for bi, blk := range f.blocks {
		if !blk.Trainable() {
			continue
		}
		g := blk.Grad()
		w := blk.Value()

		for j := 0; j < f.cols; j++ {
			// Broadcast the denominator when the oracle returned a vector.
			pi, pj := bi, j
			if posRows == 1 {
				pi = 0
			}
			if posCols == 1 {
				pj = 0
			}
			p := pos.At(pi, pj)

			var gv float64
			if g != nil {
				gv = g.At(0, j)
			}

			num := p - gv
			if num < 0 {
				num = 0
			}
			wv := w.At(0, j)
			den := p + l1Reg + l2Reg*wv

			ratio := num / den
			if gamma != 1 {
				ratio = math.Pow(ratio, gamma)
			}
			w.Set(0, j, wv*ratio)
		}
	}
}
