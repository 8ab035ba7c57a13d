// Package divergence implements the beta-divergence family of
// reconstruction losses used by multiplicative-update NMF.
//
// 🚀 What is a beta-divergence?
//
//	A single parametric family D_β(X‖V) that interpolates between the
//	three classic reconstruction losses:
//	  • β = 2 — squared Euclidean distance, ½·Σ (x−v)²
//	  • β = 1 — generalized Kullback–Leibler, Σ x·ln(x/v) − x + v
//	  • β = 0 — Itakura–Saito, Σ x/v − ln(x/v) − 1
//	  • any other real β — Σ (x^β + (β−1)·v^β − β·x·v^(β−1)) / (β(β−1))
//
// ✨ Key features:
//   - Loss — the total divergence summed over all matrix entries
//   - Grad — the closed-form element-wise gradient ∂D/∂v, valid for every
//     real β, with fast paths at the three calibration points
//   - sentinel errors checked via errors.Is; no panics on user input
//
// The gradient is what makes the multiplicative-update split possible:
// ∂D/∂v = v^(β−1) − x·v^(β−2) decomposes exactly into the analytic
// denominator minus the analytic numerator of the MU rule.
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/betanmf/divergence"
//
//	d, err := divergence.Loss(est, target, divergence.KullbackLeibler)
//	g, err := divergence.Grad(est, target, divergence.KullbackLeibler)
//
// Entries must be strictly positive wherever the chosen β divides or
// takes logarithms (β < 2 for estimates, β ≤ 1 for targets); clamp
// inputs to a small positive floor first.
package divergence
