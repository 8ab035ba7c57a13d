// Package nmf fits non-negative matrix factorizations with
// beta-divergence multiplicative updates (MU).
//
// 🚀 What is nmf?
//
//	Given X (m×n, non-negative) and a rank k, nmf alternates
//	multiplicative updates on W (m×k) and H (k×n) so that W·H
//	approximates X while the beta-divergence loss decreases and every
//	factor entry stays ≥ 0 — no clamping, no projection.
//
// ✨ Key features:
//   - the full beta-divergence family: one Beta knob covers Euclidean
//     (β=2), generalized KL (β=1), Itakura–Saito (β=0) and everything
//     in between and beyond, with the majorization exponent γ derived
//     automatically
//   - per-row factor blocks: pin individual examples of W or components
//     of H (fixed dictionaries, template matching) — fixed blocks are
//     excluded from gradients and updates entirely
//   - autodiff-assisted gradient split: the engine recovers the MU
//     numerator from relu(pos − grad), where grad comes from a
//     reverse-mode tape and pos from a per-model analytic oracle, so a
//     new reconstruction model never derives an update rule by hand
//   - L1/L2 regularization via (Alpha, L1Ratio), injectable progress
//     observer, deterministic initialization from an explicit rand source
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/betanmf/nmf"
//
//	model, err := nmf.New(m, n, 4)
//	if err != nil { ... }
//
//	opts := nmf.DefaultFitOptions()
//	opts.Beta = 1 // generalized KL
//	iters, W, err := model.FitTransform(X, &opts)
//
// ⚠️ Numerical hazard (inherited from the MU family): a zero analytic
// denominator yields a non-finite multiplier. The positivity floor on X
// and reconstructions makes this rare, but extreme beta values on
// degenerate inputs can still surface ±Inf/NaN in the factors. This is
// documented behavior, not an error condition.
//
// See example_test.go for full scenarios.
package nmf
