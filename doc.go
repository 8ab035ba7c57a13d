// Package betanmf is a non-negative matrix factorization (NMF) toolkit
// built around multiplicative updates for the whole beta-divergence family.
//
// 🚀 What is betanmf?
//
//	Given a non-negative matrix X (m examples × n features) and a rank k,
//	betanmf finds non-negative factors W (m×k) and H (k×n) so that W·H
//	approximates X under a beta-divergence loss:
//		• β = 2 — squared Euclidean distance
//		• β = 1 — generalized Kullback–Leibler divergence
//		• β = 0 — Itakura–Saito divergence
//		• any real β in between and beyond
//
// ✨ Why choose betanmf?
//
//   - Monotone descent – multiplicative updates never increase the loss
//     (for 1 ≤ β ≤ 2) and never produce a negative factor entry
//   - Partially fixed factors – pin individual components or examples and
//     train the rest (supervised dictionaries, template matching)
//   - L1/L2 regularization with a single (alpha, l1Ratio) knob
//   - Generic reconstruction – plug in a custom model by supplying its
//     forward graph and two positive-term oracles; gradients come from a
//     built-in reverse-mode tape, no hand-derived update rules required
//
// Under the hood, everything is organized under three subpackages:
//
//	divergence/ — the beta-divergence family: loss + closed-form gradient
//	grad/       — reverse-mode automatic differentiation over gonum matrices
//	nmf/        — factor collections, multiplicative-update engine, fit loop
//
// Quick sketch:
//
//	X ≈ W · H,  W ≥ 0,  H ≥ 0
//
//	model, _ := nmf.New(m, n, rank)
//	iters, W, err := model.FitTransform(X, nil)
//
// Dive into the package docs and example tests for full walkthroughs.
//
//	go get github.com/katalvlaran/betanmf
package betanmf
