// SPDX-License-Identifier: MIT
// Package nmf: configuration surface. Model construction uses functional
// options (WithX constructors, strong validation, panic only on
// programmer error); fit parameters use a plain FitOptions struct with
// DefaultFitOptions() as the single source of truth.

package nmf

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// DEFAULTS — single source of truth for zero-value behavior.
const (
	// DefaultBeta selects the divergence exponent: β=2, squared Euclidean.
	DefaultBeta = 2.0

	// DefaultTol is the relative-improvement convergence threshold.
	DefaultTol = 1e-5

	// DefaultMaxIter bounds the outer fit loop.
	DefaultMaxIter = 200

	// DefaultAlpha disables regularization.
	DefaultAlpha = 0.0

	// DefaultL1Ratio splits Alpha fully toward L2 when regularizing.
	DefaultL1Ratio = 0.0

	// DefaultEpsilon is the positivity floor substituted for entries ≤ 0
	// in X and in reconstructions, keeping every divergence term defined.
	DefaultEpsilon = 1e-8

	// DefaultSeed seeds random factor initialization when no source is
	// supplied. A fixed seed keeps construction deterministic; inject
	// WithRandSource for varied restarts.
	DefaultSeed = 1
)

// Internal panic messages (no magic strings).
const (
	panicEpsilonInvalid = "nmf: WithEpsilon: eps must be finite and > 0"
	panicNilRandSource  = "nmf: WithRandSource: source must be non-nil"
)

// ProgressFunc observes the fit loop: it is invoked once per outer
// iteration with the zero-based iteration index and the normalized loss
// (total divergence divided by the element count of X). It replaces any
// implicit output channel; nil means silent fitting.
type ProgressFunc func(iter int, loss float64)

// FitOptions configures a single Fit call.
//
// Fields:
//   - UpdateW / UpdateH — enable the respective half-step. Disabling one
//     side supports fixed-dictionary use; disabling both is an error.
//   - Beta — divergence exponent (any finite real; 2=Euclidean, 1=KL,
//     0=Itakura–Saito).
//   - Tol — relative loss-improvement threshold: fitting stops once
//     (previousLoss − loss) / initialLoss < Tol.
//   - MaxIter — outer iteration budget (≥ 1).
//   - Alpha, L1Ratio — overall regularization strength and its L1/L2
//     split: l1 = Alpha·L1Ratio, l2 = Alpha·(1−L1Ratio).
//   - Progress — optional per-iteration observer.
type FitOptions struct {
	UpdateW  bool
	UpdateH  bool
	Beta     float64
	Tol      float64
	MaxIter  int
	Alpha    float64
	L1Ratio  float64
	Progress ProgressFunc
}

// DefaultFitOptions returns the documented defaults: both sides updated,
// β=2, tol=1e-5, 200 iterations, no regularization, silent progress.
func DefaultFitOptions() FitOptions {
	return FitOptions{
		UpdateW: true,
		UpdateH: true,
		Beta:    DefaultBeta,
		Tol:     DefaultTol,
		MaxIter: DefaultMaxIter,
		Alpha:   DefaultAlpha,
		L1Ratio: DefaultL1Ratio,
	}
}

// validate enforces the documented FitOptions invariants.
func (o *FitOptions) validate() error {
	if o.MaxIter < 1 {
		return ErrBadFitOptions
	}
	if math.IsNaN(o.Tol) || o.Tol < 0 {
		return ErrBadFitOptions
	}
	if math.IsNaN(o.Alpha) || math.IsInf(o.Alpha, 0) || o.Alpha < 0 {
		return ErrBadFitOptions
	}
	if math.IsNaN(o.L1Ratio) || o.L1Ratio < 0 || o.L1Ratio > 1 {
		return ErrBadFitOptions
	}
	if math.IsNaN(o.Beta) || math.IsInf(o.Beta, 0) {
		return ErrBadFitOptions
	}

	return nil
}

// Option mutates construction options. Constructors panic only on
// nonsensical values (programmer error); shape validation against the
// declared dimensions happens inside New, which returns sentinels.
type Option func(*Options)

// Options stores the effective model-construction configuration after
// applying Option setters. Fields are unexported; public entry points
// accept ...Option and resolve them via gatherOptions.
type Options struct {
	initialW []*mat.Dense // one 1×rank block per example row, or nil
	fixedW   []bool       // per-example fixed flags, or nil
	initialH []*mat.Dense // one 1×n block per component, or nil
	fixedH   []bool       // per-component fixed flags, or nil
	epsilon  float64      // positivity floor, DefaultEpsilon
	src      rand.Source  // initialization source, seeded DefaultSeed
}

// WithInitialWeights supplies explicit initial values for W, one 1×rank
// block per example row. Block count and shapes are validated by New.
func WithInitialWeights(blocks ...*mat.Dense) Option {
	return func(o *Options) { o.initialW = blocks }
}

// WithFixedWeights marks individual W rows as fixed: a fixed row is
// excluded from gradient computation and never mutated by updates.
// Flag count is validated by New.
func WithFixedWeights(fixed ...bool) Option {
	return func(o *Options) { o.fixedW = fixed }
}

// WithInitialComponents supplies explicit initial values for H, one 1×n
// block per component. Block count and shapes are validated by New.
func WithInitialComponents(blocks ...*mat.Dense) Option {
	return func(o *Options) { o.initialH = blocks }
}

// WithFixedComponents marks individual H components as fixed, typically
// paired with WithInitialComponents to hold a known dictionary constant.
func WithFixedComponents(fixed ...bool) Option {
	return func(o *Options) { o.fixedH = fixed }
}

// WithEpsilon sets the positivity floor substituted for entries ≤ 0.
// Panics on non-finite or non-positive eps (programmer error).
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps <= 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.epsilon = eps }
}

// WithRandSource injects the random source used for factor
// initialization. Panics on nil (programmer error).
func WithRandSource(src rand.Source) Option {
	if src == nil {
		panic(panicNilRandSource)
	}

	return func(o *Options) { o.src = src }
}

// gatherOptions applies user setters on top of the documented defaults;
// last-writer-wins semantics.
func gatherOptions(user ...Option) Options {
	o := Options{
		epsilon: DefaultEpsilon,
		src:     rand.NewSource(DefaultSeed),
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
