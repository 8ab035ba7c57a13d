// SPDX-License-Identifier: MIT
// Package nmf: sentinel error set. All public operations return these
// sentinels and tests check them via errors.Is. No operation panics on
// user-triggered conditions; panics are reserved for programmer errors
// (option constructors with nonsensical values, tape misuse).

package nmf

import "errors"

var (
	// ErrBadShape is returned when requested factor dimensions are invalid
	// (m, n or rank ≤ 0) or an initial block has the wrong shape.
	ErrBadShape = errors.New("nmf: invalid shape")

	// ErrBlockCount indicates that the number of supplied initial blocks
	// or fixed flags does not match the number of factor rows.
	ErrBlockCount = errors.New("nmf: block count mismatch")

	// ErrNegativeInit indicates an explicit initial factor value < 0.
	// Multiplicative updates preserve signs, so a negative seed would
	// silently break the non-negativity guarantee.
	ErrNegativeInit = errors.New("nmf: negative initial value")

	// ErrNilMatrix indicates a nil input matrix.
	ErrNilMatrix = errors.New("nmf: nil matrix")

	// ErrDimensionMismatch indicates that X is not shape-compatible with
	// the model's factors (X must be W.rows × H.cols, W.cols must equal
	// H.rows).
	ErrDimensionMismatch = errors.New("nmf: dimension mismatch")

	// ErrBadFitOptions indicates invalid fit parameters: MaxIter < 1,
	// Tol < 0, Alpha < 0, L1Ratio outside [0,1], or a non-finite Beta.
	ErrBadFitOptions = errors.New("nmf: invalid fit options")

	// ErrNothingToUpdate is returned when neither factor has a trainable
	// block on an enabled side — the fit loop would have nothing to do.
	// Disabling one side while the other trains is fine; disabling both
	// is not.
	ErrNothingToUpdate = errors.New("nmf: no trainable factor to update")
)
