// SPDX-License-Identifier: MIT
// Package nmf: factor collections. A factor matrix is stored as an
// ordered sequence of independently-owned row blocks so that individual
// rows can be fixed without masked writes: a fixed block is a
// non-trainable tape leaf that gradients and updates never touch.

package nmf

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/betanmf/grad"
)

// Factors is an ordered collection of per-row blocks forming one factor
// matrix. Concatenation order is stable and matches construction order;
// the concatenated shape always equals the declared (rows × cols).
//
// Blocks are mutated in place by the update engine and never
// reallocated during fitting.
type Factors struct {
	rows, cols int
	blocks     []*grad.Var
}

// NewFactors builds a rows×cols collection of 1×cols row blocks.
//
// Inputs:
//   - init:  explicit initial blocks (one per row), or nil for uniform
//     random initialization in [0,1) from rnd.
//   - fixed: per-row fixed flags (all rows trainable when nil).
//   - rnd:   randomness for initialization; nil falls back to a source
//     seeded with DefaultSeed.
//
// Errors:
//   - ErrBlockCount   — len(init) or len(fixed) differs from rows.
//   - ErrBadShape     — rows/cols ≤ 0, a nil block, or a block that is
//     not 1×cols.
//   - ErrNegativeInit — an explicit initial entry < 0.
//
// Explicit blocks are copied; the collection owns its storage.
func NewFactors(rows, cols int, init []*mat.Dense, fixed []bool, rnd *rand.Rand) (*Factors, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}
	if init != nil && len(init) != rows {
		return nil, ErrBlockCount
	}
	if fixed != nil && len(fixed) != rows {
		return nil, ErrBlockCount
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(DefaultSeed))
	}

	f := &Factors{rows: rows, cols: cols, blocks: make([]*grad.Var, rows)}
	for i := 0; i < rows; i++ {
		var block *mat.Dense
		if init != nil {
			src := init[i]
			if src == nil {
				return nil, ErrBadShape
			}
			if r, c := src.Dims(); r != 1 || c != cols {
				return nil, ErrBadShape
			}
			for j := 0; j < cols; j++ {
				if src.At(0, j) < 0 {
					return nil, ErrNegativeInit
				}
			}
			block = mat.DenseCopyOf(src)
		} else {
			data := make([]float64, cols)
			for j := range data {
				data[j] = rnd.Float64()
			}
			block = mat.NewDense(1, cols, data)
		}

		trainable := fixed == nil || !fixed[i]
		f.blocks[i] = grad.NewVar(block, trainable)
	}

	return f, nil
}

// Rows returns the number of row blocks (the factor's row count).
func (f *Factors) Rows() int { return f.rows }

// Cols returns the shared column count of every block.
func (f *Factors) Cols() int { return f.cols }

// Graph stacks the live blocks into a single tape node. Gradients from a
// subsequent Backward pass are routed back to the individual trainable
// blocks; fixed blocks stay untouched.
func (f *Factors) Graph(t *grad.Tape) *grad.Var {
	return t.StackRows(f.blocks...)
}

// Matrix returns a freshly allocated concatenation of all blocks, in
// construction order. Mutating the result does not affect the factors.
func (f *Factors) Matrix() *mat.Dense {
	m := mat.NewDense(f.rows, f.cols, nil)
	for i, blk := range f.blocks {
		m.Slice(i, i+1, 0, f.cols).(*mat.Dense).Copy(blk.Value())
	}

	return m
}

// Trainable reports whether at least one block accepts updates.
func (f *Factors) Trainable() bool {
	for _, blk := range f.blocks {
		if blk.Trainable() {
			return true
		}
	}

	return false
}

// ZeroGrads clears every block's gradient buffer. The fit loop calls
// this before each backward pass; stale gradients would otherwise
// accumulate across steps.
func (f *Factors) ZeroGrads() {
	for _, blk := range f.blocks {
		blk.ZeroGrad()
	}
}
