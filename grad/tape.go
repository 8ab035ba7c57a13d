// SPDX-License-Identifier: MIT

package grad

import (
	"gonum.org/v1/gonum/mat"
)

// Var is a node in the computation graph: a dense value, an accumulated
// gradient, and a trainability flag. Leaves are created with NewVar or
// Constant; interior nodes are produced by Tape operations.
//
// The gradient is nil until a Backward pass reaches the node; fixed
// (non-trainable) leaves never receive a gradient at all.
type Var struct {
	value     *mat.Dense
	grad      *mat.Dense
	trainable bool
}

// NewVar wraps v as a leaf. When trainable is true, Backward accumulates
// ∂loss/∂v into the leaf's gradient buffer.
//
// The Var takes ownership of v; callers must not mutate it concurrently
// with tape operations.
func NewVar(v *mat.Dense, trainable bool) *Var {
	return &Var{value: v, trainable: trainable}
}

// Constant wraps v as a non-trainable leaf: gradients never flow into it.
// Use it to detach a factor snapshot from the current optimization step.
func Constant(v *mat.Dense) *Var {
	return &Var{value: v}
}

// Value returns the node's dense value. The returned matrix is the
// node's backing storage, not a copy.
func (v *Var) Value() *mat.Dense { return v.value }

// Grad returns the accumulated gradient, or nil if no Backward pass has
// reached this node since it was created or last zeroed.
func (v *Var) Grad() *mat.Dense { return v.grad }

// Trainable reports whether gradients accumulate into this node.
func (v *Var) Trainable() bool { return v.trainable }

// ZeroGrad drops the accumulated gradient. Call it on every leaf before
// a fresh forward/backward pass; stale gradients otherwise accumulate.
func (v *Var) ZeroGrad() { v.grad = nil }

// addGrad accumulates d into the node's gradient buffer. Non-trainable
// nodes ignore the contribution.
func (v *Var) addGrad(d *mat.Dense) {
	if !v.trainable {
		return
	}
	if v.grad == nil {
		v.grad = mat.DenseCopyOf(d)

		return
	}
	v.grad.Add(v.grad, d)
}

// op is one recorded forward operation; backward propagates the output
// gradient to the operation's inputs.
type op interface {
	backward()
}

// Tape records forward operations so Backward can replay them in reverse.
// A Tape is single-use per optimization sub-step in typical workloads:
// build the graph, call Backward once, then Reset (or drop the tape).
//
// Tape is not safe for concurrent use.
type Tape struct {
	ops []op
}

// NewTape returns an empty tape.
func NewTape() *Tape {
	return &Tape{}
}

// Reset forgets all recorded operations. Leaf gradients are untouched;
// zero them separately via ZeroGrad.
func (t *Tape) Reset() {
	t.ops = t.ops[:0]
}

// record appends an operation to the tape.
func (t *Tape) record(o op) {
	t.ops = append(t.ops, o)
}

// Backward seeds the scalar loss node with gradient 1 and replays the
// tape in reverse, accumulating gradients into every trainable leaf
// reachable from loss.
//
// Panics if loss is not a 1×1 node (programmer error).
func (t *Tape) Backward(loss *Var) {
	if r, c := loss.value.Dims(); r != 1 || c != 1 {
		panic("grad: Backward requires a scalar (1×1) loss node")
	}
	if !loss.trainable {
		// No trainable leaf feeds the loss; nothing to propagate.
		return
	}
	loss.grad = mat.NewDense(1, 1, []float64{1})
	for i := len(t.ops) - 1; i >= 0; i-- {
		t.ops[i].backward()
	}
}
