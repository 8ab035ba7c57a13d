// SPDX-License-Identifier: MIT

package grad

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/betanmf/divergence"
)

// MatMul records c = a·b and returns c.
//
// Backward: ∂loss/∂a += ∂loss/∂c · bᵀ and ∂loss/∂b += aᵀ · ∂loss/∂c.
// Panics on inner-dimension mismatch (gonum discipline).
func (t *Tape) MatMul(a, b *Var) *Var {
	var c mat.Dense
	c.Mul(a.value, b.value)

	out := &Var{value: &c, trainable: a.trainable || b.trainable}
	t.record(&matMulOp{a: a, b: b, out: out})

	return out
}

type matMulOp struct {
	a, b, out *Var
}

func (o *matMulOp) backward() {
	if o.out.grad == nil {
		return
	}
	if o.a.trainable {
		var da mat.Dense
		da.Mul(o.out.grad, o.b.value.T())
		o.a.addGrad(&da)
	}
	if o.b.trainable {
		var db mat.Dense
		db.Mul(o.a.value.T(), o.out.grad)
		o.b.addGrad(&db)
	}
}

// StackRows records the vertical concatenation of vs (all with the same
// column count) and returns the stacked node.
//
// Backward slices the output gradient back into per-input row ranges, so
// each input receives exactly the rows it contributed.
func (t *Tape) StackRows(vs ...*Var) *Var {
	if len(vs) == 0 {
		panic("grad: StackRows requires at least one input")
	}

	_, cols := vs[0].value.Dims()
	rows := 0
	trainable := false
	for _, v := range vs {
		r, c := v.value.Dims()
		if c != cols {
			panic(fmt.Sprintf("grad: StackRows column mismatch: %d vs %d", c, cols))
		}
		rows += r
		trainable = trainable || v.trainable
	}

	stacked := mat.NewDense(rows, cols, nil)
	offset := 0
	for _, v := range vs {
		r, _ := v.value.Dims()
		stacked.Slice(offset, offset+r, 0, cols).(*mat.Dense).Copy(v.value)
		offset += r
	}

	out := &Var{value: stacked, trainable: trainable}
	t.record(&stackRowsOp{ins: vs, out: out})

	return out
}

type stackRowsOp struct {
	ins []*Var
	out *Var
}

func (o *stackRowsOp) backward() {
	if o.out.grad == nil {
		return
	}
	_, cols := o.out.value.Dims()
	offset := 0
	for _, in := range o.ins {
		r, _ := in.value.Dims()
		if in.trainable {
			slice := o.out.grad.Slice(offset, offset+r, 0, cols)
			in.addGrad(mat.DenseCopyOf(slice))
		}
		offset += r
	}
}

// ClampFloor records the non-negativity clamp: entries ≤ 0 are replaced
// by floor, everything else passes through unchanged.
//
// Backward masks clamped entries — their upstream gradient is zero, the
// rest flows through untouched.
func (t *Tape) ClampFloor(a *Var, floor float64) *Var {
	var c mat.Dense
	c.Apply(func(_, _ int, v float64) float64 {
		if v > 0 {
			return v
		}

		return floor
	}, a.value)

	out := &Var{value: &c, trainable: a.trainable}
	t.record(&clampFloorOp{a: a, out: out})

	return out
}

type clampFloorOp struct {
	a, out *Var
}

func (o *clampFloorOp) backward() {
	if o.out.grad == nil || !o.a.trainable {
		return
	}
	var da mat.Dense
	da.Apply(func(i, j int, g float64) float64 {
		if o.a.value.At(i, j) > 0 {
			return g
		}

		return 0
	}, o.out.grad)
	o.a.addGrad(&da)
}

// BetaDivergence records the scalar loss node D_β(target ‖ est) and
// returns a 1×1 node holding the summed divergence.
//
// Backward seeds the closed-form element-wise divergence gradient into
// est, scaled by the node's own upstream gradient.
//
// Panics when the divergence rejects the operands (dimension mismatch or
// positivity violation) — the caller is expected to clamp first, so a
// rejection is a programmer error.
func (t *Tape) BetaDivergence(est *Var, target *mat.Dense, beta float64) *Var {
	sum, err := divergence.Loss(est.value, target, beta)
	if err != nil {
		panic(fmt.Sprintf("grad: BetaDivergence: %v", err))
	}

	out := &Var{value: mat.NewDense(1, 1, []float64{sum}), trainable: est.trainable}
	t.record(&betaDivOp{est: est, target: target, beta: beta, out: out})

	return out
}

type betaDivOp struct {
	est    *Var
	target *mat.Dense
	beta   float64
	out    *Var
}

func (o *betaDivOp) backward() {
	if o.out.grad == nil || !o.est.trainable {
		return
	}
	g, err := divergence.Grad(o.est.value, o.target, o.beta)
	if err != nil {
		panic(fmt.Sprintf("grad: BetaDivergence backward: %v", err))
	}
	if scale := o.out.grad.At(0, 0); scale != 1 {
		g.Scale(scale, g)
	}
	o.est.addGrad(g)
}
