// Package grad provides reverse-mode automatic differentiation over
// gonum dense matrices, scoped to the operations a matrix-factorization
// reconstruction graph needs.
//
// 🚀 What is grad?
//
//	A small tape: forward operations on Var nodes are recorded as they
//	run, and Backward replays them in reverse, accumulating gradients
//	into trainable leaves by the chain rule.
//
// ✨ Key features:
//   - MatMul, StackRows, ClampFloor and a BetaDivergence scalar loss node
//   - trainable vs constant leaves — constants receive no gradient, so
//     detaching a factor is just wrapping its snapshot in Constant
//   - explicit gradient lifecycle: ZeroGrad on leaves, Reset on the tape
//
// ⚙️ Usage:
//
//	t := grad.NewTape()
//	w := grad.NewVar(wInit, true)     // trainable leaf
//	h := grad.Constant(hSnapshot)     // detached leaf
//	est := t.ClampFloor(t.MatMul(w, h), 1e-8)
//	loss := t.BetaDivergence(est, x, 2)
//	t.Backward(loss)
//	g := w.Grad() // ∂loss/∂w
//
// Dimension mismatches panic, mirroring gonum/mat's own discipline:
// they are programmer errors, not runtime conditions.
package grad
