package nmf

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestNewFactors_RandomInitIsNonNegativeAndDeterministic verifies the
// two initialization guarantees: entries in [0,1) and reproducibility
// for an identical source.
func TestNewFactors_RandomInitIsNonNegativeAndDeterministic(t *testing.T) {
	a, err := NewFactors(4, 3, nil, nil, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, err := NewFactors(4, 3, nil, nil, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	am, bm := a.Matrix(), b.Matrix()
	assert.True(t, mat.Equal(am, bm), "same source must reproduce the same initialization")

	for i := 0; i < 4; i++ {
		for j := 0; j < 3; j++ {
			assert.GreaterOrEqual(t, am.At(i, j), 0.0, "random initialization must be non-negative")
			assert.Less(t, am.At(i, j), 1.0, "uniform initialization stays below 1")
		}
	}
}

// TestNewFactors_ConcatenationOrderIsStable pins block order: block i is
// row i of the concatenated matrix, and the shape matches the declaration.
func TestNewFactors_ConcatenationOrderIsStable(t *testing.T) {
	init := []*mat.Dense{
		mat.NewDense(1, 2, []float64{1, 2}),
		mat.NewDense(1, 2, []float64{3, 4}),
		mat.NewDense(1, 2, []float64{5, 6}),
	}
	f, err := NewFactors(3, 2, init, nil, nil)
	require.NoError(t, err)

	got := f.Matrix()
	r, c := got.Dims()
	assert.Equal(t, 3, r, "concatenated rows must equal declared rows")
	assert.Equal(t, 2, c, "concatenated cols must equal declared cols")
	assert.True(t, mat.Equal(mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6}), got), "block i must be row i")
}

// TestNewFactors_CopiesInitialBlocks ensures the collection owns its
// storage: mutating a caller's block after construction changes nothing.
func TestNewFactors_CopiesInitialBlocks(t *testing.T) {
	blk := mat.NewDense(1, 2, []float64{1, 2})
	f, err := NewFactors(1, 2, []*mat.Dense{blk}, nil, nil)
	require.NoError(t, err)

	blk.Set(0, 0, 99)
	assert.Equal(t, 1.0, f.Matrix().At(0, 0), "construction must copy initial blocks")
}

// TestNewFactors_ValidationErrors covers the fail-fast construction
// taxonomy.
func TestNewFactors_ValidationErrors(t *testing.T) {
	good := []*mat.Dense{mat.NewDense(1, 2, []float64{1, 2})}

	_, err := NewFactors(0, 2, nil, nil, nil)
	assert.ErrorIs(t, err, ErrBadShape, "rows ≤ 0 must fail")

	_, err = NewFactors(2, 2, good, nil, nil)
	assert.ErrorIs(t, err, ErrBlockCount, "one block for two rows must fail")

	_, err = NewFactors(1, 2, good, []bool{true, false}, nil)
	assert.ErrorIs(t, err, ErrBlockCount, "two flags for one row must fail")

	_, err = NewFactors(1, 3, good, nil, nil)
	assert.ErrorIs(t, err, ErrBadShape, "1×2 block for a 3-column factor must fail")

	_, err = NewFactors(1, 2, []*mat.Dense{nil}, nil, nil)
	assert.ErrorIs(t, err, ErrBadShape, "nil block must fail")

	_, err = NewFactors(1, 2, []*mat.Dense{mat.NewDense(1, 2, []float64{1, -0.5})}, nil, nil)
	assert.ErrorIs(t, err, ErrNegativeInit, "negative initial entry must fail")
}

// TestFactors_TrainableReflectsFixedFlags checks Trainable over mixed,
// fully-fixed and default collections.
func TestFactors_TrainableReflectsFixedFlags(t *testing.T) {
	mixed, err := NewFactors(2, 2, nil, []bool{true, false}, nil)
	require.NoError(t, err)
	assert.True(t, mixed.Trainable(), "one free block keeps the collection trainable")

	frozen, err := NewFactors(2, 2, nil, []bool{true, true}, nil)
	require.NoError(t, err)
	assert.False(t, frozen.Trainable(), "all-fixed collection must not be trainable")

	free, err := NewFactors(2, 2, nil, nil, nil)
	require.NoError(t, err)
	assert.True(t, free.Trainable(), "nil flags mean fully trainable")
}

// TestFactors_MatrixIsSnapshot ensures Matrix returns detached storage.
func TestFactors_MatrixIsSnapshot(t *testing.T) {
	f, err := NewFactors(2, 2, []*mat.Dense{
		mat.NewDense(1, 2, []float64{1, 2}),
		mat.NewDense(1, 2, []float64{3, 4}),
	}, nil, nil)
	require.NoError(t, err)

	snap := f.Matrix()
	snap.Set(0, 0, 42)
	assert.Equal(t, 1.0, f.Matrix().At(0, 0), "mutating a snapshot must not touch the factors")
}
