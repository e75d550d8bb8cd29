package fu

import (
	"gotest.tools/assert"
	"math"
	"testing"
)

func Test_Sigmoid(t *testing.T) {
	assert.Assert(t, Sigmoid(0) == 0.5)
	assert.Assert(t, math.Abs(Sigmoid(2)+Sigmoid(-2)-1) < 1e-12)
	assert.Assert(t, Sigmoid(-1000) == 0)
	assert.Assert(t, Sigmoid(1000) == 1)
}

func Test_LogitCrossentropy(t *testing.T) {
	for _, z := range []float64{-5, -1, -0.1, 0, 0.3, 2, 7} {
		for _, y := range []float64{0, 1} {
			naive := Crossentropy(Sigmoid(z), y)
			assert.Assert(t, math.Abs(LogitCrossentropy(z, y)-naive) < 1e-6, "z=%v y=%v", z, y)
		}
	}
	// stays finite where sigmoid saturates
	l := LogitCrossentropy(-800, 1)
	assert.Assert(t, !math.IsInf(l, 0) && math.Abs(l-800) < 1e-9)
	assert.Assert(t, LogitCrossentropy(800, 1) >= 0)
}

func Test_ForEachE(t *testing.T) {
	out := make([]int, 100)
	err := ForEachE(len(out), 4, func(i int) error {
		out[i] = i * i
		return nil
	})
	assert.NilError(t, err)
	for i, x := range out {
		assert.Equal(t, x, i*i)
	}
}

func Test_SubSeed(t *testing.T) {
	assert.Equal(t, SubSeed(42, 1, 2), SubSeed(42, 1, 2))
	assert.Assert(t, SubSeed(42, 1, 2) != SubSeed(42, 2, 1))
	assert.Assert(t, SubSeed(42, 1) != SubSeed(43, 1))
	assert.Assert(t, SubSeed(7) >= 0)
}

func Test_Ints(t *testing.T) {
	assert.Equal(t, Fnzi(0, 0, 3, 4), 3)
	assert.Equal(t, Mini(5, 3, 9), 3)
	assert.Equal(t, Maxi(5, 3, 9), 9)
}
