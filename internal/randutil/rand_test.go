package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for range 100 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
	assert.NotEqual(t, New(1).Uint64(), New(2).Uint64())
}

func TestStreamsDiffer(t *testing.T) {
	assert.NotEqual(t, Stream(7, 0).Uint64(), Stream(7, 1).Uint64())
	assert.Equal(t, Stream(7, 3).Uint64(), Stream(7, 3).Uint64())
}

func TestBetweenCoversRange(t *testing.T) {
	rng := New(1)
	seen := make(map[int]int)
	for range 8000 {
		v := Between(rng, 1, 8)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 8)
		seen[v]++
	}
	assert.Len(t, seen, 8)
	for v, n := range seen {
		assert.InDelta(t, 1000, n, 200, "increment %d", v)
	}

	assert.Equal(t, 4, Between(rng, 4, 4))
}

func TestBetweenRejectsReversedRange(t *testing.T) {
	assert.PanicsWithValue(t, "randutil: invalid range [7, 4]", func() {
		Between(New(1), 7, 4)
	})
}
