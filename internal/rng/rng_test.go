package rng_test

import (
	"testing"

	"github.com/raybnn/topology/internal/rng"
	"github.com/stretchr/testify/assert"
)

func TestSameSeedSameSequence(t *testing.T) {
	a := rng.New(42)
	b := rng.New(42)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestDifferentSeedDiverges(t *testing.T) {
	a := rng.New(1)
	b := rng.New(2)
	same := true
	for i := 0; i < 20; i++ {
		if a.Float64() != b.Float64() {
			same = false
			break
		}
	}
	assert.False(t, same)
}

func TestIntnBounds(t *testing.T) {
	s := rng.New(7)
	for i := 0; i < 100; i++ {
		v := s.Intn(5)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 5)
	}
}
