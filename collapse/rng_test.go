package collapse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRand_ZeroSeedUsesDefault(t *testing.T) {
	a, b := NewRand(0), NewRand(defaultRNGSeed)
	for i := 0; i < 8; i++ {
		assert.Equal(t, b.Int63(), a.Int63())
	}
}

func TestDeriveSeed(t *testing.T) {
	assert.Equal(t, DeriveSeed(42, 7), DeriveSeed(42, 7), "deterministic")
	assert.Equal(t, DeriveSeed(0, 3), DeriveSeed(defaultRNGSeed, 3), "zero parent maps to default")
	assert.NotEqual(t, DeriveSeed(42, selectStream), DeriveSeed(42, observeStream))
	assert.NotEqual(t, DeriveSeed(42, 1), DeriveSeed(43, 1))
}

func TestStreams_Independent(t *testing.T) {
	s, o := streamRNG(9, selectStream), streamRNG(9, observeStream)
	same := 0
	for i := 0; i < 16; i++ {
		if s.Int63() == o.Int63() {
			same++
		}
	}
	assert.Less(t, same, 16)
}
