package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequence(t *testing.T) {
	seq := NewSequence()

	assert.Equal(t, "P01_101_0", seq.Next("P01_101"))
	assert.Equal(t, "P01_101_1", seq.Next("P01_101"))

	// Counters are private per source.
	assert.Equal(t, "P02_05_0", seq.Next("P02_05"))
	assert.Equal(t, "P01_101_2", seq.Next("P01_101"))
}
