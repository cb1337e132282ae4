package attributes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GivenAttributes_WhenIterating_ThenKeepsInsertionOrder(t *testing.T) {
	// Given
	a := FromPairs("zeta", "1", "alpha", "2", "mid", "3")

	// When
	keys := a.Keys()

	// Then
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys)
}

func Test_GivenClone_WhenConsuming_ThenOriginalIsUntouched(t *testing.T) {
	// Given
	original := FromPairs("device", "laptop", "os", "Windows")
	clone := original.Clone()

	// When
	value, ok := clone.Consume("device")

	// Then
	require.True(t, ok)
	assert.Equal(t, "laptop", value)
	assert.Equal(t, 1, clone.Len())
	assert.Equal(t, 2, original.Len())

	stored, ok := original.Get("device")
	require.True(t, ok)
	assert.Equal(t, "laptop", stored)
}

func Test_GivenZeroValue_WhenReading_ThenBehavesAsEmpty(t *testing.T) {
	// Given
	var a Attributes

	// When
	_, found := a.Get("missing")
	_, consumed := a.Consume("missing")

	// Then
	assert.False(t, found)
	assert.False(t, consumed)
	assert.Equal(t, 0, a.Len())
	assert.Empty(t, a.Keys())
}

func Test_GivenExistingKey_WhenSetAgain_ThenValueIsReplacedInPlace(t *testing.T) {
	// Given
	a := FromPairs("a", "1", "b", "2")

	// When
	a.Set("a", "3")

	// Then
	value, _ := a.Get("a")
	assert.Equal(t, "3", value)
	assert.Equal(t, []string{"a", "b"}, a.Keys())
}
