package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveDescription(t *testing.T) {
	o := NewOverlay()

	assert.Equal(t, "Original", o.EffectiveDescription("csv-0", "Original"))

	o.SetDescription("csv-0", "Renamed", "Original")
	assert.Equal(t, "Renamed", o.EffectiveDescription("csv-0", "Original"))

	// Other rows are untouched.
	assert.Equal(t, "Other", o.EffectiveDescription("csv-1", "Other"))
}

func TestSetDescriptionClearsOnOriginal(t *testing.T) {
	o := NewOverlay()

	o.SetDescription("csv-0", "Renamed", "Original")
	require.Equal(t, 1, o.Len())

	// Typing the original text back removes the override entirely.
	o.SetDescription("csv-0", "Original", "Original")
	assert.Equal(t, 0, o.Len())
	assert.Equal(t, "Original", o.EffectiveDescription("csv-0", "Original"))
}

func TestSetDescriptionClearsOnBlank(t *testing.T) {
	o := NewOverlay()

	o.SetDescription("csv-0", "Renamed", "Original")
	o.SetDescription("csv-0", "   ", "Original")

	assert.Equal(t, 0, o.Len())
}

func TestIgnoreToggle(t *testing.T) {
	o := NewOverlay()

	assert.False(t, o.Ignored("ofx-0"))

	o.ToggleIgnored("ofx-0")
	assert.True(t, o.Ignored("ofx-0"))

	o.ToggleIgnored("ofx-0")
	assert.False(t, o.Ignored("ofx-0"))
	// A toggled-back row leaves no entry behind.
	assert.Equal(t, 0, o.Len())
}

func TestCategoryOverride(t *testing.T) {
	o := NewOverlay()

	assert.Nil(t, o.Category("csv-2"))

	o.SetCategory("csv-2", "cat-mercado")
	got := o.Category("csv-2")
	require.NotNil(t, got)
	assert.Equal(t, "cat-mercado", *got)

	o.ClearCategory("csv-2")
	assert.Nil(t, o.Category("csv-2"))
	assert.Equal(t, 0, o.Len())
}

func TestPrune(t *testing.T) {
	o := NewOverlay()
	o.SetIgnored("csv-0", true)
	o.SetIgnored("csv-5", true)
	o.SetCategory("csv-9", "cat-x")

	o.Prune([]string{"csv-0", "csv-1"})

	assert.True(t, o.Ignored("csv-0"))
	assert.False(t, o.Ignored("csv-5"))
	assert.Nil(t, o.Category("csv-9"))
	assert.Equal(t, 1, o.Len())
}

func TestReset(t *testing.T) {
	o := NewOverlay()
	o.SetIgnored("a", true)
	o.SetCategory("b", "c")

	o.Reset()

	assert.Equal(t, 0, o.Len())
	assert.False(t, o.Ignored("a"))
}

func TestIndependentAspects(t *testing.T) {
	// Description, ignore and category overrides on the same row do not
	// clobber each other.
	o := NewOverlay()
	o.SetDescription("csv-0", "Renamed", "Original")
	o.SetIgnored("csv-0", true)
	o.SetCategory("csv-0", "cat-x")

	o.SetIgnored("csv-0", false)

	assert.Equal(t, "Renamed", o.EffectiveDescription("csv-0", "Original"))
	require.NotNil(t, o.Category("csv-0"))
	assert.Equal(t, 1, o.Len())
}
