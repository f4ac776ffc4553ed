package vehicles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestNormalizeBrand(t *testing.T) {
	assert.Nil(t, normalizeBrand(nil))
	assert.Nil(t, normalizeBrand(strp("")))
	assert.Nil(t, normalizeBrand(strp("   ")))

	got := normalizeBrand(strp("TOYOTA"))
	require.NotNil(t, got)
	assert.Equal(t, "Toyota", *got)

	got = normalizeBrand(strp("  hino  "))
	require.NotNil(t, got)
	assert.Equal(t, "Hino", *got)

	got = normalizeBrand(strp("mitsubishi fuso"))
	require.NotNil(t, got)
	assert.Equal(t, "Mitsubishi Fuso", *got)
}

func TestValidDate(t *testing.T) {
	assert.True(t, validDate(nil))
	assert.True(t, validDate(strp("")))
	assert.True(t, validDate(strp("2025-12-31")))
	assert.False(t, validDate(strp("31-12-2025")))
	assert.False(t, validDate(strp("2025-13-01")))
	assert.False(t, validDate(strp("besok")))
}
