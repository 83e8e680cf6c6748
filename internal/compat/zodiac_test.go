package compat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Shape(t *testing.T) {
	require.Len(t, Signs(), 12)
	for _, sign := range Signs() {
		partners := CompatibleSigns(sign)
		assert.NotEmpty(t, partners, "%s should have compatible signs", sign)
		assert.LessOrEqual(t, len(partners), 4, "%s lists too many signs", sign)
		assert.NotContains(t, partners, sign, "%s should not list itself", sign)
		for _, p := range partners {
			_, ok := ParseSign(string(p))
			assert.True(t, ok, "%s lists unknown sign %s", sign, p)
		}
	}
}

func TestTable_IsReadOnly(t *testing.T) {
	partners := CompatibleSigns(Aries)
	partners[0] = Pisces

	assert.Equal(t, Leo, CompatibleSigns(Aries)[0])
	assert.False(t, IsCompatible("Aries", "Pisces"))
}

func TestIsCompatible_FollowsTheFirstSignsRow(t *testing.T) {
	// Lookups follow the first sign's row exactly, whatever the second row says.
	for _, a := range Signs() {
		for _, b := range Signs() {
			want := false
			for _, p := range CompatibleSigns(a) {
				if p == b {
					want = true
				}
			}
			assert.Equal(t, want, IsCompatible(string(a), string(b)), "%s -> %s", a, b)
		}
	}
}

func TestParseSign(t *testing.T) {
	sign, ok := ParseSign("Sagittarius")
	assert.True(t, ok)
	assert.Equal(t, Sagittarius, sign)

	for _, name := range []string{"sagittarius", "SAGITTARIUS", " Sagittarius", "Sagittarius\n"} {
		_, ok = ParseSign(name)
		assert.False(t, ok, "%q should not parse", name)
	}
	assert.False(t, IsCompatible("aries", "leo"))
	assert.True(t, IsCompatible("Aries", "Leo"))

	_, ok = ParseSign("")
	assert.False(t, ok)
	_, ok = ParseSign("Ophiuchus")
	assert.False(t, ok)
}
