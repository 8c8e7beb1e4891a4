package utils

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exact", Truncate("exact", 5))
	assert.Equal(t, "lon…", Truncate("longer", 3))
}

func TestTruncateKeepsValidUTF8(t *testing.T) {
	// Multi-byte runes must never be cut in half
	s := "héllo wörld æøå"
	for max := 1; max < len(s); max++ {
		cut := Truncate(s, max)
		assert.True(t, utf8.ValidString(cut), "max=%d produced invalid UTF-8", max)
	}
	assert.Equal(t, "héll…", Truncate("héllo wörld", 4))
}

func TestGenerateRateLimitKey(t *testing.T) {
	assert.Equal(t, "rl:7:/teams/invite", GenerateRateLimitKey(7, "/teams/invite"))
}
