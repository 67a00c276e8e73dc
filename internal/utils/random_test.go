package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateBookingReference(t *testing.T) {
	pattern := regexp.MustCompile(`^BLA-[A-Z2-9]{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		ref := GenerateBookingReference()
		assert.Regexp(t, pattern, ref)
		assert.NotContains(t, ref[4:], "0")
		assert.NotContains(t, ref[4:], "O")
		assert.NotContains(t, ref[4:], "I")
		assert.NotContains(t, ref[4:], "L")
		seen[ref] = true
	}

	// Not a uniqueness guarantee, but 50 collisions would mean the
	// generator is broken.
	assert.Greater(t, len(seen), 1)
}

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(12)
	assert.Len(t, s, 12)
	assert.NotEqual(t, s, GenerateRandomString(12))
}
