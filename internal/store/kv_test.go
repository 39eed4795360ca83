package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateKey(t *testing.T) {
	t.Parallel()

	valid := []string{"neet_pulse_tests", "neet_target_score", "a", "v1.records", "x-y"}
	for _, key := range valid {
		assert.NoError(t, ValidateKey(key), key)
	}

	invalid := []string{"", ".", "..", "../etc/passwd", "a/b", `a\b`, "with space"}
	for _, key := range invalid {
		assert.ErrorIs(t, ValidateKey(key), ErrInvalidKey, key)
	}
}
