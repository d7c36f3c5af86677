package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@x.com", "ann.smith@example.co.uk", "admin+tag@optima.app"}
	for _, s := range valid {
		assert.True(t, IsValidEmail(s), "expected valid: %s", s)
	}

	invalid := []string{"", "a", "a@", "@x.com", "a@x", "a b@x.com", "a@x .com"}
	for _, s := range invalid {
		assert.False(t, IsValidEmail(s), "expected invalid: %s", s)
	}
}
