package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOTP(t *testing.T) {
	seen := make(map[string]int)
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		assert.NoError(t, err, "OTP generation should not fail")
		assert.Len(t, code, OTPLength, "Code should be exactly six characters")
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "Code should contain only digits, got %q", code)
		}
		seen[code]++
	}
	// With 50 draws a single repeated value is plausible; all-identical is not.
	assert.Greater(t, len(seen), 1, "Repeated generation should not always produce the same code")
}

func TestGenerateRandomPassword(t *testing.T) {
	password, err := GenerateRandomPassword(12)
	assert.NoError(t, err, "Password generation should not fail")
	assert.Len(t, password, 12, "Password should have the requested length")
	for _, r := range password {
		assert.True(t, strings.ContainsRune(passwordAlphabet, r), "Password should only use the configured alphabet, got %q", password)
	}

	other, err := GenerateRandomPassword(12)
	assert.NoError(t, err)
	assert.NotEqual(t, password, other, "Two generated passwords should differ")
}

func TestGenerateRandomPasswordRejectsNonPositiveLength(t *testing.T) {
	_, err := GenerateRandomPassword(0)
	assert.Error(t, err, "Zero length should be rejected")

	_, err = GenerateRandomPassword(-3)
	assert.Error(t, err, "Negative length should be rejected")
}
