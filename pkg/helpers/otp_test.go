package helpers

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenOTPCode_SixDigits(t *testing.T) {
	re := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 50; i++ {
		code, err := GenOTPCode()
		require.NoError(t, err)
		assert.Regexp(t, re, code)
	}
}

func TestOTPMatches(t *testing.T) {
	assert.True(t, OTPMatches("123456", "123456"))
	assert.False(t, OTPMatches("123456", "654321"))
	assert.False(t, OTPMatches("123456", "12345"))
	assert.False(t, OTPMatches("", ""))
}

func TestNewTokenID_Unique(t *testing.T) {
	assert.NotEqual(t, NewTokenID(), NewTokenID())
}
