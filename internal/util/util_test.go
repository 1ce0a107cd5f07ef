package util

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTopupCode(t *testing.T) {
	code, err := GenerateTopupCode(10)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(code, "QZ-"))
	random := strings.TrimPrefix(code, "QZ-")
	require.Len(t, random, 10)
	for _, r := range random {
		assert.Contains(t, codeAlphabet, string(r))
	}
}

func TestGenerateTopupCode_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for range 50 {
		code, err := GenerateTopupCode(12)
		require.NoError(t, err)
		require.False(t, seen[code], "duplicate code generated")
		seen[code] = true
	}
}

func TestGenerateTopupCode_RejectsNonPositiveLength(t *testing.T) {
	_, err := GenerateTopupCode(0)
	require.Error(t, err)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "10.00", FormatAmount(decimal.NewFromInt(10)))
	assert.Equal(t, "0.50", FormatAmount(decimal.RequireFromString("0.5")))
	assert.Equal(t, "3.25", FormatAmount(decimal.RequireFromString("3.249").Round(2)))
}
