package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	for _, length := range []int{1, 8, 32} {
		code, err := GenerateCode(length)
		require.NoError(t, err)
		assert.Len(t, code, length*2)
		assert.Regexp(t, "^[0-9a-f]+$", code)
	}
}

func TestGenerateCodeIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateCode(8)
		require.NoError(t, err)
		assert.False(t, seen[code], "token %q repeated", code)
		seen[code] = true
	}
}
