package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price int
		want  string
	}{
		{0, "$0"},
		{999, "$999"},
		{1000, "$1.000"},
		{49990, "$49.990"},
		{499990, "$499.990"},
		{1234567, "$1.234.567"},
		{-59990, "-$59.990"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.price))
	}
}
