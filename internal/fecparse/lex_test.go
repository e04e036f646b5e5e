package fecparse

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
	}{
		{name: "normative FEC layout", input: "20230315"},
		{name: "french slashes", input: "15/03/2023"},
		{name: "iso dashes", input: "2023-03-15"},
		{name: "french dashes", input: "15-03-2023"},
		{name: "surrounding whitespace", input: " 20230315 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(want), "got %s", got)
		})
	}

	_, err := parseDate("15.03.2023")
	assert.Error(t, err)
	_, err = parseDate("")
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "dot decimal", input: "1234.56", want: "1234.56"},
		{name: "comma decimal", input: "1234,56", want: "1234.56"},
		{name: "dot thousands comma decimal", input: "1.234,56", want: "1234.56"},
		{name: "space thousands", input: "1 234,56", want: "1234.56"},
		{name: "nbsp thousands", input: "1\u00a0234,56", want: "1234.56"},
		{name: "negative", input: "-500,25", want: "-500.25"},
		{name: "empty is zero", input: "", want: "0"},
		{name: "whitespace only is zero", input: "   ", want: "0"},
		{name: "integer", input: "1000", want: "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAmount(tt.input, "debit")
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"expected %s, got %s", tt.want, got)
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	_, err := parseAmount("abc", "debit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "debit")
	assert.Contains(t, err.Error(), "abc")
}
