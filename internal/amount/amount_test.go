package amount

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"$1,500,000", "1500000000000"},
		{"$12", "12000000"},
		{"1,234.5", "1234500000"},
		{"$0.25", "250000"},
		{"  $3  ", "3000000"},
		{"7", "7000000"},
		{"-", "0"},
		{" - ", "0"},
		{"$-", "0"},
		{"--", "0"},
	}
	for _, tt := range tests {
		got, err := Parse(tt.raw)
		require.NoError(t, err, "Parse(%q)", tt.raw)
		assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "Parse(%q) = %s, want %s", tt.raw, got, tt.want)
	}
}

func TestParse_ScaleProperty(t *testing.T) {
	for _, n := range []int64{0, 1, 999, 1000, 65_432, 1_000_000, 123_456_789} {
		raw := "$" + addThousands(n)
		got, err := Parse(raw)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(n).Mul(Scale).Equal(got), "Parse(%q)", raw)
	}
}

func TestParse_DashIsExactlyZero(t *testing.T) {
	got, err := Parse("-")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
	assert.Equal(t, 0.0, got.InexactFloat64())
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		raw    string
		reason string
	}{
		{"", "empty value"},
		{"   ", "empty value"},
		{"$", "empty value"},
		{"N/A", "not a number"},
		{"$12abc", "not a number"},
		{"1.2.3", "not a number"},
		{"-5", "negative amount"},
	}
	for _, tt := range tests {
		_, err := Parse(tt.raw)
		require.Error(t, err, "Parse(%q)", tt.raw)

		var pe *ParseError
		require.True(t, errors.As(err, &pe), "Parse(%q) error type", tt.raw)
		assert.Equal(t, tt.raw, pe.Raw)
		assert.Equal(t, tt.reason, pe.Reason)
		assert.Contains(t, err.Error(), "parsing amount")
	}
}

func addThousands(n int64) string {
	s := decimal.NewFromInt(n).String()
	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return string(out)
}
