package holdings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "expands spreadsheet-mangled identifier",
			input: "9.78812E+12",
			want:  "9788120000000",
		},
		{
			name:  "expands full-precision mantissa",
			input: "9.788122414837E+12",
			want:  "9788122414837",
		},
		{
			name:  "lowercase exponent marker",
			input: "1.23e+4",
			want:  "12300",
		},
		{
			name:  "expansion embedded in larger string",
			input: "0 0 0 0 9.78812E+12 VIT",
			want:  "0 0 0 0 9788120000000 VIT",
		},
		{
			name:  "exponent shorter than fraction truncates",
			input: "1.2345E+2",
			want:  "123",
		},
		{
			name:  "absurd exponent left untouched",
			input: "1.5E+99999",
			want:  "1.5E+99999",
		},
		{
			name:  "plain text unchanged",
			input: "621.7:744 BHA 5023",
			want:  "621.7:744 BHA 5023",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Heal(tt.input))
		})
	}
}

func TestHealIsIdempotent(t *testing.T) {
	inputs := []string{
		"9.78812E+12",
		"0 0 0 0 9.78812E+12 250.00 2007-06-15",
		"no notation at all",
		"1.5E+99999",
	}

	for _, input := range inputs {
		once := Heal(input)
		assert.Equal(t, once, Heal(once), "healing twice must be a no-op for %q", input)
	}
}
