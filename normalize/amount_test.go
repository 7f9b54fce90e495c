package normalize

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
	}{
		{"comma decimal with currency", "1234,56 DT", 1234.56},
		{"plain decimal", "99.9", 99.9},
		{"integer", "500", 500},
		{"currency suffix", "500,00 DT", 500},
		{"space separated thousands", "1 234,56 DT", 1234.56},
		{"empty string", "", 0},
		{"no digits", "abc", 0},
		{"currency only", "DT", 0},
		{"second comma fails the parse", "1,234,56", 0},
		{"zero", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseAmount(tt.raw); got != tt.expected {
				t.Errorf("ParseAmount(%q) = %v, expected %v", tt.raw, got, tt.expected)
			}
		})
	}
}
