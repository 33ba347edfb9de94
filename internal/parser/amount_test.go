package parser

import (
	"strconv"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		wantErr  bool
	}{
		{"12 345,00", 12345, false},
		{"1 234", 1234, false},
		{"30 000", 30000, false},
		{"720", 720, false},
		{"-1 500,00", -1500, false},
		{"0", 0, false},
		{"1 234", 1234, false},
		// Ties round half-up, away from zero (pinned choice).
		{"12,50", 13, false},
		{"-12,50", -13, false},
		{"", 0, true},
		{"abc", 0, true},
		{"Tax advance", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %d, want %d", got, tt.expected)
			}
		})
	}
}

// formatCzk renders an integer the way the payslip prints amounts
// (space-grouped thousands, decimal comma), for the round-trip property.
func formatCzk(x int) string {
	sign := ""
	if x < 0 {
		sign = "-"
		x = -x
	}
	digits := strconv.Itoa(x)
	grouped := ""
	for len(digits) > 3 {
		grouped = " " + digits[len(digits)-3:] + grouped
		digits = digits[:len(digits)-3]
	}
	return sign + digits + grouped + ",00"
}

func TestParseAmountRoundTrip(t *testing.T) {
	for _, x := range []int{0, 1, 999, 1000, 1234, 12345, 30000, 123456, -1500} {
		formatted := formatCzk(x)
		got, err := ParseAmount(formatted)
		if err != nil {
			t.Fatalf("ParseAmount(%q): unexpected error: %v", formatted, err)
		}
		if got != x {
			t.Errorf("ParseAmount(%q): got %d, want %d", formatted, got, x)
		}
	}
}

func TestParseHours(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		wantErr  bool
	}{
		{"160:00", 160, false},
		{"160:00fake", 160, false},
		{"0:0fake", 0, false},
		{"8:30", 8, false},
		{"160", 0, true},
		{"", 0, true},
		{"abc:00", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHours(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		wantErr  bool
	}{
		{"187,50", 187.50, false},
		{"123,45", 123.45, false},
		{"200", 200, false},
		{"", 0, true},
		{"not a number", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDecimal(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %f, want %f", got, tt.expected)
			}
		})
	}
}
