package numfmt

import (
	"math"
	"testing"
)

func TestThousands(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{54608, "54,608"},
		{1234567.4, "1,234,567"},
		{1234567.5, "1,234,568"},
		{3031564839, "3,031,564,839"},
		{-2500, "-2,500"},
		{-0.2, "0"},
	}

	for _, tt := range tests {
		if got := Thousands(tt.in); got != tt.want {
			t.Errorf("Thousands(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in     float64
		format string
		want   string
	}{
		{2.5, "", "2.5"},
		{1.8, "", "1.8"},
		{25, "", "25"},
		{1234.567, ",.2f", "1,234.57"},
		{1234.567, ".1f", "1234.6"},
		{1234.567, "unknown", "1234.567"},
		{math.Inf(1), ",.0f", "+Inf"},
	}

	for _, tt := range tests {
		if got := Format(tt.in, tt.format); got != tt.want {
			t.Errorf("Format(%v, %q) = %q, want %q", tt.in, tt.format, got, tt.want)
		}
	}
}
