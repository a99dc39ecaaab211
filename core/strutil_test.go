package core

import (
	"math"
	"strings"
	"testing"
)

func TestFormatSample(t *testing.T) {
	testCases := []struct {
		name  string
		value uint32
		want  string
	}{
		{"zero", 0, "0       "},
		{"one digit", 7, "7       "},
		{"mid scale", 2048, "2048    "},
		{"full scale", 4095, "4095    "},
		{"exactly field width", 12345678, "12345678"},
		{"wider than field", 123456789, "123456789"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf [FieldWidth]byte
			got := string(FormatSample(&buf, tc.value))
			if got != tc.want {
				t.Errorf("FormatSample(%d) = %q, want %q", tc.value, got, tc.want)
			}
			if SampleText(tc.value) != tc.want {
				t.Errorf("SampleText(%d) = %q, want %q", tc.value, SampleText(tc.value), tc.want)
			}
		})
	}
}

func TestFormatSampleOverwritesLongerValue(t *testing.T) {
	long := SampleText(4095)
	short := SampleText(0)

	if len(short) < len(strings.TrimRight(long, " ")) {
		t.Fatalf("short field %q cannot cover %q", short, long)
	}
	if len(short) != len(long) {
		t.Errorf("field widths differ: %d vs %d", len(short), len(long))
	}
}

func TestItoa(t *testing.T) {
	testCases := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{9, "9"},
		{10, "10"},
		{-42, "-42"},
		{50000000, "50000000"},
		{5000000000, "5000000000"},
		{-5000000000, "-5000000000"},
		{math.MaxInt64, "9223372036854775807"},
		{math.MinInt64, "-9223372036854775808"},
	}

	for _, tc := range testCases {
		if got := Itoa(tc.n); got != tc.want {
			t.Errorf("Itoa(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}
