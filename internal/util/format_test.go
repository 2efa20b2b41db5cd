package util

import "testing"

func TestFormatCount(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1K"},
		{1500, "1.5K"},
		{45892, "45.9K"},
		{1000000, "1M"},
		{1200000, "1.2M"},
	}

	for _, tt := range tests {
		if got := FormatCount(tt.input); got != tt.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input string
		max   int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this one is definitely too long", 10, "this one i..."},
		{"héllo wörld", 5, "héllo..."},
	}

	for _, tt := range tests {
		if got := TruncateString(tt.input, tt.max); got != tt.want {
			t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  How Are My POSTS? "); got != "how are my posts?" {
		t.Errorf("Normalize returned %q", got)
	}
}
