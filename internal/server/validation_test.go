package server

import "testing"

func TestNormalizeText(t *testing.T) {
	cases := map[string]string{
		"  hello  world ": "hello world",
		"one":             "one",
		"   ":             "",
		"":                "",
		"a\tb\nc":         "a b c",
	}
	for in, want := range cases {
		if got := normalizeText(in); got != want {
			t.Errorf("normalizeText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValueOr(t *testing.T) {
	if got := valueOr("", "fallback"); got != "fallback" {
		t.Errorf("blank value should fall back, got %q", got)
	}
	if got := valueOr("   ", "fallback"); got != "fallback" {
		t.Errorf("whitespace value should fall back, got %q", got)
	}
	if got := valueOr("Luna", "fallback"); got != "Luna" {
		t.Errorf("present value should win, got %q", got)
	}
}

func TestParseDifficulty(t *testing.T) {
	cases := map[string]int{
		"":    defaultDifficulty,
		"abc": defaultDifficulty,
		"0":   0,
		"5":   5,
		"10":  10,
		"11":  10,
		"-3":  0,
		" 7 ": 7,
	}
	for in, want := range cases {
		if got := parseDifficulty(in); got != want {
			t.Errorf("parseDifficulty(%q) = %d, want %d", in, got, want)
		}
	}
}
