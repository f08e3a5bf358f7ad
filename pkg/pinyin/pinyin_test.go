package pinyin

import "testing"

func TestParseSyllable(t *testing.T) {
	tests := []struct {
		in   string
		text string
		tone int
	}{
		{"yang3", "yang", 3},
		{"lu:4", "lü", 4},
		{"ma5", "ma", 5},
		{"Xi1", "Xi", 1},
		{"·", "·", 0},
		{"r5", "r", 5},
	}
	for _, tt := range tests {
		got := ParseSyllable(tt.in)
		if got.Text != tt.text || got.Tone != tt.tone {
			t.Errorf("ParseSyllable(%q) = {%q %d}; want {%q %d}", tt.in, got.Text, got.Tone, tt.text, tt.tone)
		}
	}
}

func TestAddDiacritic(t *testing.T) {
	tests := []struct {
		text     string
		tone     int
		expected string
	}{
		{"chu", 4, "chù"},
		{"liang", 2, "liáng"},
		{"Xi", 1, "Xī"},
		{"Er", 3, "Ěr"},
		{"shuang", 4, "shuàng"},
		{"zhou", 1, "zhōu"},
		{"lü", 4, "lǜ"},
		{"hui", 2, "huí"},
		// Neutral tone and toneless input stay unmarked.
		{"ma", 5, "ma"},
		{"ma", 0, "ma"},
		{"·", 1, "·"},
	}
	for _, tt := range tests {
		if got := AddDiacritic(tt.text, tt.tone); got != tt.expected {
			t.Errorf("AddDiacritic(%q, %d) = %q; want %q", tt.text, tt.tone, got, tt.expected)
		}
	}
}

func TestDisplay(t *testing.T) {
	s := ParseSyllable("hao3")
	if got := s.Display(); got != "hǎo" {
		t.Errorf("Display() = %q; want %q", got, "hǎo")
	}
}

func TestNeutral(t *testing.T) {
	if !ParseSyllable("ma5").Neutral() {
		t.Error("tone 5 should be neutral")
	}
	if !ParseSyllable("·").Neutral() {
		t.Error("tone 0 should be neutral")
	}
	if ParseSyllable("ma3").Neutral() {
		t.Error("tone 3 should not be neutral")
	}
}
