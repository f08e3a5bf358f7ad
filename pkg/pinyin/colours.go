package pinyin

import (
	"fmt"
	"strings"
)

// ToneColours configures per-tone colouring of pinyin and hanzi. When Off is
// set no markup is produced. Otherwise Codes holds five RGB hex codes for
// tones 1-5 (5 doubling as the neutral tone).
type ToneColours struct {
	Off   bool
	Codes [5]string
}

// DefaultToneColours returns the standard five-colour scheme.
func DefaultToneColours() ToneColours {
	return ToneColours{Codes: [5]string{"00e304", "b35815", "f00f0f", "1767fe", "777777"}}
}

// ParseToneColours parses a tone-colour specification: "off" (or "none")
// disables colouring, anything else must be five semicolon-separated
// 6-character hex codes, e.g. "00e304;b35815;f00f0f;1767fe;777777".
// A malformed specification is a configuration error.
func ParseToneColours(spec string) (ToneColours, error) {
	switch strings.ToLower(spec) {
	case "off", "none":
		return ToneColours{Off: true}, nil
	case "":
		return DefaultToneColours(), nil
	}

	parts := strings.Split(spec, ";")
	if len(parts) != 5 {
		return ToneColours{}, fmt.Errorf("expected five RGB codes, got %q", spec)
	}
	var tc ToneColours
	for i, p := range parts {
		if !isHexCode(p) {
			return ToneColours{}, fmt.Errorf("expected 6-char hex code, got %q", p)
		}
		tc.Codes[i] = strings.ToLower(p)
	}
	return tc, nil
}

func isHexCode(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// Colourise wraps text in a tone-classed span. Tone 0 (no tone information)
// and the Off setting pass the text through unchanged. The class only names
// the tone; the actual colour comes from the deck CSS (see CSS).
func (tc ToneColours) Colourise(text string, tone int) string {
	if tc.Off || tone < 1 || tone > 5 {
		return text
	}
	return fmt.Sprintf(`<span class="tone%d">%s</span>`, tone, text)
}

// RenderSyllable renders one syllable with its diacritic, wrapped in its
// tone span when colouring is on.
func (tc ToneColours) RenderSyllable(s Syllable) string {
	tone := s.Tone
	if s.Tone == 0 {
		// No tone data at all (e.g. the · separator): never wrap.
		return s.Display()
	}
	return tc.Colourise(s.Display(), tone)
}

// Render renders a whole pronunciation, syllable by syllable.
func (tc ToneColours) Render(syllables []Syllable) string {
	var b strings.Builder
	for _, s := range syllables {
		b.WriteString(tc.RenderSyllable(s))
	}
	return b.String()
}

// CSS emits the .tone1..5 rules for the configured scheme. With colouring
// off every tone renders black, which keeps deck templates that reference
// the classes working.
func (tc ToneColours) CSS() string {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		colour := "black"
		if !tc.Off {
			colour = "#" + tc.Codes[i]
		}
		fmt.Fprintf(&b, ".tone%d {color: %s;}\n", i+1, colour)
	}
	return b.String()
}
