// Package pinyin models Hanyu Pinyin syllables with numbered tones and
// renders them with tone-mark diacritics.
package pinyin

import (
	"strings"
)

// Syllable is a single pinyin syllable, e.g. "yang" with tone 3.
// Tone is 1-4 for the contour tones; 5 (or 0) marks the neutral tone.
// A Tone of 0 is also used for separators such as "·" in proper names,
// which carry no pronunciation of their own.
type Syllable struct {
	Text string
	Tone int
}

// Neutral reports whether the syllable carries no tone mark.
func (s Syllable) Neutral() bool { return s.Tone == 0 || s.Tone == 5 }

// ParseSyllable parses a numbered-tone syllable as found in CC-CEDICT,
// e.g. "yang3" or "lu:4". The MDBG data writes ü as "u:", so that is
// normalized here. Input without a trailing tone digit (e.g. "·" used in
// transliterated names) is kept verbatim with tone 0.
func ParseSyllable(raw string) Syllable {
	if raw == "" {
		return Syllable{}
	}
	last := raw[len(raw)-1]
	if last < '0' || last > '9' {
		return Syllable{Text: normalizeUmlaut(raw)}
	}
	return Syllable{
		Text: normalizeUmlaut(raw[:len(raw)-1]),
		Tone: int(last - '0'),
	}
}

func normalizeUmlaut(s string) string {
	s = strings.ReplaceAll(s, "u:", "ü")
	return strings.ReplaceAll(s, "U:", "Ü")
}

// Display renders the syllable with its tone-mark diacritic applied.
func (s Syllable) Display() string {
	return AddDiacritic(s.Text, s.Tone)
}

const vowels = "aeiouüAEIOUÜ"

// Diacritic forms indexed by tone-1 for tones 1..4; index 4 is the bare vowel.
var diacritics = map[rune][5]rune{
	'a': {'ā', 'á', 'ǎ', 'à', 'a'},
	'e': {'ē', 'é', 'ě', 'è', 'e'},
	'i': {'ī', 'í', 'ǐ', 'ì', 'i'},
	'o': {'ō', 'ó', 'ǒ', 'ò', 'o'},
	'u': {'ū', 'ú', 'ǔ', 'ù', 'u'},
	'ü': {'ǖ', 'ǘ', 'ǚ', 'ǜ', 'ü'},
}

// AddDiacritic places the tone mark for the given tone on the correct vowel
// of a pinyin syllable, following the standard placement rules: a lone vowel
// takes the mark; otherwise a or e takes it; in "ou" the o takes it; in any
// other vowel cluster the second vowel takes it. Neutral tones (0 and 5)
// and syllables without vowels (e.g. the "·" name separator) are returned
// unchanged.
func AddDiacritic(text string, tone int) string {
	if tone < 1 || tone > 4 {
		return text
	}

	runes := []rune(text)
	first, last := -1, -1
	for i, r := range runes {
		if strings.ContainsRune(vowels, r) {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return text
	}

	group := runes[first : last+1]
	markAt := 1 // default: second vowel takes the mark
	switch {
	case len(group) == 1:
		markAt = 0
	case containsAny(group, 'a', 'e'):
		markAt = indexAny(group, 'a', 'e')
	case containsSeq(group, 'o', 'u'):
		markAt = indexAny(group, 'o')
	}

	group[markAt] = markRune(group[markAt], tone)
	return string(runes)
}

func markRune(r rune, tone int) rune {
	lower := r
	upper := false
	if u := strings.ToLower(string(r)); u != string(r) {
		lower = []rune(u)[0]
		upper = true
	}
	forms, ok := diacritics[lower]
	if !ok {
		return r
	}
	marked := forms[tone-1]
	if upper {
		return []rune(strings.ToUpper(string(marked)))[0]
	}
	return marked
}

func containsAny(rs []rune, targets ...rune) bool {
	return indexAny(rs, targets...) >= 0
}

func indexAny(rs []rune, targets ...rune) int {
	for i, r := range rs {
		lr := []rune(strings.ToLower(string(r)))[0]
		for _, t := range targets {
			if lr == t {
				return i
			}
		}
	}
	return -1
}

func containsSeq(rs []rune, a, b rune) bool {
	for i := 0; i+1 < len(rs); i++ {
		la := []rune(strings.ToLower(string(rs[i])))[0]
		lb := []rune(strings.ToLower(string(rs[i+1])))[0]
		if la == a && lb == b {
			return true
		}
	}
	return false
}
