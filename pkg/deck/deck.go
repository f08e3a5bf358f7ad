// Package deck turns resolved words into deduplicated flashcard records.
package deck

import (
	"fmt"
	"strings"

	"hanzideck/pkg/cedict"
	"hanzideck/pkg/hsk"
	"hanzideck/pkg/pinyin"
	"hanzideck/pkg/resolve"
)

// Direction selects which card sides a note generates.
type Direction int

const (
	// Both generates a Chinese→English and an English→Chinese card per note.
	Both Direction = iota
	// CeToEn tests Chinese to English only.
	CeToEn
	// EnToCe tests English to Chinese only.
	EnToCe
)

// ParseDirection parses a side setting. The empty string means Both.
// An unrecognized value is a configuration error.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "", "both":
		return Both, nil
	case "ce-to-en":
		return CeToEn, nil
	case "en-to-ce":
		return EnToCe, nil
	}
	return Both, fmt.Errorf("unrecognized side %q (want ce-to-en, en-to-ce or both)", s)
}

func (d Direction) String() string {
	switch d {
	case CeToEn:
		return "ce-to-en"
	case EnToCe:
		return "en-to-ce"
	}
	return "both"
}

// Reading is one pronunciation of the card's word together with the
// definitions attached to that pronunciation.
type Reading struct {
	Pinyin      string // rendered with diacritics, optionally tone-coloured
	Definitions []string
}

// Card is one flashcard record. Pinyin and Definition come from the primary
// (first) reading; Readings carries every reading for the full note back.
// A word resolved without any dictionary data has empty Pinyin, Definition
// and Readings, which renders as a blank-backed card rather than an error.
type Card struct {
	Word        string
	Pinyin      string
	Definition  string
	Readings    []Reading
	ColourHanzi string
	Direction   Direction
}

// Builder converts resolved words into cards, applying HSK filtering and
// first-occurrence deduplication by word string. Not safe for concurrent
// use; feed it a single ordered stream.
type Builder struct {
	levels    *hsk.List
	threshold int
	colours   pinyin.ToneColours
	direction Direction
	seen      map[string]struct{}
}

// Options configures a Builder. A nil Levels list or a zero HSKThreshold
// disables vocabulary filtering.
type Options struct {
	Levels       *hsk.List
	HSKThreshold int
	Colours      pinyin.ToneColours
	Direction    Direction
}

// NewBuilder creates a Builder with an empty dedup set.
func NewBuilder(opts Options) *Builder {
	return &Builder{
		levels:    opts.Levels,
		threshold: opts.HSKThreshold,
		colours:   opts.Colours,
		direction: opts.Direction,
		seen:      make(map[string]struct{}),
	}
}

// Add builds the card for one resolved word. It returns false when the word
// was already carded earlier in this run, or when the HSK filter drops it.
func (b *Builder) Add(rw resolve.ResolvedWord) (Card, bool) {
	if _, dup := b.seen[rw.Word]; dup {
		return Card{}, false
	}
	if b.levels != nil && b.levels.Filtered(rw.Word, b.threshold) {
		return Card{}, false
	}
	b.seen[rw.Word] = struct{}{}

	card := Card{
		Word:        rw.Word,
		ColourHanzi: b.colourHanzi(rw),
		Direction:   b.direction,
	}
	for _, e := range rw.Entries {
		card.Readings = append(card.Readings, Reading{
			Pinyin:      b.colours.Render(e.Pinyin),
			Definitions: e.Definitions,
		})
	}
	if len(card.Readings) > 0 {
		card.Pinyin = card.Readings[0].Pinyin
		if defs := card.Readings[0].Definitions; len(defs) > 0 {
			card.Definition = defs[0]
		}
	}
	return card, true
}

// BuildAll runs Add over an ordered stream of resolved words and returns the
// produced cards in first-occurrence order.
func (b *Builder) BuildAll(rws []resolve.ResolvedWord) []Card {
	var cards []Card
	for _, rw := range rws {
		if card, ok := b.Add(rw); ok {
			cards = append(cards, card)
		}
	}
	return cards
}

// colourHanzi colours each character of the word by its tone when every
// reading agrees on the tone pattern. Disagreeing readings fall back to the
// neutral colour per character, and a word without entries stays plain.
func (b *Builder) colourHanzi(rw resolve.ResolvedWord) string {
	runes := []rune(rw.Word)
	pattern, consensus := tonePattern(rw.Entries, len(runes))
	if pattern == nil {
		return rw.Word
	}

	var out strings.Builder
	for i, r := range runes {
		tone := 5
		if consensus {
			tone = pattern[i]
		}
		out.WriteString(b.colours.Colourise(string(r), tone))
	}
	return out.String()
}

// tonePattern returns the per-character tone pattern shared by all entries,
// with consensus=false when the readings disagree. It returns a nil pattern
// when there are no entries or the syllable count does not line up with the
// character count (e.g. erhua readings).
func tonePattern(entries []cedict.Entry, runeCount int) ([]int, bool) {
	var pattern []int
	for _, e := range entries {
		if len(e.Pinyin) != runeCount {
			return nil, false
		}
		tones := make([]int, len(e.Pinyin))
		for i, s := range e.Pinyin {
			// The data writes neutral tones both as 5 and unnumbered;
			// fold them together so they do not break consensus.
			if s.Neutral() {
				tones[i] = 5
			} else {
				tones[i] = s.Tone
			}
		}
		if pattern == nil {
			pattern = tones
			continue
		}
		for i := range tones {
			if tones[i] != pattern[i] {
				return pattern, false
			}
		}
	}
	if pattern == nil {
		return nil, false
	}
	return pattern, true
}
