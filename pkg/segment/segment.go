// Package segment wraps the gse word segmenter and produces the ordered
// chunk stream the resolver consumes.
package segment

import (
	"unicode"

	"github.com/go-ego/gse"
)

// Segmenter splits Chinese text into word chunks. The underlying engine is
// treated as a black box: it returns an ordered sequence of substrings
// covering the input, and any boundary it gets wrong is repaired downstream
// by the resolver.
type Segmenter struct {
	seg gse.Segmenter
}

// New creates a Segmenter. extraWords are added to the engine's vocabulary;
// seeding it with every dictionary word makes its boundaries line up with
// the dictionary far more often.
func New(extraWords []string) (*Segmenter, error) {
	s := &Segmenter{}
	if err := s.seg.LoadDict(); err != nil {
		return nil, err
	}
	for _, w := range extraWords {
		// We have no frequency data for dictionary words; a modest constant
		// is enough to make the engine consider them.
		_ = s.seg.AddToken(w, 50)
	}
	return s, nil
}

// Cut segments text into chunks, in order, covering the whole input.
func (s *Segmenter) Cut(text string) []string {
	return s.seg.Cut(text, true)
}

// CutHan segments text and keeps only chunks made entirely of Han
// characters. Punctuation, latin text and digits carry nothing to study, so
// they are dropped before resolution.
func (s *Segmenter) CutHan(text string) []string {
	var out []string
	for _, chunk := range s.Cut(text) {
		if IsHan(chunk) {
			out = append(out, chunk)
		}
	}
	return out
}

// IsHan reports whether the chunk is non-empty and entirely Han characters.
func IsHan(chunk string) bool {
	if chunk == "" {
		return false
	}
	for _, r := range chunk {
		if !unicode.Is(unicode.Han, r) {
			return false
		}
	}
	return true
}
