// Package cedict loads the CC-CEDICT Chinese-English dictionary and provides
// the exact-match and longest-prefix lookups used by the resolver.
package cedict

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"hanzideck/pkg/pinyin"
)

// Entry is a single dictionary reading: one pinyin rendering of a word plus
// the definitions attached to that reading. A word with several readings
// (e.g. 好 hao3/hao4) carries several entries.
type Entry struct {
	Simplified  string
	Traditional string
	Pinyin      []pinyin.Syllable
	Definitions []string
}

// PlainPinyin renders the entry's pronunciation with tone diacritics and no
// markup, e.g. "nǐhǎo".
func (e Entry) PlainPinyin() string {
	var b strings.Builder
	for _, s := range e.Pinyin {
		b.WriteString(s.Display())
	}
	return b.String()
}

// Dict is an in-memory index over CC-CEDICT, keyed by simplified word.
// It is read-only after construction and safe to share by reference.
type Dict struct {
	entries map[string][]Entry
}

// Load reads a CC-CEDICT file from disk and builds the index.
func Load(path string) (*Dict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse builds the index from CC-CEDICT formatted text. Lines look like
//
//	一氧化氮 一氧化氮 [yi1 yang3 hua4 dan4] /nitric oxide/
//
// with the traditional form first. Comment lines start with '#'. Multiple
// lines for the same simplified word become multiple entries.
func Parse(r io.Reader) (*Dict, error) {
	d := &Dict{entries: make(map[string][]Entry)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entry, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("cedict line %d: %w", lineNo, err)
		}
		d.entries[entry.Simplified] = append(d.entries[entry.Simplified], entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

func parseLine(line string) (Entry, error) {
	open := strings.IndexByte(line, '[')
	closing := strings.IndexByte(line, ']')
	if open < 0 || closing < open {
		return Entry{}, fmt.Errorf("missing pinyin brackets in %q", line)
	}

	head := strings.Fields(line[:open])
	if len(head) < 2 {
		return Entry{}, fmt.Errorf("missing word forms in %q", line)
	}

	var syllables []pinyin.Syllable
	for _, raw := range strings.Fields(line[open+1 : closing]) {
		syllables = append(syllables, pinyin.ParseSyllable(raw))
	}

	var defs []string
	for _, def := range strings.Split(line[closing+1:], "/") {
		def = strings.TrimSpace(def)
		if def != "" {
			defs = append(defs, def)
		}
	}
	if len(defs) == 0 {
		return Entry{}, fmt.Errorf("no definitions in %q", line)
	}

	return Entry{
		Traditional: head[0],
		Simplified:  head[1],
		Pinyin:      syllables,
		Definitions: defs,
	}, nil
}

// Lookup returns all entries for an exact simplified-word match.
func (d *Dict) Lookup(word string) ([]Entry, bool) {
	entries, ok := d.entries[word]
	return entries, ok
}

// Contains reports whether the word has at least one entry.
func (d *Dict) Contains(word string) bool {
	_, ok := d.entries[word]
	return ok
}

// LongestPrefix finds the longest prefix of rs that exists as a dictionary
// word and returns it with its length in runes. Chunks from the segmenter
// are short, so probing successively shorter prefixes against the hash map
// beats maintaining a trie. Returns ("", 0) when not even the first rune
// alone is a dictionary word.
func (d *Dict) LongestPrefix(rs []rune) (string, int) {
	for n := len(rs); n >= 1; n-- {
		if w := string(rs[:n]); d.Contains(w) {
			return w, n
		}
	}
	return "", 0
}

// Words returns every indexed simplified word. Used to seed the segmenter's
// vocabulary so its boundaries line up with the dictionary.
func (d *Dict) Words() []string {
	words := make([]string, 0, len(d.entries))
	for w := range d.entries {
		words = append(words, w)
	}
	return words
}

// Len returns the number of distinct simplified words in the index.
func (d *Dict) Len() int { return len(d.entries) }
