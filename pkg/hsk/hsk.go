// Package hsk provides the HSK vocabulary-level list used to filter
// already-known words out of a deck.
package hsk

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// List maps simplified words to their lowest HSK level.
// Read-only after construction.
type List struct {
	levels map[string]int
}

// Load reads a tab-separated level list ("word<TAB>level", one per line,
// '#' comments allowed) from disk.
func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse builds a List from tab-separated word/level lines. When a word
// appears at several levels the lowest one wins.
func Parse(r io.Reader) (*List, error) {
	l := &List{levels: make(map[string]int)}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, levelStr, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("hsk list line %d: expected word<TAB>level, got %q", lineNo, line)
		}
		level, err := strconv.Atoi(strings.TrimSpace(levelStr))
		if err != nil || level < 1 {
			return nil, fmt.Errorf("hsk list line %d: bad level %q", lineNo, levelStr)
		}
		word = strings.TrimSpace(word)
		if existing, ok := l.levels[word]; !ok || level < existing {
			l.levels[word] = level
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return l, nil
}

// LevelOf returns the lowest HSK level the word is tagged with, or false
// when the word is not on any level list.
//
// Lookup is word-level only: a multi-character word whose individual
// characters are tagged at low levels still reports "not listed" unless the
// whole word is. Known imprecision, kept as-is.
func (l *List) LevelOf(word string) (int, bool) {
	level, ok := l.levels[word]
	return level, ok
}

// Filtered reports whether the word should be dropped for the given
// threshold: its level is known and at or below the threshold. A threshold
// of 0 (or below) disables filtering entirely.
func (l *List) Filtered(word string, threshold int) bool {
	if threshold <= 0 {
		return false
	}
	level, ok := l.levels[word]
	return ok && level <= threshold
}

// Len returns the number of listed words.
func (l *List) Len() int { return len(l.levels) }
