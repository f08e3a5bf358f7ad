// Package resolve turns segmenter chunks into dictionary-valid words.
//
// The segmenter's boundaries are a best guess; a chunk like 共同话题 may not
// exist as a dictionary word even though 共同 and 话题 both do. The resolver
// repairs such chunks by greedy longest-prefix decomposition against the
// dictionary, so that every emitted word is either dictionary-backed or a
// single character the dictionary simply does not know.
package resolve

import (
	"hanzideck/pkg/cedict"
)

// ResolvedWord is one dictionary-aligned word recovered from a chunk.
// Entries is empty when the word is a synthesized single-character fallback
// with no dictionary data; downstream treats that as "no data", not an error.
type ResolvedWord struct {
	Word     string
	Entries  []cedict.Entry
	Fallback bool
}

// Resolver resolves raw chunks against a dictionary.
type Resolver struct {
	dict *cedict.Dict
}

// NewResolver creates a Resolver over the given dictionary index.
func NewResolver(dict *cedict.Dict) *Resolver {
	return &Resolver{dict: dict}
}

// Resolve maps one chunk to its resolved words, in left-to-right order.
//
// A chunk that is itself a dictionary word resolves directly. Otherwise the
// chunk is consumed by repeatedly taking the longest dictionary word that
// prefixes the unconsumed suffix. A position where no prefix of any length
// is known emits that single character with no entries. The cursor advances
// at least one rune per step, so the loop terminates within len(chunk) steps
// and the concatenation of emitted words always equals the chunk.
func (r *Resolver) Resolve(chunk string) []ResolvedWord {
	if chunk == "" {
		return nil
	}

	if entries, ok := r.dict.Lookup(chunk); ok {
		return []ResolvedWord{{Word: chunk, Entries: entries}}
	}

	runes := []rune(chunk)
	var out []ResolvedWord
	for i := 0; i < len(runes); {
		word, n := r.dict.LongestPrefix(runes[i:])
		if n == 0 {
			// Unknown character: emit it bare so no input is dropped.
			out = append(out, ResolvedWord{Word: string(runes[i]), Fallback: true})
			i++
			continue
		}
		entries, _ := r.dict.Lookup(word)
		out = append(out, ResolvedWord{Word: word, Entries: entries, Fallback: true})
		i += n
	}
	return out
}

// ResolveAll resolves a sequence of chunks, preserving chunk order and
// within-chunk consumption order.
func (r *Resolver) ResolveAll(chunks []string) []ResolvedWord {
	var out []ResolvedWord
	for _, c := range chunks {
		out = append(out, r.Resolve(c)...)
	}
	return out
}
