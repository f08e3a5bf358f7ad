package cedict

import (
	"strings"
	"testing"
)

const sampleData = `# CC-CEDICT
# Some header comment
你好 你好 [ni3 hao3] /hello/hi/
好 好 [hao3] /good/well/proper/
好 好 [hao4] /to be fond of/to have a tendency to/
共同 共同 [gong4 tong2] /common/joint/jointly/together/collaborative/
話題 话题 [hua4 ti2] /subject (of a talk or conversation)/topic/
綠 绿 [lu:4] /green/
亞歷山大·杜布切克 亚历山大·杜布切克 [Ya4 li4 shan1 da4 · Du4 bu4 qie1 ke4] /Alexander Dubcek (1921-1992), leader of Czechoslovakia (1968-1969)/
`

func mustParse(t *testing.T) *Dict {
	t.Helper()
	d, err := Parse(strings.NewReader(sampleData))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return d
}

func TestParseBasics(t *testing.T) {
	d := mustParse(t)

	entries, ok := d.Lookup("你好")
	if !ok || len(entries) != 1 {
		t.Fatalf("expected one entry for 你好, got %v (ok=%v)", entries, ok)
	}
	e := entries[0]
	if e.Traditional != "你好" || e.Simplified != "你好" {
		t.Errorf("unexpected word forms: %+v", e)
	}
	if len(e.Pinyin) != 2 || e.Pinyin[0].Text != "ni" || e.Pinyin[0].Tone != 3 {
		t.Errorf("unexpected pinyin: %+v", e.Pinyin)
	}
	if len(e.Definitions) != 2 || e.Definitions[0] != "hello" {
		t.Errorf("unexpected definitions: %v", e.Definitions)
	}
}

func TestMultipleReadingsMerge(t *testing.T) {
	d := mustParse(t)
	entries, ok := d.Lookup("好")
	if !ok {
		t.Fatal("expected entries for 好")
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 readings for 好, got %d", len(entries))
	}
	if entries[0].Pinyin[0].Tone == entries[1].Pinyin[0].Tone {
		t.Error("expected distinct tones for the two readings of 好")
	}
}

func TestUmlautNormalization(t *testing.T) {
	d := mustParse(t)
	entries, ok := d.Lookup("绿")
	if !ok || len(entries) != 1 {
		t.Fatalf("expected entry for 绿")
	}
	if got := entries[0].Pinyin[0].Text; got != "lü" {
		t.Errorf("expected u: normalized to ü, got %q", got)
	}
	if got := entries[0].PlainPinyin(); got != "lǜ" {
		t.Errorf("PlainPinyin() = %q; want %q", got, "lǜ")
	}
}

func TestNameSeparator(t *testing.T) {
	d := mustParse(t)
	entries, ok := d.Lookup("亚历山大·杜布切克")
	if !ok {
		t.Fatal("expected entry for the transliterated name")
	}
	var foundSep bool
	for _, s := range entries[0].Pinyin {
		if s.Text == "·" && s.Tone == 0 {
			foundSep = true
		}
	}
	if !foundSep {
		t.Error("expected a toneless · separator syllable")
	}
}

func TestLongestPrefix(t *testing.T) {
	d := mustParse(t)

	tests := []struct {
		in    string
		word  string
		runes int
	}{
		{"共同话题", "共同", 2},
		{"话题很多", "话题", 2},
		{"好吗", "好", 1},
		{"吗好", "", 0}, // 吗 is not in the sample data
	}
	for _, tt := range tests {
		word, n := d.LongestPrefix([]rune(tt.in))
		if word != tt.word || n != tt.runes {
			t.Errorf("LongestPrefix(%q) = (%q, %d); want (%q, %d)", tt.in, word, n, tt.word, tt.runes)
		}
	}
}

func TestCommentsAndBlankLinesSkipped(t *testing.T) {
	d := mustParse(t)
	if d.Contains("#") {
		t.Error("comment lines should not be indexed")
	}
	if d.Len() != 6 {
		t.Errorf("expected 6 distinct words, got %d", d.Len())
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse(strings.NewReader("not a cedict line\n")); err == nil {
		t.Error("expected an error for a malformed line")
	}
}
