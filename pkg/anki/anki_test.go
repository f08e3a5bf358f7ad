package anki

import (
	"archive/zip"
	"bytes"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hanzideck/pkg/deck"
	"hanzideck/pkg/pinyin"
)

func testCards() []deck.Card {
	return []deck.Card{
		{
			Word:        "你好",
			Pinyin:      "nǐhǎo",
			Definition:  "hello",
			Readings:    []deck.Reading{{Pinyin: "nǐhǎo", Definitions: []string{"hello", "hi"}}},
			ColourHanzi: "你好",
		},
		{
			Word: "嚭", // bare fallback: no dictionary data at all
			ColourHanzi: "嚭",
		},
	}
}

func testWriter(direction deck.Direction) *Writer {
	w := NewWriter("Test Deck", pinyin.DefaultToneColours(), direction)
	w.now = func() time.Time { return time.Unix(1700000000, 0) }
	return w
}

func TestWriteCollection(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "collection.anki2")
	w := testWriter(deck.Both)

	require.NoError(t, w.writeCollection(dbPath, testCards()))

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var notes, cards int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM notes`).Scan(&notes))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM cards`).Scan(&cards))
	assert.Equal(t, 2, notes)
	assert.Equal(t, 4, cards, "side=both generates two cards per note")

	// The sort field is the hanzi, and fields are \x1f-joined in order.
	var flds, sfld string
	require.NoError(t, db.QueryRow(`SELECT flds, sfld FROM notes ORDER BY id LIMIT 1`).Scan(&flds, &sfld))
	assert.Equal(t, "你好", sfld)
	fields := strings.Split(flds, "\x1f")
	require.Len(t, fields, 5)
	assert.Contains(t, fields[0], "hello · hi")
	assert.Contains(t, fields[1], "nǐhǎo")
	assert.Equal(t, "你好", fields[2])
	assert.Empty(t, fields[4], "example field is reserved but empty")

	// The fallback note must exist with blank pronunciation/definition.
	require.NoError(t, db.QueryRow(`SELECT flds FROM notes ORDER BY id DESC LIMIT 1`).Scan(&flds))
	fields = strings.Split(flds, "\x1f")
	assert.Empty(t, fields[0])
	assert.Empty(t, fields[1])
	assert.Equal(t, "嚭", fields[2])

	// The col blobs must be valid JSON carrying our model and deck.
	var models, decks string
	require.NoError(t, db.QueryRow(`SELECT models, decks FROM col`).Scan(&models, &decks))
	var modelMap, deckMap map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(models), &modelMap))
	require.NoError(t, json.Unmarshal([]byte(decks), &deckMap))
	assert.Contains(t, modelMap, "1607392319")
	assert.Contains(t, deckMap, "1398130401")
	assert.Contains(t, models, ".tone1", "model CSS must carry the tone colour rules")
}

func TestSingleSidedDeck(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "collection.anki2")
	w := testWriter(deck.CeToEn)

	require.NoError(t, w.writeCollection(dbPath, testCards()))

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var cards int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM cards`).Scan(&cards))
	assert.Equal(t, 2, cards, "single side generates one card per note")
}

func TestWriteAPKG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.apkg")
	w := testWriter(deck.Both)

	require.NoError(t, w.WriteAPKG(path, testCards()))

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"collection.anki2", "media"}, names)
}

func TestNoteGUIDStable(t *testing.T) {
	fields := noteFields(testCards()[0])
	assert.Equal(t, noteGUID(fields), noteGUID(fields), "same fields must hash to the same guid")

	other := noteFields(testCards()[1])
	assert.NotEqual(t, noteGUID(fields), noteGUID(other))
}

func TestFieldChecksumIgnoresMarkup(t *testing.T) {
	plain := fieldChecksum("hello · hi")
	assert.Equal(t, plain, fieldChecksum("<div>hello · hi</div>"),
		"checksum hashes the text content, so markup must not change it")
	assert.NotEqual(t, plain, fieldChecksum("goodbye"))
	assert.Equal(t, "hello", stripHTML(`<span class="tone3">hello</span>`))
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, testCards()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "你好\tnǐhǎo\thello · hi", lines[0])
	assert.Equal(t, "嚭\t\t", lines[1])
}
