// Package anki serializes card records into Anki-importable formats: the
// .apkg package (a zip holding a SQLite collection) and plain TSV.
package anki

import (
	"archive/zip"
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"hanzideck/pkg/deck"
	"hanzideck/pkg/pinyin"
)

// Writer builds flashcard packages from a finished card list.
type Writer struct {
	DeckName  string
	Colours   pinyin.ToneColours
	Direction deck.Direction

	// now is swappable for deterministic tests.
	now func() time.Time
}

// NewWriter creates a package writer for the given deck configuration.
func NewWriter(deckName string, colours pinyin.ToneColours, direction deck.Direction) *Writer {
	return &Writer{
		DeckName:  deckName,
		Colours:   colours,
		Direction: direction,
		now:       time.Now,
	}
}

// WriteAPKG writes the cards as an .apkg file at path. The collection
// database is assembled in a temp directory and zipped together with an
// empty media manifest.
func (w *Writer) WriteAPKG(path string, cards []deck.Card) error {
	tmpDir, err := os.MkdirTemp("", "hanzideck-apkg-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	collectionPath := filepath.Join(tmpDir, "collection.anki2")
	if err := w.writeCollection(collectionPath, cards); err != nil {
		return fmt.Errorf("build collection: %w", err)
	}

	return zipPackage(path, collectionPath)
}

// writeCollection creates the collection.anki2 database holding the deck,
// the note model and one note per card.
func (w *Writer) writeCollection(dbPath string, cards []deck.Card) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := initCollection(db); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	now := w.now()
	epochSec := now.Unix()
	epochMs := now.UnixMilli()

	blobs := make(map[string]string, 4)
	for name, v := range map[string]any{
		"conf":   confJSON(),
		"models": modelJSON(w.Direction, w.Colours, epochSec),
		"decks":  deckJSON(w.DeckName, epochSec),
		"dconf":  dconfJSON(),
	} {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		blobs[name] = string(data)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO col (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
		 VALUES (1, ?, ?, ?, 11, 0, 0, 0, ?, ?, ?, ?, '{}')`,
		epochSec, epochMs, epochMs, blobs["conf"], blobs["models"], blobs["decks"], blobs["dconf"],
	)
	if err != nil {
		return fmt.Errorf("insert col: %w", err)
	}

	templateCount := len(templatesFor(w.Direction))
	noteID := epochMs
	cardID := epochMs + int64(len(cards))*int64(templateCount)

	for i, card := range cards {
		fields := noteFields(card)
		flds := strings.Join(fields, "\x1f")

		_, err := tx.Exec(
			`INSERT INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
			 VALUES (?, ?, ?, ?, -1, '', ?, ?, ?, 0, '')`,
			noteID, noteGUID(fields), modelID, epochSec, flds, fields[sortFieldIndex], fieldChecksum(fields[0]),
		)
		if err != nil {
			return fmt.Errorf("insert note for %q: %w", card.Word, err)
		}

		for ord := 0; ord < templateCount; ord++ {
			_, err := tx.Exec(
				`INSERT INTO cards (id, nid, did, ord, mod, usn, type, queue, due, ivl,
				                    factor, reps, lapses, left, odue, odid, flags, data)
				 VALUES (?, ?, ?, ?, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`,
				cardID, noteID, deckID, ord, epochSec, i+1,
			)
			if err != nil {
				return fmt.Errorf("insert card for %q: %w", card.Word, err)
			}
			cardID++
		}
		noteID++
	}

	return tx.Commit()
}

// noteGUID derives a stable note identifier from the field payload, so a
// regenerated deck re-imports as updates instead of duplicates.
func noteGUID(fields []string) string {
	sum := sha1.Sum([]byte(strings.Join(fields, "\x1f")))
	return hex.EncodeToString(sum[:10])
}

// fieldChecksum is Anki's note checksum: the integer value of the first
// eight hex digits of the SHA1 of the first field. Anki hashes the field
// with its markup stripped, so duplicate detection treats "<div>x</div>"
// and "x" as the same note.
func fieldChecksum(firstField string) int64 {
	sum := sha1.Sum([]byte(stripHTML(firstField)))
	var v int64
	for _, b := range sum[:4] {
		v = v<<8 | int64(b)
	}
	return v
}

// stripHTML removes markup tags, keeping only the text content.
func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// zipPackage assembles the final .apkg: the collection database plus an
// empty media manifest.
func zipPackage(path, collectionPath string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	collection, err := os.ReadFile(collectionPath)
	if err != nil {
		return err
	}
	f, err := zw.Create("collection.anki2")
	if err != nil {
		return err
	}
	if _, err := f.Write(collection); err != nil {
		return err
	}

	media, err := zw.Create("media")
	if err != nil {
		return err
	}
	if _, err := media.Write([]byte("{}")); err != nil {
		return err
	}

	if err := zw.Close(); err != nil {
		return err
	}
	return out.Close()
}
