package anki

import (
	"encoding/csv"
	"io"
	"strings"

	"hanzideck/pkg/deck"
)

// WriteTSV writes cards as tab-separated word/pinyin/definitions rows, the
// shape Anki's plain-text importer expects. Readings beyond the first are
// folded into the definitions column.
func WriteTSV(w io.Writer, cards []deck.Card) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	for _, card := range cards {
		var defs []string
		for _, r := range card.Readings {
			defs = append(defs, strings.Join(r.Definitions, " · "))
		}
		record := []string{card.Word, card.Pinyin, strings.Join(defs, " / ")}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
