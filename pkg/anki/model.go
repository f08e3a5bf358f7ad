package anki

import (
	"strconv"
	"strings"

	"hanzideck/pkg/deck"
	"hanzideck/pkg/pinyin"
)

// Fixed identifiers so that re-importing a regenerated deck updates notes
// instead of duplicating the model and deck.
const (
	modelID = 1607392319
	deckID  = 1398130401
)

// Note field order. The sort field is Hanzi.
var fieldNames = []string{
	"AllDefinitions",
	"AllDefinitionsWithPinyin",
	"Hanzi",
	"ColourHanzi",
	"Example",
}

const sortFieldIndex = 2

// answerFormat is shared by both card directions: the coloured hanzi linked
// to Pleco, every reading with its definitions, and an example slot.
const answerFormat = `
<div class=chinese>
    <a href="plecoapi://x-callback-url/s?q={{Hanzi}}" style="text-decoration:none">
        {{ColourHanzi}}
    </a>
</div>
<div>{{AllDefinitionsWithPinyin}}</div>
<div class=chinese>{{Example}}</div>
`

const baseCSS = `.card {
    font-family: arial;
    font-size: 20px;
    text-align: center;
    color: black;
    background-color: white;
    word-wrap: break-word;
}
.win .chinese { font-family: "MS Mincho", "ＭＳ 明朝"; }
.linux .chinese { font-family: "Kochi Mincho", "東風明朝"; }
.mobile .chinese { font-family: "PingFang SC"; }
.chinese { font-size: 48px; }
.reading { font-size: 16px; }
.comment { font-size: 15px; color: grey; }
.tags { color: gray; text-align: right; font-size: 10pt; }
.note { color: gray; font-size: 12pt; margin-top: 20pt; }
.hint { font-size: 12pt; }
.answer { background-color: bisque; border: dotted; border-width: 1px; }
`

type template struct {
	name string
	qfmt string
	// index of the field the question side shows, used for the model's
	// card-generation requirements.
	qfield int
}

var (
	ceToEnTemplate = template{
		name:   "Chinese to English",
		qfmt:   "<div class=chinese>{{Hanzi}}</div>",
		qfield: 2,
	}
	enToCeTemplate = template{
		name:   "English to Chinese",
		qfmt:   "<div>{{AllDefinitions}}</div>",
		qfield: 0,
	}
)

// templatesFor maps the configured side setting onto card templates.
func templatesFor(direction deck.Direction) []template {
	switch direction {
	case deck.CeToEn:
		return []template{ceToEnTemplate}
	case deck.EnToCe:
		return []template{enToCeTemplate}
	default:
		return []template{ceToEnTemplate, enToCeTemplate}
	}
}

// modelJSON builds the "models" blob for the col table.
func modelJSON(direction deck.Direction, colours pinyin.ToneColours, mod int64) map[string]any {
	flds := make([]map[string]any, len(fieldNames))
	for i, name := range fieldNames {
		flds[i] = map[string]any{
			"name":   name,
			"ord":    i,
			"sticky": false,
			"rtl":    false,
			"font":   "Arial",
			"size":   20,
			"media":  []any{},
		}
	}

	var tmpls []map[string]any
	var req []any
	for ord, t := range templatesFor(direction) {
		tmpls = append(tmpls, map[string]any{
			"name":  t.name,
			"ord":   ord,
			"qfmt":  t.qfmt,
			"afmt":  answerFormat,
			"bqfmt": "",
			"bafmt": "",
			"did":   nil,
		})
		req = append(req, []any{ord, "any", []any{t.qfield}})
	}

	return map[string]any{
		strconv.Itoa(modelID): map[string]any{
			"id":        modelID,
			"name":      "Hanzideck Vocabulary",
			"type":      0,
			"mod":       mod,
			"usn":       -1,
			"sortf":     sortFieldIndex,
			"did":       deckID,
			"flds":      flds,
			"tmpls":     tmpls,
			"req":       req,
			"css":       baseCSS + colours.CSS(),
			"latexPre":  "\\documentclass[12pt]{article}\n\\special{papersize=3in,5in}\n\\usepackage[utf8]{inputenc}\n\\usepackage{amssymb,amsmath}\n\\pagestyle{empty}\n\\setlength{\\parindent}{0in}\n\\begin{document}\n",
			"latexPost": "\\end{document}",
			"tags":      []any{},
			"vers":      []any{},
		},
	}
}

// deckJSON builds the "decks" blob. Anki expects the default deck to exist
// alongside the one being imported.
func deckJSON(name string, mod int64) map[string]any {
	mk := func(id int64, name string) map[string]any {
		return map[string]any{
			"id":               id,
			"name":             name,
			"desc":             "",
			"mod":              mod,
			"usn":              -1,
			"collapsed":        false,
			"browserCollapsed": false,
			"newToday":         []any{0, 0},
			"revToday":         []any{0, 0},
			"lrnToday":         []any{0, 0},
			"timeToday":        []any{0, 0},
			"dyn":              0,
			"extendNew":        10,
			"extendRev":        50,
			"conf":             1,
		}
	}
	return map[string]any{
		"1":                  mk(1, "Default"),
		strconv.Itoa(deckID): mk(deckID, name),
	}
}

// confJSON builds the collection configuration blob.
func confJSON() map[string]any {
	return map[string]any{
		"nextPos":       1,
		"estTimes":      true,
		"activeDecks":   []any{1},
		"sortType":      "noteFld",
		"timeLim":       0,
		"sortBackwards": false,
		"addToCur":      true,
		"curDeck":       1,
		"newBury":       true,
		"newSpread":     0,
		"dueCounts":     true,
		"curModel":      strconv.Itoa(modelID),
		"collapseTime":  1200,
	}
}

// dconfJSON builds the default deck-options group.
func dconfJSON() map[string]any {
	return map[string]any{
		"1": map[string]any{
			"id":       1,
			"name":     "Default",
			"maxTaken": 60,
			"timer":    0,
			"autoplay": true,
			"replayq":  true,
			"mod":      0,
			"usn":      0,
			"new": map[string]any{
				"delays":        []any{1, 10},
				"ints":          []any{1, 4, 7},
				"initialFactor": 2500,
				"separate":      true,
				"order":         1,
				"perDay":        20,
				"bury":          true,
			},
			"lapse": map[string]any{
				"delays":      []any{10},
				"mult":        0,
				"minInt":      1,
				"leechFails":  8,
				"leechAction": 0,
			},
			"rev": map[string]any{
				"perDay":   100,
				"ease4":    1.3,
				"fuzz":     0.05,
				"minSpace": 1,
				"ivlFct":   1,
				"maxIvl":   36500,
				"bury":     true,
			},
		},
	}
}

// noteFields renders a card into the model's field payload, in field order.
func noteFields(card deck.Card) []string {
	var allDefs, defsWithPinyin strings.Builder
	for _, r := range card.Readings {
		joined := strings.Join(r.Definitions, " · ")
		allDefs.WriteString("<div>" + joined + "</div>")
		defsWithPinyin.WriteString("<div class=reading>" + r.Pinyin + "</div><div>" + joined + "</div>")
	}
	return []string{
		allDefs.String(),
		defsWithPinyin.String(),
		card.Word,
		card.ColourHanzi,
		"", // Example
	}
}
