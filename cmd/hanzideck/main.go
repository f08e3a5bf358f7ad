package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-shiori/go-readability"
	"github.com/sirupsen/logrus"

	"hanzideck/pkg/anki"
	"hanzideck/pkg/cedict"
	"hanzideck/pkg/config"
	"hanzideck/pkg/deck"
	"hanzideck/pkg/hsk"
	"hanzideck/pkg/pinyin"
	"hanzideck/pkg/pipeline"
	"hanzideck/pkg/resolve"
	"hanzideck/pkg/segment"
)

func main() {
	configFlag := flag.String("config", "", "Path to a hanzideck.yaml config file")
	fileFlag := flag.String("file", "", "File with Chinese text to convert to flashcards")
	textFlag := flag.String("text", "", "Chinese text to convert to flashcards")
	urlFlag := flag.String("url", "", "URL of an article to convert to flashcards")
	outputFlag := flag.String("output", "", "Output path: .apkg for an Anki package, .tsv for plain text")
	dictFlag := flag.String("dict", "", "Path to the CC-CEDICT dictionary file (downloaded if missing)")
	hskListFlag := flag.String("hsk-list", "", "Path to a tab-separated HSK word/level list")
	hskFilterFlag := flag.Int("hsk-filter", -1, "Skip words at or below this HSK level (0 disables)")
	toneColoursFlag := flag.String("tone-colours", "", "Either 'off', or five semicolon-separated RGB codes for tones 1-5")
	sideFlag := flag.String("side", "", "Card sides: 'ce-to-en', 'en-to-ce' or 'both'")
	deckNameFlag := flag.String("deck-name", "", "Name of the generated deck")
	workersFlag := flag.Int("workers", 0, "Number of chunk-resolution workers")
	flag.Parse()

	log := logrus.New()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags override config file and environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dict":
			cfg.Dictionary = *dictFlag
		case "hsk-list":
			cfg.HSKList = *hskListFlag
		case "hsk-filter":
			cfg.HSKFilter = *hskFilterFlag
		case "tone-colours":
			cfg.ToneColours = *toneColoursFlag
		case "side":
			cfg.Side = *sideFlag
		case "deck-name":
			cfg.DeckName = *deckNameFlag
		case "workers":
			cfg.Workers = *workersFlag
		}
	})

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	// Configuration errors abort before any work happens.
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	colours, _ := pinyin.ParseToneColours(cfg.ToneColours)
	direction, _ := deck.ParseDirection(cfg.Side)

	// Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	text, err := gatherText(ctx, *fileFlag, *textFlag, *urlFlag)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	if err := cedict.EnsureDictionary(ctx, cfg.Dictionary); err != nil {
		log.Fatalf("Failed to ensure dictionary at %s: %v", cfg.Dictionary, err)
	}

	start := time.Now()
	dict, err := cedict.Load(cfg.Dictionary)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	log.WithFields(logrus.Fields{"words": dict.Len(), "took": time.Since(start)}).Info("dictionary loaded")

	var levels *hsk.List
	if cfg.HSKList != "" {
		levels, err = hsk.Load(cfg.HSKList)
		if err != nil {
			log.Fatalf("Failed to load HSK list: %v", err)
		}
		log.WithField("words", levels.Len()).Info("HSK list loaded")
	} else if cfg.HSKFilter > 0 {
		log.Fatal("hsk_filter is set but no hsk_list is configured")
	}

	segmenter, err := segment.New(dict.Words())
	if err != nil {
		log.Fatalf("Failed to create segmenter: %v", err)
	}

	p := pipeline.New(segmenter, resolve.NewResolver(dict), pipeline.Options{
		Deck: deck.Options{
			Levels:       levels,
			HSKThreshold: cfg.HSKFilter,
			Colours:      colours,
			Direction:    direction,
		},
		Workers: cfg.Workers,
		Logger:  log,
	})

	cards, err := p.Run(ctx, text)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	if err := writeOutput(*outputFlag, cfg.DeckName, colours, direction, cards); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}

	fmt.Printf("Successfully created a deck with %d notes\n", len(cards))
}

// gatherText returns the study text from exactly one of file, text or url.
func gatherText(ctx context.Context, file, text, articleURL string) (string, error) {
	sources := 0
	for _, s := range []string{file, text, articleURL} {
		if s != "" {
			sources++
		}
	}
	if sources != 1 {
		return "", fmt.Errorf("supply exactly one of -file, -text or -url")
	}

	switch {
	case text != "":
		return text, nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return fetchArticle(ctx, articleURL)
	}
}

// fetchArticle downloads a page and extracts its readable text.
func fetchArticle(ctx context.Context, articleURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return "", err
	}
	// Mimic a real browser to avoid being blocked.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9,zh-CN;q=0.8")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("got status %d fetching %s", resp.StatusCode, articleURL)
	}

	// Cap the body size to avoid OOM on untrusted URLs.
	const maxBodySize = 10 * 1024 * 1024
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", err
	}
	if len(body) >= maxBodySize {
		return "", fmt.Errorf("response body exceeded %d bytes", maxBodySize)
	}

	parsedURL, err := url.Parse(articleURL)
	if err != nil {
		return "", err
	}
	article, err := readability.FromReader(bytes.NewReader(body), parsedURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract article: %w", err)
	}
	return article.TextContent, nil
}

// writeOutput serializes the cards. The format follows the output file
// extension; no output path prints a TSV to stdout.
func writeOutput(path, deckName string, colours pinyin.ToneColours, direction deck.Direction, cards []deck.Card) error {
	if path == "" {
		return anki.WriteTSV(os.Stdout, cards)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".apkg":
		return anki.NewWriter(deckName, colours, direction).WriteAPKG(path, cards)
	case ".tsv", ".txt":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := anki.WriteTSV(f, cards); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return fmt.Errorf("unsupported output extension %q (want .apkg or .tsv)", filepath.Ext(path))
}
