// Package pipeline drives text through segmentation, resolution and card
// building, producing one ordered, deduplicated card list per run.
package pipeline

import (
	"context"

	"github.com/sirupsen/logrus"

	"hanzideck/pkg/deck"
	"hanzideck/pkg/resolve"
)

// Segmenter produces an ordered chunk sequence for the input text. The
// engine is external to the pipeline; any implementation that covers the
// text without gaps or overlaps will do.
type Segmenter interface {
	CutHan(text string) []string
}

// Options configures a pipeline run.
type Options struct {
	Deck deck.Options
	// Workers > 1 resolves chunks in parallel. Results are reassembled
	// in original chunk order before deduplication.
	Workers int
	Logger  logrus.FieldLogger
}

// Pipeline converts raw text into flashcard records. The dictionary and
// level list behind the resolver and builder are read-only, so a Pipeline
// may be reused across runs; each Run gets a fresh dedup set.
type Pipeline struct {
	segmenter Segmenter
	resolver  *resolve.Resolver
	opts      Options
}

// New creates a Pipeline.
func New(segmenter Segmenter, resolver *resolve.Resolver, opts Options) *Pipeline {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &Pipeline{segmenter: segmenter, resolver: resolver, opts: opts}
}

// Run processes one text into its card list. Cards come back in
// first-occurrence order relative to the source text.
func (p *Pipeline) Run(ctx context.Context, text string) ([]deck.Card, error) {
	chunks := p.segmenter.CutHan(text)

	resolved, err := p.resolveChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	var fallbacks int
	for _, rw := range resolved {
		if rw.Fallback {
			fallbacks++
		}
	}

	builder := deck.NewBuilder(p.opts.Deck)
	cards := builder.BuildAll(resolved)

	p.opts.Logger.WithFields(logrus.Fields{
		"chunks":    len(chunks),
		"words":     len(resolved),
		"fallbacks": fallbacks,
		"cards":     len(cards),
	}).Info("pipeline run complete")

	return cards, nil
}

// resolveChunks resolves every chunk, sequentially or on the worker pool.
// Parallel resolution writes each chunk's words into its own slot and
// concatenates the slots in chunk order afterwards, so the builder always
// sees a single globally ordered stream and first-occurrence-wins dedup
// holds regardless of worker count.
func (p *Pipeline) resolveChunks(ctx context.Context, chunks []string) ([]resolve.ResolvedWord, error) {
	if p.opts.Workers <= 1 {
		return p.resolver.ResolveAll(chunks), nil
	}

	results := make([][]resolve.ResolvedWord, len(chunks))

	pool := NewWorkerPool(p.opts.Workers, p.opts.Workers*2)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	pool.Start(ctx)

	for i, chunk := range chunks {
		i, chunk := i, chunk
		err := pool.SubmitCtx(ctx, func(context.Context) error {
			results[i] = p.resolver.Resolve(chunk)
			return nil
		})
		if err != nil {
			pool.Close()
			return nil, err
		}
	}
	pool.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []resolve.ResolvedWord
	for _, rws := range results {
		out = append(out, rws...)
	}
	return out, nil
}
