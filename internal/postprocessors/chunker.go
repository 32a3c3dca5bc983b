// Package postprocessors turns normalised documents into passages, the
// atomic retrieval unit.
package postprocessors

import (
	"strings"

	"github.com/custodia-labs/nika-core/internal/core/ports/driven"
)

// DefaultMaxLen is the target passage length in characters.
const DefaultMaxLen = 700

// DefaultMinParagraph is the minimum paragraph length; anything shorter is
// dropped as noise (navigation stubs, page numbers).
const DefaultMinParagraph = 20

// Verify interface compliance
var _ driven.Chunker = (*Chunker)(nil)

// Chunker greedily accumulates paragraphs into passages of at most maxLen
// characters. A single paragraph longer than maxLen is never split
// mid-paragraph; it is emitted as one oversized passage. That is a
// documented deviation, not an error.
type Chunker struct {
	maxLen       int
	minParagraph int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithMaxLen sets the passage length bound in characters.
func WithMaxLen(maxLen int) Option {
	return func(c *Chunker) {
		if maxLen > 0 {
			c.maxLen = maxLen
		}
	}
}

// WithMinParagraph sets the minimum paragraph length to keep.
func WithMinParagraph(min int) Option {
	return func(c *Chunker) {
		if min > 0 {
			c.minParagraph = min
		}
	}
}

// New creates a new chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		maxLen:       DefaultMaxLen,
		minParagraph: DefaultMinParagraph,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chunk splits normalised text into passages. Deterministic and idempotent
// under the paragraph-join convention: chunking the newline-join of its own
// output yields the same passages.
func (c *Chunker) Chunk(text string) []string {
	var paragraphs []string
	for _, p := range strings.Split(text, "\n") {
		p = strings.TrimSpace(p)
		if len(p) > c.minParagraph {
			paragraphs = append(paragraphs, p)
		}
	}

	var passages []string
	var buffer strings.Builder

	for _, p := range paragraphs {
		if buffer.Len() > 0 && buffer.Len()+len(p) >= c.maxLen {
			passages = append(passages, strings.TrimSpace(buffer.String()))
			buffer.Reset()
		}
		buffer.WriteString(p)
		buffer.WriteString("\n")
	}

	if rest := strings.TrimSpace(buffer.String()); rest != "" {
		passages = append(passages, rest)
	}

	return passages
}
