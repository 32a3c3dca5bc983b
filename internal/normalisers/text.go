// Package normalisers cleans raw scraped or parsed corpus text ahead of
// chunking.
package normalisers

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/nika-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.Normaliser = (*Text)(nil)

var (
	scriptRe     = regexp.MustCompile(`(?is)<script[\s\S]*?</script>`)
	styleRe      = regexp.MustCompile(`(?is)<style[\s\S]*?</style>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// entities is the small fixed set of HTML remnants worth decoding; corpus
// pages are already mostly text by the time they reach ingestion.
var entities = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	{regexp.MustCompile(`&nbsp;?`), " "},
	{regexp.MustCompile(`&amp;?`), "&"},
	{regexp.MustCompile(`&quot;?`), `"`},
}

// Text normalises raw document text: markup remnants out, whitespace runs
// collapsed, paragraph breaks restored after sentence-ending periods so the
// chunker has boundaries to work with.
type Text struct{}

// New creates a new text normaliser.
func New() *Text {
	return &Text{}
}

// Normalise cleans one document. Pure and deterministic.
func (n *Text) Normalise(text string) string {
	if text == "" {
		return ""
	}

	text = scriptRe.ReplaceAllString(text, " ")
	text = styleRe.ReplaceAllString(text, " ")

	for _, e := range entities {
		text = e.pattern.ReplaceAllString(text, e.repl)
	}

	text = whitespaceRe.ReplaceAllString(text, " ")

	// Sentence-ending periods become paragraph breaks. Crude, but it gives
	// the chunker aligned boundaries on prose corpora.
	text = strings.ReplaceAll(text, ". ", ".\n")

	return strings.TrimSpace(text)
}
