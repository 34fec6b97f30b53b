// Package spell rewrites normalized query text with the lexicon's
// whole-word substitution tables: contraction expansion first, then the
// typo, translation and word-split table.
package spell

import (
	"strings"
	"unicode"

	"github.com/teranos/contractq/internal/util"
	"github.com/teranos/contractq/lexicon"
)

// Change records one rewritten word position
type Change struct {
	Position int    `json:"position"`
	From     string `json:"from"`
	To       string `json:"to"`
}

// Correction is the outcome of correcting one query
type Correction struct {
	Input string `json:"input"`
	Text  string `json:"text"`

	// Confidence is the share of input word positions that were rewritten,
	// 0 when nothing changed
	Confidence float64  `json:"confidence"`
	Changes    []Change `json:"changes,omitempty"`
}

// Changed reports whether any word was rewritten
func (c Correction) Changed() bool { return len(c.Changes) > 0 }

// Corrected is the number of rewritten word positions
func (c Correction) Corrected() int { return len(c.Changes) }

// Corrector applies a lexicon's substitution tables. It holds no mutable
// state and is safe for concurrent use.
type Corrector struct {
	lex *lexicon.Lexicon
}

// New creates a corrector over lex; a nil lex uses lexicon.Default()
func New(lex *lexicon.Lexicon) *Corrector {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Corrector{lex: lex}
}

// Correct rewrites normalized text word by word. Each input word is first
// expanded if it is a contraction, then every resulting word is looked up
// in the correction table. Words containing digits are left untouched.
func (c *Corrector) Correct(normalized string) Correction {
	words := strings.Fields(normalized)
	out := Correction{Input: normalized, Text: normalized}
	if len(words) == 0 {
		return out
	}

	rewritten := make([]string, 0, len(words))
	for i, w := range words {
		replacement := c.correctWord(w)
		if replacement != w {
			out.Changes = append(out.Changes, Change{Position: i, From: w, To: replacement})
		}
		rewritten = append(rewritten, replacement)
	}
	if len(out.Changes) == 0 {
		return out
	}

	out.Text = strings.Join(rewritten, " ")
	out.Confidence = util.Round2(float64(len(out.Changes)) / float64(len(words)))
	return out
}

func (c *Corrector) correctWord(w string) string {
	if hasDigit(w) {
		return w
	}
	expanded, ok := c.lex.Contraction(w)
	if !ok {
		return c.lookup(w)
	}
	parts := strings.Fields(expanded)
	for i, p := range parts {
		parts[i] = c.lookup(p)
	}
	return strings.Join(parts, " ")
}

func (c *Corrector) lookup(w string) string {
	if v, ok := c.lex.Correction(w); ok {
		return v
	}
	return w
}

func hasDigit(w string) bool {
	return strings.IndexFunc(w, unicode.IsDigit) >= 0
}
