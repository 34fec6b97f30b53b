// Package token splits corrected query text into tagged tokens.
package token

import (
	"strings"
	"time"
	"unicode"

	"github.com/teranos/contractq/internal/util"
	"github.com/teranos/contractq/lexicon"
)

// Category is the coarse class of a token
type Category string

// Keyword categories mirror the lexicon classes
const (
	Contract    = Category(lexicon.ClassContract)
	Part        = Category(lexicon.ClassPart)
	Customer    = Category(lexicon.ClassCustomer)
	Creator     = Category(lexicon.ClassCreator)
	Help        = Category(lexicon.ClassHelp)
	Create      = Category(lexicon.ClassCreate)
	Steps       = Category(lexicon.ClassSteps)
	Failure     = Category(lexicon.ClassFailure)
	Status      = Category(lexicon.ClassStatus)
	Relative    = Category(lexicon.ClassRelative)
	Temporal    = Category(lexicon.ClassTemporal)
	Conjunction = Category(lexicon.ClassConjunction)
	Command     = Category(lexicon.ClassCommand)
	Question    = Category(lexicon.ClassQuestion)
	Filler      = Category(lexicon.ClassFiller)
	Stop        = Category(lexicon.ClassStop)
)

const (
	Number Category = "NUMBER"
	Year   Category = "YEAR"
	Date   Category = "DATE"
	Code   Category = "CODE"
	Month  Category = "MONTH"
	Name   Category = "NAME"
	Word   Category = "WORD"
)

// yearWindow is how far a temporal keyword or month may sit from a
// year-shaped number for the number to count as a year
const yearWindow = 2

// dateLayouts are the date spellings recognised as DATE tokens. Slash and
// dash dates without a leading year are month-first.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	"1-2-2006",
}

// Token is one word of a query with its category and position
type Token struct {
	Value    string   `json:"value"`
	Category Category `json:"category"`
	Position int      `json:"position"`
}

// Is reports whether the token has one of cats
func (t Token) Is(cats ...Category) bool {
	for _, c := range cats {
		if t.Category == c {
			return true
		}
	}
	return false
}

// Tokens is a tagged query in word order
type Tokens []Token

// At returns the token at i, or a zero Token outside the slice
func (ts Tokens) At(i int) Token {
	if i < 0 || i >= len(ts) {
		return Token{Position: i}
	}
	return ts[i]
}

// Has reports whether any token has one of cats
func (ts Tokens) Has(cats ...Category) bool {
	for _, t := range ts {
		if t.Is(cats...) {
			return true
		}
	}
	return false
}

// Count returns the number of tokens with one of cats
func (ts Tokens) Count(cats ...Category) int {
	n := 0
	for _, t := range ts {
		if t.Is(cats...) {
			n++
		}
	}
	return n
}

// Index returns the position of the first token with one of cats at or
// after from, or -1
func (ts Tokens) Index(from int, cats ...Category) int {
	for i := max(from, 0); i < len(ts); i++ {
		if ts[i].Is(cats...) {
			return i
		}
	}
	return -1
}

// Contains reports whether any token has value v
func (ts Tokens) Contains(v string) bool {
	for _, t := range ts {
		if t.Value == v {
			return true
		}
	}
	return false
}

// Values returns the token values
func (ts Tokens) Values() []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Value
	}
	return out
}

// Text joins the token values with single spaces
func (ts Tokens) Text() string {
	return strings.Join(ts.Values(), " ")
}

// Tagger tags words using a lexicon. It is safe for concurrent use.
type Tagger struct {
	lex *lexicon.Lexicon
}

// NewTagger creates a tagger over lex; a nil lex uses lexicon.Default()
func NewTagger(lex *lexicon.Lexicon) *Tagger {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Tagger{lex: lex}
}

// Tokenize splits text on whitespace and tags every word. A first pass
// assigns each word its own category; a second pass uses neighbouring
// tokens to tell years from numbers and names from plain words.
func (tg *Tagger) Tokenize(text string) Tokens {
	words := strings.Fields(text)
	toks := make(Tokens, len(words))
	for i, w := range words {
		toks[i] = Token{Value: w, Category: tg.category(w), Position: i}
	}

	for i := range toks {
		if toks[i].Category == Number && IsYearShaped(toks[i].Value) && tg.nearTemporal(toks, i) {
			toks[i].Category = Year
		}
	}
	// The closing year of "between 2020 and 2023" sits too far from the keyword
	for i := range toks {
		if toks[i].Category == Number && IsYearShaped(toks[i].Value) &&
			toks.At(i-2).Category == Year && (toks.At(i-1).Value == "and" || toks.At(i-1).Value == "to") {
			toks[i].Category = Year
		}
	}

	for i := range toks {
		if toks[i].Category != Word {
			continue
		}
		if tg.isName(toks[i].Value) || toks.At(i-1).Value == "by" {
			toks[i].Category = Name
		}
	}
	return toks
}

func (tg *Tagger) category(w string) Category {
	switch {
	case util.IsDigits(w):
		return Number
	case isDate(w):
		return Date
	case hasDigit(w):
		return Code
	}
	if class, ok := tg.lex.Tag(w); ok {
		return Category(class)
	}
	if _, ok := tg.lex.Month(w); ok {
		return Month
	}
	return Word
}

func (tg *Tagger) nearTemporal(toks Tokens, i int) bool {
	for j := i - yearWindow; j <= i+yearWindow; j++ {
		if j == i || j < 0 || j >= len(toks) {
			continue
		}
		if tg.IsTemporalCue(toks[j].Value) {
			return true
		}
	}
	return false
}

// IsTemporalCue reports whether w marks an adjacent year as temporal
func (tg *Tagger) IsTemporalCue(w string) bool {
	if w == "created" || tg.lex.Is(w, lexicon.ClassTemporal) {
		return true
	}
	_, ok := tg.lex.Month(w)
	return ok
}

func (tg *Tagger) isName(w string) bool {
	if _, ok := tg.lex.Creator(w); ok {
		return true
	}
	_, ok := tg.lex.Customer(w)
	return ok
}

// IsYearShaped reports whether s is a four digit 19xx or 20xx number
func IsYearShaped(s string) bool {
	return len(s) == 4 && util.IsDigits(s) && (s[:2] == "19" || s[:2] == "20")
}

// ParseDate parses a DATE token value
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

func isDate(w string) bool {
	if !strings.ContainsAny(w, "-/") {
		return false
	}
	_, ok := ParseDate(w)
	return ok
}

func hasDigit(w string) bool {
	return strings.IndexFunc(w, unicode.IsDigit) >= 0
}
