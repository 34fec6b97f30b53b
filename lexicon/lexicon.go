// Package lexicon holds the dictionaries and word classes the classifier
// reads: spelling corrections, keyword classes, known creators and
// customers, and business-term to column mappings.
//
// A Lexicon is built once and never mutated afterwards, so any number of
// goroutines may read it without locking. Use Default for the built-in
// vocabulary or LoadExtension to layer a TOML file on top of it.
package lexicon

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Class is a keyword class a word can belong to
type Class string

const (
	ClassContract    Class = "CONTRACT_KEYWORD"
	ClassPart        Class = "PART_KEYWORD"
	ClassCustomer    Class = "CUSTOMER_KEYWORD"
	ClassCreator     Class = "CREATOR_KEYWORD"
	ClassHelp        Class = "HELP_KEYWORD"
	ClassCreate      Class = "CREATE_VERB"
	ClassSteps       Class = "STEPS_KEYWORD"
	ClassFailure     Class = "FAILURE_KEYWORD"
	ClassStatus      Class = "STATUS_VALUE"
	ClassRelative    Class = "RELATIVE_TIME"
	ClassTemporal    Class = "TEMPORAL_KEYWORD"
	ClassConjunction Class = "CONJUNCTION"
	ClassCommand     Class = "COMMAND"
	ClassQuestion    Class = "QUESTION"
	ClassFiller      Class = "FILLER"
	ClassStop        Class = "STOP_WORD"
)

// Signal is a domain family used to detect queries spanning several domains
type Signal string

const (
	SignalContract Signal = "contract"
	SignalParts    Signal = "parts"
	SignalFailure  Signal = "failure"
)

// Lexicon is an immutable vocabulary. The zero value is not usable; build
// one with Default, New or LoadExtension.
type Lexicon struct {
	contractions map[string]string
	corrections  map[string]string
	classes      map[Class]map[string]struct{}
	primary      map[string]Class
	months       map[string]time.Month
	creators     map[string]string
	customers    map[string]string
	terms        map[string]string
	identifiers  map[string]struct{}
	signals      map[string][]Signal

	maxCustomerWords int
	maxTermWords     int
}

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
)

// Default returns the shared built-in lexicon
func Default() *Lexicon {
	defaultOnce.Do(func() {
		defaultLex = New(nil)
	})
	return defaultLex
}

// New builds a lexicon from the built-in tables plus ext, which may be nil.
// Extension entries override built-in entries with the same key.
func New(ext *Extension) *Lexicon {
	l := &Lexicon{
		contractions: copyMap(contractionTable),
		corrections:  make(map[string]string, len(typoTable)+len(translationTable)+len(splitTable)),
		classes:      make(map[Class]map[string]struct{}, len(classWords)),
		primary:      make(map[string]Class),
		months:       make(map[string]time.Month, len(monthTable)),
		creators:     copyMap(creatorTable),
		customers:    copyMap(customerTable),
		terms:        copyMap(businessTermTable),
		identifiers:  make(map[string]struct{}, len(identifierFields)),
		signals:      make(map[string][]Signal),
	}
	for _, table := range []map[string]string{typoTable, translationTable, splitTable} {
		for k, v := range table {
			l.corrections[k] = v
		}
	}
	for class, words := range classWords {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[w] = struct{}{}
		}
		l.classes[class] = set
	}
	for k, v := range monthTable {
		l.months[k] = v
	}
	for _, f := range identifierFields {
		l.identifiers[f] = struct{}{}
	}
	for sig, words := range domainSignals {
		for _, w := range words {
			l.signals[w] = append(l.signals[w], sig)
		}
	}

	if ext != nil {
		ext.apply(l)
	}

	// Precedence is resolved once so Tag is a single map read
	for i := len(tagPrecedence) - 1; i >= 0; i-- {
		class := tagPrecedence[i]
		for w := range l.classes[class] {
			l.primary[w] = class
		}
	}
	l.maxCustomerWords = maxWords(l.customers)
	l.maxTermWords = maxWords(l.terms)
	return l
}

// Contraction returns the expansion of a contraction written without its
// apostrophe ("whats" -> "what is")
func (l *Lexicon) Contraction(word string) (string, bool) {
	v, ok := l.contractions[word]
	return v, ok
}

// Correction returns the canonical replacement for a misspelled, foreign or
// glued word. The replacement may contain several words.
func (l *Lexicon) Correction(word string) (string, bool) {
	v, ok := l.corrections[word]
	return v, ok
}

// Tag returns the primary class of word
func (l *Lexicon) Tag(word string) (Class, bool) {
	c, ok := l.primary[word]
	return c, ok
}

// Is reports whether word belongs to class, regardless of precedence
func (l *Lexicon) Is(word string, class Class) bool {
	_, ok := l.classes[class][word]
	return ok
}

// Month returns the month named by word
func (l *Lexicon) Month(word string) (time.Month, bool) {
	m, ok := l.months[word]
	return m, ok
}

// Creator returns the canonical user name of a known creator
func (l *Lexicon) Creator(word string) (string, bool) {
	v, ok := l.creators[word]
	return v, ok
}

// Customer returns the canonical name of a known customer phrase
func (l *Lexicon) Customer(phrase string) (string, bool) {
	v, ok := l.customers[phrase]
	return v, ok
}

// BusinessTerm returns the column a free-text phrase refers to
func (l *Lexicon) BusinessTerm(phrase string) (string, bool) {
	v, ok := l.terms[phrase]
	return v, ok
}

// IsIdentifierField reports whether field names a lookup key rather than a
// column to display
func (l *Lexicon) IsIdentifierField(field string) bool {
	_, ok := l.identifiers[field]
	return ok
}

// Signals returns the domain families word is evidence for
func (l *Lexicon) Signals(word string) []Signal {
	return l.signals[word]
}

// MaxCustomerWords is the word count of the longest customer phrase
func (l *Lexicon) MaxCustomerWords() int { return l.maxCustomerWords }

// MaxTermWords is the word count of the longest business-term phrase
func (l *Lexicon) MaxTermWords() int { return l.maxTermWords }

// Stats reports table sizes for diagnostics
func (l *Lexicon) Stats() map[string]int {
	words := 0
	for _, set := range l.classes {
		words += len(set)
	}
	return map[string]int{
		"contractions":   len(l.contractions),
		"corrections":    len(l.corrections),
		"keywords":       words,
		"creators":       len(l.creators),
		"customers":      len(l.customers),
		"business_terms": len(l.terms),
	}
}

// Words returns the sorted vocabulary of class
func (l *Lexicon) Words(class Class) []string {
	out := make([]string, 0, len(l.classes[class]))
	for w := range l.classes[class] {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

func copyMap(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func maxWords(m map[string]string) int {
	n := 1
	for k := range m {
		if c := len(strings.Fields(k)); c > n {
			n = c
		}
	}
	return n
}
