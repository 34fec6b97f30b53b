package extract

import (
	"strings"

	"github.com/teranos/contractq/nlq/token"
	"github.com/teranos/contractq/nlq/types"
)

// creator takes "created by X", then "by X" when the clause mentions
// creation, then any known creator name
func (x *Extractor) creator(toks token.Tokens, ex *Extraction) {
	e := &ex.Entities
	created := toks.Contains("created") || toks.Contains("creator") || toks.Contains("author") || toks.Contains("owner")
	for i, t := range toks {
		if t.Value != "by" || !created {
			continue
		}
		if n := toks.At(i + 1); n.Is(token.Name, token.Word) {
			e.Set(types.AttrCreatedBy, x.canonicalCreator(n.Value), types.SourceUserInput)
			return
		}
	}
	for _, t := range toks {
		if v, ok := x.lex.Creator(t.Value); ok {
			e.Set(types.AttrCreatedBy, v, types.SourceUserInput)
			return
		}
	}
}

func (x *Extractor) canonicalCreator(w string) string {
	if v, ok := x.lex.Creator(w); ok {
		return v
	}
	return strings.ToUpper(w)
}

// customerName matches known customer phrases, longest first
func (x *Extractor) customerName(toks token.Tokens, ex *Extraction) {
	for i := range toks {
		if name, n := x.customerPhraseAt(toks, i); n > 0 {
			ex.Entities.Set(types.AttrCustomerName, name, types.SourceUserInput)
			return
		}
	}
}

// customerPhraseAt returns the canonical customer starting at token i and
// the number of tokens it spans, or 0
func (x *Extractor) customerPhraseAt(toks token.Tokens, i int) (string, int) {
	for n := min(x.lex.MaxCustomerWords(), len(toks)-i); n >= 1; n-- {
		if v, ok := x.lex.Customer(phrase(toks, i, n)); ok {
			return v, n
		}
	}
	return "", 0
}

// status takes the first status value that is not used as a verb
// ("draft a contract")
func (x *Extractor) status(toks token.Tokens, ex *Extraction) {
	for i, t := range toks {
		if !t.Is(token.Status) {
			continue
		}
		switch toks.At(i + 1).Value {
		case "a", "an", "new", "the":
			continue
		}
		ex.Entities.Set(types.AttrStatus, strings.ToUpper(t.Value), types.SourceUserInput)
		return
	}
}

// businessTerms maps free-text column references to canonical fields,
// longest phrase first. A term followed by a value it filters on ("status
// active", "contract number 123456") is a filter, not a display request.
func (x *Extractor) businessTerms(toks token.Tokens, ex *Extraction) {
	for i := 0; i < len(toks); {
		field, n := x.termAt(toks, i)
		if n == 0 {
			i++
			continue
		}
		if !x.filtersOn(field, toks.At(skip(toks, i+n, token.Filler))) {
			ex.Entities.RequestField(field)
		}
		i += n
	}
}

// filtersOn reports whether next is a value for field
func (x *Extractor) filtersOn(field string, next token.Token) bool {
	if next.Is(token.Status) {
		return true
	}
	return x.lex.IsIdentifierField(field) && next.Is(token.Number, token.Code, token.Name, token.Word)
}

func (x *Extractor) termAt(toks token.Tokens, i int) (string, int) {
	for n := min(x.lex.MaxTermWords(), len(toks)-i); n >= 1; n-- {
		if v, ok := x.lex.BusinessTerm(phrase(toks, i, n)); ok {
			return v, n
		}
	}
	return "", 0
}

func phrase(toks token.Tokens, i, n int) string {
	if n == 1 {
		return toks[i].Value
	}
	return strings.Join(toks[i:i+n].Values(), " ")
}
