package extract

import (
	"strconv"
	"time"

	"github.com/teranos/contractq/nlq/token"
	"github.com/teranos/contractq/nlq/types"
)

const dateLayout = "2006-01-02"

type direction int

const (
	dirNone direction = iota
	dirAfter
	dirBefore
	dirIn
)

// cueWindow is how many tokens on either side of a year or date are
// searched for a direction keyword
const cueWindow = 2

var directionWords = map[string]direction{
	"after":   dirAfter,
	"since":   dirAfter,
	"from":    dirAfter,
	"onwards": dirAfter,
	"onward":  dirAfter,
	"before":  dirBefore,
	"until":   dirBefore,
	"till":    dirBefore,
	"prior":   dirBefore,
	"in":      dirIn,
	"during":  dirIn,
	"of":      dirIn,
	"on":      dirIn,
	"created": dirIn,
}

func (x *Extractor) temporal(toks token.Tokens, ex *Extraction) {
	e := &ex.Entities
	for i, t := range toks {
		if ex.claimed(i) {
			continue
		}
		switch t.Category {
		case token.Year:
			x.year(toks, i, e)
		case token.Date:
			x.date(toks, i, e)
		case token.Relative:
			x.relative(toks, i, e)
		}
	}
}

func (x *Extractor) year(toks token.Tokens, i int, e *types.Entities) {
	y := toks[i].Value

	// between 2020 and 2023, from 2020 to 2023
	if isRangeStart(toks.At(i-1).Value) && isRangeJoin(toks.At(i+1).Value) && toks.At(i+2).Is(token.Year) {
		e.Set(types.AttrStartYear, y, types.SourceUserInput)
		e.Set(types.AttrEndYear, toks[i+2].Value, types.SourceUserInput)
		return
	}
	if isRangeStart(toks.At(i-3).Value) && isRangeJoin(toks.At(i-1).Value) && toks.At(i-2).Is(token.Year) {
		return
	}

	if m, ok := x.lex.Month(toks.At(i - 1).Value); ok {
		x.monthRange(y, m, e)
		return
	}

	switch x.cue(toks, i) {
	case dirAfter:
		e.Set(types.AttrAfterYear, y, types.SourceUserInput)
	case dirBefore:
		e.Set(types.AttrBeforeYear, y, types.SourceUserInput)
	default:
		e.Set(types.AttrInYear, y, types.SourceUserInput)
	}
}

func (x *Extractor) monthRange(year string, m time.Month, e *types.Entities) {
	yn, err := strconv.Atoi(year)
	if err != nil {
		return
	}
	start := time.Date(yn, m, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	e.Set(types.AttrStartDate, start.Format(dateLayout), types.SourceInferred)
	e.Set(types.AttrEndDate, end.Format(dateLayout), types.SourceInferred)
}

func (x *Extractor) date(toks token.Tokens, i int, e *types.Entities) {
	d, ok := token.ParseDate(toks[i].Value)
	if !ok {
		return
	}
	v := d.Format(dateLayout)
	switch x.cue(toks, i) {
	case dirAfter:
		e.Set(types.AttrAfterDate, v, types.SourceUserInput)
	case dirBefore:
		e.Set(types.AttrBeforeDate, v, types.SourceUserInput)
	default:
		e.Set(types.AttrSpecificDate, v, types.SourceUserInput)
	}
}

// relative resolves today, yesterday and this/last year or month against
// the current clock. The resolved values are inferred.
func (x *Extractor) relative(toks token.Tokens, i int, e *types.Entities) {
	now := timeNow()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch toks[i].Value {
	case "today":
		e.Set(types.AttrSpecificDate, today.Format(dateLayout), types.SourceInferred)
		return
	case "yesterday":
		e.Set(types.AttrSpecificDate, today.AddDate(0, 0, -1).Format(dateLayout), types.SourceInferred)
		return
	}

	back := 0
	switch toks[i].Value {
	case "last", "previous":
		back = 1
	case "this", "current":
	default:
		return
	}
	switch toks.At(i + 1).Value {
	case "year":
		e.Set(types.AttrInYear, strconv.Itoa(today.Year()-back), types.SourceInferred)
	case "month":
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -back, 0)
		end := start.AddDate(0, 1, -1)
		e.Set(types.AttrStartDate, start.Format(dateLayout), types.SourceInferred)
		e.Set(types.AttrEndDate, end.Format(dateLayout), types.SourceInferred)
	}
}

// trailingWords give the direction of a value they follow ("2021 onwards",
// "2020 and later")
var trailingWords = map[string]direction{
	"onwards": dirAfter,
	"onward":  dirAfter,
	"later":   dirAfter,
	"after":   dirAfter,
	"earlier": dirBefore,
	"before":  dirBefore,
}

// cue finds the direction of the year or date at i: up to cueWindow tokens
// back, then up to cueWindow tokens forward. A forward "after" or "before"
// that leads into another year or date belongs to that value instead.
func (x *Extractor) cue(toks token.Tokens, i int) direction {
	for j := i - 1; j >= i-cueWindow && j >= 0; j-- {
		if d, ok := directionWords[toks[j].Value]; ok {
			return d
		}
		if _, ok := x.lex.Month(toks[j].Value); ok {
			return dirIn
		}
	}
	for j := i + 1; j <= i+cueWindow && j < len(toks); j++ {
		d, ok := trailingWords[toks[j].Value]
		if !ok {
			continue
		}
		if toks.At(j+1).Is(token.Year, token.Date) {
			return dirNone
		}
		return d
	}
	return dirNone
}

func isRangeStart(w string) bool {
	return w == "between" || w == "from"
}

func isRangeJoin(w string) bool {
	return w == "and" || w == "to"
}
