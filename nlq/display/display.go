// Package display turns extracted entities into filter conditions and the
// list of columns a result should show, and repairs the two when they
// disagree with the raw query.
package display

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/teranos/contractq/internal/util"
	"github.com/teranos/contractq/nlq/extract"
	"github.com/teranos/contractq/nlq/types"
)

const (
	repairContractMinDigits = 6
	contractNumberMinLen    = 4
	contractNumberMaxLen    = 12
)

var defaultFields = map[types.Domain][]string{
	types.DomainContracts: {"CONTRACT_NUMBER", "CUSTOMER_NAME", "EFFECTIVE_DATE", "STATUS", "CREATED_BY"},
	types.DomainParts:     {"PART_NUMBER", "CONTRACT_NUMBER", "ERROR_COLUMN", "REASON", "STATUS"},
	types.DomainHelp:      {"HELP_CONTENT", "STEPS", "GUIDE_TYPE"},
}

// Defaults returns the default columns of d
func Defaults(d types.Domain) []string {
	return append([]string(nil), defaultFields[d]...)
}

// Fields selects the columns for a clause. Explicitly requested columns
// replace the domain defaults; help answers always use the help layout.
func Fields(d types.Domain, requested []string) []string {
	if len(requested) == 0 || d == types.DomainHelp {
		return Defaults(d)
	}
	return append([]string(nil), requested...)
}

// Ensure appends any requested column missing from fields
func Ensure(fields, requested []string) []string {
	return util.AppendUnique(fields, requested...)
}

// ContractField is the column contract numbers are filtered on. Failed
// part records are keyed by the loaded contract number.
func ContractField(d types.Domain, failure bool) string {
	if d == types.DomainParts && failure {
		return types.FieldLoadedCPNumber
	}
	return types.FieldAwardNumber
}

// Filters builds the filter conditions for extracted entities
func Filters(d types.Domain, e *types.Entities, failure bool) []types.EntityFilter {
	out := make([]types.EntityFilter, 0, e.Count()+2)
	eq := func(attr types.Attr, field string, value func(string) string) {
		if ent, ok := e.Lookup(attr); ok {
			out = append(out, types.EntityFilter{Attribute: field, Operation: "=", Value: value(ent.Value), Source: ent.Source})
		}
	}
	same := func(s string) string { return s }

	eq(types.AttrContractNumber, ContractField(d, failure), same)
	eq(types.AttrCustomerNumber, types.FieldCustomerNumber, same)
	eq(types.AttrPartNumber, types.FieldInvoicePartNumber, same)
	eq(types.AttrCustomerName, types.FieldCustomerName, same)
	eq(types.AttrCreatedBy, types.FieldCreatedBy, same)
	eq(types.AttrStatus, types.FieldStatus, strings.ToUpper)

	return append(out, dateFilters(e)...)
}

func dateFilters(e *types.Entities) []types.EntityFilter {
	var out []types.EntityFilter
	add := func(op, value string, src types.Source) {
		out = append(out, types.EntityFilter{Attribute: types.FieldCreateDate, Operation: op, Value: value, Source: src})
	}

	if y := e.Get(types.AttrAfterYear); y != "" {
		add(">=", y+"-01-01", types.SourceInferred)
	}
	if y := e.Get(types.AttrBeforeYear); y != "" {
		add("<", y+"-01-01", types.SourceInferred)
	}
	if y := e.Get(types.AttrInYear); y != "" {
		add(">=", y+"-01-01", types.SourceInferred)
		add("<=", y+"-12-31", types.SourceInferred)
	}
	if y := e.Get(types.AttrStartYear); y != "" {
		add(">=", y+"-01-01", types.SourceInferred)
	}
	if y := e.Get(types.AttrEndYear); y != "" {
		add("<=", y+"-12-31", types.SourceInferred)
	}
	date := func(attr types.Attr, op string) {
		if ent, ok := e.Lookup(attr); ok {
			add(op, ent.Value, ent.Source)
		}
	}
	date(types.AttrSpecificDate, "=")
	date(types.AttrAfterDate, ">")
	date(types.AttrBeforeDate, "<")
	date(types.AttrStartDate, ">=")
	date(types.AttrEndDate, "<=")
	return out
}

// Repair re-derives a missing identifier from the raw query when the
// domain expects one: a contract number for CONTRACTS, a part or contract
// number for PARTS. It returns the attributes it filled in. A failed
// repair leaves e unchanged.
func Repair(d types.Domain, raw string, e *types.Entities, customerContext bool) []types.Attr {
	var repaired []types.Attr
	words := rawWords(raw)

	switch d {
	case types.DomainContracts:
		if e.HasAny(types.AttrContractNumber, types.AttrCustomerNumber) || customerContext {
			return nil
		}
		if n := longNumber(words, e.Get(types.AttrPartNumber)); n != "" {
			e.Set(types.AttrContractNumber, n, types.SourceUserInput)
			repaired = append(repaired, types.AttrContractNumber)
		}
	case types.DomainParts:
		if e.HasAny(types.AttrPartNumber, types.AttrContractNumber) {
			return nil
		}
		for _, w := range words {
			if extract.IsPartCode(w) {
				e.Set(types.AttrPartNumber, strings.ToUpper(w), types.SourceUserInput)
				return append(repaired, types.AttrPartNumber)
			}
		}
		if customerContext {
			return nil
		}
		if n := longNumber(words, ""); n != "" {
			e.Set(types.AttrContractNumber, n, types.SourceUserInput)
			repaired = append(repaired, types.AttrContractNumber)
		}
	}
	return repaired
}

func rawWords(raw string) []string {
	return strings.FieldsFunc(strings.ToLower(raw), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
}

func longNumber(words []string, except string) string {
	for _, w := range words {
		w = strings.Trim(w, "-")
		if util.IsDigits(w) && len(w) >= repairContractMinDigits && w != except {
			return w
		}
	}
	return ""
}

// Warnings returns the business-rule warnings for a finished clause
func Warnings(d types.Domain, e *types.Entities) []types.ErrorEntry {
	var out []types.ErrorEntry
	if d == types.DomainParts && !e.HasAny(types.AttrPartNumber, types.AttrContractNumber) {
		out = append(out, types.ErrorEntry{
			Code:     types.CodeMissingIdentifier,
			Message:  "parts queries need a part number or a contract number",
			Severity: types.SeverityWarning,
		})
	}
	if n := e.Get(types.AttrContractNumber); n != "" && (len(n) < contractNumberMinLen || len(n) > contractNumberMaxLen) {
		out = append(out, types.ErrorEntry{
			Code:     types.CodeInvalidContractNumber,
			Message:  fmt.Sprintf("contract number %q should be %d to %d characters", n, contractNumberMinLen, contractNumberMaxLen),
			Severity: types.SeverityWarning,
		})
	}
	return out
}
