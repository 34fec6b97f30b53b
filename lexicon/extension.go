package lexicon

import (
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/teranos/contractq/errors"
	"github.com/teranos/contractq/internal/util"
)

// Extension adds site-specific vocabulary on top of the built-in tables.
//
//	[corrections]
//	contrakt = "contract"
//
//	[creators]
//	jdoe = "JDOE"
//
//	[customers]
//	"acme aerospace" = "ACME AEROSPACE"
//
//	[business_terms]
//	"net price" = "NET_PRICE"
//
//	[keywords]
//	contract = ["po", "purchase"]
type Extension struct {
	Corrections   map[string]string   `toml:"corrections"`
	Creators      map[string]string   `toml:"creators"`
	Customers     map[string]string   `toml:"customers"`
	BusinessTerms map[string]string   `toml:"business_terms"`
	Keywords      map[string][]string `toml:"keywords"`
}

// keywordSections maps [keywords] entries to classes; other classes are not
// extensible because the rule tables depend on their exact vocabulary.
var keywordSections = map[string]Class{
	"contract": ClassContract,
	"part":     ClassPart,
	"customer": ClassCustomer,
	"help":     ClassHelp,
	"failure":  ClassFailure,
	"status":   ClassStatus,
	"command":  ClassCommand,
}

// LoadExtension decodes the TOML file at path and returns the built-in
// lexicon extended with it
func LoadExtension(path string) (*Lexicon, error) {
	var ext Extension
	md, err := toml.DecodeFile(path, &ext)
	if err != nil {
		return nil, errors.Wrapf(err, "decode lexicon extension %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, errors.WithHint(
			errors.Newf("lexicon extension %s has unknown keys: %s", path, strings.Join(keys, ", ")),
			"valid tables are corrections, creators, customers, business_terms and keywords",
		)
	}
	if err := ext.Validate(); err != nil {
		return nil, errors.Wrapf(err, "lexicon extension %s", path)
	}
	return New(&ext), nil
}

// Validate rejects entries the normalizer could never produce as input
func (e *Extension) Validate() error {
	for section, table := range map[string]map[string]string{
		"corrections":    e.Corrections,
		"creators":       e.Creators,
		"customers":      e.Customers,
		"business_terms": e.BusinessTerms,
	} {
		for k := range table {
			if k != strings.ToLower(strings.TrimSpace(k)) || k == "" {
				return errors.Newf("%s key %q must be lower case without surrounding spaces", section, k)
			}
		}
	}
	for k := range e.Corrections {
		if strings.ContainsRune(k, ' ') {
			return errors.Newf("corrections key %q must be a single word", k)
		}
		if util.IsDigits(k) {
			return errors.Newf("corrections key %q: numbers are never corrected", k)
		}
	}
	sections := make([]string, 0, len(e.Keywords))
	for section := range e.Keywords {
		sections = append(sections, section)
	}
	sort.Strings(sections)
	for _, section := range sections {
		if _, ok := keywordSections[section]; !ok {
			return errors.Newf("keywords section %q is not extensible", section)
		}
	}
	return nil
}

func (e *Extension) apply(l *Lexicon) {
	for k, v := range e.Corrections {
		l.corrections[k] = strings.ToLower(v)
	}
	for k, v := range e.Creators {
		l.creators[k] = strings.ToUpper(v)
	}
	for k, v := range e.Customers {
		l.customers[k] = strings.ToUpper(v)
	}
	for k, v := range e.BusinessTerms {
		l.terms[k] = strings.ToUpper(v)
	}
	for section, words := range e.Keywords {
		class := keywordSections[section]
		for _, w := range words {
			l.classes[class][strings.ToLower(w)] = struct{}{}
		}
	}
}
