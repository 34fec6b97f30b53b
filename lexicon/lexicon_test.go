package lexicon

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTag(t *testing.T) {
	lex := Default()

	tests := []struct {
		word string
		want Class
	}{
		{"contract", ClassContract},
		{"parts", ClassPart},
		{"account", ClassCustomer},
		{"created", ClassCreator},
		{"help", ClassHelp},
		{"create", ClassCreate},
		{"draft", ClassStatus},
		{"steps", ClassSteps},
		{"failed", ClassFailure},
		{"after", ClassTemporal},
		{"and", ClassConjunction},
		{"show", ClassCommand},
		{"how", ClassQuestion},
		{"number", ClassFiller},
		{"the", ClassStop},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, ok := lex.Tag(tt.word)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := lex.Tag("zebra")
	assert.False(t, ok)
	assert.True(t, lex.Is("draft", ClassCreate), "secondary classes stay queryable")
}

func TestCorrections(t *testing.T) {
	lex := Default()

	got, ok := lex.Correction("contrct")
	require.True(t, ok)
	assert.Equal(t, "contract", got)

	got, ok = lex.Correction("vertrag")
	require.True(t, ok)
	assert.Equal(t, "contract", got)

	got, ok = lex.Correction("createcontract")
	require.True(t, ok)
	assert.Equal(t, "create contract", got)

	got, ok = lex.Contraction("whats")
	require.True(t, ok)
	assert.Equal(t, "what is", got)

	_, ok = lex.Correction("contract")
	assert.False(t, ok, "canonical words are not table keys")
}

func TestTablesAreDisjoint(t *testing.T) {
	for k := range typoTable {
		_, inTranslation := translationTable[k]
		_, inSplit := splitTable[k]
		assert.False(t, inTranslation || inSplit, "%q appears in more than one correction table", k)
	}
	for k := range contractionTable {
		_, inTypo := typoTable[k]
		assert.False(t, inTypo, "%q is both a contraction and a typo", k)
	}
}

func TestCorrectionsNeverTargetNumbers(t *testing.T) {
	for k := range Default().corrections {
		for _, r := range k {
			assert.False(t, r >= '0' && r <= '9', "correction key %q contains a digit", k)
		}
	}
}

func TestLookups(t *testing.T) {
	lex := Default()

	m, ok := lex.Month("sept")
	require.True(t, ok)
	assert.Equal(t, time.September, m)

	name, ok := lex.Customer("lockheed martin")
	require.True(t, ok)
	assert.Equal(t, "LOCKHEED MARTIN", name)

	user, ok := lex.Creator("vinod")
	require.True(t, ok)
	assert.Equal(t, "VINOD", user)

	field, ok := lex.BusinessTerm("lead time")
	require.True(t, ok)
	assert.Equal(t, "LEAD_TIME", field)

	assert.True(t, lex.IsIdentifierField("CUSTOMER_NUMBER"))
	assert.False(t, lex.IsIdentifierField("PRICE"))
	assert.GreaterOrEqual(t, lex.MaxTermWords(), 3)
	assert.GreaterOrEqual(t, lex.MaxCustomerWords(), 3)
	assert.ElementsMatch(t, []Signal{SignalParts}, lex.Signals("price"))
	assert.Contains(t, lex.Words(ClassConjunction), "including")
}

func TestDefaultIsShared(t *testing.T) {
	var wg sync.WaitGroup
	got := make([]*Lexicon, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = Default()
		}(i)
	}
	wg.Wait()
	for _, l := range got {
		assert.Same(t, got[0], l)
	}
}

func writeExtension(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lexicon.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadExtension(t *testing.T) {
	path := writeExtension(t, `
[corrections]
contrakt = "contract"

[creators]
jdoe = "jdoe"

[customers]
"acme aerospace" = "Acme Aerospace"

[business_terms]
"net price" = "net_price"

[keywords]
contract = ["po"]
`)

	lex, err := LoadExtension(path)
	require.NoError(t, err)

	got, ok := lex.Correction("contrakt")
	require.True(t, ok)
	assert.Equal(t, "contract", got)

	user, _ := lex.Creator("jdoe")
	assert.Equal(t, "JDOE", user)

	name, _ := lex.Customer("acme aerospace")
	assert.Equal(t, "ACME AEROSPACE", name)

	field, _ := lex.BusinessTerm("net price")
	assert.Equal(t, "NET_PRICE", field)

	class, ok := lex.Tag("po")
	require.True(t, ok)
	assert.Equal(t, ClassContract, class)

	_, ok = Default().Correction("contrakt")
	assert.False(t, ok, "extension must not leak into the default lexicon")
	_, ok = Default().Tag("po")
	assert.False(t, ok)
}

func TestLoadExtension_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown table", "[synonyms]\nfoo = \"bar\"\n"},
		{"numeric correction", "[corrections]\n\"4\" = \"for\"\n"},
		{"upper case key", "[creators]\nJDoe = \"JDOE\"\n"},
		{"closed keyword class", "[keywords]\nstop = [\"hmm\"]\n"},
		{"not toml", "corrections = [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadExtension(writeExtension(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := LoadExtension(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
