package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/contractq/nlq/token"
	"github.com/teranos/contractq/nlq/types"
)

func extract(text string) *Extraction {
	toks := token.NewTagger(nil).Tokenize(text)
	return New(nil, DefaultConfig()).Extract(toks)
}

func TestContextRules(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		context Rule
		want    map[types.Attr]string
		absent  []types.Attr
	}{
		{
			name:    "customer number phrase",
			input:   "contracts for customer number 897654",
			context: RuleCustomer,
			want:    map[types.Attr]string{types.AttrCustomerNumber: "897654", types.AttrAccountNumber: "897654"},
			absent:  []types.Attr{types.AttrContractNumber},
		},
		{
			name:    "account before keyword",
			input:   "account 10840607 contracts",
			context: RuleCustomer,
			want:    map[types.Attr]string{types.AttrCustomerNumber: "10840607"},
			absent:  []types.Attr{types.AttrContractNumber},
		},
		{
			name:    "customer context suppresses contract numbers",
			input:   "customer 12345 contract 678901",
			context: RuleCustomer,
			want:    map[types.Attr]string{types.AttrCustomerNumber: "12345"},
			absent:  []types.Attr{types.AttrContractNumber},
		},
		{
			name:    "for customer without number",
			input:   "contracts for customer boeing",
			context: RuleCustomer,
			want:    map[types.Attr]string{types.AttrCustomerName: "BOEING"},
			absent:  []types.Attr{types.AttrContractNumber, types.AttrCustomerNumber},
		},
		{
			name:    "for account takes the first free number",
			input:   "contracts for account with 556677",
			context: RuleCustomer,
			want:    map[types.Attr]string{types.AttrCustomerNumber: "556677"},
			absent:  []types.Attr{types.AttrContractNumber},
		},
		{
			name:    "parts under a contract",
			input:   "show parts for contract 123456",
			context: RulePart,
			want:    map[types.Attr]string{types.AttrContractNumber: "123456"},
			absent:  []types.Attr{types.AttrPartNumber},
		},
		{
			name:    "part code and contract",
			input:   "part ae12345 in contract 123456",
			context: RulePart,
			want:    map[types.Attr]string{types.AttrPartNumber: "AE12345", types.AttrContractNumber: "123456"},
		},
		{
			name:    "failed parts with bare number",
			input:   "failed parts for 123456",
			context: RulePart,
			want:    map[types.Attr]string{types.AttrContractNumber: "123456"},
		},
		{
			name:    "number after part keyword",
			input:   "part number 4455 details",
			context: RulePart,
			want:    map[types.Attr]string{types.AttrPartNumber: "4455"},
			absent:  []types.Attr{types.AttrContractNumber},
		},
		{
			name:    "parts for customer",
			input:   "parts for customer 12345",
			context: RuleCustomer,
			want:    map[types.Attr]string{types.AttrCustomerNumber: "12345"},
			absent:  []types.Attr{types.AttrContractNumber, types.AttrPartNumber},
		},
		{
			name:    "contract number after stop word",
			input:   "get contract info 123456",
			context: RuleContract,
			want:    map[types.Attr]string{types.AttrContractNumber: "123456"},
		},
		{
			name:    "short contract number right after keyword",
			input:   "show contract 12345",
			context: RuleContract,
			want:    map[types.Attr]string{types.AttrContractNumber: "12345"},
			absent:  []types.Attr{types.AttrCustomerNumber},
		},
		{
			name:    "contract code",
			input:   "contract abc-123456",
			context: RuleContract,
			want:    map[types.Attr]string{types.AttrContractNumber: "ABC-123456"},
		},
		{
			name:    "year is not a contract number",
			input:   "contracts created after 2020",
			context: RuleContract,
			want:    map[types.Attr]string{types.AttrAfterYear: "2020"},
			absent:  []types.Attr{types.AttrContractNumber},
		},
		{
			name:    "bare long number",
			input:   "123456",
			context: RuleNone,
			want:    map[types.Attr]string{types.AttrContractNumber: "123456"},
		},
		{
			name:    "bare short number",
			input:   "show 12345",
			context: RuleNone,
			want:    map[types.Attr]string{types.AttrCustomerNumber: "12345"},
			absent:  []types.Attr{types.AttrContractNumber},
		},
		{
			name:    "contract code beats part code",
			input:   "ae1234567",
			context: RuleNone,
			want:    map[types.Attr]string{types.AttrContractNumber: "AE1234567"},
		},
		{
			name:    "bare part code",
			input:   "xy12345 details",
			context: RuleNone,
			want:    map[types.Attr]string{types.AttrPartNumber: "XY12345"},
		},
		{
			name:    "three digit number is nothing",
			input:   "show 123",
			context: RuleNone,
			absent:  []types.Attr{types.AttrContractNumber, types.AttrCustomerNumber, types.AttrPartNumber},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := extract(tt.input)
			assert.Equal(t, tt.context, ex.Context)
			for attr, v := range tt.want {
				assert.Equal(t, v, ex.Entities.Get(attr), attr)
			}
			for _, attr := range tt.absent {
				assert.False(t, ex.Entities.Has(attr), attr)
			}
		})
	}
}

func TestCustomerAndContractNeverBoth(t *testing.T) {
	inputs := []string{
		"customer 12345 contract 678901",
		"account number 445566 for contract 123456",
		"contracts for customer 5544 and contract 998877",
		"show 12345 and 123456",
		"customer 998877 parts contract 123456",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			e := extract(in).Entities
			assert.False(t, e.Has(types.AttrCustomerNumber) && e.Has(types.AttrContractNumber))
		})
	}
}

func TestTemporal(t *testing.T) {
	orig := timeNow
	timeNow = func() time.Time { return time.Date(2025, time.March, 10, 15, 4, 5, 0, time.UTC) }
	t.Cleanup(func() { timeNow = orig })

	tests := []struct {
		input  string
		want   map[types.Attr]string
		source types.Source
	}{
		{"contracts after 2020", map[types.Attr]string{types.AttrAfterYear: "2020"}, types.SourceUserInput},
		{"contracts since 2019", map[types.Attr]string{types.AttrAfterYear: "2019"}, types.SourceUserInput},
		{"contracts before 2023", map[types.Attr]string{types.AttrBeforeYear: "2023"}, types.SourceUserInput},
		{"contracts created in 2024", map[types.Attr]string{types.AttrInYear: "2024"}, types.SourceUserInput},
		{"contracts 2021 onwards", map[types.Attr]string{types.AttrAfterYear: "2021"}, types.SourceUserInput},
		{"contracts 2020 and later", map[types.Attr]string{types.AttrAfterYear: "2020"}, types.SourceUserInput},
		{"contracts 2022 or earlier", map[types.Attr]string{types.AttrBeforeYear: "2022"}, types.SourceUserInput},
		{"contracts created 2019 and after 2021", map[types.Attr]string{types.AttrInYear: "2019", types.AttrAfterYear: "2021"}, types.SourceUserInput},
		{"contracts between 2020 and 2023", map[types.Attr]string{types.AttrStartYear: "2020", types.AttrEndYear: "2023"}, types.SourceUserInput},
		{"contracts from 2018 to 2019", map[types.Attr]string{types.AttrStartYear: "2018", types.AttrEndYear: "2019"}, types.SourceUserInput},
		{"after 2020 before 2023", map[types.Attr]string{types.AttrAfterYear: "2020", types.AttrBeforeYear: "2023"}, types.SourceUserInput},
		{"contracts in february 2024", map[types.Attr]string{types.AttrStartDate: "2024-02-01", types.AttrEndDate: "2024-02-29"}, types.SourceInferred},
		{"created on 1/15/2024", map[types.Attr]string{types.AttrSpecificDate: "2024-01-15"}, types.SourceUserInput},
		{"contracts after 2024-01-15", map[types.Attr]string{types.AttrAfterDate: "2024-01-15"}, types.SourceUserInput},
		{"contracts until 2024-06-30", map[types.Attr]string{types.AttrBeforeDate: "2024-06-30"}, types.SourceUserInput},
		{"contracts created today", map[types.Attr]string{types.AttrSpecificDate: "2025-03-10"}, types.SourceInferred},
		{"contracts created yesterday", map[types.Attr]string{types.AttrSpecificDate: "2025-03-09"}, types.SourceInferred},
		{"contracts this year", map[types.Attr]string{types.AttrInYear: "2025"}, types.SourceInferred},
		{"contracts last year", map[types.Attr]string{types.AttrInYear: "2024"}, types.SourceInferred},
		{"contracts this month", map[types.Attr]string{types.AttrStartDate: "2025-03-01", types.AttrEndDate: "2025-03-31"}, types.SourceInferred},
		{"contracts last month", map[types.Attr]string{types.AttrStartDate: "2025-02-01", types.AttrEndDate: "2025-02-28"}, types.SourceInferred},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e := extract(tt.input).Entities
			for attr, v := range tt.want {
				ent, ok := e.Lookup(attr)
				require.True(t, ok, attr)
				assert.Equal(t, v, ent.Value, attr)
				assert.Equal(t, tt.source, ent.Source, attr)
			}
			assert.True(t, e.HasTemporal())
		})
	}
}

func TestCustomerNumberIsNotAYear(t *testing.T) {
	e := extract("customer 2019 contracts since 2020").Entities
	assert.Equal(t, "2019", e.Get(types.AttrCustomerNumber))
	assert.Equal(t, "2020", e.Get(types.AttrAfterYear))
	assert.False(t, e.Has(types.AttrInYear))
}

func TestNames(t *testing.T) {
	tests := []struct {
		input string
		attr  types.Attr
		want  string
	}{
		{"contracts created by vinod", types.AttrCreatedBy, "VINOD"},
		{"contracts created by jdoe", types.AttrCreatedBy, "JDOE"},
		{"contracts by mary", types.AttrCreatedBy, "MARY"},
		{"boeing contracts", types.AttrCustomerName, "BOEING"},
		{"contracts for honeywell international", types.AttrCustomerName, "HONEYWELL INTERNATIONAL INC."},
		{"customer name acme contracts", types.AttrCustomerName, "ACME"},
		{"active contracts", types.AttrStatus, "ACTIVE"},
		{"expired contracts for boeing", types.AttrStatus, "EXPIRED"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, extract(tt.input).Entities.Get(tt.attr))
		})
	}
}

func TestCustomerNameNeedsAKnownNameOrCue(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"which customer owns contract 123456", ""},
		{"customer details for contract 123456", ""},
		{"customer named zenith contracts", "ZENITH"},
		{"contracts for customer called zenith", "ZENITH"},
		{"customer honeywell international contracts", "HONEYWELL INTERNATIONAL INC."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, extract(tt.input).Entities.Get(types.AttrCustomerName))
		})
	}

	ex := extract("which customer owns contract 123456")
	assert.Equal(t, "123456", ex.Entities.Get(types.AttrContractNumber))
}

func TestDraftAsVerbIsNotAStatus(t *testing.T) {
	assert.False(t, extract("draft a contract").Entities.Has(types.AttrStatus))
	assert.Equal(t, "DRAFT", extract("draft contracts").Entities.Get(types.AttrStatus))
}

func TestBusinessTerms(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"pricing for part ae12345", []string{"PRICE"}},
		{"lead time and minimum order quantity for part ae12345", []string{"LEAD_TIME", "MOQ"}},
		{"effective date of contract 123456", []string{"EFFECTIVE_DATE"}},
		{"price expiration date for contract 123456", []string{"PRICE_EXPIRATION_DATE"}},
		{"what is the customer number for contract 123456", []string{"CUSTOMER_NUMBER"}},
		{"customer number 897654 contracts", []string{}},
		{"show contract 123456", []string{}},
		{"contracts with status active", []string{}},
		{"status of contract 123456", []string{"STATUS"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, extract(tt.input).Entities.RequestedFields())
		})
	}
}

func TestShapes(t *testing.T) {
	assert.True(t, IsContractCode("ae123456"))
	assert.True(t, IsContractCode("abc-1234567"))
	assert.False(t, IsContractCode("ae12345"))
	assert.True(t, IsPartCode("ae12345"))
	assert.True(t, IsPartCode("12345abc"))
	assert.True(t, IsPartCode("abc-1234"))
	assert.False(t, IsPartCode("123456"))
}
