package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntitiesFirstWriterWins(t *testing.T) {
	var e Entities
	assert.True(t, e.Set(AttrContractNumber, "123456", SourceUserInput))
	assert.False(t, e.Set(AttrContractNumber, "999999", SourceUserInput))
	assert.False(t, e.Set(AttrPartNumber, "", SourceUserInput), "empty values are ignored")

	assert.Equal(t, "123456", e.Get(AttrContractNumber))
	assert.False(t, e.Has(AttrPartNumber))
}

func TestEntitiesCount(t *testing.T) {
	var e Entities
	e.Set(AttrCustomerNumber, "897654", SourceUserInput)
	e.Set(AttrAccountNumber, "897654", SourceInferred)
	e.Set(AttrIntent, "lookup", SourceUserInput)
	e.Set(AttrInYear, "2024", SourceUserInput)

	assert.Equal(t, 2, e.Count())
	assert.True(t, e.HasTemporal())
	assert.Len(t, e.All(), 4)
}

func TestRequestedFields(t *testing.T) {
	var e Entities
	e.RequestField("PRICE")
	e.RequestField("LEAD_TIME")
	e.RequestField("PRICE")
	assert.Equal(t, []string{"PRICE", "LEAD_TIME"}, e.RequestedFields())
}

func TestClauseSplittable(t *testing.T) {
	assert.True(t, Clause{Text: "a and b", Depth: 0}.Splittable())
	assert.False(t, Clause{Text: "a", Depth: 1}.Splittable())
}

func TestResultCloneIsDeep(t *testing.T) {
	n := "123456"
	r := Result{
		Header:          Header{ContractNumber: &n},
		Entities:        []EntityFilter{{Attribute: FieldAwardNumber, Operation: "=", Value: n, Source: SourceUserInput}},
		DisplayEntities: []string{"STATUS"},
	}
	c := r.Clone()
	*c.Header.ContractNumber = "000000"
	c.Entities[0].Value = "000000"
	c.DisplayEntities[0] = "PRICE"

	assert.Equal(t, "123456", *r.Header.ContractNumber)
	assert.Equal(t, "123456", r.Entities[0].Value)
	assert.Equal(t, "STATUS", r.DisplayEntities[0])
}

func TestResultJSONShape(t *testing.T) {
	r := Result{
		QueryMetadata: QueryMetadata{QueryType: DomainContracts, ActionType: ActionContractsByFilter},
		Entities:      []EntityFilter{},
		Errors:        []ErrorEntry{},
	}
	raw, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded struct {
		Header struct {
			ContractNumber *string `json:"contractNumber"`
		} `json:"header"`
		QueryMetadata struct {
			QueryType string `json:"queryType"`
		} `json:"queryMetadata"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Nil(t, decoded.Header.ContractNumber)
	assert.Equal(t, "CONTRACTS", decoded.QueryMetadata.QueryType)
	assert.Contains(t, string(raw), `"contractNumber":null`)
}

func TestResultHelpers(t *testing.T) {
	r := Result{
		Errors: []ErrorEntry{{Code: CodeLowConfidence, Severity: SeverityWarning}},
		Entities: []EntityFilter{
			{Attribute: FieldCreateDate, Operation: ">=", Value: "2024-01-01"},
			{Attribute: FieldCreateDate, Operation: "<=", Value: "2024-12-31"},
		},
	}
	assert.False(t, r.HasBlocker())
	assert.True(t, r.HasError(CodeLowConfidence))
	assert.Len(t, r.FiltersFor(FieldCreateDate), 2)
	assert.True(t, IsContractNumberField(FieldLoadedCPNumber))
	assert.False(t, IsContractNumberField(FieldCustomerNumber))
}
