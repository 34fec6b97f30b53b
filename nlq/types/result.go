package types

// EntityFilter is a (column, operator, value) condition for the execution layer
type EntityFilter struct {
	Attribute string `json:"attribute" yaml:"attribute"`
	Operation string `json:"operation" yaml:"operation"`
	Value     string `json:"value" yaml:"value"`
	Source    Source `json:"source" yaml:"source"`
}

// ErrorEntry is a problem found while classifying
type ErrorEntry struct {
	Code     string   `json:"code" yaml:"code"`
	Message  string   `json:"message" yaml:"message"`
	Severity Severity `json:"severity" yaml:"severity"`
}

// InputTracking records how the raw input was rewritten
type InputTracking struct {
	OriginalInput        string  `json:"originalInput" yaml:"originalInput"`
	CorrectedInput       *string `json:"correctedInput" yaml:"correctedInput"`
	CorrectionConfidence float64 `json:"correctionConfidence" yaml:"correctionConfidence"`
}

// Header carries the primary identifiers. Absent values serialize as null.
type Header struct {
	ContractNumber *string       `json:"contractNumber" yaml:"contractNumber"`
	PartNumber     *string       `json:"partNumber" yaml:"partNumber"`
	CustomerNumber *string       `json:"customerNumber" yaml:"customerNumber"`
	CustomerName   *string       `json:"customerName" yaml:"customerName"`
	CreatedBy      *string       `json:"createdBy" yaml:"createdBy"`
	InputTracking  InputTracking `json:"inputTracking" yaml:"inputTracking"`
}

// QueryMetadata describes how the query was routed
type QueryMetadata struct {
	QueryType        Domain          `json:"queryType" yaml:"queryType"`
	Intent           Intent          `json:"intent" yaml:"intent"`
	ActionType       string          `json:"actionType" yaml:"actionType"`
	ProcessingTimeMs float64         `json:"processingTimeMs" yaml:"processingTimeMs"`
	CacheHit         bool            `json:"cacheHit" yaml:"cacheHit"`
	Clauses          []ClauseSummary `json:"clauses,omitempty" yaml:"clauses,omitempty"`
}

// ClauseSummary describes one clause of a multi-intent query
type ClauseSummary struct {
	Text       string  `json:"text" yaml:"text"`
	QueryType  Domain  `json:"queryType" yaml:"queryType"`
	Intent     Intent  `json:"intent" yaml:"intent"`
	ActionType string  `json:"actionType" yaml:"actionType"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// Result is the structured interpretation of one query. Treat it as
// immutable once returned; use Clone before changing a shared copy.
type Result struct {
	Header          Header         `json:"header" yaml:"header"`
	QueryMetadata   QueryMetadata  `json:"queryMetadata" yaml:"queryMetadata"`
	Entities        []EntityFilter `json:"entities" yaml:"entities"`
	DisplayEntities []string       `json:"displayEntities" yaml:"displayEntities"`
	Errors          []ErrorEntry   `json:"errors" yaml:"errors"`
	Confidence      float64        `json:"confidence" yaml:"confidence"`
}

// Domain returns the query type
func (r *Result) Domain() Domain { return r.QueryMetadata.QueryType }

// Intent returns the classified intent
func (r *Result) Intent() Intent { return r.QueryMetadata.Intent }

// Action returns the action identifier
func (r *Result) Action() string { return r.QueryMetadata.ActionType }

// HasBlocker reports whether any error makes the result unusable
func (r *Result) HasBlocker() bool {
	for _, e := range r.Errors {
		if e.Severity == SeverityBlocker {
			return true
		}
	}
	return false
}

// HasError reports whether an error with code is present
func (r *Result) HasError(code string) bool {
	for _, e := range r.Errors {
		if e.Code == code {
			return true
		}
	}
	return false
}

// FiltersFor returns the filters on column attribute
func (r *Result) FiltersFor(attribute string) []EntityFilter {
	var out []EntityFilter
	for _, f := range r.Entities {
		if f.Attribute == attribute {
			out = append(out, f)
		}
	}
	return out
}

// Clone returns a deep copy
func (r Result) Clone() Result {
	out := r
	out.Header.ContractNumber = clonePtr(r.Header.ContractNumber)
	out.Header.PartNumber = clonePtr(r.Header.PartNumber)
	out.Header.CustomerNumber = clonePtr(r.Header.CustomerNumber)
	out.Header.CustomerName = clonePtr(r.Header.CustomerName)
	out.Header.CreatedBy = clonePtr(r.Header.CreatedBy)
	out.Header.InputTracking.CorrectedInput = clonePtr(r.Header.InputTracking.CorrectedInput)
	out.QueryMetadata.Clauses = cloneSlice(r.QueryMetadata.Clauses)
	out.Entities = cloneSlice(r.Entities)
	out.DisplayEntities = cloneSlice(r.DisplayEntities)
	out.Errors = cloneSlice(r.Errors)
	return out
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
