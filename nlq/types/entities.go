package types

// Entity is one extracted attribute value
type Entity struct {
	Attr   Attr   `json:"attribute"`
	Value  string `json:"value"`
	Source Source `json:"source"`
}

// Entities is the ordered set of extracted attributes. An attribute is set
// at most once: the first writer wins, so rules evaluated earlier take
// priority over later ones.
type Entities struct {
	list   []Entity
	fields []string
}

// Set records attr unless it already has a value or value is empty.
// It reports whether the value was stored.
func (e *Entities) Set(attr Attr, value string, source Source) bool {
	if value == "" || e.Has(attr) {
		return false
	}
	e.list = append(e.list, Entity{Attr: attr, Value: value, Source: source})
	return true
}

// Get returns the value of attr, or ""
func (e *Entities) Get(attr Attr) string {
	for _, ent := range e.list {
		if ent.Attr == attr {
			return ent.Value
		}
	}
	return ""
}

// Lookup returns the entity stored for attr
func (e *Entities) Lookup(attr Attr) (Entity, bool) {
	for _, ent := range e.list {
		if ent.Attr == attr {
			return ent, true
		}
	}
	return Entity{}, false
}

// Has reports whether attr has a value
func (e *Entities) Has(attr Attr) bool {
	_, ok := e.Lookup(attr)
	return ok
}

// HasAny reports whether any of attrs has a value
func (e *Entities) HasAny(attrs ...Attr) bool {
	for _, a := range attrs {
		if e.Has(a) {
			return true
		}
	}
	return false
}

// HasTemporal reports whether any temporal attribute was extracted
func (e *Entities) HasTemporal() bool {
	return e.HasAny(TemporalAttrs...)
}

// All returns a copy of the entities in extraction order
func (e *Entities) All() []Entity {
	out := make([]Entity, len(e.list))
	copy(out, e.list)
	return out
}

// Count is the number of distinct attributes the user supplied. Inferred
// entries and the intent marker are not counted.
func (e *Entities) Count() int {
	n := 0
	for _, ent := range e.list {
		if ent.Source == SourceUserInput && ent.Attr != AttrIntent {
			n++
		}
	}
	return n
}

// RequestField records a column the user explicitly asked to see
func (e *Entities) RequestField(field string) {
	for _, f := range e.fields {
		if f == field {
			return
		}
	}
	e.fields = append(e.fields, field)
}

// RequestedFields returns the explicitly requested columns in order
func (e *Entities) RequestedFields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}
