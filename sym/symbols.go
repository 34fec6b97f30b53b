// Package sym defines the glyphs contractq uses to mark domains, severities
// and infrastructure in CLI and server output. They are stable so scripts
// grepping CLI output can rely on them.
package sym

// Domain glyphs.
const (
	Contracts   = "⌬" // contract records
	Parts       = "⨳" // parts and failed-parts analysis
	Help        = "?" // guidance
	MultiIntent = "⋈" // merged result of several clauses
	Error       = "✗" // ERROR domain
)

// Severity glyphs.
const (
	Blocker = "■"
	Warning = "▲"
	OK      = "✓"
)

// Infrastructure glyphs.
const (
	Cache   = "꩜" // cached result
	DB      = "⊔" // journal storage
	Config  = "≡" // am configuration
	Server  = "✿" // server startup
	Stopped = "❀" // server shutdown
)

type entry struct {
	key         string
	glyph       string
	description string
}

// registry maps domain and severity names, as they appear in results, to glyphs.
var registry = []entry{
	{"CONTRACTS", Contracts, "Contract lookup and search"},
	{"PARTS", Parts, "Parts lookup and failed-parts analysis"},
	{"HELP", Help, "Contract creation guidance"},
	{"MULTI_INTENT", MultiIntent, "Query spanning several domains"},
	{"ERROR", Error, "Query could not be classified"},
	{"BLOCKER", Blocker, "Result is unusable"},
	{"WARNING", Warning, "Result is usable with caveats"},
}

var (
	keyToGlyph  map[string]string
	keyToDetail map[string]string
)

func init() {
	keyToGlyph = make(map[string]string, len(registry))
	keyToDetail = make(map[string]string, len(registry))
	for _, e := range registry {
		keyToGlyph[e.key] = e.glyph
		keyToDetail[e.key] = e.description
	}
}

// Glyph returns the glyph for a domain or severity name, or "·" when unknown.
func Glyph(key string) string {
	if g, ok := keyToGlyph[key]; ok {
		return g
	}
	return "·"
}

// Describe returns a one-line description for a domain or severity name.
func Describe(key string) string {
	return keyToDetail[key]
}

// Label prefixes key with its glyph, e.g. "⌬ CONTRACTS".
func Label(key string) string {
	return Glyph(key) + " " + key
}
