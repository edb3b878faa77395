package testutil

// DefaultRunID is returned by a FixedRunID created with an empty ID.
const DefaultRunID = "test-run-default"

// FixedRunID returns the same run ID on every call, so JSON output that
// embeds trace_id can be compared against golden files.
type FixedRunID struct {
	id string
}

// NewFixedRunID creates a fixed generator. An empty id yields DefaultRunID.
func NewFixedRunID(id string) *FixedRunID {
	if id == "" {
		id = DefaultRunID
	}
	return &FixedRunID{id: id}
}

// Generate returns the fixed run ID.
func (g *FixedRunID) Generate() string {
	return g.id
}
