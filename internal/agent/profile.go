package agent

// Profile defines a named agent configuration: its instructions, model
// settings and scoped toolset. Profiles are declarative; the runner built
// from a profile owns the actual tool-calling loop.
type Profile struct {
	Name         string
	Description  string
	Instructions string
	Model        string  // empty = default model from config
	Temperature  float64 // zero = API default
	Tools        []string
	OutputKey    string // key the pipeline stores this agent's output under
}
