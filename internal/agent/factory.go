package agent

import (
	"fmt"

	"finch/internal/config"
	"finch/internal/llm"
)

// RunnerFactory builds scoped runners from agent profiles. Each profile
// gets its own provider so model and temperature can differ per agent.
type RunnerFactory struct {
	llmCfg         *config.LLMConfig
	globalRegistry *Registry
	profiles       map[string]Profile
}

func NewRunnerFactory(llmCfg *config.LLMConfig, registry *Registry, profiles []Profile) *RunnerFactory {
	byName := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		byName[p.Name] = p
	}
	return &RunnerFactory{
		llmCfg:         llmCfg,
		globalRegistry: registry,
		profiles:       byName,
	}
}

// Build creates a new ReactRunner scoped to the given profile.
func (f *RunnerFactory) Build(profileName string) (Runner, error) {
	profile, ok := f.profiles[profileName]
	if !ok {
		return nil, fmt.Errorf("unknown agent profile: %s", profileName)
	}

	model := profile.Model
	if model == "" {
		model = f.llmCfg.Model
	}

	var opts []llm.OpenAIOption
	if profile.Temperature > 0 {
		opts = append(opts, llm.WithTemperature(profile.Temperature))
	}
	provider := llm.NewOpenAI(f.llmCfg.BaseURL, f.llmCfg.APIKey, model, opts...)

	registry := f.globalRegistry.Scope(profile.Tools)
	return NewReactRunner(profile, provider, registry), nil
}

// Profile returns the named profile.
func (f *RunnerFactory) Profile(name string) (Profile, bool) {
	p, ok := f.profiles[name]
	return p, ok
}

// Profiles returns the names of all registered profiles.
func (f *RunnerFactory) Profiles() []string {
	names := make([]string, 0, len(f.profiles))
	for name := range f.profiles {
		names = append(names, name)
	}
	return names
}
