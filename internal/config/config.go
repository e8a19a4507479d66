// Package config decodes the resolved configuration surface the lint
// engine consumes. It only decodes; turning a configuration into
// engine options (lint.WithLevels, lint.WithOptions) is the caller's
// job, kept in cmd/phrix so this package stays a pure JSON shape.
package config

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mago-go/phrix/internal/diagnostic"
)

// RuleOverride is one entry of the `rules` array: a per-rule level
// and/or option override.
type RuleOverride struct {
	Name    string                 `json:"name"`
	Level   *string                `json:"level,omitempty"`
	Options map[string]any         `json:"options,omitempty"`
}

// Config is the configuration surface as provided to the engine: which
// plugin sets to enable and per-rule overrides. Rule names in Rules are
// not checked against the registered rule set, here or in cmd/phrix; an
// override naming a rule that is not registered has no effect.
type Config struct {
	DefaultPlugins *bool          `json:"default_plugins,omitempty"`
	Plugins        []string       `json:"plugins,omitempty"`
	Rules          []RuleOverride `json:"rules,omitempty"`
}

// UsesDefaultPlugins reports whether the built-in rule set should be
// enabled, defaulting to true when the field is absent.
func (c Config) UsesDefaultPlugins() bool {
	if c.DefaultPlugins == nil {
		return true
	}
	return *c.DefaultPlugins
}

// Decode reads a Config from r, rejecting unknown fields so a typo in
// a config file fails loudly instead of being silently ignored.
func Decode(r io.Reader) (Config, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Levels resolves each RuleOverride's level string into a
// diagnostic.Level map suitable for lint.WithLevels. An override with
// no level at all is skipped (absence means "use the rule's own
// default"); an unrecognized level string is an error.
func (c Config) Levels() (map[string]diagnostic.Level, error) {
	levels := make(map[string]diagnostic.Level, len(c.Rules))
	for _, r := range c.Rules {
		if r.Level == nil {
			continue
		}
		lvl, ok := diagnostic.ParseLevel(*r.Level)
		if !ok {
			return nil, fmt.Errorf("config: rule %q has unknown level %q", r.Name, *r.Level)
		}
		levels[r.Name] = lvl
	}
	return levels, nil
}

// RuleOptions resolves each RuleOverride's Options into the map
// lint.WithOptions expects.
func (c Config) RuleOptions() map[string]map[string]any {
	opts := make(map[string]map[string]any, len(c.Rules))
	for _, r := range c.Rules {
		if len(r.Options) == 0 {
			continue
		}
		opts[r.Name] = r.Options
	}
	return opts
}
