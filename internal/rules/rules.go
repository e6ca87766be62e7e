// Package rules loads declarative rewrite rules from YAML and turns them
// into a rewrite handler.
//
// A rule has a match section and a rewrite section. Match components are
// compared after dialect normalization; an empty or "*" component matches
// anything. Rewrite components are optional: an absent key keeps the
// component, an empty string clears it, any other value replaces it.
// The first matching rule wins.
package rules

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/sqlremap/pkg/dialect"
	"github.com/leapstack-labs/sqlremap/pkg/rewrite"
	"gopkg.in/yaml.v3"
)

// Match selects table references by component. Empty or "*" matches any
// value for that component.
type Match struct {
	Catalog  string `yaml:"catalog"`
	Database string `yaml:"database"`
	Name     string `yaml:"name"`
}

// Rewrite describes what happens to each component of a matched reference.
// A nil field keeps the component, a pointer to "" clears it, and any
// other value replaces it.
type Rewrite struct {
	Catalog  *string `yaml:"catalog"`
	Database *string `yaml:"database"`
	Name     *string `yaml:"name"`
}

// Rule pairs a match with a rewrite.
type Rule struct {
	Match   Match   `yaml:"match"`
	Rewrite Rewrite `yaml:"rewrite"`
}

// File is the on-disk rule file layout.
type File struct {
	Rules []Rule `yaml:"rules"`
}

// Load reads a YAML rule file.
func Load(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML rule data.
func Parse(data []byte) ([]Rule, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}
	return f.Rules, nil
}

// Handler returns a rewrite handler that applies the first matching rule.
// References that match no rule are kept unchanged.
func Handler(rules []Rule, d *dialect.Dialect) rewrite.Handler {
	return func(id rewrite.TableID) (rewrite.Decision, error) {
		for _, rule := range rules {
			if rule.matches(id, d) {
				return rule.decision(), nil
			}
		}
		return rewrite.KeepAll(), nil
	}
}

func (r Rule) matches(id rewrite.TableID, d *dialect.Dialect) bool {
	return matchComponent(r.Match.Catalog, id.Catalog, d) &&
		matchComponent(r.Match.Database, id.Database, d) &&
		matchComponent(r.Match.Name, id.Name, d)
}

func matchComponent(pattern, value string, d *dialect.Dialect) bool {
	if pattern == "" || pattern == "*" {
		return true
	}
	return d.NormalizeName(pattern) == d.NormalizeName(value)
}

func (r Rule) decision() rewrite.Decision {
	return rewrite.Decision{
		Catalog:  slot(r.Rewrite.Catalog),
		Database: slot(r.Rewrite.Database),
		Name:     slot(r.Rewrite.Name),
	}
}

func slot(p *string) rewrite.Slot {
	switch {
	case p == nil:
		return rewrite.Keep()
	case *p == "":
		return rewrite.Clear()
	default:
		return rewrite.Set(*p)
	}
}
