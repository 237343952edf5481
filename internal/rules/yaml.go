package rules

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cuadra-dev/cuadra/internal/model"
)

// RelPath is where the rule file lives inside a ledger directory.
const RelPath = "rules/categorization-rules.yaml"

type ruleFile struct {
	Rules []ruleEntry `yaml:"rules"`
}

type ruleEntry struct {
	ID        string `yaml:"id"`
	Needle    string `yaml:"needle"`
	Category  string `yaml:"category"`
	Party     string `yaml:"party,omitempty"`
	Direction string `yaml:"direction,omitempty"`
	Priority  int    `yaml:"priority"`
	Store     string `yaml:"store,omitempty"`
}

// Load reads the rule file from a ledger directory. A missing file is
// an empty rule set, not an error.
func Load(dir string) ([]model.Rule, error) {
	data, err := os.ReadFile(filepath.Join(dir, RelPath))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}

	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}

	ruleSet := make([]model.Rule, 0, len(rf.Rules))
	for i, e := range rf.Rules {
		r, err := e.toRule()
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		ruleSet = append(ruleSet, r)
	}
	return ruleSet, nil
}

// Save writes the rule set back to the ledger directory.
func Save(dir string, ruleSet []model.Rule) error {
	rf := ruleFile{Rules: make([]ruleEntry, len(ruleSet))}
	for i, r := range ruleSet {
		rf.Rules[i] = ruleEntry{
			ID:        r.ID,
			Needle:    r.Needle,
			Category:  r.Category,
			Party:     r.Party,
			Direction: string(r.Direction),
			Priority:  r.Priority,
			Store:     r.StoreScope,
		}
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}

	path := filepath.Join(dir, RelPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating rules dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}

func (e ruleEntry) toRule() (model.Rule, error) {
	if e.Needle == "" {
		return model.Rule{}, fmt.Errorf("needle is required")
	}
	if e.Category == "" {
		return model.Rule{}, fmt.Errorf("category is required")
	}

	dir := model.Direction(e.Direction)
	switch dir {
	case "":
		dir = model.DirectionAny
	case model.DirectionAny, model.DirectionIn, model.DirectionOut:
	default:
		return model.Rule{}, fmt.Errorf("unknown direction %q", e.Direction)
	}

	return model.Rule{
		ID:         e.ID,
		Needle:     e.Needle,
		Category:   e.Category,
		Party:      e.Party,
		Direction:  dir,
		Priority:   e.Priority,
		StoreScope: e.Store,
	}, nil
}
