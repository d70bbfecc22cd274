package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// StateGroup is a named, curated set of states sharing a redistricting-process
// characteristic. A nil States list means the group imposes no restriction
// (the "All States" group). Memberships are static configuration, never
// derived from the dataset.
type StateGroup struct {
	Label  string   `yaml:"label" json:"label"`
	States []string `yaml:"states" json:"states"`
}

// AllStatesLabel is the universal group's label.
const AllStatesLabel = "All States"

// defaultStateGroups carries the dashboard's stock southeast-region groupings.
func defaultStateGroups() []StateGroup {
	return []StateGroup{
		{Label: AllStatesLabel, States: nil},
		{Label: "Independent Commission", States: []string{"Louisiana", "Virginia"}},
		{Label: "Republican Legislatures", States: []string{
			"Arkansas", "Mississippi", "Alabama", "Georgia", "Florida",
			"South Carolina", "North Carolina", "Tennessee", "Kentucky", "West Virginia", "Virginia",
		}},
		{Label: "Competitive States", States: []string{"Georgia", "North Carolina", "Virginia"}},
		{Label: "Conservative States", States: []string{
			"Arkansas", "Louisiana", "Mississippi", "Alabama", "Tennessee",
			"West Virginia", "Kentucky", "South Carolina", "Florida",
		}},
	}
}

// StateGroups is the active membership table. Initialized to the defaults;
// LoadStateGroups replaces it from a yaml file.
var StateGroups = dedupGroups(defaultStateGroups())

// dedupGroups drops repeated state names inside each group, keeping first
// occurrence order.
func dedupGroups(groups []StateGroup) []StateGroup {
	for i, g := range groups {
		if g.States == nil {
			continue
		}
		seen := make(map[string]bool)
		deduped := make([]string, 0, len(g.States))
		for _, s := range g.States {
			if seen[s] {
				continue
			}
			seen[s] = true
			deduped = append(deduped, s)
		}
		groups[i].States = deduped
	}
	return groups
}

// GroupByLabel looks up a group by its label.
func GroupByLabel(label string) (StateGroup, bool) {
	for _, g := range StateGroups {
		if g.Label == label {
			return g, true
		}
	}
	return StateGroup{}, false
}

// GroupLabels returns the labels in dropdown order.
func GroupLabels() []string {
	labels := make([]string, len(StateGroups))
	for i, g := range StateGroups {
		labels[i] = g.Label
	}
	return labels
}

// LoadStateGroups replaces the membership table from a yaml file. The file
// must contain a non-empty group list including the universal "All States"
// entry; anything else keeps the table it was given at startup.
func LoadStateGroups(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading state groups file: %w", err)
	}

	var groups []StateGroup
	if err := yaml.Unmarshal(data, &groups); err != nil {
		return fmt.Errorf("parsing state groups file %s: %w", path, err)
	}
	if len(groups) == 0 {
		return fmt.Errorf("state groups file %s contains no groups", path)
	}
	hasAll := false
	for _, g := range groups {
		if g.Label == "" {
			return fmt.Errorf("state groups file %s contains a group without a label", path)
		}
		if g.Label == AllStatesLabel {
			hasAll = true
			if len(g.States) > 0 {
				return fmt.Errorf("state groups file %s: %q must not list states", path, AllStatesLabel)
			}
		}
	}
	if !hasAll {
		return fmt.Errorf("state groups file %s is missing the %q group", path, AllStatesLabel)
	}
	for i := range groups {
		if groups[i].Label == AllStatesLabel {
			groups[i].States = nil
		}
	}

	StateGroups = dedupGroups(groups)
	log.Printf("Loaded %d state groups from %s", len(StateGroups), path)
	return nil
}
