package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func restoreGroups(t *testing.T) {
	t.Helper()
	saved := StateGroups
	t.Cleanup(func() { StateGroups = saved })
}

func writeGroupsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "groups.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing groups file: %v", err)
	}
	return path
}

func TestDefaultGroupsDeduplicated(t *testing.T) {
	group, ok := GroupByLabel("Republican Legislatures")
	if !ok {
		t.Fatal("stock group missing")
	}
	seen := make(map[string]bool)
	for _, s := range group.States {
		if seen[s] {
			t.Fatalf("duplicate state %q in group membership", s)
		}
		seen[s] = true
	}
}

func TestGroupByLabelUnknown(t *testing.T) {
	if _, ok := GroupByLabel("Swing States"); ok {
		t.Fatal("unknown label should not resolve")
	}
}

func TestLoadStateGroupsOverride(t *testing.T) {
	restoreGroups(t)
	path := writeGroupsFile(t, `
- label: All States
- label: Gulf Coast
  states: [Louisiana, Mississippi, Alabama, Florida, Florida]
`)

	if err := LoadStateGroups(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(StateGroups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(StateGroups))
	}

	all, _ := GroupByLabel(AllStatesLabel)
	if all.States != nil {
		t.Fatalf("universal group must keep a nil member list, got %v", all.States)
	}

	gulf, ok := GroupByLabel("Gulf Coast")
	if !ok {
		t.Fatal("loaded group missing")
	}
	want := []string{"Louisiana", "Mississippi", "Alabama", "Florida"}
	if !reflect.DeepEqual(gulf.States, want) {
		t.Fatalf("membership not deduplicated in order: got %v, want %v", gulf.States, want)
	}
}

func TestLoadStateGroupsRejectsBadFiles(t *testing.T) {
	restoreGroups(t)
	cases := []struct {
		name    string
		content string
	}{
		{"missing all states", "- label: Gulf Coast\n  states: [Alabama]\n"},
		{"empty list", "[]\n"},
		{"unlabeled group", "- label: All States\n- states: [Alabama]\n"},
		{"all states with members", "- label: All States\n  states: [Alabama]\n"},
	}
	for _, c := range cases {
		path := writeGroupsFile(t, c.content)
		if err := LoadStateGroups(path); err == nil {
			t.Errorf("%s: expected an error", c.name)
		}
	}

	if _, ok := GroupByLabel(AllStatesLabel); !ok {
		t.Fatal("rejected file must leave the active table intact")
	}
}
