package catalogue

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
)

func TestLoadSeed_Embedded(t *testing.T) {
	actions, err := LoadSeed("")
	if err != nil {
		t.Fatalf("LoadSeed() error = %v", err)
	}
	if len(actions) != 15 {
		t.Fatalf("got %d actions, want 15", len(actions))
	}
	if actions[0].ID != "action_learn_vocab" {
		t.Errorf("first action = %s, want catalogue order preserved", actions[0].ID)
	}

	premium := 0
	for _, a := range actions {
		if a.IsPremium {
			premium++
		}
	}
	if premium != 5 {
		t.Errorf("premium actions = %d, want 5", premium)
	}
}

func TestLoadSeed_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.yaml")
	content := `actions:
  - action_id: a1
    title: Walk
    category: well_being
    duration_min: 5
    duration_max: 10
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	actions, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("LoadSeed() error = %v", err)
	}
	if len(actions) != 1 || actions[0].Title != "Walk" || actions[0].DurationMax != 10 {
		t.Errorf("LoadSeed() = %+v", actions)
	}
}

func TestParseSeed_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing id",
			content: "actions:\n  - title: x\n    duration_min: 1\n    duration_max: 2\n",
			wantErr: "missing action_id",
		},
		{
			name:    "inverted durations",
			content: "actions:\n  - action_id: a\n    duration_min: 5\n    duration_max: 2\n",
			wantErr: "invalid duration range",
		},
		{
			name:    "duplicate",
			content: "actions:\n  - action_id: a\n    duration_min: 1\n    duration_max: 2\n  - action_id: a\n    duration_min: 1\n    duration_max: 2\n",
			wantErr: "duplicate",
		},
		{
			name:    "unknown field",
			content: "actions:\n  - action_id: a\n    minutes: 3\n",
			wantErr: "parse catalogue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSeed([]byte(tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("parseSeed() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestStaticCatalogue(t *testing.T) {
	ctx := context.Background()
	c := NewStaticCatalogue([]*domain.MicroAction{
		{ID: "a1", Title: "One", DurationMin: 2, DurationMax: 5},
		{ID: "a2", Title: "Two", DurationMin: 5, DurationMax: 10},
	})

	list, err := c.ListActions(ctx)
	if err != nil {
		t.Fatalf("ListActions() error = %v", err)
	}
	if len(list) != 2 || list[0].ID != "a1" || list[1].ID != "a2" {
		t.Errorf("ListActions() = %v", list)
	}

	// callers get copies
	list[0].Title = "changed"
	got, err := c.GetAction(ctx, "a1")
	if err != nil {
		t.Fatalf("GetAction() error = %v", err)
	}
	if got.Title != "One" {
		t.Errorf("catalogue mutated through ListActions: %q", got.Title)
	}

	if _, err := c.GetAction(ctx, "missing"); !errors.Is(err, domain.ErrActionNotFound) {
		t.Errorf("GetAction(missing) error = %v", err)
	}
}
