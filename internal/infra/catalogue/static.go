package catalogue

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
)

//go:embed seed/actions.yaml
var embeddedSeed []byte

type seedFile struct {
	Actions []*domain.MicroAction `yaml:"actions"`
}

// StaticCatalogue serves a fixed list of actions loaded at startup.
type StaticCatalogue struct {
	actions []*domain.MicroAction
	byID    map[string]*domain.MicroAction
}

func NewStaticCatalogue(actions []*domain.MicroAction) *StaticCatalogue {
	byID := make(map[string]*domain.MicroAction, len(actions))
	for _, a := range actions {
		byID[a.ID] = a
	}
	return &StaticCatalogue{
		actions: actions,
		byID:    byID,
	}
}

func (c *StaticCatalogue) ListActions(_ context.Context) ([]*domain.MicroAction, error) {
	out := make([]*domain.MicroAction, len(c.actions))
	for i, a := range c.actions {
		cp := *a
		out[i] = &cp
	}
	return out, nil
}

func (c *StaticCatalogue) GetAction(_ context.Context, actionID string) (*domain.MicroAction, error) {
	a, ok := c.byID[actionID]
	if !ok {
		return nil, domain.ErrActionNotFound
	}
	cp := *a
	return &cp, nil
}

// LoadSeed reads the YAML catalogue at path, or the embedded default when path is empty.
func LoadSeed(path string) ([]*domain.MicroAction, error) {
	data := embeddedSeed
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalogue file: %w", err)
		}
	}
	return parseSeed(data)
}

func parseSeed(data []byte) ([]*domain.MicroAction, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f seedFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Actions))
	for i, a := range f.Actions {
		switch {
		case a == nil || a.ID == "":
			return nil, fmt.Errorf("catalogue entry %d: missing action_id", i)
		case a.DurationMin <= 0 || a.DurationMax < a.DurationMin:
			return nil, fmt.Errorf("catalogue entry %s: invalid duration range %d-%d", a.ID, a.DurationMin, a.DurationMax)
		}
		if _, dup := seen[a.ID]; dup {
			return nil, fmt.Errorf("catalogue entry %s: duplicate action_id", a.ID)
		}
		seen[a.ID] = struct{}{}
	}

	return f.Actions, nil
}
