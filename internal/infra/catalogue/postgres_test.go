package catalogue

import (
	"context"
	"errors"
	"testing"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/testutil"
)

func TestPostgresCatalogue(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	dsn, cleanup := testutil.SetupPostgresContainer(ctx, t)
	defer cleanup()

	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("OpenPostgres() error = %v", err)
	}
	if err := db.AutoMigrate(&actionModel{}); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}

	seed, err := LoadSeed("")
	if err != nil {
		t.Fatalf("LoadSeed() error = %v", err)
	}
	if err := Seed(ctx, db, seed); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	// seeding twice upserts
	if err := Seed(ctx, db, seed); err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}

	c := NewPostgresCatalogue(db)

	list, err := c.ListActions(ctx)
	if err != nil {
		t.Fatalf("ListActions() error = %v", err)
	}
	if len(list) != len(seed) {
		t.Fatalf("got %d actions, want %d", len(list), len(seed))
	}
	for i := range seed {
		if list[i].ID != seed[i].ID {
			t.Errorf("action[%d] = %s, want %s", i, list[i].ID, seed[i].ID)
		}
	}

	got, err := c.GetAction(ctx, "action_well_stretch")
	if err != nil {
		t.Fatalf("GetAction() error = %v", err)
	}
	if got.Category != "well_being" || got.DurationMin != 5 || got.IsPremium {
		t.Errorf("GetAction() = %+v", got)
	}

	if _, err := c.GetAction(ctx, "action_missing"); !errors.Is(err, domain.ErrActionNotFound) {
		t.Errorf("GetAction(missing) error = %v", err)
	}
}
