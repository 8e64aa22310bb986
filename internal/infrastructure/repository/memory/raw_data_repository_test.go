package memory

import (
	"context"
	"testing"

	"github.com/riskibarqy/sports-reconciler/internal/domain/rawdata"
)

func TestRawDataRepository_FiltersByScope(t *testing.T) {
	repo := NewRawDataRepository(SeedTeamRows(), SeedGameRows())
	ctx := context.Background()

	all, err := repo.ListTeamRows(ctx, "Soccer", "")
	if err != nil {
		t.Fatalf("list team rows: %v", err)
	}
	if len(all) != len(SeedTeamRows()) {
		t.Fatalf("unexpected team row count: got=%d want=%d", len(all), len(SeedTeamRows()))
	}

	epl, err := repo.ListTeamRows(ctx, SportSoccer, "premier league")
	if err != nil {
		t.Fatalf("list team rows: %v", err)
	}
	if len(epl) != 2 {
		t.Fatalf("unexpected premier league rows: got=%d want=2", len(epl))
	}

	games, err := repo.ListGameRows(ctx, SportSoccer, LeagueLiga1Indonesia)
	if err != nil {
		t.Fatalf("list game rows: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("unexpected liga 1 game rows: got=%d want=3", len(games))
	}

	none, err := repo.ListGameRows(ctx, "basketball", "")
	if err != nil {
		t.Fatalf("list game rows: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no basketball rows, got %d", len(none))
	}
}

func TestRawDataRepository_ReturnsCopies(t *testing.T) {
	repo := NewRawDataRepository(nil, nil)
	repo.AddTeamRows(StoredRow{Sport: "basketball", Payload: rawdata.Payload{"name": "Lakers"}})

	first, _ := repo.ListTeamRows(context.Background(), "basketball", "")
	first[0]["name"] = "Mutated"

	second, _ := repo.ListTeamRows(context.Background(), "basketball", "")
	if second[0]["name"] != "Lakers" {
		t.Fatalf("stored row was mutated through a returned payload: %v", second[0])
	}
}
