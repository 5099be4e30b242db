package places

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yungbote/bestway-backend/internal/data/repos/testutil"
	"github.com/yungbote/bestway-backend/internal/domain"
	"github.com/yungbote/bestway-backend/internal/pkg/dbctx"
)

func TestPlaceRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	testutil.SeedPlaces(t, ctx, tx, 1, 2, 3)
	other := &domain.Place{ID: 4, Name: "elsewhere", City: domain.City("kazan"), Category: "cafe"}
	if err := tx.Create(other).Error; err != nil {
		t.Fatalf("seed other city: %v", err)
	}

	repo := NewPlaceRepo(db, testutil.Logger(t))

	list, err := repo.ListByCity(dbc, domain.CityPerm)
	if err != nil {
		t.Fatalf("ListByCity: %v", err)
	}
	var ids []int64
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	if diff := cmp.Diff([]int64{1, 2, 3}, ids); diff != "" {
		t.Fatalf("ListByCity ids (-want +got):\n%s", diff)
	}

	none, err := repo.MissingIDs(dbc, []int64{3, 1, 1, 2})
	if err != nil {
		t.Fatalf("MissingIDs: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("MissingIDs: duplicates of existing ids should pass, got=%v", none)
	}

	missing, err := repo.MissingIDs(dbc, []int64{99, 1, 98, 99})
	if err != nil {
		t.Fatalf("MissingIDs: %v", err)
	}
	if diff := cmp.Diff([]int64{99, 98}, missing); diff != "" {
		t.Fatalf("MissingIDs (-want +got):\n%s", diff)
	}
}
