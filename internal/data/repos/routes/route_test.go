package routes

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/yungbote/bestway-backend/internal/data/repos/testutil"
	"github.com/yungbote/bestway-backend/internal/domain"
	"github.com/yungbote/bestway-backend/internal/pkg/dbctx"
)

func TestRouteRepoCreateAndHydrate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	log := testutil.Logger(t)

	u := testutil.SeedUser(t, ctx, tx, "+70000000003")
	testutil.SeedPlaces(t, ctx, tx, 7, 12, 30)

	routeRepo := NewRouteRepo(db, log)
	rpRepo := NewRoutePlaceRepo(db, log)

	gid := uuid.New()
	route, err := routeRepo.Create(dbc, &domain.Route{
		Name:         "evening",
		Type:         domain.RouteTypeWalking,
		City:         domain.CityPerm,
		AuthorID:     u.ID,
		GenerationID: &gid,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := rpRepo.BulkCreate(dbc, route.ID, []int64{12, 7, 30})
	if err != nil {
		t.Fatalf("BulkCreate: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("BulkCreate: want=3 got=%d", len(rows))
	}

	got, err := routeRepo.GetByIDWithPlaces(dbc, route.ID)
	if err != nil {
		t.Fatalf("GetByIDWithPlaces: %v", err)
	}
	if got == nil {
		t.Fatalf("GetByIDWithPlaces: route not found")
	}
	if diff := cmp.Diff([]int64{12, 7, 30}, got.PlaceIDs()); diff != "" {
		t.Fatalf("place order (-want +got):\n%s", diff)
	}
	for i, rp := range got.Places {
		if rp.Order != i+1 {
			t.Fatalf("order[%d]: want=%d got=%d", i, i+1, rp.Order)
		}
		if rp.Place == nil || rp.Place.ID != rp.PlaceID {
			t.Fatalf("place %d not preloaded: %+v", rp.PlaceID, rp.Place)
		}
	}

	byGen, err := routeRepo.GetByGenerationID(dbc, gid)
	if err != nil {
		t.Fatalf("GetByGenerationID: %v", err)
	}
	if byGen == nil || byGen.ID != route.ID {
		t.Fatalf("GetByGenerationID: unexpected result: %+v", byGen)
	}

	none, err := routeRepo.GetByGenerationID(dbc, uuid.New())
	if err != nil || none != nil {
		t.Fatalf("GetByGenerationID (unknown): want nil,nil got %+v,%v", none, err)
	}

	n, err := routeRepo.CountByAuthor(dbc, u.ID)
	if err != nil {
		t.Fatalf("CountByAuthor: %v", err)
	}
	if n != 1 {
		t.Fatalf("CountByAuthor: want=1 got=%d", n)
	}
}

func TestRouteRepoGenerationIDUnique(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewRouteRepo(db, testutil.Logger(t))

	gid := uuid.New()
	if _, err := repo.Create(dbc, &domain.Route{Name: "a", AuthorID: 1, GenerationID: &gid}); err != nil {
		t.Fatalf("Create first: %v", err)
	}
	if _, err := repo.Create(dbc, &domain.Route{Name: "b", AuthorID: 1, GenerationID: &gid}); err == nil {
		t.Fatalf("Create duplicate generation id: expected error")
	}
}
