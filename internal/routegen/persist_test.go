package routegen

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/bestway-backend/internal/data/repos"
	"github.com/yungbote/bestway-backend/internal/data/repos/testutil"
	"github.com/yungbote/bestway-backend/internal/domain"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

func newTestPersister(db *gorm.DB) *Persister {
	log := logger.NewNop()
	return NewPersister(db, log,
		repos.NewSurveyRepo(db, log),
		repos.NewPlaceRepo(db, log),
		repos.NewRouteRepo(db, log),
		repos.NewRoutePlaceRepo(db, log),
	)
}

func TestPersistOrdersPlaces(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, db, "+70000000020")
	s := testutil.SeedSurvey(t, ctx, db, u.ID, "old town", nil)
	testutil.SeedPlaces(t, ctx, db, 7, 12, 30)

	p := newTestPersister(db)
	route, err := p.Persist(ctx, RouteProposal{
		Name:     DefaultRouteName,
		Type:     domain.RouteTypeWalking,
		Places:   []int64{12, 7, 30},
		AuthorID: u.ID,
	}, s.ID, uuid.New())
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}

	if route.AuthorID != u.ID || route.City != domain.CityPerm || route.Type != domain.RouteTypeWalking {
		t.Fatalf("route fields: got=%+v", route)
	}
	if route.IsCustom || route.IsPublished {
		t.Fatalf("generated route must be neither custom nor published")
	}
	if diff := cmp.Diff([]int64{12, 7, 30}, route.PlaceIDs()); diff != "" {
		t.Fatalf("place order (-want +got):\n%s", diff)
	}
	for i, rp := range route.Places {
		if rp.Order != i+1 {
			t.Fatalf("order[%d]: want=%d got=%d", i, i+1, rp.Order)
		}
		if rp.Place == nil || rp.Place.ID != rp.PlaceID {
			t.Fatalf("place %d not hydrated", rp.PlaceID)
		}
	}
}

func TestPersistUnknownPlaceWritesNothing(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, db, "+70000000021")
	s := testutil.SeedSurvey(t, ctx, db, u.ID, "s", nil)
	testutil.SeedPlaces(t, ctx, db, 1, 2)

	beforeRoutes := testutil.Count(t, db, &domain.Route{})
	beforePlaces := testutil.Count(t, db, &domain.RoutePlace{})

	_, err := newTestPersister(db).Persist(ctx, RouteProposal{
		Name:     DefaultRouteName,
		Type:     domain.RouteTypeCar,
		Places:   []int64{1, 404, 2},
		AuthorID: u.ID,
	}, s.ID, uuid.New())
	if KindOf(err) != KindInvalidProposal {
		t.Fatalf("kind: want=%s got=%s (%v)", KindInvalidProposal, KindOf(err), err)
	}
	if got := testutil.Count(t, db, &domain.Route{}); got != beforeRoutes {
		t.Fatalf("routes: want=%d got=%d", beforeRoutes, got)
	}
	if got := testutil.Count(t, db, &domain.RoutePlace{}); got != beforePlaces {
		t.Fatalf("route places: want=%d got=%d", beforePlaces, got)
	}
}

func TestPersistIsIdempotentPerGeneration(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, db, "+70000000022")
	s := testutil.SeedSurvey(t, ctx, db, u.ID, "s", nil)
	testutil.SeedPlaces(t, ctx, db, 1, 2, 3)

	p := newTestPersister(db)
	gid := uuid.New()
	proposal := RouteProposal{Name: "loop", NameProvided: true, Type: domain.RouteTypeBicycle, Places: []int64{1, 2, 3}, AuthorID: u.ID}

	first, err := p.Persist(ctx, proposal, s.ID, gid)
	if err != nil {
		t.Fatalf("first Persist: %v", err)
	}
	second, err := p.Persist(ctx, proposal, s.ID, gid)
	if err != nil {
		t.Fatalf("second Persist: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("route id: want=%d got=%d", first.ID, second.ID)
	}
	if got := testutil.Count(t, db, &domain.Route{}); got != 1 {
		t.Fatalf("routes: want=1 got=%d", got)
	}
	if got := testutil.Count(t, db, &domain.RoutePlace{}); got != 3 {
		t.Fatalf("route places: want=3 got=%d", got)
	}
}

func TestPersistMissingSurvey(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, db, "+70000000023")
	testutil.SeedPlaces(t, ctx, db, 1)

	_, err := newTestPersister(db).Persist(ctx, RouteProposal{
		Name: DefaultRouteName, Type: domain.RouteTypeMixed, Places: []int64{1}, AuthorID: u.ID,
	}, 9999, uuid.New())
	if KindOf(err) != KindNotFound {
		t.Fatalf("kind: want=%s got=%s (%v)", KindNotFound, KindOf(err), err)
	}
	if got := testutil.Count(t, db, &domain.Route{}); got != 0 {
		t.Fatalf("routes: want=0 got=%d", got)
	}
}

func TestRouteName(t *testing.T) {
	cases := []struct {
		name     string
		proposal RouteProposal
		survey   *domain.Survey
		want     string
	}{
		{"provider name wins", RouteProposal{Name: "river walk", NameProvided: true}, &domain.Survey{Name: "weekend"}, "river walk"},
		{"survey name fallback", RouteProposal{Name: DefaultRouteName}, &domain.Survey{Name: "weekend"}, "weekend"},
		{"default label", RouteProposal{Name: DefaultRouteName}, &domain.Survey{}, DefaultRouteName},
		{"no survey", RouteProposal{Name: DefaultRouteName}, nil, DefaultRouteName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := routeName(tc.proposal, tc.survey); got != tc.want {
				t.Fatalf("routeName: want=%q got=%q", tc.want, got)
			}
		})
	}
}
