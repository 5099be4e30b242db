package testutil

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/bestway-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, phone string) *domain.User {
	tb.Helper()
	birth := time.Date(1995, 4, 12, 0, 0, 0, 0, time.UTC)
	g := domain.GenderFemale
	u := &domain.User{
		Phone:       phone,
		FirstName:   "Anna",
		LastName:    "Petrova",
		Description: "likes museums and long walks",
		Gender:      &g,
		BirthDate:   &birth,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedUserWithID creates a user with a fixed primary key.
func SeedUserWithID(tb testing.TB, ctx context.Context, tx *gorm.DB, id int64) *domain.User {
	tb.Helper()
	u := &domain.User{ID: id, Phone: "+7000000" + itoa(id), FirstName: "U"}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user %d: %v", id, err)
	}
	return u
}

func SeedSurvey(tb testing.TB, ctx context.Context, tx *gorm.DB, authorID int64, name string, slots map[string]domain.SurveyPlaceSlot) *domain.Survey {
	tb.Helper()
	s := &domain.Survey{
		Name:     name,
		AuthorID: authorID,
		Status:   domain.SurveyStatusSubmitted,
		City:     domain.CityPerm,
		Data:     datatypes.JSON([]byte(`{"budget":"medium","interests":["art","food"]}`)),
	}
	if slots != nil {
		raw, err := json.Marshal(slots)
		if err != nil {
			tb.Fatalf("marshal slots: %v", err)
		}
		s.Places = datatypes.JSON(raw)
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed survey: %v", err)
	}
	return s
}

// SeedSurveyWithID creates a survey with a fixed primary key.
func SeedSurveyWithID(tb testing.TB, ctx context.Context, tx *gorm.DB, id, authorID int64, name string) *domain.Survey {
	tb.Helper()
	s := &domain.Survey{
		ID:       id,
		Name:     name,
		AuthorID: authorID,
		Status:   domain.SurveyStatusSubmitted,
		City:     domain.CityPerm,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed survey %d: %v", id, err)
	}
	return s
}

func SeedPlace(tb testing.TB, ctx context.Context, tx *gorm.DB, id int64, name, category string) *domain.Place {
	tb.Helper()
	p := &domain.Place{
		ID:          id,
		Name:        name,
		City:        domain.CityPerm,
		Category:    category,
		Tags:        "center",
		Coordinates: datatypes.JSON([]byte(`[58.01,56.25]`)),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed place %d: %v", id, err)
	}
	return p
}

// SeedPlaces creates one place per id.
func SeedPlaces(tb testing.TB, ctx context.Context, tx *gorm.DB, ids ...int64) []*domain.Place {
	tb.Helper()
	out := make([]*domain.Place, 0, len(ids))
	for _, id := range ids {
		out = append(out, SeedPlace(tb, ctx, tx, id, "place "+itoa(id), "museum"))
	}
	return out
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
