package places

import (
	"gorm.io/gorm"

	"github.com/yungbote/bestway-backend/internal/domain"
	"github.com/yungbote/bestway-backend/internal/pkg/dbctx"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

type PlaceRepo interface {
	ListByCity(dbc dbctx.Context, city domain.City) ([]*domain.Place, error)
	// MissingIDs returns the distinct ids that do not exist, in first-seen
	// order. Duplicates are allowed; an empty list has nothing missing.
	MissingIDs(dbc dbctx.Context, ids []int64) ([]int64, error)
}

type placeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlaceRepo(db *gorm.DB, baseLog *logger.Logger) PlaceRepo {
	return &placeRepo{db: db, log: baseLog.With("repo", "PlaceRepo")}
}

func (r *placeRepo) ListByCity(dbc dbctx.Context, city domain.City) ([]*domain.Place, error) {
	var out []*domain.Place
	q := dbc.DB(r.db)
	if city != "" {
		q = q.Where("city = ?", city)
	}
	if err := q.Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *placeRepo) MissingIDs(dbc dbctx.Context, ids []int64) ([]int64, error) {
	want := distinct(ids)
	if len(want) == 0 {
		return nil, nil
	}
	var found []int64
	if err := dbc.DB(r.db).Model(&domain.Place{}).Where("id IN ?", want).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	seen := make(map[int64]struct{}, len(found))
	for _, id := range found {
		seen[id] = struct{}{}
	}
	var missing []int64
	for _, id := range want {
		if _, ok := seen[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func distinct(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
