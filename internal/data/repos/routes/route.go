package routes

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/bestway-backend/internal/domain"
	"github.com/yungbote/bestway-backend/internal/pkg/dbctx"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

type RouteRepo interface {
	Create(dbc dbctx.Context, route *domain.Route) (*domain.Route, error)
	// GetByIDWithPlaces loads the route with its places in visiting order,
	// each with the referenced Place preloaded. Returns nil, nil when missing.
	GetByIDWithPlaces(dbc dbctx.Context, id int64) (*domain.Route, error)
	GetByGenerationID(dbc dbctx.Context, generationID uuid.UUID) (*domain.Route, error)
	CountByAuthor(dbc dbctx.Context, authorID int64) (int64, error)
}

type routeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRouteRepo(db *gorm.DB, baseLog *logger.Logger) RouteRepo {
	return &routeRepo{db: db, log: baseLog.With("repo", "RouteRepo")}
}

func (r *routeRepo) Create(dbc dbctx.Context, route *domain.Route) (*domain.Route, error) {
	// associations are written by RoutePlaceRepo so the order column stays under our control
	if err := dbc.DB(r.db).Omit("Places").Create(route).Error; err != nil {
		return nil, err
	}
	return route, nil
}

func (r *routeRepo) GetByIDWithPlaces(dbc dbctx.Context, id int64) (*domain.Route, error) {
	if id <= 0 {
		return nil, nil
	}
	var out []*domain.Route
	err := dbc.DB(r.db).
		Preload("Places", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order" ASC`)
		}).
		Preload("Places.Place").
		Where("id = ?", id).
		Limit(1).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *routeRepo) GetByGenerationID(dbc dbctx.Context, generationID uuid.UUID) (*domain.Route, error) {
	if generationID == uuid.Nil {
		return nil, nil
	}
	var ids []int64
	if err := dbc.DB(r.db).Model(&domain.Route{}).
		Where("generation_id = ?", generationID).
		Limit(1).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return r.GetByIDWithPlaces(dbc, ids[0])
}

func (r *routeRepo) CountByAuthor(dbc dbctx.Context, authorID int64) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).Model(&domain.Route{}).Where("author_id = ?", authorID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
