package routes

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/bestway-backend/internal/domain"
	"github.com/yungbote/bestway-backend/internal/pkg/dbctx"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

type RoutePlaceRepo interface {
	// BulkCreate links placeIDs to the route with order 1..N following the slice order.
	BulkCreate(dbc dbctx.Context, routeID int64, placeIDs []int64) ([]*domain.RoutePlace, error)
}

type routePlaceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoutePlaceRepo(db *gorm.DB, baseLog *logger.Logger) RoutePlaceRepo {
	return &routePlaceRepo{db: db, log: baseLog.With("repo", "RoutePlaceRepo")}
}

func (r *routePlaceRepo) BulkCreate(dbc dbctx.Context, routeID int64, placeIDs []int64) ([]*domain.RoutePlace, error) {
	if routeID <= 0 {
		return nil, fmt.Errorf("route id required")
	}
	if len(placeIDs) == 0 {
		return []*domain.RoutePlace{}, nil
	}
	rows := make([]*domain.RoutePlace, 0, len(placeIDs))
	for i, placeID := range placeIDs {
		rows = append(rows, &domain.RoutePlace{
			RouteID: routeID,
			PlaceID: placeID,
			Order:   i + 1,
		})
	}
	if err := dbc.DB(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
