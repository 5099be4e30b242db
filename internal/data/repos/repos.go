package repos

import (
	"github.com/yungbote/bestway-backend/internal/data/repos/places"
	"github.com/yungbote/bestway-backend/internal/data/repos/routes"
	"github.com/yungbote/bestway-backend/internal/data/repos/survey"
	"github.com/yungbote/bestway-backend/internal/data/repos/user"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
	"gorm.io/gorm"
)

type UserRepo = user.UserRepo
type SurveyRepo = survey.SurveyRepo
type PlaceRepo = places.PlaceRepo
type RouteRepo = routes.RouteRepo
type RoutePlaceRepo = routes.RoutePlaceRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return user.NewUserRepo(db, baseLog)
}

func NewSurveyRepo(db *gorm.DB, baseLog *logger.Logger) SurveyRepo {
	return survey.NewSurveyRepo(db, baseLog)
}

func NewPlaceRepo(db *gorm.DB, baseLog *logger.Logger) PlaceRepo {
	return places.NewPlaceRepo(db, baseLog)
}

func NewRouteRepo(db *gorm.DB, baseLog *logger.Logger) RouteRepo {
	return routes.NewRouteRepo(db, baseLog)
}

func NewRoutePlaceRepo(db *gorm.DB, baseLog *logger.Logger) RoutePlaceRepo {
	return routes.NewRoutePlaceRepo(db, baseLog)
}
