package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/bestway-backend/internal/data/repos"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

type Repos struct {
	User       repos.UserRepo
	Survey     repos.SurveyRepo
	Place      repos.PlaceRepo
	Route      repos.RouteRepo
	RoutePlace repos.RoutePlaceRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:       repos.NewUserRepo(db, log),
		Survey:     repos.NewSurveyRepo(db, log),
		Place:      repos.NewPlaceRepo(db, log),
		Route:      repos.NewRouteRepo(db, log),
		RoutePlace: repos.NewRoutePlaceRepo(db, log),
	}
}
