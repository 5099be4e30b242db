package routegen

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/bestway-backend/internal/data/repos"
	"github.com/yungbote/bestway-backend/internal/domain"
	"github.com/yungbote/bestway-backend/internal/pkg/dbctx"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

// RouteStore writes one generated route.
type RouteStore interface {
	Persist(ctx context.Context, proposal RouteProposal, surveyID int64, generationID uuid.UUID) (*domain.Route, error)
}

type Persister struct {
	db          *gorm.DB
	log         *logger.Logger
	surveys     repos.SurveyRepo
	places      repos.PlaceRepo
	routes      repos.RouteRepo
	routePlaces repos.RoutePlaceRepo
}

func NewPersister(
	db *gorm.DB,
	log *logger.Logger,
	surveys repos.SurveyRepo,
	places repos.PlaceRepo,
	routes repos.RouteRepo,
	routePlaces repos.RoutePlaceRepo,
) *Persister {
	return &Persister{
		db:          db,
		log:         log.With("component", "RoutePersister"),
		surveys:     surveys,
		places:      places,
		routes:      routes,
		routePlaces: routePlaces,
	}
}

// Persist creates the route and its ordered places in one transaction and
// returns it fully hydrated. A route already stored under generationID is
// returned unchanged, so a redelivered job does not create a second route.
func (p *Persister) Persist(ctx context.Context, proposal RouteProposal, surveyID int64, generationID uuid.UUID) (*domain.Route, error) {
	const op = "persist"

	var routeID int64
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		if generationID != uuid.Nil {
			existing, err := p.routes.GetByGenerationID(dbc, generationID)
			if err != nil {
				return newError(KindInternal, op, err, "lookup generation")
			}
			if existing != nil {
				p.log.Info("route already persisted for generation", "generation_id", generationID, "route", existing.ID)
				routeID = existing.ID
				return nil
			}
		}

		missing, err := p.places.MissingIDs(dbc, proposal.Places)
		if err != nil {
			return newError(KindInternal, op, err, "check places")
		}
		if len(missing) > 0 {
			return newError(KindInvalidProposal, op, nil, "unknown place ids %v", missing)
		}

		survey, err := p.surveys.GetByID(dbc, surveyID)
		if err != nil {
			return newError(KindInternal, op, err, "load survey")
		}
		if survey == nil {
			return newError(KindNotFound, op, nil, "survey %d", surveyID)
		}

		route := &domain.Route{
			Name:     routeName(proposal, survey),
			Type:     proposal.Type,
			City:     survey.City,
			AuthorID: proposal.AuthorID,
		}
		if generationID != uuid.Nil {
			gid := generationID
			route.GenerationID = &gid
		}
		if _, err := p.routes.Create(dbc, route); err != nil {
			return newError(KindInternal, op, err, "create route")
		}
		if _, err := p.routePlaces.BulkCreate(dbc, route.ID, proposal.Places); err != nil {
			return newError(KindInternal, op, err, "create route places")
		}
		routeID = route.ID
		return nil
	})
	if err != nil {
		// a concurrent redelivery may have won the unique generation_id
		if KindOf(err) == KindInternal && generationID != uuid.Nil {
			if existing, lookupErr := p.routes.GetByGenerationID(dbctx.Context{Ctx: ctx}, generationID); lookupErr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}

	route, err := p.routes.GetByIDWithPlaces(dbctx.Context{Ctx: ctx}, routeID)
	if err != nil {
		return nil, newError(KindInternal, op, err, "reload route %d", routeID)
	}
	if route == nil {
		return nil, newError(KindInternal, op, nil, "route %d vanished after commit", routeID)
	}
	return route, nil
}

// routeName prefers the provider's name, then the survey's, then the default label.
func routeName(p RouteProposal, s *domain.Survey) string {
	if p.NameProvided {
		return p.Name
	}
	if s != nil && s.Name != "" {
		return s.Name
	}
	return DefaultRouteName
}
