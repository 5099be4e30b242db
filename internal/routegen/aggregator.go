package routegen

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/yungbote/bestway-backend/internal/data/repos"
	"github.com/yungbote/bestway-backend/internal/domain"
	"github.com/yungbote/bestway-backend/internal/pkg/dbctx"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

// ContentBuilder assembles the provider input for one user and survey.
type ContentBuilder interface {
	Build(ctx context.Context, userID, surveyID int64) (GenerationContent, error)
}

type Aggregator struct {
	log      *logger.Logger
	users    repos.UserRepo
	surveys  repos.SurveyRepo
	places   repos.PlaceRepo
	validate *validator.Validate
}

func NewAggregator(log *logger.Logger, users repos.UserRepo, surveys repos.SurveyRepo, places repos.PlaceRepo) *Aggregator {
	return &Aggregator{
		log:      log.With("component", "ContentAggregator"),
		users:    users,
		surveys:  surveys,
		places:   places,
		validate: validator.New(),
	}
}

func (a *Aggregator) Build(ctx context.Context, userID, surveyID int64) (GenerationContent, error) {
	const op = "aggregate"
	dbc := dbctx.Context{Ctx: ctx}

	user, err := a.users.GetByID(dbc, userID)
	if err != nil {
		return GenerationContent{}, newError(KindInternal, op, err, "load user")
	}
	if user == nil {
		return GenerationContent{}, newError(KindNotFound, op, nil, "user %d", userID)
	}
	survey, err := a.surveys.GetByID(dbc, surveyID)
	if err != nil {
		return GenerationContent{}, newError(KindInternal, op, err, "load survey")
	}
	// another user's survey is reported exactly like a missing one
	if survey == nil || survey.AuthorID != userID {
		return GenerationContent{}, newError(KindNotFound, op, nil, "survey %d", surveyID)
	}
	places, err := a.places.ListByCity(dbc, survey.City)
	if err != nil {
		return GenerationContent{}, newError(KindInternal, op, err, "load places")
	}

	slots := a.surveySlots(survey)
	content := GenerationContent{
		UserData: userData(user),
		SurveyData: SurveyData{
			City:   survey.City,
			Data:   rawOrNil(survey.Data),
			Places: slots,
		},
		PlacesData:   make([]PlaceData, 0, len(places)),
		AnchorPlaces: anchorPlaces(slots),
	}
	for _, p := range places {
		content.PlacesData = append(content.PlacesData, placeData(a.log, p))
	}
	a.log.Debug("generation content built",
		"user", userID,
		"survey", surveyID,
		"places", len(content.PlacesData),
		"anchors", len(content.AnchorPlaces),
	)
	return content, nil
}

func (a *Aggregator) surveySlots(s *domain.Survey) map[string]domain.SurveyPlaceSlot {
	if len(s.Places) == 0 {
		return nil
	}
	var raw map[string]domain.SurveyPlaceSlot
	if err := json.Unmarshal(s.Places, &raw); err != nil {
		a.log.Warn("survey places unreadable; ignoring", "survey", s.ID, "error", err)
		return nil
	}
	out := make(map[string]domain.SurveyPlaceSlot, len(raw))
	for key, slot := range raw {
		if slot.Empty() {
			continue
		}
		if err := a.validate.Struct(slot); err != nil {
			a.log.Warn("survey place slot rejected", "survey", s.ID, "slot", key, "error", err)
			continue
		}
		out[key] = slot
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// anchorPlaces lists pinned place ids ordered by numeric slot key.
func anchorPlaces(slots map[string]domain.SurveyPlaceSlot) []int64 {
	type pinned struct {
		slot    int
		key     string
		placeID int64
	}
	var pins []pinned
	for key, s := range slots {
		if s.PlaceID == nil {
			continue
		}
		n, err := strconv.Atoi(key)
		if err != nil {
			n = int(^uint(0) >> 1)
		}
		pins = append(pins, pinned{slot: n, key: key, placeID: *s.PlaceID})
	}
	sort.Slice(pins, func(i, j int) bool {
		if pins[i].slot != pins[j].slot {
			return pins[i].slot < pins[j].slot
		}
		return pins[i].key < pins[j].key
	})
	out := make([]int64, 0, len(pins))
	for _, p := range pins {
		out = append(out, p.placeID)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func userData(u *domain.User) UserData {
	out := UserData{
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		MiddleName:  u.MiddleName,
		Description: u.Description,
		Gender:      u.Gender,
	}
	if u.BirthDate != nil {
		out.BirthDate = u.BirthDate.Format(dayLayout)
	}
	return out
}

func placeData(log *logger.Logger, p *domain.Place) PlaceData {
	out := PlaceData{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Type:     p.Type,
		Tags:     p.Tags,
		MapName:  p.MapName,
	}
	if len(p.Coordinates) > 0 {
		if err := json.Unmarshal(p.Coordinates, &out.Coordinates); err != nil {
			log.Debug("place coordinates unreadable", "place", p.ID, "error", err)
			out.Coordinates = nil
		}
	}
	return out
}

func rawOrNil(b []byte) json.RawMessage {
	if len(b) == 0 {
		return nil
	}
	return json.RawMessage(b)
}
