package routegen

import (
	"encoding/json"

	"github.com/yungbote/bestway-backend/internal/domain"
)

// GenerationContent is serialized as the user message of the provider request.
type GenerationContent struct {
	UserData     UserData    `json:"user_data"`
	SurveyData   SurveyData  `json:"survey_data"`
	PlacesData   []PlaceData `json:"places_data"`
	AnchorPlaces []int64     `json:"anchor_places,omitempty"`
}

type UserData struct {
	FirstName   string         `json:"first_name,omitempty"`
	LastName    string         `json:"last_name,omitempty"`
	MiddleName  string         `json:"middle_name,omitempty"`
	Description string         `json:"description,omitempty"`
	Gender      *domain.Gender `json:"gender,omitempty"`
	BirthDate   string         `json:"birth_date,omitempty"`
}

type SurveyData struct {
	City   domain.City                       `json:"city"`
	Data   json.RawMessage                   `json:"data,omitempty"`
	Places map[string]domain.SurveyPlaceSlot `json:"places,omitempty"`
}

type PlaceData struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Type        string    `json:"type,omitempty"`
	Tags        string    `json:"tags,omitempty"`
	Coordinates []float64 `json:"coordinates,omitempty"`
	MapName     string    `json:"map_name,omitempty"`
}
