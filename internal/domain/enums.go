package domain

import "strings"

type RouteType string

const (
	RouteTypeWalking         RouteType = "walking"
	RouteTypeCar             RouteType = "car"
	RouteTypeBicycle         RouteType = "bicycle"
	RouteTypePublicTransport RouteType = "public_transport"
	RouteTypeMixed           RouteType = "mixed"
)

// RouteTypeValues is kept in sync with the validator's oneof tag on RouteProposal.
var RouteTypeValues = []RouteType{
	RouteTypeWalking,
	RouteTypeCar,
	RouteTypeBicycle,
	RouteTypePublicTransport,
	RouteTypeMixed,
}

type City string

const CityPerm City = "perm"

type SurveyStatus string

const (
	SurveyStatusDraft     SurveyStatus = "draft"
	SurveyStatusSubmitted SurveyStatus = "submitted"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// GenerationMode selects the prompt template. It does not affect admission or persistence.
type GenerationMode string

const (
	GenerationModeFull    GenerationMode = "FULL"
	GenerationModePartial GenerationMode = "PARTIAL"
)

func ParseGenerationMode(raw string) (GenerationMode, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "", string(GenerationModeFull):
		return GenerationModeFull, true
	case string(GenerationModePartial):
		return GenerationModePartial, true
	default:
		return "", false
	}
}
