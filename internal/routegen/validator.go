package routegen

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yungbote/bestway-backend/internal/domain"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

const DefaultRouteName = "Generated route"

// RouteProposal is the typed form of a provider reply. It lives only between
// the generation client and the persistence step.
type RouteProposal struct {
	Name     string           `json:"name" validate:"required,max=255"`
	Type     domain.RouteType `json:"type" validate:"required,oneof=walking car bicycle public_transport mixed"`
	Places   []int64          `json:"places" validate:"required,min=1,dive,gt=0"`
	AuthorID int64            `json:"author_id" validate:"gt=0"`
	// NameProvided is false when Name fell back to DefaultRouteName.
	NameProvided bool `json:"-"`
}

type proposalWire struct {
	Name   *string `json:"name"`
	Type   string  `json:"type"`
	Places []int64 `json:"places"`
}

type ProposalValidator struct {
	log      *logger.Logger
	validate *validator.Validate
}

func NewProposalValidator(log *logger.Logger) *ProposalValidator {
	return &ProposalValidator{
		log:      log.With("component", "ProposalValidator"),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate turns a raw provider object into a RouteProposal. Place existence is
// checked later, inside the persistence transaction.
func (pv *ProposalValidator) Validate(raw map[string]any, authorID int64) (RouteProposal, error) {
	const op = "validate_proposal"
	encoded, err := json.Marshal(raw)
	if err != nil {
		return RouteProposal{}, pv.invalid(op, err, "", "unencodable proposal")
	}

	var wire proposalWire
	dec := json.NewDecoder(bytes.NewReader(encoded))
	if err := dec.Decode(&wire); err != nil {
		return RouteProposal{}, pv.invalid(op, err, string(encoded), "proposal has wrong field types")
	}

	p := RouteProposal{
		Type:     domain.RouteType(strings.ToLower(strings.TrimSpace(wire.Type))),
		Places:   wire.Places,
		AuthorID: authorID,
	}
	if wire.Name != nil && strings.TrimSpace(*wire.Name) != "" {
		p.Name = strings.TrimSpace(*wire.Name)
		p.NameProvided = true
	} else {
		p.Name = DefaultRouteName
	}

	if err := pv.validate.Struct(p); err != nil {
		return RouteProposal{}, pv.invalid(op, err, string(encoded), "proposal failed validation")
	}
	return p, nil
}

func (pv *ProposalValidator) invalid(op string, err error, raw, msg string) error {
	pv.log.Warn("provider returned invalid route proposal", "error", err, "raw", raw)
	e := newError(KindInvalidProposal, op, err, "%s", msg)
	e.Raw = raw
	return e
}
