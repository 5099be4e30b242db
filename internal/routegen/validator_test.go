package routegen

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yungbote/bestway-backend/internal/domain"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

func TestProposalValidatorAccepts(t *testing.T) {
	pv := NewProposalValidator(logger.NewNop())
	got, err := pv.Validate(map[string]any{"type": "car", "places": []any{12.0, 7.0, 30.0}}, 6)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	want := RouteProposal{Name: DefaultRouteName, Type: domain.RouteTypeCar, Places: []int64{12, 7, 30}, AuthorID: 6}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("proposal (-want +got):\n%s", diff)
	}
	if got.NameProvided {
		t.Fatalf("NameProvided: want=false for a defaulted name")
	}

	named, err := pv.Validate(map[string]any{"name": "  Old town  ", "type": "Walking", "places": []any{1.0}}, 6)
	if err != nil {
		t.Fatalf("Validate named: %v", err)
	}
	if named.Name != "Old town" || !named.NameProvided || named.Type != domain.RouteTypeWalking {
		t.Fatalf("named proposal: got=%+v", named)
	}
}

func TestProposalValidatorRejects(t *testing.T) {
	pv := NewProposalValidator(logger.NewNop())
	cases := map[string]map[string]any{
		"unknown type":     {"type": "teleport", "places": []any{1.0}},
		"missing type":     {"places": []any{1.0}},
		"empty places":     {"type": "car", "places": []any{}},
		"missing places":   {"type": "car"},
		"fractional id":    {"type": "car", "places": []any{1.5}},
		"string id":        {"type": "car", "places": []any{"1"}},
		"non-positive id":  {"type": "car", "places": []any{0.0}},
		"places not array": {"type": "car", "places": "1,2"},
		"name too long":    {"name": strings.Repeat("x", 300), "type": "car", "places": []any{1.0}},
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := pv.Validate(raw, 6)
			if !errors.Is(err, ErrInvalidProposal) {
				t.Fatalf("want invalid proposal, got %v", err)
			}
			if RawPayload(err) == "" {
				t.Fatalf("raw payload must be attached")
			}
		})
	}
}

func TestProposalValidatorRequiresAuthor(t *testing.T) {
	pv := NewProposalValidator(logger.NewNop())
	if _, err := pv.Validate(map[string]any{"type": "car", "places": []any{1.0}}, 0); !errors.Is(err, ErrInvalidProposal) {
		t.Fatalf("zero author: want invalid proposal, got %v", err)
	}
}

// The oneof tag must list exactly the route types the domain knows.
func TestRouteTypeOneOfMatchesDomain(t *testing.T) {
	f, _ := reflect.TypeOf(RouteProposal{}).FieldByName("Type")
	tag := f.Tag.Get("validate")
	i := strings.Index(tag, "oneof=")
	if i < 0 {
		t.Fatalf("Type has no oneof rule: %q", tag)
	}
	allowed := strings.Fields(tag[i+len("oneof="):])
	var want []string
	for _, v := range domain.RouteTypeValues {
		want = append(want, string(v))
	}
	if diff := cmp.Diff(want, allowed); diff != "" {
		t.Fatalf("oneof (-domain +tag):\n%s", diff)
	}
}
