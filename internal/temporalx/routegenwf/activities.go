package routegenwf

import (
	"context"

	"go.temporal.io/sdk/temporal"

	"github.com/yungbote/bestway-backend/internal/routegen"
)

type Activities struct {
	Runner routegen.Runner
}

func (a *Activities) Generate(ctx context.Context, job routegen.Job) (Result, error) {
	route, err := a.Runner.Run(ctx, job)
	if err != nil {
		return Result{}, temporal.NewNonRetryableApplicationError(
			"route generation failed",
			routegen.KindOf(err).String(),
			err,
		)
	}
	return Result{RouteID: route.ID, Places: len(route.Places)}, nil
}
