package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/yungbote/bestway-backend/internal/routegen"
)

const (
	TypeRouteGenerate = "routegen:generate"
	QueueRouteGen     = "routegen"
)

func NewRouteGenerateTask(job routegen.Job) (*asynq.Task, error) {
	payload, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", TypeRouteGenerate, err)
	}
	return asynq.NewTask(TypeRouteGenerate, payload), nil
}

func ParseRouteGeneratePayload(t *asynq.Task) (routegen.Job, error) {
	var job routegen.Job
	if err := json.Unmarshal(t.Payload(), &job); err != nil {
		return routegen.Job{}, fmt.Errorf("decode %s payload: %w", TypeRouteGenerate, err)
	}
	if job.UserID <= 0 || job.SurveyID <= 0 {
		return routegen.Job{}, fmt.Errorf("decode %s payload: missing user or survey", TypeRouteGenerate)
	}
	return job, nil
}
