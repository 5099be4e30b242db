package survey

import (
	"gorm.io/gorm"

	"github.com/yungbote/bestway-backend/internal/domain"
	"github.com/yungbote/bestway-backend/internal/pkg/dbctx"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

type SurveyRepo interface {
	Create(dbc dbctx.Context, s *domain.Survey) (*domain.Survey, error)
	// GetByID returns nil, nil when the survey does not exist.
	GetByID(dbc dbctx.Context, id int64) (*domain.Survey, error)
}

type surveyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSurveyRepo(db *gorm.DB, baseLog *logger.Logger) SurveyRepo {
	return &surveyRepo{db: db, log: baseLog.With("repo", "SurveyRepo")}
}

func (r *surveyRepo) Create(dbc dbctx.Context, s *domain.Survey) (*domain.Survey, error) {
	if err := dbc.DB(r.db).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

func (r *surveyRepo) GetByID(dbc dbctx.Context, id int64) (*domain.Survey, error) {
	if id <= 0 {
		return nil, nil
	}
	var out []*domain.Survey
	if err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}
