package user

import (
	"gorm.io/gorm"

	"github.com/yungbote/bestway-backend/internal/domain"
	"github.com/yungbote/bestway-backend/internal/pkg/dbctx"
	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

type UserRepo interface {
	Create(dbc dbctx.Context, users []*domain.User) ([]*domain.User, error)
	// GetByID returns nil, nil when the user does not exist.
	GetByID(dbc dbctx.Context, id int64) (*domain.User, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) Create(dbc dbctx.Context, users []*domain.User) ([]*domain.User, error) {
	if len(users) == 0 {
		return []*domain.User{}, nil
	}
	if err := dbc.DB(r.db).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) GetByID(dbc dbctx.Context, id int64) (*domain.User, error) {
	if id <= 0 {
		return nil, nil
	}
	var out []*domain.User
	if err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}
