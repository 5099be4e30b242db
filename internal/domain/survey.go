package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Survey holds a user's answers. The generation pipeline only reads it.
type Survey struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"column:name" json:"name"`
	AuthorID  int64          `gorm:"column:author_id;not null;index" json:"author_id"`
	Status    SurveyStatus   `gorm:"column:status;not null;default:draft" json:"status"`
	City      City           `gorm:"column:city;not null;default:perm" json:"city"`
	Data      datatypes.JSON `gorm:"column:data;type:jsonb" json:"data,omitempty"`
	Places    datatypes.JSON `gorm:"column:places;type:jsonb" json:"places,omitempty"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Survey) TableName() string { return "surveys" }

// SurveyPlaceSlot is one entry of Survey.Places, keyed by slot number.
type SurveyPlaceSlot struct {
	PlaceID     *int64  `json:"place_id,omitempty" validate:"omitempty,gt=0"`
	Category    *string `json:"category,omitempty" validate:"omitempty,min=1"`
	Type        *string `json:"type,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1"`
}

// Empty reports whether no field of the slot is set; such slots are ignored.
func (s SurveyPlaceSlot) Empty() bool {
	return s.PlaceID == nil && s.Category == nil && s.Type == nil && s.Description == nil
}
