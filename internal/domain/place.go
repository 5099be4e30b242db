package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Place struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	City        City           `gorm:"column:city;not null;default:perm;index" json:"city"`
	Category    string         `gorm:"column:category;not null;index" json:"category"`
	Type        string         `gorm:"column:type" json:"type,omitempty"`
	Tags        string         `gorm:"column:tags" json:"tags,omitempty"`
	Coordinates datatypes.JSON `gorm:"column:coordinates;type:jsonb" json:"coordinates,omitempty"`
	MapName     string         `gorm:"column:map_name" json:"map_name,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Place) TableName() string { return "places" }
