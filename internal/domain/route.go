package domain

import (
	"time"

	"github.com/google/uuid"
)

type Route struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string    `gorm:"column:name;not null" json:"name"`
	Type     RouteType `gorm:"column:type;not null;default:mixed" json:"type"`
	City     City      `gorm:"column:city;not null;default:perm" json:"city"`
	AuthorID int64     `gorm:"column:author_id;not null;index" json:"author_id"`
	Duration *int      `gorm:"column:duration" json:"duration,omitempty"`
	Distance *int      `gorm:"column:distance" json:"distance,omitempty"`
	IsCustom bool      `gorm:"column:is_custom;not null;default:false" json:"is_custom"`
	// IsPublished gates the public feed. Generated routes start unpublished.
	IsPublished bool `gorm:"column:is_published;not null;default:false" json:"is_published"`
	// GenerationID is set for generated routes and makes redelivered jobs a no-op.
	GenerationID *uuid.UUID   `gorm:"column:generation_id;type:uuid;uniqueIndex" json:"generation_id,omitempty"`
	Places       []RoutePlace `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE" json:"places"`
	CreatedAt    time.Time    `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Route) TableName() string { return "routes" }

// RoutePlace orders are dense 1..N within a route.
type RoutePlace struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	RouteID int64  `gorm:"column:route_id;not null;uniqueIndex:idx_route_place_order,priority:1" json:"route_id"`
	PlaceID int64  `gorm:"column:place_id;not null;index" json:"place_id"`
	Order   int    `gorm:"column:order;not null;uniqueIndex:idx_route_place_order,priority:2" json:"order"`
	Place   *Place `gorm:"foreignKey:PlaceID" json:"place,omitempty"`
}

func (RoutePlace) TableName() string { return "route_places" }

// PlaceIDs returns the route's place ids in visiting order.
func (r *Route) PlaceIDs() []int64 {
	out := make([]int64, 0, len(r.Places))
	for _, rp := range r.Places {
		out = append(out, rp.PlaceID)
	}
	return out
}

func AllModels() []any {
	return []any{&User{}, &Survey{}, &Place{}, &Route{}, &RoutePlace{}}
}
