package domain

import "time"

type User struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Phone       string     `gorm:"column:phone;uniqueIndex;not null" json:"phone"`
	FirstName   string     `gorm:"column:first_name" json:"first_name,omitempty"`
	LastName    string     `gorm:"column:last_name" json:"last_name,omitempty"`
	MiddleName  string     `gorm:"column:middle_name" json:"middle_name,omitempty"`
	Description string     `gorm:"column:description;type:text" json:"description,omitempty"`
	Gender      *Gender    `gorm:"column:gender" json:"gender,omitempty"`
	BirthDate   *time.Time `gorm:"column:birth_date;type:date" json:"birth_date,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }
