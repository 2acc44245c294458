package models

import (
	"time"

	"gorm.io/datatypes"
)

type Absence struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_absences_user_date" json:"user_id"`
	Date      datatypes.Date `gorm:"not null;uniqueIndex:idx_absences_user_date" json:"date"`
	Type      string         `gorm:"type:varchar(64);not null" json:"type"` // произвольная метка: vacation, sick, ...
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Absence) TableName() string {
	return "absences"
}

type Delegation struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_delegations_user_date" json:"user_id"`
	Date      datatypes.Date `gorm:"not null;uniqueIndex:idx_delegations_user_date" json:"date"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Delegation) TableName() string {
	return "delegations"
}
