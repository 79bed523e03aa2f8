package models

import (
	"time"
)

// LocationRecord is one captured position. Records are append-only; ID is assigned on insert.
type LocationRecord struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Latitude  float64   `gorm:"not null" json:"latitude"`
	Longitude float64   `gorm:"not null" json:"longitude"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName keeps the table name stable regardless of gorm naming strategy.
func (LocationRecord) TableName() string {
	return "locations"
}
