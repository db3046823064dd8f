package models

import "time"

// Livestock is a herd/flock record belonging to a farm.
type Livestock struct {
	ID           uint `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	FarmID       uint   `gorm:"index;not null"`
	Farm         Farm   `gorm:"foreignKey:FarmID;references:ID"`
	Species      string `gorm:"size:128;not null"`
	Breed        string `gorm:"size:128"`
	Count        int    `gorm:"not null"`
	HealthStatus string `gorm:"size:255"`
}
