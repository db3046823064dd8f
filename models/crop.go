package models

import "time"

// Crop is a planting record belonging to a farm.
type Crop struct {
	ID           uint `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	FarmID       uint       `gorm:"index;not null"`
	Farm         Farm       `gorm:"foreignKey:FarmID;references:ID"`
	CropType     string     `gorm:"size:128;not null"`
	Variety      string     `gorm:"size:128"`
	PlantingDate time.Time  `gorm:"not null"`
	HarvestDate  *time.Time // expected harvest, optional
}
