package models

import "time"

// Farm is a land/operation unit owned by exactly one farmer.
type Farm struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	FarmerID  uint    `gorm:"index;not null"`
	Farmer    Farmer  `gorm:"foreignKey:FarmerID;references:ID"`
	Name      string  `gorm:"size:255;not null"`
	Location  string  `gorm:"size:255"`
	SizeAcres float64 `gorm:"not null"`
	Crops     []Crop      `gorm:"foreignKey:FarmID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Livestock []Livestock `gorm:"foreignKey:FarmID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
