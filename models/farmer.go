package models

import "time"

// Farmer represents a user's farmer profile (one-to-one with User). A user
// account has at most one farmer profile; all farms hang off it.
type Farmer struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time `gorm:"index"`
	UserID    uint       `gorm:"uniqueIndex;not null"` // one-to-one relation
	User      User       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name      string     `gorm:"size:255;not null"` // mandatory
	Address   string     `gorm:"size:512"`
	Phone     string     `gorm:"size:64"`
	// Farms is a one-to-many relation from Farmer to Farm
	Farms []Farm `gorm:"foreignKey:FarmerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
