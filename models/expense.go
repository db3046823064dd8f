package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a dated, categorized monetary outflow recorded by a farmer,
// optionally attributed to one of their farms. Amount is stored as a
// decimal to keep aggregate arithmetic exact.
type Expense struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	FarmerID    uint            `gorm:"index;not null"`
	Farmer      Farmer          `gorm:"foreignKey:FarmerID;references:ID"`
	FarmID      *uint           `gorm:"index"`
	Farm        *Farm           `gorm:"foreignKey:FarmID;references:ID"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ExpenseType string          `gorm:"size:64;not null;index"`
	ExpenseDate time.Time       `gorm:"not null;index"`
	Description string          `gorm:"size:512"`
	// Budget fields set through the budget form, empty until then.
	BudgetAmount *decimal.Decimal `gorm:"type:decimal(12,2)"`
	BudgetNote   string           `gorm:"size:255"`
}

// ExpenseCategory is the master table of known expense types. Seeded at
// boot; expense_type values are validated against it.
type ExpenseCategory struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string `gorm:"size:64;uniqueIndex;not null"`
	Description string `gorm:"size:255"`
}
