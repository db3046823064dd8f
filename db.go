package main

import (
	"log"
	"os"
	"strings"

	"farmledger/models"

	sqlite "github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

// openDB connects to Postgres when DB_DSN is set, otherwise to a local
// sqlite file (CGO-free driver). Tests point DB_PATH at :memory:.
func openDB() (*gorm.DB, error) {
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "farmledger.db"
	}
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}

func initDB() {
	var err error
	db, err = openDB()
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true).
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	// Ensure the master tables exist first so the FKs on users/expenses can be applied safely.
	if shouldMigrate {
		if err := db.AutoMigrate(&models.Role{}); err != nil {
			log.Printf("migration warning (roles): %v", err)
		}
		if err := db.AutoMigrate(&models.ExpenseCategory{}); err != nil {
			log.Printf("migration warning (expense_categories): %v", err)
		}
		// Migrate models individually so a failure on one doesn't block others
		if err := db.AutoMigrate(&models.User{}); err != nil {
			log.Printf("migration warning (users): %v", err)
		}
		if err := db.AutoMigrate(&models.Farmer{}); err != nil {
			log.Printf("migration warning (farmers): %v", err)
		}
		if err := db.AutoMigrate(&models.Farm{}); err != nil {
			log.Printf("migration warning (farms): %v", err)
		}
		if err := db.AutoMigrate(&models.Crop{}); err != nil {
			log.Printf("migration warning (crops): %v", err)
		}
		if err := db.AutoMigrate(&models.Livestock{}); err != nil {
			log.Printf("migration warning (livestock): %v", err)
		}
		if err := db.AutoMigrate(&models.Expense{}); err != nil {
			log.Printf("migration warning (expenses): %v", err)
		}
		if err := db.AutoMigrate(&models.RefreshToken{}); err != nil {
			log.Printf("migration warning (refresh_tokens): %v", err)
		}
	}
	seedDB()
}

func seedDB() {
	// Ensure master roles exist
	roles := []models.Role{{Name: "administrator", Description: "full access"}, {Name: "user", Description: "regular user"}}
	for _, r := range roles {
		var cnt int64
		db.Model(&models.Role{}).Where("name = ?", r.Name).Count(&cnt)
		if cnt == 0 {
			db.Create(&r)
		}
	}

	// Ensure known expense categories exist
	categories := []models.ExpenseCategory{
		{Name: "seeds", Description: "seed and seedling purchases"},
		{Name: "fertilizer", Description: "fertilizer and soil amendments"},
		{Name: "equipment", Description: "machinery purchase and repair"},
		{Name: "labor", Description: "hired labor"},
		{Name: "feed", Description: "animal feed"},
		{Name: "veterinary", Description: "veterinary care and medicine"},
		{Name: "fuel", Description: "fuel and lubricants"},
		{Name: "utilities", Description: "water, electricity, irrigation"},
		{Name: "other", Description: "uncategorized expenses"},
	}
	for _, cat := range categories {
		var cnt int64
		db.Model(&models.ExpenseCategory{}).Where("name = ?", cat.Name).Count(&cnt)
		if cnt == 0 {
			db.Create(&cat)
		}
	}

	// Check if admin user exists
	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count == 0 {
		var role models.Role
		if err := db.Where("name = ?", "administrator").First(&role).Error; err != nil {
			log.Printf("failed to find administrator role: %v", err)
		}
		rid := role.ID
		admin := models.User{
			Username: "admin",
			RoleID:   &rid,
		}
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		admin.HashedPassword = hashedPassword
		db.Create(&admin)
		log.Println("Seeded admin user: username=admin, password=admin123")
	}
	// Ensure admin has a one-to-one farmer profile
	var admin models.User
	if err := db.Where("username = ?", "admin").First(&admin).Error; err != nil {
		log.Printf("failed to find admin user after seeding: %v", err)
		return
	}
	var fcount int64
	db.Model(&models.Farmer{}).Where("user_id = ?", admin.ID).Count(&fcount)
	if fcount == 0 {
		farmer := models.Farmer{UserID: admin.ID, Name: "Administrator"}
		if err := db.Create(&farmer).Error; err != nil {
			log.Printf("failed to create farmer profile for admin: %v", err)
		} else {
			log.Println("Seeded admin farmer profile for user id:", admin.ID)
		}
	}
}

// validExpenseType reports whether t is one of the seeded categories.
func validExpenseType(t string) bool {
	var cnt int64
	db.Model(&models.ExpenseCategory{}).Where("name = ?", t).Count(&cnt)
	return cnt > 0
}
