package main

import (
	"fmt"
	"net/http"

	"farmledger/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Route layout note: gin's radix tree does not allow a static segment next to
// a wildcard at the same level (/farms/add vs /farms/:id), so entity routes
// carry the action before the id: /farms/view/:id, /farms/edit/:id, ...
func setupRoutes(r *gin.Engine) {
	r.POST("/signup", signupHandler)
	r.POST("/login", loginHandler)
	r.POST("/refresh", refreshHandler)
	r.POST("/revoke_refresh", revokeRefreshHandler)

	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/me", meHandler)
	authGroup.GET("/register", registerFarmerFormHandler)
	authGroup.POST("/register", registerFarmerHandler)
	authGroup.GET("/dashboard", dashboardHandler)

	farms := authGroup.Group("/farms")
	farms.GET("", listFarmsHandler)
	farms.GET("/add", addFarmFormHandler)
	farms.POST("/add", addFarmHandler)
	farms.GET("/view/:id", viewFarmHandler)
	farms.GET("/edit/:id", editFarmFormHandler)
	farms.POST("/edit/:id", editFarmHandler)
	farms.GET("/delete/:id", deleteFarmConfirmHandler)
	farms.POST("/delete/:id", deleteFarmHandler)

	crops := authGroup.Group("/crops")
	crops.GET("", listCropsHandler)
	crops.GET("/add", addCropFormHandler)
	crops.POST("/add", addCropHandler)
	crops.GET("/view/:id", viewCropHandler)
	crops.GET("/edit/:id", editCropFormHandler)
	crops.POST("/edit/:id", editCropHandler)
	crops.GET("/delete/:id", deleteCropConfirmHandler)
	crops.POST("/delete/:id", deleteCropHandler)

	livestock := authGroup.Group("/livestock")
	livestock.GET("", listLivestockHandler)
	livestock.GET("/add", addLivestockFormHandler)
	livestock.POST("/add", addLivestockHandler)
	livestock.GET("/view/:id", viewLivestockHandler)
	livestock.GET("/edit/:id", editLivestockFormHandler)
	livestock.POST("/edit/:id", editLivestockHandler)
	livestock.GET("/delete/:id", deleteLivestockConfirmHandler)
	livestock.POST("/delete/:id", deleteLivestockHandler)

	expenses := authGroup.Group("/expenses")
	expenses.GET("", listExpensesHandler)
	expenses.GET("/add", addExpenseFormHandler)
	expenses.POST("/add", addExpenseHandler)
	expenses.GET("/view/:id", viewExpenseHandler)
	expenses.GET("/edit/:id", editExpenseFormHandler)
	expenses.POST("/edit/:id", editExpenseHandler)
	expenses.GET("/delete/:id", deleteExpenseConfirmHandler)
	expenses.POST("/delete/:id", deleteExpenseHandler)
	expenses.GET("/summary", expenseSummaryHandler)
	expenses.GET("/reports", detailedReportsHandler)
	expenses.GET("/financial-reports", financialReportsHandler)
	expenses.GET("/budget/:id", setBudgetFormHandler)
	expenses.POST("/budget/:id", setBudgetHandler)
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		username, _ := claims["username"].(string)
		role, _ := claims["role"].(string)
		c.Set("username", username)
		if role != "" {
			c.Set("role", role)
		}
		c.Next()
	}
}

func meHandler(c *gin.Context) {
	usernameVal, _ := c.Get("username")
	if usernameVal == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "context missing username"})
		return
	}
	username := usernameVal.(string)
	c.JSON(http.StatusOK, gin.H{"username": username})
}

// getUserFromContext fetches the currently authenticated user using the username set by jwtAuthMiddleware
func getUserFromContext(c *gin.Context) (*models.User, bool) {
	unameVal, _ := c.Get("username")
	if unameVal == nil {
		return nil, false
	}
	uname := unameVal.(string)
	var user models.User
	if err := db.Where("username = ?", uname).First(&user).Error; err != nil {
		return nil, false
	}
	return &user, true
}

// getFarmerFromContext resolves the acting user's farmer profile. Returns
// false when the user has not registered one yet.
func getFarmerFromContext(c *gin.Context) (*models.Farmer, bool) {
	user, ok := getUserFromContext(c)
	if !ok {
		return nil, false
	}
	var farmer models.Farmer
	if err := db.Where("user_id = ?", user.ID).First(&farmer).Error; err != nil {
		return nil, false
	}
	return &farmer, true
}

// ownedFarm resolves farmID against the farmer's owned-farm set.
func ownedFarm(farmer *models.Farmer, farmID uint) (*models.Farm, error) {
	if farmID == 0 {
		return nil, fmt.Errorf("farm_id required")
	}
	var farm models.Farm
	if err := db.Where("id = ? AND farmer_id = ?", farmID, farmer.ID).First(&farm).Error; err != nil {
		return nil, fmt.Errorf("farm_id does not reference one of your farms")
	}
	return &farm, nil
}

// dashboardHandler returns global counts of farms, crops and livestock.
func dashboardHandler(c *gin.Context) {
	var totalFarms, totalCrops, totalLivestock int64
	if err := db.Model(&models.Farm{}).Count(&totalFarms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if err := db.Model(&models.Crop{}).Count(&totalCrops).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if err := db.Model(&models.Livestock{}).Count(&totalLivestock).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_farms":     totalFarms,
		"total_crops":     totalCrops,
		"total_livestock": totalLivestock,
	})
}
