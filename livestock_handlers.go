package main

import (
	"net/http"
	"strconv"

	"farmledger/models"

	"github.com/gin-gonic/gin"
)

type livestockForm struct {
	FarmID       uint   `form:"farm_id" json:"farm_id"`
	Species      string `form:"species" json:"species" binding:"required"`
	Breed        string `form:"breed" json:"breed"`
	Count        int    `form:"count" json:"count" binding:"required,min=1"`
	HealthStatus string `form:"health_status" json:"health_status"`
}

func listLivestockHandler(c *gin.Context) {
	var herds []models.Livestock
	if err := db.Order("id").Find(&herds).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, herds)
}

func viewLivestockHandler(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var ls models.Livestock
	if err := db.First(&ls, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "livestock not found"})
		return
	}
	c.JSON(http.StatusOK, ls)
}

func addLivestockFormHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": livestockForm{}})
}

// addLivestockHandler mirrors addCropHandler: explicit owned farm_id, with a
// soft redirect to farm creation when the farmer has no farms yet.
func addLivestockHandler(c *gin.Context) {
	farmer, ok := getFarmerFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/register")
		return
	}
	var count int64
	db.Model(&models.Farm{}).Where("farmer_id = ?", farmer.ID).Count(&count)
	if count == 0 {
		c.Redirect(http.StatusSeeOther, "/farms/add")
		return
	}
	var req livestockForm
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	farm, err := ownedFarm(farmer, req.FarmID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ls := models.Livestock{FarmID: farm.ID, Species: req.Species, Breed: req.Breed, Count: req.Count, HealthStatus: req.HealthStatus}
	if err := db.Create(&ls).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/livestock")
}

func editLivestockFormHandler(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var ls models.Livestock
	if err := db.First(&ls, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "livestock not found"})
		return
	}
	form := livestockForm{FarmID: ls.FarmID, Species: ls.Species, Breed: ls.Breed, Count: ls.Count, HealthStatus: ls.HealthStatus}
	c.JSON(http.StatusOK, gin.H{"form": form, "livestock": ls})
}

func editLivestockHandler(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var ls models.Livestock
	if err := db.First(&ls, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "livestock not found"})
		return
	}
	var req livestockForm
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ls.Species = req.Species
	ls.Breed = req.Breed
	ls.Count = req.Count
	ls.HealthStatus = req.HealthStatus
	if err := db.Save(&ls).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/livestock")
}

func deleteLivestockConfirmHandler(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var ls models.Livestock
	if err := db.First(&ls, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "livestock not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"confirm": "delete livestock?", "livestock": ls})
}

func deleteLivestockHandler(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var ls models.Livestock
	if err := db.First(&ls, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "livestock not found"})
		return
	}
	if err := db.Delete(&ls).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/livestock")
}
