package main

import (
	"net/http"
	"strconv"

	"farmledger/models"

	"github.com/gin-gonic/gin"
)

type farmForm struct {
	Name      string  `form:"name" json:"name" binding:"required"`
	Location  string  `form:"location" json:"location"`
	SizeAcres float64 `form:"size_acres" json:"size_acres"`
}

func listFarmsHandler(c *gin.Context) {
	var farms []models.Farm
	if err := db.Order("id").Find(&farms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, farms)
}

func viewFarmHandler(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var farm models.Farm
	if err := db.First(&farm, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "farm not found"})
		return
	}
	c.JSON(http.StatusOK, farm)
}

func addFarmFormHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": farmForm{}})
}

// addFarmHandler creates a farm owned by the acting farmer.
func addFarmHandler(c *gin.Context) {
	farmer, ok := getFarmerFromContext(c)
	if !ok {
		// no farmer profile yet: send the user to register one
		c.Redirect(http.StatusSeeOther, "/register")
		return
	}
	var req farmForm
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	farm := models.Farm{FarmerID: farmer.ID, Name: req.Name, Location: req.Location, SizeAcres: req.SizeAcres}
	if err := db.Create(&farm).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/farms")
}

func editFarmFormHandler(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var farm models.Farm
	if err := db.First(&farm, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "farm not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": farmForm{Name: farm.Name, Location: farm.Location, SizeAcres: farm.SizeAcres}, "farm": farm})
}

// editFarmHandler replaces the farm's mutable fields. The id and owner are
// immutable once created.
func editFarmHandler(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var farm models.Farm
	if err := db.First(&farm, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "farm not found"})
		return
	}
	var req farmForm
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	farm.Name = req.Name
	farm.Location = req.Location
	farm.SizeAcres = req.SizeAcres
	if err := db.Save(&farm).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/farms")
}

func deleteFarmConfirmHandler(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var farm models.Farm
	if err := db.First(&farm, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "farm not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"confirm": "delete farm?", "farm": farm})
}

func deleteFarmHandler(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var farm models.Farm
	if err := db.First(&farm, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "farm not found"})
		return
	}
	if err := db.Delete(&farm).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/farms")
}
