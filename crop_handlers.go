package main

import (
	"net/http"
	"strconv"
	"time"

	"farmledger/models"

	"github.com/gin-gonic/gin"
)

type cropForm struct {
	FarmID       uint   `form:"farm_id" json:"farm_id"`
	CropType     string `form:"crop_type" json:"crop_type" binding:"required"`
	Variety      string `form:"variety" json:"variety"`
	PlantingDate string `form:"planting_date" json:"planting_date" binding:"required"` // YYYY-MM-DD
	HarvestDate  string `form:"harvest_date" json:"harvest_date"`
}

func listCropsHandler(c *gin.Context) {
	var crops []models.Crop
	if err := db.Order("id").Find(&crops).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, crops)
}

func viewCropHandler(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var crop models.Crop
	if err := db.First(&crop, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "crop not found"})
		return
	}
	c.JSON(http.StatusOK, crop)
}

func addCropFormHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": cropForm{}})
}

// addCropHandler creates a crop on one of the acting farmer's farms. The
// target farm is an explicit parameter and must be owned by the farmer; a
// farmer with no farms at all is sent to create one first.
func addCropHandler(c *gin.Context) {
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
	var req cropForm
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	farm, err := ownedFarm(farmer, req.FarmID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pd, err := time.Parse("2006-01-02", req.PlantingDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "planting_date must be YYYY-MM-DD"})
		return
	}
	crop := models.Crop{FarmID: farm.ID, CropType: req.CropType, Variety: req.Variety, PlantingDate: pd}
	if req.HarvestDate != "" {
		hd, err := time.Parse("2006-01-02", req.HarvestDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "harvest_date must be YYYY-MM-DD"})
			return
		}
		crop.HarvestDate = &hd
	}
	if err := db.Create(&crop).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/crops")
}

func editCropFormHandler(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var crop models.Crop
	if err := db.First(&crop, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "crop not found"})
		return
	}
	form := cropForm{FarmID: crop.FarmID, CropType: crop.CropType, Variety: crop.Variety, PlantingDate: crop.PlantingDate.Format("2006-01-02")}
	if crop.HarvestDate != nil {
		form.HarvestDate = crop.HarvestDate.Format("2006-01-02")
	}
	c.JSON(http.StatusOK, gin.H{"form": form, "crop": crop})
}

// editCropHandler replaces the crop's mutable fields; the farm binding is
// fixed at creation time.
func editCropHandler(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var crop models.Crop
	if err := db.First(&crop, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "crop not found"})
		return
	}
	var req cropForm
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pd, err := time.Parse("2006-01-02", req.PlantingDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "planting_date must be YYYY-MM-DD"})
		return
	}
	crop.CropType = req.CropType
	crop.Variety = req.Variety
	crop.PlantingDate = pd
	crop.HarvestDate = nil
	if req.HarvestDate != "" {
		hd, err := time.Parse("2006-01-02", req.HarvestDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "harvest_date must be YYYY-MM-DD"})
			return
		}
		crop.HarvestDate = &hd
	}
	if err := db.Save(&crop).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/crops")
}

func deleteCropConfirmHandler(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var crop models.Crop
	if err := db.First(&crop, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "crop not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"confirm": "delete crop?", "crop": crop})
}

func deleteCropHandler(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var crop models.Crop
	if err := db.First(&crop, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "crop not found"})
		return
	}
	if err := db.Delete(&crop).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/crops")
}
