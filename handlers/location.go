package handlers

import (
	"net/http"

	"fruitdist-backend/models"
	"fruitdist-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LocationHandler struct {
	DB *gorm.DB
}

func locationResponse(l *models.Location, cityName string) gin.H {
	return gin.H{
		"id":      l.ID,
		"city_id": l.CityID,
		"city":    cityName,
		"address": l.Address,
		"type":    l.Type,
	}
}

func (h *LocationHandler) GetLocations(c *gin.Context) {
	query := h.DB.Model(&models.Location{})
	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}

	var locations []models.Location
	if err := query.Order("address ASC").Find(&locations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch locations"})
		return
	}

	var cities []models.City
	if err := h.DB.Find(&cities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cities"})
		return
	}
	cityNames := make(map[uuid.UUID]string, len(cities))
	for _, city := range cities {
		cityNames[city.ID] = city.Name
	}

	result := make([]gin.H, 0, len(locations))
	for i := range locations {
		name := resolveNameRef(cityNames, locations[i].CityID, UnknownCity)
		result = append(result, locationResponse(&locations[i], name))
	}

	c.JSON(http.StatusOK, result)
}

func (h *LocationHandler) GetLocation(c *gin.Context) {
	id := c.Param("id")

	var location models.Location
	if err := h.DB.Where("id = ?", id).First(&location).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}

	cityName := UnknownCity
	if location.CityID != nil {
		var city models.City
		if err := h.DB.Where("id = ?", *location.CityID).First(&city).Error; err == nil {
			cityName = city.Name
		}
	}

	c.JSON(http.StatusOK, locationResponse(&location, cityName))
}

func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req struct {
		ID      *uuid.UUID `json:"id"`
		CityID  *uuid.UUID `json:"city_id"`
		Address string     `json:"address" binding:"required"`
		Type    string     `json:"type" binding:"omitempty,oneof=warehouse shop"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	location := models.Location{
		CityID:  req.CityID,
		Address: req.Address,
		Type:    req.Type,
	}
	if location.Type == "" {
		location.Type = models.LocationTypeShop
	}
	if req.ID != nil {
		var existing models.Location
		if err := h.DB.Where("id = ?", *req.ID).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Duplicate location id"})
			return
		}
		location.ID = *req.ID
	}

	if err := h.DB.Create(&location).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create location"})
		return
	}

	c.JSON(http.StatusCreated, location)
}

func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	id := c.Param("id")

	var location models.Location
	if err := h.DB.Where("id = ?", id).First(&location).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}

	var req struct {
		CityID  *uuid.UUID `json:"city_id"`
		Address *string    `json:"address"`
		Type    *string    `json:"type" binding:"omitempty,oneof=warehouse shop"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	updates := map[string]interface{}{}
	if req.CityID != nil {
		updates["city_id"] = *req.CityID
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&location).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update location"})
			return
		}
	}

	h.DB.Where("id = ?", id).First(&location)
	c.JSON(http.StatusOK, location)
}

func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	id := c.Param("id")

	var location models.Location
	if err := h.DB.Where("id = ?", id).First(&location).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}

	if err := h.DB.Delete(&location).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete location"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location deleted"})
}
