package handlers

import (
	"net/http"

	"fruitdist-backend/models"
	"fruitdist-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GeoHandler serves the country/city reference tables.
type GeoHandler struct {
	DB *gorm.DB
}

func (h *GeoHandler) GetCountries(c *gin.Context) {
	var countries []models.Country
	if err := h.DB.Order("name ASC").Find(&countries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch countries"})
		return
	}
	c.JSON(http.StatusOK, countries)
}

func (h *GeoHandler) GetCities(c *gin.Context) {
	query := h.DB.Model(&models.City{})
	if countryID := c.Query("country_id"); countryID != "" {
		query = query.Where("country_id = ?", countryID)
	}

	var cities []models.City
	if err := query.Order("name ASC").Find(&cities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cities"})
		return
	}
	c.JSON(http.StatusOK, cities)
}

func (h *GeoHandler) CreateCountry(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var existing models.Country
	if err := h.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Country already exists"})
		return
	}

	country := models.Country{Name: req.Name}
	if err := h.DB.Create(&country).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create country"})
		return
	}

	c.JSON(http.StatusCreated, country)
}

func (h *GeoHandler) CreateCity(c *gin.Context) {
	var req struct {
		Name      string     `json:"name" binding:"required"`
		CountryID *uuid.UUID `json:"country_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	city := models.City{Name: req.Name, CountryID: req.CountryID}
	if err := h.DB.Create(&city).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create city"})
		return
	}

	c.JSON(http.StatusCreated, city)
}
