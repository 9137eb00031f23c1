package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"fruitdist-backend/firebase"
	"fruitdist-backend/models"
	"fruitdist-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FruitHandler struct {
	DB      *gorm.DB
	Storage firebase.StorageClient
}

func fruitResponse(f *models.Fruit, countryName string) gin.H {
	return gin.H{
		"id":                f.ID,
		"name":              f.Name,
		"origin_country_id": f.OriginCountryID,
		"origin_country":    countryName,
		"price":             f.Price,
		"image_url":         f.ImageURL,
	}
}

func (h *FruitHandler) GetFruits(c *gin.Context) {
	var fruits []models.Fruit
	if err := h.DB.Order("name ASC").Find(&fruits).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fruits"})
		return
	}

	countries, err := countryNameIndex(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch countries"})
		return
	}

	result := make([]gin.H, 0, len(fruits))
	for i := range fruits {
		name := resolveNameRef(countries, fruits[i].OriginCountryID, UnknownCountry)
		result = append(result, fruitResponse(&fruits[i], name))
	}

	c.JSON(http.StatusOK, result)
}

func (h *FruitHandler) GetFruit(c *gin.Context) {
	id := c.Param("id")

	var fruit models.Fruit
	if err := h.DB.Where("id = ?", id).First(&fruit).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fruit not found"})
		return
	}

	countries, err := countryNameIndex(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch countries"})
		return
	}

	name := resolveNameRef(countries, fruit.OriginCountryID, UnknownCountry)
	c.JSON(http.StatusOK, fruitResponse(&fruit, name))
}

// CreateFruit accepts a multipart form (with an optional image file) or plain
// JSON. An external image_url is re-hosted in storage so the catalog never
// depends on third-party image hosting.
func (h *FruitHandler) CreateFruit(c *gin.Context) {
	contentType := c.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		h.createFruitMultipart(c)
		return
	}

	var req struct {
		ID              *uuid.UUID `json:"id"`
		Name            string     `json:"name" binding:"required"`
		OriginCountryID *uuid.UUID `json:"origin_country_id"`
		Price           float64    `json:"price" binding:"required,min=0"`
		ImageURL        string     `json:"image_url"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	fruit := models.Fruit{
		Name:            req.Name,
		OriginCountryID: req.OriginCountryID,
		Price:           req.Price,
		ImageURL:        req.ImageURL,
	}
	if req.ID != nil {
		var existing models.Fruit
		if err := h.DB.Where("id = ?", *req.ID).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Duplicate fruit id"})
			return
		}
		fruit.ID = *req.ID
	}

	if err := h.DB.Create(&fruit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fruit"})
		return
	}

	// Re-host external image URLs in our own bucket; keep the original URL
	// if the import fails.
	if fruit.ImageURL != "" && !strings.HasPrefix(fruit.ImageURL, "https://storage.googleapis.com/") {
		if hosted, err := h.Storage.ImportFruitImage(fruit.ImageURL, fruit.ID.String()); err == nil {
			h.DB.Model(&fruit).Update("image_url", hosted)
			fruit.ImageURL = hosted
		} else {
			log.Printf("Failed to import fruit image for %s: %v", fruit.ID, err)
		}
	}

	c.JSON(http.StatusCreated, fruit)
}

func (h *FruitHandler) createFruitMultipart(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a non-negative number"})
		return
	}

	fruit := models.Fruit{Name: name, Price: price}

	if raw := c.PostForm("origin_country_id"); raw != "" {
		countryID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid origin country ID"})
			return
		}
		fruit.OriginCountryID = &countryID
	}

	if fh, err := c.FormFile("image"); err == nil {
		if err := utils.ValidateFileUpload(fh); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		file, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
			return
		}
		defer file.Close()

		url, err := h.Storage.UploadFruitImage(file, fh.Filename, fh.Header.Get("Content-Type"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}
		fruit.ImageURL = url
	}

	if err := h.DB.Create(&fruit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fruit"})
		return
	}

	c.JSON(http.StatusCreated, fruit)
}

func (h *FruitHandler) UpdateFruit(c *gin.Context) {
	id := c.Param("id")

	var fruit models.Fruit
	if err := h.DB.Where("id = ?", id).First(&fruit).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fruit not found"})
		return
	}

	contentType := c.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		h.updateFruitImage(c, &fruit)
		return
	}

	var req struct {
		Name            *string    `json:"name"`
		OriginCountryID *uuid.UUID `json:"origin_country_id"`
		Price           *float64   `json:"price" binding:"omitempty,min=0"`
		ImageURL        *string    `json:"image_url"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.OriginCountryID != nil {
		updates["origin_country_id"] = *req.OriginCountryID
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&fruit).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update fruit"})
			return
		}
	}

	h.DB.Where("id = ?", id).First(&fruit)
	c.JSON(http.StatusOK, fruit)
}

// updateFruitImage replaces the fruit's image and removes the previous object
// from storage once the new upload succeeds.
func (h *FruitHandler) updateFruitImage(c *gin.Context, fruit *models.Fruit) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	if err := utils.ValidateFileUpload(fh); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	url, err := h.Storage.UploadFruitImage(file, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	oldURL := fruit.ImageURL
	if err := h.DB.Model(fruit).Update("image_url", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update fruit"})
		return
	}

	if oldURL != "" {
		if objectPath, err := utils.ExtractObjectPath(oldURL); err == nil {
			if err := h.Storage.DeleteFile(objectPath); err != nil {
				log.Printf("Failed to delete old fruit image %s: %v", objectPath, err)
			}
		}
	}

	fruit.ImageURL = url
	c.JSON(http.StatusOK, fruit)
}

func (h *FruitHandler) DeleteFruit(c *gin.Context) {
	id := c.Param("id")

	var fruit models.Fruit
	if err := h.DB.Where("id = ?", id).First(&fruit).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fruit not found"})
		return
	}

	if err := h.DB.Delete(&fruit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete fruit"})
		return
	}

	// Inventory and delivery rows referencing this fruit are left in place;
	// list views render them with the Unknown Fruit placeholder.
	c.JSON(http.StatusOK, gin.H{"message": "Fruit deleted"})
}
