package handlers

import (
	"net/http"

	"fruitdist-backend/models"
	"fruitdist-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryHandler struct {
	DB *gorm.DB
}

// inventoryView is an inventory row enriched with display names at read time.
type inventoryView struct {
	models.Inventory
	FruitName    string `json:"fruit_name"`
	LocationName string `json:"location_name"`
}

func (h *InventoryHandler) GetInventory(c *gin.Context) {
	query := h.DB.Model(&models.Inventory{})
	if locationID := c.Query("location_id"); locationID != "" {
		query = query.Where("location_id = ?", locationID)
	}

	var rows []models.Inventory
	if err := query.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// GetInventoryList returns inventory joined with fruit and location names.
// The reference tables are loaded in full and joined in memory per request,
// tolerating dangling foreign keys.
func (h *InventoryHandler) GetInventoryList(c *gin.Context) {
	query := h.DB.Model(&models.Inventory{})
	if locationID := c.Query("location_id"); locationID != "" {
		query = query.Where("location_id = ?", locationID)
	}

	var rows []models.Inventory
	if err := query.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	fruits, err := fruitNameIndex(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fruits"})
		return
	}
	locations, err := locationNameIndex(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch locations"})
		return
	}

	result := make([]inventoryView, 0, len(rows))
	for _, row := range rows {
		result = append(result, inventoryView{
			Inventory:    row,
			FruitName:    resolveName(fruits, row.FruitID, UnknownFruit),
			LocationName: resolveName(locations, row.LocationID, UnknownLocation),
		})
	}

	c.JSON(http.StatusOK, result)
}

func (h *InventoryHandler) CreateInventory(c *gin.Context) {
	var req struct {
		ID         *uuid.UUID `json:"id"`
		FruitID    uuid.UUID  `json:"fruit_id" binding:"required"`
		LocationID uuid.UUID  `json:"location_id" binding:"required"`
		Quantity   int        `json:"quantity" binding:"min=0"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	// One row per (fruit, location) pair. The legacy system only kept this by
	// convention; enforce it here at insert time.
	var existing models.Inventory
	if err := h.DB.Where("fruit_id = ? AND location_id = ?", req.FruitID, req.LocationID).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Inventory record already exists for this fruit and location"})
		return
	}

	if req.ID != nil {
		if err := h.DB.Where("id = ?", *req.ID).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Duplicate inventory id"})
			return
		}
	}

	inv := models.Inventory{
		FruitID:    req.FruitID,
		LocationID: req.LocationID,
		Quantity:   req.Quantity,
	}
	if req.ID != nil {
		inv.ID = *req.ID
	}

	if err := h.DB.Create(&inv).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create inventory record"})
		return
	}

	c.JSON(http.StatusCreated, inv)
}

func (h *InventoryHandler) UpdateInventory(c *gin.Context) {
	id := c.Param("id")

	var inv models.Inventory
	if err := h.DB.Where("id = ?", id).First(&inv).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory record not found"})
		return
	}

	var req struct {
		FruitID    *uuid.UUID `json:"fruit_id"`
		LocationID *uuid.UUID `json:"location_id"`
		Quantity   *int       `json:"quantity" binding:"omitempty,min=0"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	updates := map[string]interface{}{}
	if req.FruitID != nil {
		updates["fruit_id"] = *req.FruitID
	}
	if req.LocationID != nil {
		updates["location_id"] = *req.LocationID
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&inv).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update inventory record"})
			return
		}
	}

	h.DB.Where("id = ?", id).First(&inv)
	c.JSON(http.StatusOK, inv)
}

func (h *InventoryHandler) DeleteInventory(c *gin.Context) {
	id := c.Param("id")

	var inv models.Inventory
	if err := h.DB.Where("id = ?", id).First(&inv).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory record not found"})
		return
	}

	if err := h.DB.Delete(&inv).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete inventory record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Inventory record deleted"})
}
