package handlers

import (
	"fmt"
	"net/http"
	"time"

	"fruitdist-backend/models"
	"fruitdist-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeliveryHandler struct {
	DB *gorm.DB
}

// deliveryView is a delivery enriched with display names at read time.
type deliveryView struct {
	models.Delivery
	FruitName         string `json:"fruit_name"`
	FromWarehouseName string `json:"from_warehouse_name"`
	ToLocationName    string `json:"to_location_name"`
}

// parseDate accepts the console's date-only form values as well as full
// RFC 3339 timestamps.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q; expected YYYY-MM-DD or RFC 3339", value)
}

// GetDeliveriesList returns deliveries joined with fruit and location names.
func (h *DeliveryHandler) GetDeliveriesList(c *gin.Context) {
	query := h.DB.Model(&models.Delivery{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var deliveries []models.Delivery
	if err := query.Order("delivery_date DESC").Find(&deliveries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deliveries"})
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

	result := make([]deliveryView, 0, len(deliveries))
	for _, d := range deliveries {
		result = append(result, deliveryView{
			Delivery:          d,
			FruitName:         resolveName(fruits, d.FruitID, UnknownFruit),
			FromWarehouseName: resolveName(locations, d.FromWarehouseID, UnknownLocation),
			ToLocationName:    resolveName(locations, d.ToLocationID, UnknownLocation),
		})
	}

	c.JSON(http.StatusOK, result)
}

func (h *DeliveryHandler) InsertDelivery(c *gin.Context) {
	var req struct {
		ID                   *uuid.UUID `json:"id"`
		FromWarehouseID      uuid.UUID  `json:"from_warehouse_id" binding:"required"`
		ToLocationID         uuid.UUID  `json:"to_location_id" binding:"required"`
		FruitID              uuid.UUID  `json:"fruit_id" binding:"required"`
		Quantity             int        `json:"quantity" binding:"required,min=1"`
		DeliveryDate         string     `json:"delivery_date" binding:"required"`
		EstimatedArrivalDate string     `json:"estimated_arrival_date"`
		Status               string     `json:"status"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	deliveryDate, err := parseDate(req.DeliveryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var estimatedArrival time.Time
	if req.EstimatedArrivalDate != "" {
		estimatedArrival, err = parseDate(req.EstimatedArrivalDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	status := models.DeliveryStatus(req.Status)
	if req.Status == "" {
		status = models.DeliveryStatusPending
	} else if !models.IsValidDeliveryStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery status"})
		return
	}

	delivery := models.Delivery{
		FromWarehouseID:      req.FromWarehouseID,
		ToLocationID:         req.ToLocationID,
		FruitID:              req.FruitID,
		Quantity:             req.Quantity,
		DeliveryDate:         deliveryDate,
		EstimatedArrivalDate: estimatedArrival,
		Status:               status,
	}
	if req.ID != nil {
		var existing models.Delivery
		if err := h.DB.Where("id = ?", *req.ID).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Duplicate delivery id"})
			return
		}
		delivery.ID = *req.ID
	}

	if err := h.DB.Create(&delivery).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create delivery"})
		return
	}

	c.JSON(http.StatusCreated, delivery)
}

func (h *DeliveryHandler) UpdateDelivery(c *gin.Context) {
	id := c.Param("id")

	var delivery models.Delivery
	if err := h.DB.Where("id = ?", id).First(&delivery).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Delivery not found"})
		return
	}

	var req struct {
		FromWarehouseID      *uuid.UUID `json:"from_warehouse_id"`
		ToLocationID         *uuid.UUID `json:"to_location_id"`
		FruitID              *uuid.UUID `json:"fruit_id"`
		Quantity             *int       `json:"quantity" binding:"omitempty,min=1"`
		DeliveryDate         *string    `json:"delivery_date"`
		EstimatedArrivalDate *string    `json:"estimated_arrival_date"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	updates := map[string]interface{}{}
	if req.FromWarehouseID != nil {
		updates["from_warehouse_id"] = *req.FromWarehouseID
	}
	if req.ToLocationID != nil {
		updates["to_location_id"] = *req.ToLocationID
	}
	if req.FruitID != nil {
		updates["fruit_id"] = *req.FruitID
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.DeliveryDate != nil {
		t, err := parseDate(*req.DeliveryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		updates["delivery_date"] = t
	}
	if req.EstimatedArrivalDate != nil {
		t, err := parseDate(*req.EstimatedArrivalDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		updates["estimated_arrival_date"] = t
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&delivery).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update delivery"})
			return
		}
	}

	h.DB.Where("id = ?", id).First(&delivery)
	c.JSON(http.StatusOK, delivery)
}

// UpdateDeliveryStatus moves a delivery through its status state machine and
// notifies the destination shop on a successful transition.
func (h *DeliveryHandler) UpdateDeliveryStatus(c *gin.Context) {
	id := c.Param("id")

	var delivery models.Delivery
	if err := h.DB.Where("id = ?", id).First(&delivery).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Delivery not found"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	newStatus := models.DeliveryStatus(req.Status)
	if !models.IsValidDeliveryStatus(newStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery status"})
		return
	}

	if !models.IsValidTransition(delivery.Status, newStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Cannot change status from %s to %s", delivery.Status, newStatus)})
		return
	}

	if err := h.DB.Model(&delivery).Update("status", newStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update delivery status"})
		return
	}
	delivery.Status = newStatus

	h.notifyDestination(&delivery)

	c.JSON(http.StatusOK, delivery)
}

// notifyDestination emails the shop staff at the delivery's destination.
// Best effort; a missing contact or fruit is not an error.
func (h *DeliveryHandler) notifyDestination(delivery *models.Delivery) {
	var contact models.Staff
	if err := h.DB.Where("location_id = ? AND active = ?", delivery.ToLocationID, true).First(&contact).Error; err != nil {
		return
	}

	fruitName := UnknownFruit
	var fruit models.Fruit
	if err := h.DB.Where("id = ?", delivery.FruitID).First(&fruit).Error; err == nil {
		fruitName = fruit.Name
	}

	utils.SendDeliveryStatusEmail(contact.Email, contact.Name, fruitName, string(delivery.Status), delivery.Quantity)
}

func (h *DeliveryHandler) DeleteDelivery(c *gin.Context) {
	id := c.Param("id")

	var delivery models.Delivery
	if err := h.DB.Where("id = ?", id).First(&delivery).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Delivery not found"})
		return
	}

	if err := h.DB.Delete(&delivery).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete delivery"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Delivery deleted"})
}
