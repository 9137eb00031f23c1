package handlers

import (
	"net/http"
	"strings"
	"time"

	"fruitdist-backend/models"

	"github.com/gin-gonic/gin"
)

// monthNames indexes time.Month values starting at 1.
var monthNames = [...]string{
	"", "January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// GetReport aggregates delivered quantities per month and fruit for the
// yield dashboard. Only deliveries in the Delivered state count toward the
// monthly buckets; the same months of different years share a bucket.
func (h *DeliveryHandler) GetReport(c *gin.Context) {
	var deliveries []models.Delivery
	if err := h.DB.Find(&deliveries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deliveries"})
		return
	}

	var fruits []models.Fruit
	if err := h.DB.Order("name ASC").Find(&fruits).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fruits"})
		return
	}

	fruitNames := make(map[string]string, len(fruits))
	for _, f := range fruits {
		fruitNames[f.ID.String()] = strings.ToLower(f.Name)
	}

	// All twelve buckets are always present so the chart renders a full year
	// even when some months had no deliveries.
	monthlyData := make(map[string]map[string]int, 12)
	for m := 1; m <= 12; m++ {
		monthlyData[monthNames[m]] = map[string]int{}
	}

	deliveredCount := 0
	for _, d := range deliveries {
		if d.Status != models.DeliveryStatusDelivered {
			continue
		}
		deliveredCount++

		name, ok := fruitNames[d.FruitID.String()]
		if !ok {
			// Deleted or dangling fruit references still count as deliveries
			// but have no bucket to land in.
			continue
		}
		monthlyData[monthNames[d.DeliveryDate.Month()]][name] += d.Quantity
	}

	fruitList := make([]gin.H, 0, len(fruits))
	for _, f := range fruits {
		fruitList = append(fruitList, gin.H{
			"id":       f.ID,
			"name":     f.Name,
			"price":    f.Price,
			"imageURL": f.ImageURL,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"monthlyData": monthlyData,
		"summary": gin.H{
			"totalDeliveries": len(deliveries),
			"deliveredCount":  deliveredCount,
			"totalFruits":     len(fruits),
			"reportYear":      time.Now().Year(),
		},
		"fruits": fruitList,
	})
}
