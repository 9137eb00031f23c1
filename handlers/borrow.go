package handlers

import (
	"net/http"
	"time"

	"fruitdist-backend/models"
	"fruitdist-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BorrowHandler struct {
	DB *gorm.DB
}

type borrowView struct {
	models.Borrow
	FruitName    string `json:"fruit_name"`
	FromShopName string `json:"from_shop_name"`
	ToShopName   string `json:"to_shop_name"`
}

// normalizeReturned maps the legacy "true"/"false" strings the old console
// still submits onto a real boolean.
func normalizeReturned(value *string, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value == "true"
}

func (h *BorrowHandler) GetBorrows(c *gin.Context) {
	query := h.DB.Model(&models.Borrow{})
	if returned := c.Query("returned"); returned != "" {
		query = query.Where("returned = ?", returned == "true")
	}

	var borrows []models.Borrow
	if err := query.Order("borrow_date DESC").Find(&borrows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch borrows"})
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

	result := make([]borrowView, 0, len(borrows))
	for _, b := range borrows {
		result = append(result, borrowView{
			Borrow:       b,
			FruitName:    resolveName(fruits, b.FruitID, UnknownFruit),
			FromShopName: resolveName(locations, b.FromShopID, UnknownLocation),
			ToShopName:   resolveName(locations, b.ToShopID, UnknownLocation),
		})
	}

	c.JSON(http.StatusOK, result)
}

func (h *BorrowHandler) CreateBorrow(c *gin.Context) {
	var req struct {
		ID         *uuid.UUID `json:"id"`
		FromShopID uuid.UUID  `json:"from_shop_id" binding:"required"`
		ToShopID   uuid.UUID  `json:"to_shop_id" binding:"required"`
		FruitID    uuid.UUID  `json:"fruit_id" binding:"required"`
		Quantity   int        `json:"quantity" binding:"required,min=1"`
		BorrowDate string     `json:"borrow_date" binding:"required"`
		ReturnDate *string    `json:"return_date"`
		Returned   *string    `json:"returned"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.FromShopID == req.ToShopID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A shop cannot borrow from itself"})
		return
	}

	borrowDate, err := parseDate(req.BorrowDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var returnDate *time.Time
	if req.ReturnDate != nil && *req.ReturnDate != "" {
		t, err := parseDate(*req.ReturnDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		returnDate = &t
	}

	borrow := models.Borrow{
		FromShopID: req.FromShopID,
		ToShopID:   req.ToShopID,
		FruitID:    req.FruitID,
		Quantity:   req.Quantity,
		BorrowDate: borrowDate,
		ReturnDate: returnDate,
		Returned:   normalizeReturned(req.Returned, false),
	}
	if req.ID != nil {
		var existing models.Borrow
		if err := h.DB.Where("id = ?", *req.ID).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Duplicate borrow id"})
			return
		}
		borrow.ID = *req.ID
	}

	if err := h.DB.Create(&borrow).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create borrow"})
		return
	}

	c.JSON(http.StatusCreated, borrow)
}

func (h *BorrowHandler) UpdateBorrow(c *gin.Context) {
	id := c.Param("id")

	var borrow models.Borrow
	if err := h.DB.Where("id = ?", id).First(&borrow).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Borrow not found"})
		return
	}

	var req struct {
		FromShopID *uuid.UUID `json:"from_shop_id"`
		ToShopID   *uuid.UUID `json:"to_shop_id"`
		FruitID    *uuid.UUID `json:"fruit_id"`
		Quantity   *int       `json:"quantity" binding:"omitempty,min=1"`
		BorrowDate *string    `json:"borrow_date"`
		ReturnDate *string    `json:"return_date"`
		Returned   *string    `json:"returned"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	updates := map[string]interface{}{}
	if req.FromShopID != nil {
		updates["from_shop_id"] = *req.FromShopID
	}
	if req.ToShopID != nil {
		updates["to_shop_id"] = *req.ToShopID
	}
	if req.FruitID != nil {
		updates["fruit_id"] = *req.FruitID
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.BorrowDate != nil {
		t, err := parseDate(*req.BorrowDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		updates["borrow_date"] = t
	}
	if req.ReturnDate != nil {
		if *req.ReturnDate == "" {
			updates["return_date"] = nil
		} else {
			t, err := parseDate(*req.ReturnDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates["return_date"] = t
		}
	}
	if req.Returned != nil {
		updates["returned"] = normalizeReturned(req.Returned, borrow.Returned)
	}

	if from, ok := updates["from_shop_id"]; ok {
		to := borrow.ToShopID
		if v, ok := updates["to_shop_id"]; ok {
			to = v.(uuid.UUID)
		}
		if from.(uuid.UUID) == to {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A shop cannot borrow from itself"})
			return
		}
	} else if to, ok := updates["to_shop_id"]; ok && to.(uuid.UUID) == borrow.FromShopID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A shop cannot borrow from itself"})
		return
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&borrow).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update borrow"})
			return
		}
	}

	h.DB.Where("id = ?", id).First(&borrow)
	c.JSON(http.StatusOK, borrow)
}

func (h *BorrowHandler) DeleteBorrow(c *gin.Context) {
	id := c.Param("id")

	var borrow models.Borrow
	if err := h.DB.Where("id = ?", id).First(&borrow).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Borrow not found"})
		return
	}

	if err := h.DB.Delete(&borrow).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete borrow"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Borrow deleted"})
}
