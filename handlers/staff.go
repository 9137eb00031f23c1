package handlers

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"time"

	"fruitdist-backend/models"
	"fruitdist-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type StaffHandler struct {
	DB *gorm.DB
}

type staffInput struct {
	ID         *uuid.UUID `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email" binding:"required,email"`
	Password   string     `json:"password"`
	Phone      string     `json:"phone"`
	Job        string     `json:"job" binding:"omitempty,oneof=manager staff shop"`
	LocationID *uuid.UUID `json:"location_id"`
	Active     *bool      `json:"active"`
}

func (h *StaffHandler) ListStaff(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := h.DB.Model(&models.Staff{})

	if job := c.Query("job"); job != "" {
		query = query.Where("job = ?", job)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	query.Count(&total)

	var staff []models.Staff
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch staff"})
		return
	}

	result := make([]gin.H, 0, len(staff))
	for i := range staff {
		result = append(result, staffResponse(&staff[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"staff": result,
		"total": total,
		"page":  page,
		"limit": limit,
		"pages": int(math.Ceil(float64(total) / float64(limit))),
	})
}

func (h *StaffHandler) GetStaff(c *gin.Context) {
	id := c.Param("id")

	var staff models.Staff
	if err := h.DB.Where("id = ?", id).First(&staff).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff not found"})
		return
	}

	c.JSON(http.StatusOK, staffResponse(&staff))
}

// CreateStaff accepts either a single staff object or an array of them, since
// the admin console's bulk-insert form submits whole rosters at once. Rows are
// inserted independently; one bad row does not roll back the ones before it.
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var inputs []staffInput
		if err := c.ShouldBindJSON(&inputs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
			return
		}
		if len(inputs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No staff records provided"})
			return
		}

		created := make([]gin.H, 0, len(inputs))
		var rowErrors []gin.H
		for i, input := range inputs {
			staff, errMsg := h.insertStaff(&input)
			if errMsg != "" {
				rowErrors = append(rowErrors, gin.H{"index": i, "email": input.Email, "error": errMsg})
				continue
			}
			created = append(created, staffResponse(staff))
		}

		c.JSON(http.StatusOK, gin.H{
			"created": created,
			"errors":  rowErrors,
		})
		return
	}

	var input staffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	staff, errMsg := h.insertStaff(&input)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}

	c.JSON(http.StatusCreated, staffResponse(staff))
}

// insertStaff creates one staff row. Returns a user-facing error message on
// failure; an empty message means success.
func (h *StaffHandler) insertStaff(input *staffInput) (*models.Staff, string) {
	// Check-then-insert; the unique index on email is the backstop for the
	// race between concurrent identical requests.
	var existing models.Staff
	if err := h.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return nil, "Email already registered"
	}

	if input.ID != nil {
		if err := h.DB.Where("id = ?", *input.ID).First(&existing).Error; err == nil {
			return nil, "Duplicate staff id"
		}
	}

	password := input.Password
	invited := false
	if password == "" {
		// No password supplied by the form: issue a temporary one and mail it.
		tokenBytes := make([]byte, 8)
		if _, err := rand.Read(tokenBytes); err != nil {
			return nil, "Failed to generate temporary password"
		}
		password = hex.EncodeToString(tokenBytes)
		invited = true
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "Failed to hash password"
	}

	job := input.Job
	if job == "" {
		job = models.JobStaff
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	staff := models.Staff{
		Name:       input.Name,
		Email:      input.Email,
		Password:   string(hashedPassword),
		Phone:      input.Phone,
		Job:        job,
		LocationID: input.LocationID,
		Active:     active,
	}
	if input.ID != nil {
		staff.ID = *input.ID
	}

	if err := h.DB.Create(&staff).Error; err != nil {
		return nil, "Failed to create staff record"
	}

	if invited {
		consoleURL := os.Getenv("CONSOLE_URL")
		if consoleURL == "" {
			consoleURL = "http://localhost:3000"
		}
		utils.SendStaffInvitationEmail(staff.Email, staff.Name, staff.Job, password, consoleURL)
	}

	return &staff, ""
}

func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	id := c.Param("id")
	currentStaffID, _ := c.Get("staff_id")

	staffUUID, err := uuid.Parse(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid staff ID"})
		return
	}

	var staff models.Staff
	if err := h.DB.Where("id = ?", id).First(&staff).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff not found"})
		return
	}

	var req struct {
		Name       *string    `json:"name"`
		Email      *string    `json:"email" binding:"omitempty,email"`
		Phone      *string    `json:"phone"`
		Job        *string    `json:"job" binding:"omitempty,oneof=manager staff shop"`
		LocationID *uuid.UUID `json:"location_id"`
		Active     *bool      `json:"active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	isSelf := currentStaffID != nil && currentStaffID.(uuid.UUID) == staffUUID
	if req.Job != nil && isSelf {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot change your own role"})
		return
	}
	if req.Active != nil && !*req.Active && isSelf {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot deactivate your own account"})
		return
	}

	if req.Email != nil && *req.Email != staff.Email {
		var existing models.Staff
		if err := h.DB.Where("email = ?", *req.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
	}

	// Use targeted Updates instead of Save to avoid clobbering unrelated fields
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Job != nil {
		updates["job"] = *req.Job
	}
	if req.LocationID != nil {
		updates["location_id"] = *req.LocationID
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&staff).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update staff"})
			return
		}
	}

	h.DB.Where("id = ?", id).First(&staff)
	c.JSON(http.StatusOK, staffResponse(&staff))
}

func (h *StaffHandler) DeleteStaff(c *gin.Context) {
	id := c.Param("id")
	currentStaffID, _ := c.Get("staff_id")

	staffUUID, err := uuid.Parse(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid staff ID"})
		return
	}

	if currentStaffID != nil && currentStaffID.(uuid.UUID) == staffUUID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		return
	}

	var staff models.Staff
	if err := h.DB.Where("id = ?", id).First(&staff).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff not found"})
		return
	}

	if err := h.DB.Delete(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete staff"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Staff deleted", "deleted_at": time.Now()})
}
