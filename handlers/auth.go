package handlers

import (
	"log"
	"net/http"
	"os"

	"fruitdist-backend/middleware"
	"fruitdist-backend/models"
	"fruitdist-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB       *gorm.DB
	Verifier CredentialVerifier
}

// setSessionCookie issues the HTTP-only session cookie for a staff account.
func setSessionCookie(c *gin.Context, token string) {
	secure := gin.Mode() == gin.ReleaseMode
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, int(utils.SessionDuration.Seconds()), "/", "", secure, true)
}

func clearSessionCookie(c *gin.Context) {
	secure := gin.Mode() == gin.ReleaseMode
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", secure, true)
}

func staffResponse(s *models.Staff) gin.H {
	return gin.H{
		"id":          s.ID,
		"email":       s.Email,
		"name":        s.Name,
		"job":         s.Job,
		"phone":       s.Phone,
		"location_id": s.LocationID,
		"active":      s.Active,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": utils.SanitizeValidationError(err)})
		return
	}

	var staff models.Staff
	if err := h.DB.Where("email = ?", req.Email).First(&staff).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid credentials"})
		return
	}

	if !staff.Active {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Your account has been deactivated. Please contact a manager."})
		return
	}

	token, err := utils.GenerateSessionToken(staff.ID, staff.Email, staff.Job)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create session"})
		return
	}

	setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    staffResponse(&staff),
	})
}

func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req struct {
		Credential string `json:"credential" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": utils.SanitizeValidationError(err)})
		return
	}

	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	if clientID == "" {
		// Configuration detail stays in the server log; the client gets a
		// generic failure.
		log.Println("Google login rejected: GOOGLE_CLIENT_ID is not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Google sign-in is not available"})
		return
	}

	claims, err := h.Verifier.Verify(c.Request.Context(), req.Credential, clientID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid Google credential"})
		return
	}

	var staff models.Staff
	if err := h.DB.Where("email = ?", claims.Email).First(&staff).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "No staff account exists for this Google account"})
		return
	}

	if !staff.Active {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Your account has been deactivated. Please contact a manager."})
		return
	}

	token, err := utils.GenerateSessionToken(staff.ID, staff.Email, staff.Job)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create session"})
		return
	}

	setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    staffResponse(&staff),
	})
}

// Check reports session state without requiring one; the console calls it on
// every page load. Response keys match the legacy contract.
func (h *AuthHandler) Check(c *gin.Context) {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err != nil || cookie == "" {
		c.JSON(http.StatusOK, gin.H{"isLoggedIn": false})
		return
	}

	claims, err := utils.ValidateSessionToken(cookie)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"isLoggedIn": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"isLoggedIn": true, "email": claims.Email})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	staffID, exists := c.Get("staff_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var staff models.Staff
	if err := h.DB.Where("id = ?", staffID).First(&staff).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff not found"})
		return
	}

	c.JSON(http.StatusOK, staffResponse(&staff))
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	staffID, exists := c.Get("staff_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Name  *string `json:"name"`
		Phone *string `json:"phone"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var staff models.Staff
	if err := h.DB.Where("id = ?", staffID).First(&staff).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff not found"})
		return
	}

	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.Phone != nil {
		staff.Phone = *req.Phone
	}

	if err := h.DB.Save(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, staffResponse(&staff))
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	staffID, exists := c.Get("staff_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=8"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var staff models.Staff
	if err := h.DB.Where("id = ?", staffID).First(&staff).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(req.OldPassword)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	h.DB.Model(&staff).Update("password", string(hashedPassword))
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
