// File: /controllers/auth_controller.go
package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
	"motorestore-api/models"
	"motorestore-api/services"
)

// AuthController consumes the identity provider's sign-in result. It keeps
// no credentials: Google owns the authentication protocol, this side only
// maps the external identity onto a local profile and gates on verified.
type AuthController struct {
	db             *gorm.DB
	jwtSecret      string
	googleClientID string
	emailService   *services.EmailService
}

func NewAuthController(db *gorm.DB, jwtSecret, googleClientID string, emailService *services.EmailService) *AuthController {
	return &AuthController{
		db:             db,
		jwtSecret:      jwtSecret,
		googleClientID: googleClientID,
		emailService:   emailService,
	}
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

type GoogleUserInfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Aud     string `json:"aud"`
}

func (ac *AuthController) GoogleLogin(c *gin.Context) {
	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userInfo, err := ac.verifyGoogleToken(req.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token"})
		return
	}

	user, isNewUser, err := ac.findOrCreateProfile(userInfo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process user"})
		return
	}

	if isNewUser {
		// Verification is flipped by the admin out-of-band; just notify
		go func() {
			if err := ac.emailService.SendAccessRequestEmail(user.Email, user.DisplayName); err != nil {
				fmt.Printf("Failed to send access request email: %v\n", err)
			}
		}()
	}

	token, err := ac.generateJWT(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":       token,
		"user":        user,
		"is_new_user": isNewUser,
	})
}

func (ac *AuthController) Me(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := ac.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (ac *AuthController) Logout(c *gin.Context) {
	// In a stateless JWT system, logout is handled client-side
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

func (ac *AuthController) verifyGoogleToken(idToken string) (*GoogleUserInfo, error) {
	resp, err := http.Get("https://www.googleapis.com/oauth2/v3/tokeninfo?id_token=" + idToken)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("invalid token")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var userInfo GoogleUserInfo
	if err := json.Unmarshal(body, &userInfo); err != nil {
		return nil, err
	}

	if userInfo.Sub == "" || userInfo.Email == "" {
		return nil, fmt.Errorf("incomplete token info")
	}

	if ac.googleClientID != "" && userInfo.Aud != ac.googleClientID {
		return nil, fmt.Errorf("token audience mismatch")
	}

	return &userInfo, nil
}

// findOrCreateProfile creates the profile exactly once per external id.
// A repeat sign-in is a plain lookup, never an overwrite, so an existing
// verified flag survives.
func (ac *AuthController) findOrCreateProfile(info *GoogleUserInfo) (*models.User, bool, error) {
	var user models.User
	err := ac.db.First(&user, "id = ?", info.Sub).Error
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	user = models.User{
		ID:          info.Sub,
		Email:       info.Email,
		DisplayName: info.Name,
		Verified:    false,
	}
	if info.Picture != "" {
		user.PhotoURL = &info.Picture
	}

	if err := ac.db.Create(&user).Error; err != nil {
		return nil, false, err
	}

	return &user, true, nil
}

func (ac *AuthController) generateJWT(userID, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(ac.jwtSecret))
}
