// File: /controllers/auth_controller.go
package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/ChakradarReddy/event-management/models"
	"github.com/ChakradarReddy/event-management/services"
	"github.com/ChakradarReddy/event-management/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	db           *gorm.DB
	jwtSecret    string
	emailService *services.EmailService
}

func NewAuthController(db *gorm.DB, jwtSecret string, emailService *services.EmailService) *AuthController {
	return &AuthController{
		db:           db,
		jwtSecret:    jwtSecret,
		emailService: emailService,
	}
}

type RegisterRequest struct {
	Username   string `json:"username" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	FullName   string `json:"full_name" binding:"required"`
	Role       string `json:"role"`
	Department string `json:"department"`
	StudentID  string `json:"student_id"`
	Phone      string `json:"phone"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if !utils.IsValidUsername(req.Username) {
		utils.SendValidationError(c, "Username must be 3-80 characters (letters, digits, underscore)")
		return
	}

	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RoleStudent
	}
	// Admin accounts are provisioned by existing admins, never self-assigned.
	if !role.IsValid() || role == models.RoleAdmin {
		utils.SendValidationError(c, "Role must be student or organizer")
		return
	}

	var existingUser models.User
	if err := ac.db.Where("username = ?", req.Username).First(&existingUser).Error; err == nil {
		utils.MapError(c, models.ErrUsernameTaken)
		return
	}
	if err := ac.db.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		utils.MapError(c, models.ErrEmailTaken)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		ID:         uuid.New().String(),
		Username:   req.Username,
		Email:      req.Email,
		Password:   string(hashedPassword),
		Role:       role,
		FullName:   req.FullName,
		Department: req.Department,
		StudentID:  req.StudentID,
		Phone:      req.Phone,
	}

	if err := ac.db.Create(&user).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	if ac.emailService != nil {
		go func() {
			if err := ac.emailService.SendWelcomeEmail(user.Email, user.FullName); err != nil {
				log.Printf("Failed to send welcome email: %v", err)
			}
		}()
	}

	user.Password = ""
	utils.SendCreated(c, "Registration successful! Please login.", user)
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var user models.User
	if err := ac.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := ac.generateJWT(user.ID, string(user.Role))
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  user,
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	// Stateless JWT; logout is handled client-side
	utils.SendSuccess(c, "Successfully logged out", nil)
}

func (ac *AuthController) generateJWT(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour * 24 * 7).Unix(), // 7 days
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(ac.jwtSecret))
}
