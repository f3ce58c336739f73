package handlers

import (
	"careconnect/models"
	"careconnect/services"
	"careconnect/utils"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	UserService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{
		UserService: userService,
	}
}

// Register creates a new account under the requested role. Clients choose
// between the Doctor and Patient roles; Admin accounts are provisioned
// separately.
func (h *AuthHandler) Register(c *gin.Context) {
	var payload struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if payload.Role != models.RoleDoctor && payload.Role != models.RolePatient {
		c.JSON(400, gin.H{"error": "role must be Doctor or Patient"})
		return
	}

	user := models.User{
		Username: payload.Username,
		Email:    payload.Email,
		Password: payload.Password,
	}

	ctx := c.Request.Context()
	if err := h.UserService.RegisterUser(ctx, &user, payload.Role); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("Registration failed: %v", err)})
		return
	}

	c.Status(201)
}

// Login authenticates the user, sets auth cookies and returns the tokens
// along with the user's role so clients can route to the right dashboard.
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserService.AuthenticateUser(ctx, credentials.Email, credentials.Password)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid email or password"})
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(strconv.FormatInt(user.ID, 10), user.Role.Name)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("Failed to generate tokens: %v", err)})
		return
	}

	utils.SetAuthCookies(c, accessToken, refreshToken)
	c.JSON(200, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"role":         user.Role.Name,
		"userId":       user.ID,
	})
}

// RefreshToken mints a new access token from a valid refresh token cookie.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, err := c.Cookie("refreshToken")
	if err != nil || token == "" {
		token = c.DefaultQuery("refreshToken", "")
	}
	if token == "" {
		c.JSON(400, gin.H{"error": "refresh token is required"})
		return
	}

	claims, err := utils.ValidateToken(token, models.RoleAdmin, models.RoleDoctor, models.RolePatient)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid refresh token"})
		return
	}

	accessToken, err := utils.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("Failed to generate access token: %v", err)})
		return
	}

	c.JSON(200, gin.H{"accessToken": accessToken})
}

// Logoff logs the user out by clearing cookies
func (h *AuthHandler) Logoff(c *gin.Context) {
	utils.ClearAuthCookies(c)
	c.Status(200)
}

// SendResetCode sends a password reset code to the user's email. The
// response does not reveal whether the address has an account.
func (h *AuthHandler) SendResetCode(c *gin.Context) {
	var data struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.UserService.RequestPasswordReset(c.Request.Context(), data.Email); err != nil {
		c.JSON(500, gin.H{"error": "Failed to send reset code"})
		return
	}

	c.Status(200)
}

// ResetPassword sets a new password when the submitted reset code matches.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var data struct {
		Email       string `json:"email"`
		ResetCode   string `json:"reset_code"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.UserService.ResetPassword(c.Request.Context(), data.Email, data.ResetCode, data.NewPassword); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("Password reset failed: %v", err)})
		return
	}

	c.Status(200)
}

// GetUserProfile returns the authenticated user's account record.
func (h *AuthHandler) GetUserProfile(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.UserService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, user)
}
