package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskly-be/internal/middleware"
	"taskly-be/internal/models"
	"taskly-be/internal/service"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Register handles POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	response, err := ac.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	response, err := ac.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Logout handles POST /api/auth/logout. It succeeds with or without a valid token.
func (ac *AuthController) Logout(c *gin.Context) {
	token := middleware.ExtractBearerToken(c.GetHeader("Authorization"))
	ac.authService.Logout(c.Request.Context(), token)

	c.JSON(http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "logged out",
	})
}

// Me handles GET /api/user
func (ac *AuthController) Me(c *gin.Context) {
	token := middleware.ExtractBearerToken(c.GetHeader("Authorization"))
	user, err := ac.authService.Me(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.UserResponse{
		Success: true,
		User:    *user,
	})
}
