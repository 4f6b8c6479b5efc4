package handlers

import (
	"errors"
	"net/http"

	"codeclimb/configs"
	"codeclimb/internal/common"
	"codeclimb/internal/logger"
	"codeclimb/internal/middlewares"
	"codeclimb/internal/models"
	"codeclimb/internal/repositories"
	"codeclimb/internal/services"
	"codeclimb/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userRepo     repositories.UserRepository
	tokenService *services.TokenService
	cfg          *configs.Config
}

func NewAuthHandler(userRepo repositories.UserRepository, tokenService *services.TokenService, cfg *configs.Config) *AuthHandler {
	return &AuthHandler{
		userRepo:     userRepo,
		tokenService: tokenService,
		cfg:          cfg,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondMessage(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := req.Validate(); err != nil {
		common.RespondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.userRepo.GetUserByEmail(c.Request.Context(), req.Email); err == nil {
		common.RespondMessage(c, http.StatusBadRequest, "User already exists")
		return
	} else if !errors.Is(err, common.ErrNotFound) {
		logger.Log.Error("Failed to check existing user", zap.Error(err))
		common.RespondMessage(c, http.StatusInternalServerError, "Error creating user")
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		common.RespondMessage(c, http.StatusInternalServerError, "Error creating user")
		return
	}

	user := &models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hashedPassword,
		Role:         models.RoleUser,
	}
	if err := h.userRepo.CreateUser(c.Request.Context(), user); err != nil {
		logger.Log.Error("Failed to create user", zap.Error(err))
		common.RespondMessage(c, http.StatusInternalServerError, "Error creating user")
		return
	}

	if err := h.setSessionCookie(c, user.ID); err != nil {
		logger.Log.Error("Failed to issue session token", zap.Error(err))
		common.RespondMessage(c, http.StatusInternalServerError, "Error creating user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
		"data":    userPayload(user),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondMessage(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := h.userRepo.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		common.RespondMessage(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := h.setSessionCookie(c, user.ID); err != nil {
		logger.Log.Error("Failed to issue session token", zap.Error(err))
		common.RespondMessage(c, http.StatusInternalServerError, "Error logging in user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User logged in successfully",
		"data":    userPayload(user),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("jwt", "", -1, "/", "", h.cfg.IsProduction(), true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User logged out successfully",
	})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		common.RespondMessage(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User fetched successfully",
		"data":    userPayload(user),
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, userID string) error {
	token, err := h.tokenService.GenerateToken(userID)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("jwt", token, int(services.TokenValidity.Seconds()), "/", "", h.cfg.IsProduction(), true)
	return nil
}

func userPayload(user *models.User) gin.H {
	return gin.H{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
		"image": user.Image,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", auth, h.Logout)
		authGroup.GET("/profile", auth, h.Profile)
	}
}
