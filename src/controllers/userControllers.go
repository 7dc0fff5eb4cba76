package controllers

import (
	"strconv"
	"strings"

	"github.com/ArchePal/ArchePal-Backend/src/apperrors"
	"github.com/ArchePal/ArchePal-Backend/src/models"
	"github.com/ArchePal/ArchePal-Backend/src/services"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

func (uc *UserController) CreateUser(c *gin.Context) {
	var user models.UserModel
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(user.Username) == "" || strings.TrimSpace(user.Password) == "" {
		c.JSON(400, gin.H{"error": "Username and password are required"})
		return
	}

	created, err := uc.service.CreateUser(&user)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(201, models.RegisterResponse{
		ID:          created.Id,
		Username:    created.Username,
		DisplayName: created.DisplayName,
	})
}

func (uc *UserController) AuthenticateUser(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	token, err := uc.service.AuthenticateUser(req.Username, req.Password)
	if err != nil {
		if apperrors.IsUnavailable(err) {
			c.JSON(503, gin.H{"error": "Authentication is temporarily unavailable"})
			return
		}
		c.JSON(401, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"token": token})
}

func (uc *UserController) GetProfile(c *gin.Context) {
	user, err := uc.service.GetUserByID(currentUser(c))
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(404, gin.H{"error": "User not found"})
		return
	}

	c.JSON(200, models.RegisterResponse{
		ID:          user.Id,
		Username:    user.Username,
		DisplayName: user.DisplayName,
	})
}

func (uc *UserController) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	if id != currentUser(c) {
		c.JSON(403, gin.H{"error": "Users can only delete their own account"})
		return
	}

	if err := uc.service.DeleteUser(id); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "User deleted successfully"})
}
