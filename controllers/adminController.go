package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/levelup-gaming/levelup-api/models"
	"github.com/levelup-gaming/levelup-api/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AdminController is the user-management panel backend.
type AdminController struct {
	db *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{db: db}
}

func (c *AdminController) GetUsers(ctx *gin.Context) {
	var users []models.User
	if err := c.db.Order("created_at ASC").Find(&users).Error; err != nil {
		logrus.Errorf("Database error fetching users: %v", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"users": users})
}

type adminUserBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Location string `json:"location"`
}

func (c *AdminController) CreateUser(ctx *gin.Context) {
	var body adminUserBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if !utils.NonEmpty(body.Name) || !utils.ValidEmail(body.Email) || !utils.ValidPassword(body.Password) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	hashedPassword, err := hashPassword(body.Password)
	if err != nil {
		logrus.Errorf("Password hashing error: %v", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	role := body.Role
	if role == "" {
		role = "user"
	}

	user := models.User{
		Name:     body.Name,
		Email:    body.Email,
		Password: hashedPassword,
		Role:     role,
		Location: body.Location,
	}

	if err := c.db.Create(&user).Error; err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgUserAlreadyExists)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"user": user})
}

func (c *AdminController) UpdateUser(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var body adminUserBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var user models.User
	if err := c.db.First(&user, userId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		} else {
			logrus.Errorf("Database error fetching user: %v", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	updates := map[string]any{}
	if utils.NonEmpty(body.Name) {
		updates["name"] = body.Name
	}
	if body.Role != "" {
		updates["role"] = body.Role
	}
	if body.Location != "" {
		updates["location"] = body.Location
	}
	if body.Password != "" {
		if !utils.ValidPassword(body.Password) {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}
		hashedPassword, err := hashPassword(body.Password)
		if err != nil {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
			return
		}
		updates["password"] = hashedPassword
	}

	if len(updates) > 0 {
		if err := c.db.Model(&user).Updates(updates).Error; err != nil {
			logrus.Errorf("Database error updating user: %v", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
}

func (c *AdminController) DeleteUser(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	result := c.db.Delete(&models.User{}, userId)
	if result.Error != nil {
		logrus.Errorf("Database error deleting user: %v", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User deleted"})
}
