package handlers

import (
	"log"
	"strings"

	"github.com/prnvgithub28/Foundry/models"
	"github.com/prnvgithub28/Foundry/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{DB: db}
}

// CreateUserRequest is the payload sent after a successful signup with the
// external identity provider.
type CreateUserRequest struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateUser - POST /api/auth/create-user
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid request body"})
	}

	if req.UID == "" || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Missing required fields: uid and email",
		})
	}

	name := req.Name
	if name == "" {
		name = strings.SplitN(req.Email, "@", 2)[0]
	}

	var user models.User
	err := h.DB.Where("uid = ?", req.UID).First(&user).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		user = models.User{UID: req.UID, Name: name, Email: req.Email}
		if err := h.DB.Create(&user).Error; err != nil {
			log.Printf("Failed to create user %s: %v", req.UID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to create user"})
		}
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to create user"})
	default:
		user.Name = name
		user.Email = req.Email
		if err := h.DB.Save(&user).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to create user"})
		}
	}

	token, err := utils.GenerateUserToken(user.UID, user.Email)
	if err != nil {
		log.Printf("Failed to sign session token for %s: %v", user.UID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.UserResponse{
		Message: "User created successfully",
		User:    &user,
		Token:   token,
	})
}

// GetUser - GET /api/auth/user/:uid
func (h *AuthHandler) GetUser(c *fiber.Ctx) error {
	uid := c.Params("uid")

	var user models.User
	if err := h.DB.Where("uid = ?", uid).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to fetch user"})
	}

	return c.JSON(models.UserResponse{User: &user})
}

// Me - GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" || tokenString == authHeader {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: "No token provided"})
	}

	uid, _, err := utils.ParseUserToken(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: err.Error()})
	}

	var user models.User
	if err := h.DB.Where("uid = ?", uid).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "User not found"})
	}

	return c.JSON(models.UserResponse{User: &user})
}
