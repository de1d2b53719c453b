package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/milavdabgar/npni-flutter/app/config"
	"github.com/milavdabgar/npni-flutter/app/database"
	"github.com/milavdabgar/npni-flutter/app/models"
)

func LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Please provide email and password"})
	}

	user, err := database.GetUserByEmail(c.Context(), config.GetDB(), req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	if !CheckPasswordHash(req.Password, user.Password) {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := GenerateJWT(user.ID.Hex(), user.Email, user.Name, user.Role)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	// Set JWT as HTTP-only cookie; SPA clients may also use the token field
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

func LogoutAPI(c *fiber.Ctx) error {
	// Clear JWT cookie
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// RegisterAPI creates an admin or jury account. Team accounts are never
// created here; they come from the CSV import.
func RegisterAPI(c *fiber.Ctx) error {
	type RegisterRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Role     string `json:"role"`
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email, password and name are required"})
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleJury {
		return c.Status(400).JSON(fiber.Map{"error": "Role must be admin or jury"})
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	user := &models.User{
		Email:    req.Email,
		Password: hash,
		Name:     req.Name,
		Role:     req.Role,
	}
	if err := database.CreateUser(c.Context(), config.GetDB(), user); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			return c.Status(400).JSON(fiber.Map{"error": "User already exists"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	return c.Status(201).JSON(fiber.Map{"user": user})
}

// MeAPI returns the account behind the presented token.
func MeAPI(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Not authenticated"})
	}

	user, err := database.GetUserByID(c.Context(), config.GetDB(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{"user": user})
}
