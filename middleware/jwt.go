package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"learnhub/config"
	"learnhub/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// GenerateJWT generates a JWT token for the user
func GenerateJWT(userID uint, name, role, email string) (string, error) {
	ttl := time.Duration(config.AppConfig.JWTTTLHours) * time.Hour
	claims := jwt.MapClaims{
		"userId": userID,
		"name":   name,
		"role":   role,
		"email":  email,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// parseBearer validates the Authorization header and returns the token claims.
func parseBearer(authHeader string) (jwt.MapClaims, string) {
	if authHeader == "" {
		return nil, "Missing or invalid Authorization header"
	}

	// The token should be prefixed with "Bearer "
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, "Invalid Authorization header format"
	}
	tokenString := authHeader[len("Bearer "):]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return nil, "Invalid or expired token"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, "Invalid token payload"
	}
	if _, ok := claims["userId"].(float64); !ok {
		return nil, "Invalid token payload"
	}
	return claims, ""
}

func setClaims(c *fiber.Ctx, claims jwt.MapClaims) {
	// numeric claims decode as float64
	c.Locals("userId", uint(claims["userId"].(float64)))
	if role, ok := claims["role"].(string); ok {
		c.Locals("role", role)
	}
}

// JWTMiddleware is a middleware to check for valid JWT token in the request.
// The token's user must still exist; the role is taken from the database.
func JWTMiddleware(c *fiber.Ctx) error {
	claims, reason := parseBearer(c.Get("Authorization"))
	if claims == nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, reason, nil)
	}

	setClaims(c, claims)
	if _, err := currentUser(c); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}
		logger.L().Error("user lookup failed", "userId", c.Locals("userId"), "error", err)
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking credentials!", nil)
	}
	return c.Next()
}

// OptionalJWT sets userId when a valid token of an existing user is present and lets anonymous
// requests through.
func OptionalJWT(c *fiber.Ctx) error {
	if claims, _ := parseBearer(c.Get("Authorization")); claims != nil {
		setClaims(c, claims)
		if _, err := currentUser(c); err != nil {
			c.Locals("userId", nil)
			c.Locals("role", nil)
			c.Locals("authUser", nil)
		}
	}
	return c.Next()
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
