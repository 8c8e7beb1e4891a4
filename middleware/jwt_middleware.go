package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"taskhive/config"
	"taskhive/models"
	"taskhive/utils"
)

func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Try to get token from Authorization header first
		var token string
		authHeader := c.Get("Authorization")
		if authHeader != "" {
			// Check if it's a Bearer token
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid authorization format",
				})
			}
			token = tokenParts[1]
		} else {
			// Fall back to cookie if header not present
			token = c.Cookies("access_token")
			if token == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Authorization required",
				})
			}
		}

		// Parse and validate the provider-issued token
		claims, err := utils.ParseIdentityToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		// Resolve the user, creating the account lazily on the first
		// authenticated request for this identity.
		var user models.User
		if err := config.DB.Where("external_id = ?", claims.Subject).First(&user).Error; err != nil {
			profile := models.IdentityProfile{
				FullName:    claims.FullName,
				FirstName:   claims.FirstName,
				LastName:    claims.LastName,
				AccountName: claims.AccountName,
			}
			user = models.User{
				ExternalID: claims.Subject,
				Email:      claims.Email,
				Name:       profile.DeriveName(),
				IsActive:   true,
			}
			if err := config.DB.Where("external_id = ?", claims.Subject).
				FirstOrCreate(&user).Error; err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Failed to resolve user",
				})
			}
		}

		// Check if user is active
		if !user.IsActive {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Account is not active",
			})
		}

		// Add user to context
		c.Locals("user", &user)
		c.Locals("userID", user.ID)

		return c.Next()
	}
}

// CronProtected guards the externally triggered sweep endpoints with a
// shared bearer secret.
func CronProtected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		secret := config.AppConfig.CronAPISecret
		if secret == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Cron secret is not configured",
			})
		}

		authHeader := c.Get("Authorization")
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" || tokenParts[1] != secret {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid cron secret",
			})
		}

		return c.Next()
	}
}
