// middleware/auth.go
package middleware

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AdminKeyMiddleware is the authoritative gate for admin data routes. The
// shared secret arrives as the secretKey query parameter or the X-Admin-Key
// header and is compared in constant time.
func AdminKeyMiddleware(secret string) fiber.Handler {
	expected := []byte(secret)
	return func(c *fiber.Ctx) error {
		presented := c.Query("secretKey")
		if presented == "" {
			presented = c.Get("X-Admin-Key")
		}
		if presented == "" {
			return c.Status(401).JSON(fiber.Map{
				"success": false,
				"error":   "Missing admin secret key",
			})
		}
		if subtle.ConstantTimeCompare(expected, []byte(presented)) != 1 {
			return c.Status(401).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid admin secret key",
			})
		}
		return c.Next()
	}
}

// AdminAuthMiddleware validates the legacy signed session token, from the
// Authorization bearer header or the authToken cookie. Only the token
// verification endpoint still uses it; the shared secret is authoritative.
func AdminAuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tokenString string

		authHeader := c.Get("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			tokenString = c.Cookies("authToken")
		}
		if tokenString == "" {
			return c.Status(401).JSON(fiber.Map{"success": false, "error": "No token provided"})
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(401, "Invalid signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid or expired token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid token claims"})
		}

		exp, ok := claims["exp"].(float64)
		if !ok || time.Unix(int64(exp), 0).Before(time.Now()) {
			return c.Status(401).JSON(fiber.Map{"success": false, "error": "Token expired"})
		}

		isAdmin, ok := claims["is_admin"].(bool)
		if !ok || !isAdmin {
			return c.Status(403).JSON(fiber.Map{"success": false, "error": "Admin privileges required"})
		}

		c.Locals("adminId", claims["admin_id"])
		c.Locals("adminEmail", claims["email"])

		return c.Next()
	}
}
