package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gente-backend/shared/database/models"
	utils "gente-backend/shared/utils/auth"
)

// identityKey is the gin context key the authenticated identity is stored
// under. Downstream handlers read it through CurrentIdentity only.
const identityKey = "identity"

// Identity is the minimal authenticated principal attached to a request.
// It is always rebuilt from the database, never from client input.
type Identity struct {
	ID    uint        `json:"id"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// RequireAuth validates the bearer token and re-checks that the account
// still exists and is active. A structurally valid token for a deactivated
// account is rejected; deactivation doubles as revocation.
func RequireAuth(db *gorm.DB, jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Access token not provided",
				"error":   "UNAUTHORIZED",
			})
			c.Abort()
			return
		}

		claims, err := jwtManager.Validate(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid token",
				"error":   "INVALID_TOKEN",
			})
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil || !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "User not found or inactive",
				"error":   "UNAUTHORIZED",
			})
			c.Abort()
			return
		}

		c.Set(identityKey, Identity{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		})

		c.Next()
	}
}

// RequireRole rejects authenticated requests whose role is not in the
// allowed set. It must run after RequireAuth.
func RequireRole(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "User not authenticated",
				"error":   "UNAUTHORIZED",
			})
			c.Abort()
			return
		}

		if !identity.Role.OneOf(allowed...) {
			c.JSON(http.StatusForbidden, gin.H{
				"message":        "Access denied. Insufficient permissions.",
				"error":          "FORBIDDEN",
				"required_roles": allowed,
				"user_role":      identity.Role,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// The three standing gates used by the route tables.

func RequireSuperAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleSuperAdmin)
}

func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleSuperAdmin, models.RoleAdmin)
}

func RequireUser() gin.HandlerFunc {
	return RequireRole(models.RoleSuperAdmin, models.RoleAdmin, models.RoleUser)
}

// CurrentIdentity returns the identity attached by RequireAuth.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}

func extractBearerToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
