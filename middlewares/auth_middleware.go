package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sim1zzo/vegan-nutrition-tracker/models"
	"github.com/sim1zzo/vegan-nutrition-tracker/utils"
)

const utenteKey = "utenteCorrente"

// AuthMiddleware verifies the bearer token and re-hydrates the user from the
// database on every request. A structurally valid token for a deleted
// account still fails with 401.
func AuthMiddleware(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	secret := []byte(jwtSecret)

	return func(c *gin.Context) {
		user, ok := autentica(c, db, secret)
		if !ok {
			return
		}
		c.Set(utenteKey, user)
		c.Next()
	}
}

// OptionalAuthMiddleware loads the user when a valid token is present but
// lets anonymous requests through. Handlers see the difference through
// CurrentUser returning nil.
func OptionalAuthMiddleware(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	secret := []byte(jwtSecret)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimPrefix(header, "Bearer ")
			if userID, err := utils.ParseJWT(token, secret); err == nil {
				var user models.User
				if err := db.First(&user, userID).Error; err == nil {
					c.Set(utenteKey, &user)
				}
			}
		}
		c.Next()
	}
}

// CurrentUser is the typed accessor for the authenticated user. It returns
// nil on anonymous requests (possible only behind OptionalAuthMiddleware).
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(utenteKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

func autentica(c *gin.Context, db *gorm.DB, secret []byte) (*models.User, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Non autorizzato",
		})
		return nil, false
	}

	userID, err := utils.ParseJWT(strings.TrimPrefix(header, "Bearer "), secret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Token non valido",
		})
		return nil, false
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Utente non trovato",
		})
		return nil, false
	}
	return &user, true
}
