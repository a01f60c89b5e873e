package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tomdewit/bartab-app/models"
	"github.com/tomdewit/bartab-app/utils"
)

// BarOwnerCheck allows the request through only when the authenticated user
// owns the bar in the path. The domain itself never checks authorization;
// this is the single gate in front of it.
func BarOwnerCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			c.Abort()
			return
		}

		barID, err := uuid.Parse(c.Param("bar_id"))
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid bar id"))
			c.Abort()
			return
		}

		var bar models.Bar
		if err := db.Select("id", "owner_id").First(&bar, "id = ?", barID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, errors.New("bar not found"))
			c.Abort()
			return
		}

		if bar.OwnerID != userID.(uuid.UUID) {
			utils.RespondError(c, http.StatusForbidden, errors.New("bar owner access required"))
			c.Abort()
			return
		}

		c.Next()
	}
}
