package users

import (
	"net/http"

	"educa-app/database"
	"educa-app/internal/domain/access"
	"educa-app/internal/domain/courses"
	"educa-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// GET /me
func GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var stats StatsDTO
	db := database.DB
	if err := courses.OwnedCourses(db, user.ID).Count(&stats.Courses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats", "details": err.Error()})
		return
	}
	if err := courses.OwnedModules(db, user.ID).Count(&stats.Modules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats", "details": err.Error()})
		return
	}
	if err := courses.OwnedContents(db, user.ID).Count(&stats.Contents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		User: UserDTO{
			ID:           user.ID,
			Email:        user.Email,
			Name:         user.Name,
			Lastname:     user.Lastname,
			Role:         user.Role,
			AuthProvider: user.AuthProvider,
		},
		Capabilities: access.CapabilitiesFor(user.Role),
		Stats:        stats,
	})
}
