package courses

import (
	"errors"
	"net/http"

	"educa-app/database"
	dc "educa-app/internal/domain/courses"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /subjects
func ListSubjects(c *gin.Context) {
	out, err := dc.Subjects(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subjects"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /catalog?subject=<slug>
func ListCatalog(c *gin.Context) {
	out, err := dc.Catalog(database.DB, c.Query("subject"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load courses"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /catalog/:slug
func GetCourse(c *gin.Context) {
	course, err := dc.CourseBySlug(database.DB, c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load course"})
		return
	}
	c.JSON(http.StatusOK, course)
}
