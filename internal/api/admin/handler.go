package admin

import (
	"net/http"

	"educa-app/database"
	"educa-app/internal/domain/content"
	"educa-app/internal/domain/courses"
	"educa-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminStats struct {
	TotalUsers    int64            `json:"total_users"`
	UsersPerRole  map[string]int64 `json:"users_per_role"`
	TotalSubjects int64            `json:"total_subjects"`
	TotalCourses  int64            `json:"total_courses"`
	TotalModules  int64            `json:"total_modules"`
	ContentByKind map[string]int64 `json:"content_by_kind"`
	// DanglingContents counts entries whose payload row is missing.
	DanglingContents int64 `json:"dangling_contents"`
}

// GET /admin/stats
func GetAdminStats(c *gin.Context) {
	db := database.DB
	stats := AdminStats{
		UsersPerRole:  map[string]int64{},
		ContentByKind: map[string]int64{},
	}

	counts := []struct {
		model any
		dst   *int64
	}{
		{&users.User{}, &stats.TotalUsers},
		{&courses.Subject{}, &stats.TotalSubjects},
		{&courses.Course{}, &stats.TotalCourses},
		{&courses.Module{}, &stats.TotalModules},
	}
	for _, q := range counts {
		if err := db.Model(q.model).Count(q.dst).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats", "details": err.Error()})
			return
		}
	}

	type group struct {
		Name  string
		Count int64
	}

	var roles []group
	if err := db.Model(&users.User{}).Select("role AS name, COUNT(*) AS count").Group("role").Scan(&roles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats", "details": err.Error()})
		return
	}
	for _, g := range roles {
		stats.UsersPerRole[g.Name] = g.Count
	}

	var kinds []group
	if err := db.Model(&courses.Content{}).Select("item_kind AS name, COUNT(*) AS count").Group("item_kind").Scan(&kinds).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats", "details": err.Error()})
		return
	}
	for _, g := range kinds {
		stats.ContentByKind[g.Name] = g.Count
	}

	for _, k := range content.Kinds() {
		var n int64
		table := string(k) + "s"
		err := db.Model(&courses.Content{}).
			Where("item_kind = ?", k).
			Where("NOT EXISTS (SELECT 1 FROM " + table + " WHERE " + table + ".id = contents.item_id)").
			Count(&n).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats", "details": err.Error()})
			return
		}
		stats.DanglingContents += n
	}

	c.JSON(http.StatusOK, stats)
}
