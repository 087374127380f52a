package courses

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"educa-app/database"
	"educa-app/internal/app/metrics"
	"educa-app/internal/domain/authoring"
	dc "educa-app/internal/domain/courses"
	"educa-app/internal/domain/ordering"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler serves course and module management for instructors.
type Handler struct {
	Service *authoring.Service
}

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

func courseID(c *gin.Context) (uint, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return 0, false
	}
	return uint(n), true
}

// GET /courses/mine
func ListMine(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var out []dc.Course
	if err := dc.OwnedCourses(database.DB, userID).Order("created_at DESC").Order("id DESC").Find(&out).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load courses", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /courses
func Create(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req CourseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course := dc.Course{
		OwnerID:   userID,
		SubjectID: req.SubjectID,
		Title:     strings.TrimSpace(req.Title),
		Overview:  req.Overview,
	}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&dc.Subject{}, req.SubjectID).Error; err != nil {
			return err
		}
		slugSource := req.Title
		if strings.TrimSpace(req.Slug) != "" {
			slugSource = req.Slug
		}
		slug, err := dc.UniqueCourseSlug(tx, slugSource, 0)
		if err != nil {
			return err
		}
		course.Slug = slug
		return tx.Create(&course).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown subject"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, course)
}

// PUT /courses/:id
func Update(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := courseID(c)
	if !ok {
		return
	}
	var req UpdateCourseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var course dc.Course
	errUnknownSubject := errors.New("unknown subject")
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := dc.OwnedCourses(tx, userID).First(&course, id).Error; err != nil {
			return err
		}

		updates := map[string]any{}
		if req.SubjectID != nil {
			if err := tx.First(&dc.Subject{}, *req.SubjectID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errUnknownSubject
				}
				return err
			}
			updates["subject_id"] = *req.SubjectID
		}
		if req.Title != nil {
			updates["title"] = strings.TrimSpace(*req.Title)
		}
		if req.Overview != nil {
			updates["overview"] = *req.Overview
		}
		if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
			slug, err := dc.UniqueCourseSlug(tx, *req.Slug, course.ID)
			if err != nil {
				return err
			}
			updates["slug"] = slug
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&course).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&course, course.ID).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, errUnknownSubject):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown subject"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update course", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, course)
}

// DELETE /courses/:id
func (h *Handler) Delete(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := courseID(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteCourse(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, authoring.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete course", "details": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /courses/:id/modules
func GetModules(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := courseID(c)
	if !ok {
		return
	}

	var course dc.Course
	if err := dc.OwnedCourses(database.DB, userID).First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load course", "details": err.Error()})
		return
	}
	modules, err := dc.ModulesOf(database.DB, course.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load modules", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"course": course, "modules": modules})
}

// POST /courses/:id/modules
// Body: {"modules": [{"id": 3, "title": "...", "description": "...", "delete": false}, ...]}
func (h *Handler) SaveModules(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := courseID(c)
	if !ok {
		return
	}
	var req struct {
		Modules []dc.ModuleRow `json:"modules"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Service.SaveModules(c.Request.Context(), userID, id, req.Modules)
	if err != nil {
		var fe *dc.FormsetError
		switch {
		case errors.As(err, &fe):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fe.Rows})
		case errors.Is(err, authoring.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save modules", "details": err.Error()})
		}
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/courses/%d/modules", id))
}

// POST /modules/reorder
// Body: {"<module id>": <order>, ...}
func ReorderModules(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req map[string]int
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body must map ids to integer orders", "details": err.Error()})
		return
	}
	batch, err := ordering.ParseBatch(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	applied, err := dc.ReorderModules(database.DB.WithContext(c.Request.Context()), userID, batch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder modules", "details": err.Error()})
		return
	}

	metrics.ReorderApplied.WithLabelValues("modules").Add(float64(applied))
	metrics.ReorderSkipped.WithLabelValues("modules").Add(float64(int64(len(req)) - applied))
	c.JSON(http.StatusOK, gin.H{"saved": "OK", "applied": applied})
}
