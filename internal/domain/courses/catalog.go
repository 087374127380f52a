package courses

import (
	"time"

	"gorm.io/gorm"
)

type SubjectSummary struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	TotalCourses int64  `json:"total_courses"`
}

type CourseSummary struct {
	ID           uint      `json:"id"`
	OwnerID      uint      `json:"owner_id"`
	SubjectID    uint      `json:"subject_id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Overview     string    `json:"overview"`
	CreatedAt    time.Time `json:"created_at"`
	TotalModules int64     `json:"total_modules"`
}

// Subjects lists every subject by title with its course count.
func Subjects(db *gorm.DB) ([]SubjectSummary, error) {
	var out []SubjectSummary
	err := db.Model(&Subject{}).
		Select("subjects.id, subjects.title, subjects.slug, " +
			"(SELECT COUNT(*) FROM courses WHERE courses.subject_id = subjects.id) AS total_courses").
		Order("subjects.title ASC").
		Scan(&out).Error
	return out, err
}

// Catalog lists courses, newest first, optionally narrowed to one subject slug.
func Catalog(db *gorm.DB, subjectSlug string) ([]CourseSummary, error) {
	q := db.Model(&Course{}).
		Select("courses.id, courses.owner_id, courses.subject_id, courses.title, courses.slug, " +
			"courses.overview, courses.created_at, " +
			"(SELECT COUNT(*) FROM modules WHERE modules.course_id = courses.id) AS total_modules")
	if subjectSlug != "" {
		q = q.Where("courses.subject_id IN (?)",
			fresh(db).Model(&Subject{}).Select("id").Where("slug = ?", subjectSlug))
	}

	var out []CourseSummary
	err := q.Order("courses.created_at DESC").Order("courses.id DESC").Scan(&out).Error
	return out, err
}

// CourseBySlug loads a course with its modules in order.
func CourseBySlug(db *gorm.DB, slug string) (Course, error) {
	var c Course
	err := db.Preload("Modules", ByOrder).Where("slug = ?", slug).First(&c).Error
	return c, err
}
