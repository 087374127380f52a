package courses

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"educa-app/internal/domain/content"
	"educa-app/internal/domain/media"

	"gorm.io/gorm"
)

// ModuleRow is one row of the module formset of a course.
// ID 0 adds a module; Delete removes an existing one.
type ModuleRow struct {
	ID          uint   `json:"id" form:"id"`
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Delete      bool   `json:"delete" form:"delete"`
}

func (r ModuleRow) blank() bool {
	return r.ID == 0 && strings.TrimSpace(r.Title) == "" && strings.TrimSpace(r.Description) == ""
}

// FormsetError carries per-row field errors, keyed by row index.
type FormsetError struct {
	Rows map[int]map[string]string
}

func (e *FormsetError) Error() string {
	idx := make([]int, 0, len(e.Rows))
	for i := range e.Rows {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return fmt.Sprintf("invalid module rows %v", idx)
}

func validateRows(rows []ModuleRow) error {
	errs := map[int]map[string]string{}
	for i, r := range rows {
		if r.Delete || r.blank() {
			continue
		}
		if strings.TrimSpace(r.Title) == "" {
			errs[i] = map[string]string{"title": "This field is required."}
		} else if utf8.RuneCountInString(r.Title) > 200 {
			errs[i] = map[string]string{"title": "Ensure this value has at most 200 characters."}
		}
	}
	if len(errs) > 0 {
		return &FormsetError{Rows: errs}
	}
	return nil
}

// SaveModules applies a formset to the modules of a course the caller already
// owns. New modules are appended in row order. A row naming a module outside
// the course fails with gorm.ErrRecordNotFound. Objects of purged payloads are
// returned so the caller can drop their blobs after commit.
func SaveModules(tx *gorm.DB, reg *content.Registry, courseID uint, rows []ModuleRow) ([]media.Object, error) {
	if err := validateRows(rows); err != nil {
		return nil, err
	}

	var known []uint
	if err := fresh(tx).Model(&Module{}).Where("course_id = ?", courseID).Pluck("id", &known).Error; err != nil {
		return nil, err
	}
	inCourse := make(map[uint]bool, len(known))
	for _, id := range known {
		inCourse[id] = true
	}

	var drop []uint
	for _, r := range rows {
		if r.blank() {
			continue
		}
		if r.ID != 0 && !inCourse[r.ID] {
			return nil, gorm.ErrRecordNotFound
		}

		switch {
		case r.Delete && r.ID != 0:
			drop = append(drop, r.ID)
		case r.Delete:
		case r.ID == 0:
			m := Module{CourseID: courseID, Title: strings.TrimSpace(r.Title), Description: r.Description}
			if err := tx.Create(&m).Error; err != nil {
				return nil, err
			}
		default:
			if err := tx.Model(&Module{}).
				Where("id = ? AND course_id = ?", r.ID, courseID).
				Updates(map[string]any{"title": strings.TrimSpace(r.Title), "description": r.Description}).Error; err != nil {
				return nil, err
			}
		}
	}

	return DeleteModules(tx, reg, courseID, drop)
}
