package courses

import (
	"educa-app/internal/domain/ordering"

	"gorm.io/gorm"
)

// ModulesOf returns the modules of a course in order.
func ModulesOf(db *gorm.DB, courseID uint) ([]Module, error) {
	var out []Module
	err := db.Where("course_id = ?", courseID).Scopes(ByOrder).Find(&out).Error
	return out, err
}

// ContentsOf returns the content entries of a module in order.
func ContentsOf(db *gorm.DB, moduleID uint) ([]Content, error) {
	var out []Content
	err := db.Where("module_id = ?", moduleID).Scopes(ByOrder).Find(&out).Error
	return out, err
}

// ReorderModules applies a batch to modules of courses owned by owner.
func ReorderModules(db *gorm.DB, owner uint, batch ordering.Batch) (int64, error) {
	return ordering.Reorder(db, &Module{}, batch, moduleOwnedBy(owner))
}

// ReorderContents applies a batch to contents of modules owned by owner.
func ReorderContents(db *gorm.DB, owner uint, batch ordering.Batch) (int64, error) {
	return ordering.Reorder(db, &Content{}, batch, contentOwnedBy(owner))
}
