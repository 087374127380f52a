package courses

import (
	"educa-app/internal/domain/content"
	"educa-app/internal/domain/media"

	"gorm.io/gorm"
)

// Payload rows live in per-kind tables the database cannot cascade into, so
// every removal of a course or module purges them first, in the same transaction.

// DeleteCourse removes an owned course with its modules, contents and payloads.
// It returns gorm.ErrRecordNotFound when owner does not own the course.
func DeleteCourse(tx *gorm.DB, reg *content.Registry, owner, courseID uint) ([]media.Object, error) {
	var c Course
	if err := OwnedCourses(tx, owner).First(&c, courseID).Error; err != nil {
		return nil, err
	}

	refs, err := referencesUnder(tx, fresh(tx).Model(&Module{}).Select("id").Where("course_id = ?", c.ID))
	if err != nil {
		return nil, err
	}
	objects, err := reg.Purge(tx, refs)
	if err != nil {
		return nil, err
	}

	if err := tx.Delete(&Course{}, c.ID).Error; err != nil {
		return nil, err
	}
	return objects, nil
}

// DeleteModules removes modules of one course with their contents and payloads.
func DeleteModules(tx *gorm.DB, reg *content.Registry, courseID uint, moduleIDs []uint) ([]media.Object, error) {
	if len(moduleIDs) == 0 {
		return nil, nil
	}
	ids := fresh(tx).Model(&Module{}).Select("id").Where("course_id = ? AND id IN ?", courseID, moduleIDs)

	refs, err := referencesUnder(tx, ids)
	if err != nil {
		return nil, err
	}
	objects, err := reg.Purge(tx, refs)
	if err != nil {
		return nil, err
	}

	if err := tx.Where("course_id = ? AND id IN ?", courseID, moduleIDs).Delete(&Module{}).Error; err != nil {
		return nil, err
	}
	return objects, nil
}

func referencesUnder(tx *gorm.DB, moduleIDs *gorm.DB) ([]content.Reference, error) {
	var refs []content.Reference
	err := fresh(tx).Model(&Content{}).
		Select("item_kind", "item_id").
		Where("module_id IN (?)", moduleIDs).
		Find(&refs).Error
	return refs, err
}
