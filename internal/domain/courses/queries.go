package courses

import (
	"gorm.io/gorm"
)

func fresh(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true})
}

// ByOrder sorts an ordered collection; ties fall back to the id.
func ByOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC").Order("id ASC")
}

func OwnedCourses(db *gorm.DB, owner uint) *gorm.DB {
	return db.Model(&Course{}).Where("owner_id = ?", owner)
}

func OwnedModules(db *gorm.DB, owner uint) *gorm.DB {
	return db.Model(&Module{}).Scopes(moduleOwnedBy(owner))
}

func OwnedContents(db *gorm.DB, owner uint) *gorm.DB {
	return db.Model(&Content{}).Scopes(contentOwnedBy(owner))
}

func moduleOwnedBy(owner uint) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where("course_id IN (?)",
			fresh(q).Model(&Course{}).Select("id").Where("owner_id = ?", owner))
	}
}

// content -> module -> course -> owner
func contentOwnedBy(owner uint) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where("module_id IN (?)",
			fresh(q).Model(&Module{}).Select("id").Scopes(moduleOwnedBy(owner)))
	}
}
