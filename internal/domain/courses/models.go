package courses

import (
	"time"

	"educa-app/internal/domain/content"
	"educa-app/internal/domain/ordering"

	"gorm.io/gorm"
)

type Subject struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"size:200;not null" json:"title"`
	Slug  string `gorm:"size:200;not null;uniqueIndex" json:"slug"`

	Courses []Course `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Course struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	OwnerID   uint   `gorm:"not null;index" json:"owner_id"`
	SubjectID uint   `gorm:"not null;index" json:"subject_id"`
	Title     string `gorm:"size:200;not null" json:"title"`
	Slug      string `gorm:"size:200;not null;uniqueIndex" json:"slug"`
	Overview  string `gorm:"type:text" json:"overview"`

	Modules []Module `gorm:"constraint:OnDelete:CASCADE;" json:"modules,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Module is ordered among the modules of its course.
type Module struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CourseID    uint   `gorm:"not null;index" json:"course_id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	ordering.Position

	Contents []Content `gorm:"constraint:OnDelete:CASCADE;" json:"contents,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Module) OrderScope() ordering.ScopeKey { return ordering.ScopeKey{"course_id"} }

func (m *Module) BeforeCreate(tx *gorm.DB) error {
	return ordering.Assign(tx, m)
}

// Content is one entry of a module: an ordered reference to a payload.
type Content struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ModuleID uint `gorm:"not null;index" json:"module_id"`
	content.Reference
	ordering.Position

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Content) OrderScope() ordering.ScopeKey { return ordering.ScopeKey{"module_id"} }

func (c *Content) BeforeCreate(tx *gorm.DB) error {
	if err := c.Reference.Validate(); err != nil {
		return err
	}
	return ordering.Assign(tx, c)
}
