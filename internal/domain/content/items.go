package content

import (
	"time"

	"educa-app/internal/domain/media"
)

// ItemBase holds the columns every payload kind shares.
type ItemBase struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	OwnerID uint   `gorm:"not null;index" json:"-"`
	Title   string `gorm:"size:250;not null" json:"title"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *ItemBase) Base() *ItemBase { return b }

// Item is any payload the registry knows how to store and render.
type Item interface {
	Base() *ItemBase
	Kind() Kind
}

type Text struct {
	ItemBase
	Content string `gorm:"type:text;not null" json:"content"`
}

func (*Text) Kind() Kind { return KindText }

type File struct {
	ItemBase
	Object media.Object `gorm:"embedded" json:"object"`
}

func (*File) Kind() Kind { return KindFile }

func (f *File) StoredObject() *media.Object { return &f.Object }

type Image struct {
	ItemBase
	Object media.Object `gorm:"embedded" json:"object"`
}

func (*Image) Kind() Kind { return KindImage }

func (i *Image) StoredObject() *media.Object { return &i.Object }

type Video struct {
	ItemBase
	URL string `gorm:"size:200;not null" json:"url"`
}

func (*Video) Kind() Kind { return KindVideo }
