package media

// Object describes bytes kept in the blob store. The database only keeps the
// key and what a client needs to show a download link.
type Object struct {
	Key         string `gorm:"column:object_key;not null" json:"-"`
	Filename    string `gorm:"column:filename" json:"filename"`
	ContentType string `gorm:"column:content_type" json:"content_type"`
	Size        int64  `gorm:"column:size" json:"size"`
}

// Holder is implemented by payloads that own a stored object.
type Holder interface {
	StoredObject() *Object
}
