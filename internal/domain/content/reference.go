package content

// Reference points at one payload row: the kind selects the table, the id the row.
// Rows embedding it call Validate from their BeforeCreate hook.
type Reference struct {
	ItemKind Kind `gorm:"column:item_kind;type:varchar(16);not null;index:idx_content_item,priority:1" json:"kind"`
	ItemID   uint `gorm:"column:item_id;not null;index:idx_content_item,priority:2" json:"item_id"`
}

// Validate rejects kinds outside the allow-list.
func (r Reference) Validate() error {
	_, err := ParseKind(string(r.ItemKind))
	return err
}
