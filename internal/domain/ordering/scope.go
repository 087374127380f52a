package ordering

import (
	"fmt"
	"reflect"
	"strings"

	"gorm.io/gorm"
)

// ScopeKey lists the columns whose values make two rows siblings.
// Modules are scoped by {"course_id"}, contents by {"module_id"}.
type ScopeKey []string

// Partition renders a scope as a stable identity, e.g. "modules:course_id=4".
func (k ScopeKey) Partition(table string, values []any) string {
	var b strings.Builder
	b.WriteString(table)
	for i, col := range k {
		sep := ","
		if i == 0 {
			sep = ":"
		}
		fmt.Fprintf(&b, "%s%s=%v", sep, col, values[i])
	}
	return b.String()
}

// values reads the scope columns from v using the parsed gorm schema.
// ok is false when a column is unknown or still holds its zero value.
func (k ScopeKey) values(stmt *gorm.Statement, v any) (values []any, ok bool) {
	rv := reflect.ValueOf(v)
	for _, col := range k {
		field := stmt.Schema.LookUpField(col)
		if field == nil {
			return nil, false
		}
		value, zero := field.ValueOf(stmt.Context, rv)
		if zero {
			return nil, false
		}
		values = append(values, value)
	}
	return values, len(values) > 0
}
