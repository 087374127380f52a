package ordering

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Column is the database column holding a row's position.
const Column = "sort_order"

// Position is embedded by every model kept in a scoped order.
type Position struct {
	Order int `gorm:"column:sort_order;not null;default:0" json:"order"`

	explicit bool
}

// Place pins the order to n. Assign keeps a placed order instead of appending.
func (p *Position) Place(n int) {
	p.Order = n
	p.explicit = true
}

func (p *Position) position() *Position { return p }

// Orderable is a model with an embedded Position and a declared scope.
type Orderable interface {
	OrderScope() ScopeKey
	position() *Position
}

// Assign gives o the next order among its siblings, unless the caller placed
// it explicitly or its scope columns are not set yet. Models call it from
// their BeforeCreate hook so the query runs in the create transaction.
func Assign(tx *gorm.DB, o Orderable) error {
	pos := o.position()
	if pos.explicit {
		return nil
	}

	stmt := &gorm.Statement{DB: tx, Context: contextOf(tx)}
	if err := stmt.Parse(o); err != nil {
		return err
	}

	scope := o.OrderScope()
	values, ok := scope.values(stmt, o)
	if !ok {
		return nil
	}

	next, err := Next(tx, stmt.Schema.Table, scope, values)
	if err != nil {
		return err
	}
	pos.Order = next
	return nil
}

// Next returns 1 + the highest order in the partition, or 0 for an empty one.
// On PostgreSQL the partition is locked for the rest of the transaction first,
// so two concurrent creates in one scope cannot read the same maximum.
func Next(tx *gorm.DB, table string, scope ScopeKey, values []any) (int, error) {
	db := tx.Session(&gorm.Session{NewDB: true})

	if err := lockScope(db, scope.Partition(table, values)); err != nil {
		return 0, err
	}

	q := db.Table(table)
	for i, col := range scope {
		q = q.Where(clause.Eq{Column: clause.Column{Name: col}, Value: values[i]})
	}

	var max int
	if err := q.Select("COALESCE(MAX(" + Column + "), -1)").Scan(&max).Error; err != nil {
		return 0, err
	}
	return max + 1, nil
}

// SQLite serialises writers for the whole database, so only PostgreSQL needs
// an explicit lock.
func lockScope(db *gorm.DB, partition string) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	return db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", partition).Error
}

func contextOf(tx *gorm.DB) context.Context {
	if tx.Statement != nil && tx.Statement.Context != nil {
		return tx.Statement.Context
	}
	return context.Background()
}
