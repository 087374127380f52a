package ordering

import (
	"errors"
	"sort"
	"strconv"

	"gorm.io/gorm"
)

var ErrNegativeOrder = errors.New("order must be a non-negative integer")

// Batch maps entity ids to the order the client wants them to have.
type Batch map[uint]int

// ParseBatch turns a decoded JSON body ({"12": 0, "7": 1}) into a Batch.
// Keys that are not ids are dropped since they can never match a row.
func ParseBatch(raw map[string]int) (Batch, error) {
	b := make(Batch, len(raw))
	for k, order := range raw {
		if order < 0 {
			return nil, ErrNegativeOrder
		}
		id, err := strconv.ParseUint(k, 10, 64)
		if err != nil || id == 0 {
			continue
		}
		b[uint(id)] = order
	}
	return b, nil
}

// IDs returns the batch ids in ascending order.
func (b Batch) IDs() []uint {
	ids := make([]uint, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Reorder writes every pair of the batch to rows of model that match both the
// id and the owned scope, in a single transaction. Pairs that match nothing
// are skipped. The returned count is the number of rows matched, so applying
// the same batch twice reports the same number.
func Reorder(db *gorm.DB, model any, batch Batch, owned func(*gorm.DB) *gorm.DB) (int64, error) {
	for _, order := range batch {
		if order < 0 {
			return 0, ErrNegativeOrder
		}
	}

	var applied int64
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, id := range batch.IDs() {
			res := tx.Model(model).
				Scopes(owned).
				Where("id = ?", id).
				Update(Column, batch[id])
			if res.Error != nil {
				return res.Error
			}
			applied += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}
