package services

import (
	"fmt"

	"gorm.io/gorm"
)

// NextSequence atomically increments and returns the named counter, creating
// it at 1 on first use. The single upsert-returning statement serializes
// concurrent callers on the row, so two calls never see the same value.
// Pass a transaction handle to make the allocation part of a larger atomic unit.
func NextSequence(db *gorm.DB, name string) (int64, error) {
	var seq int64
	err := db.Raw(
		`INSERT INTO counters (name, sequence) VALUES (?, 1)
		 ON CONFLICT (name) DO UPDATE SET sequence = counters.sequence + 1
		 RETURNING sequence`,
		name,
	).Scan(&seq).Error
	if err != nil {
		return 0, fmt.Errorf("failed to allocate %s sequence: %w", name, err)
	}
	return seq, nil
}
