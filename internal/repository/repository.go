package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate applies a pessimistic row lock held until the enclosing
// transaction commits or rolls back. sqlite has no FOR UPDATE syntax; its
// single-writer lock already serializes the transaction, so the clause is
// skipped there.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
