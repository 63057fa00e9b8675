package mysql

import "gorm.io/gorm/clause"

// forUpdate builds a row-locking clause; sqlite (tests) accepts and ignores it.
func forUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

// insertIgnoreDuplicate maps the unique-key invariants (one contract per
// application, one commission record per loan) onto the store: a second
// insert with the same key is a silent no-op.
func insertIgnoreDuplicate() clause.OnConflict {
	return clause.OnConflict{DoNothing: true}
}
