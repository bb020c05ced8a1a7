package records

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// contains narrows q to rows whose column holds v as a case-sensitive
// substring. LIKE is avoided because SQLite folds ASCII case for it.
func contains(q *gorm.DB, column string, v *string) *gorm.DB {
	if v == nil {
		return q
	}
	fn := "strpos(?, ?) > 0"
	if q.Dialector.Name() == "sqlite" {
		fn = "instr(?, ?) > 0"
	}
	return q.Where(clause.Expr{SQL: fn, Vars: []interface{}{clause.Column{Name: column}, *v}})
}

func equals[T any](q *gorm.DB, column string, v *T) *gorm.DB {
	if v == nil {
		return q
	}
	return q.Where(clause.Eq{Column: clause.Column{Name: column}, Value: *v})
}
