// Package records implements the list/filter/add/edit/delete controllers for
// brands, cars, owners and accidents. Every operation returns the refreshed
// list together with at most one user-facing error message.
package records

import (
	"context"
	"errors"

	"fleet_registry/pkg/logging"
	"fleet_registry/pkg/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Outcome is embedded in every view.
type Outcome struct {
	Error     *string `json:"error"`
	RequestID string  `json:"requestId,omitempty"`
}

type controller struct {
	entity string
	db     *gorm.DB
	log    *zap.Logger
}

func newController(entity string, db *gorm.DB, log *zap.Logger) controller {
	if log == nil {
		log = zap.NewNop()
	}
	return controller{entity: entity, db: db, log: log}
}

// session scopes the shared handle to one request.
func (c *controller) session(ctx context.Context) *gorm.DB {
	return c.db.WithContext(ctx)
}

// report converts err into the outcome shown next to the list. Only
// unexpected failures are logged.
func (c *controller) report(ctx context.Context, op string, err error) Outcome {
	if err == nil {
		return Outcome{}
	}

	var recErr *Error
	if !errors.As(err, &recErr) {
		recErr = unexpected(err)
	}
	metrics.RecordErrors.WithLabelValues(c.entity, recErr.Kind.String()).Inc()

	out := Outcome{Error: &recErr.Message}
	if recErr.Kind == KindUnexpected {
		out.RequestID = logging.RequestID(ctx)
		c.log.Error("Record operation failed",
			zap.String("entity", c.entity),
			zap.String("op", op),
			zap.String("request_id", out.RequestID),
			zap.Error(recErr.Err))
	}
	return out
}

// list loads query into dest, keeping an earlier error if there is one.
func (c *controller) list(ctx context.Context, query *gorm.DB, order string, dest interface{}, out Outcome) Outcome {
	if err := query.Order(order).Find(dest).Error; err != nil && out.Error == nil {
		return c.report(ctx, "list", err)
	}
	return out
}

func find[T any](tx *gorm.DB, column string, key interface{}) (*T, error) {
	var rec T
	err := tx.Where(clause.Eq{Column: clause.Column{Name: column}, Value: key}).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound()
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func exists[T any](tx *gorm.DB, column string, key interface{}) (bool, error) {
	var n int64
	err := tx.Model(new(T)).Where(clause.Eq{Column: clause.Column{Name: column}, Value: key}).Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// change is one candidate column overwrite for an edit.
type change struct {
	column string
	value  interface{}
	set    bool
}

func field[T any](column string, v *T) change {
	if v == nil {
		return change{column: column}
	}
	return change{column: column, value: *v, set: true}
}

// firstSet picks the first present change in priority order. Edits apply only
// that one column.
func firstSet(changes ...change) (change, bool) {
	for _, ch := range changes {
		if ch.set {
			return ch, true
		}
	}
	return change{}, false
}
