package records

import (
	"context"
	"unicode/utf8"

	"fleet_registry/pkg/models"
	"fleet_registry/pkg/storeerr"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CarsView also carries the brands a car may reference.
type CarsView struct {
	Cars   []models.Car   `json:"cars"`
	Brands []models.Brand `json:"brands"`
	Outcome
}

type CarFilter struct {
	Number *string
	Brand  *string
	Model  *string
	Color  *string
}

type CarInput struct {
	Number *string
	Brand  *string
	Model  *string
	Color  *string
}

var (
	carAddMessages = storeerr.Messages{
		storeerr.Unique:     MsgDuplicateCar,
		storeerr.ForeignKey: MsgUnknownBrand,
		storeerr.Check:      MsgInvalidValue,
	}
	carDeleteMessages = storeerr.Messages{
		storeerr.ForeignKey: MsgHasDependents,
	}
)

// carEditMessages depends on the column: renaming a number can orphan owners
// and accidents, changing the brand can point at a missing one.
func carEditMessages(column string) storeerr.Messages {
	switch column {
	case "number":
		return storeerr.Messages{
			storeerr.Unique:     MsgDuplicateCar,
			storeerr.ForeignKey: MsgHasDependents,
			storeerr.Check:      MsgInvalidNumber,
		}
	case "brand":
		return storeerr.Messages{
			storeerr.ForeignKey: MsgUnknownBrand,
			storeerr.Check:      MsgInvalidValue,
		}
	default:
		return storeerr.Messages{
			storeerr.Check: MsgInvalidValue,
		}
	}
}

const (
	carNumberCheck = "chk_cars_number"
	maxNumberLen   = 16
)

// carAddError maps a failed insert. Only the number check gets the number
// format message; other format and not-null failures are plain invalid values.
func carAddError(err error) error {
	if storeerr.Classify(err) == storeerr.Check && storeerr.Constraint(err) == carNumberCheck {
		return &Error{Kind: KindConstraintViolation, Category: storeerr.Check, Message: MsgInvalidNumber, Err: err}
	}
	return storeError(err, carAddMessages)
}

type Cars struct {
	controller
}

func NewCars(db *gorm.DB, log *zap.Logger) *Cars {
	return &Cars{controller: newController("car", db, log)}
}

func (c *Cars) Index(ctx context.Context) CarsView {
	return c.view(ctx, c.session(ctx), Outcome{})
}

func (c *Cars) Fail(ctx context.Context, err error) CarsView {
	return c.view(ctx, c.session(ctx), c.report(ctx, "bind", err))
}

func (c *Cars) Filter(ctx context.Context, f CarFilter) CarsView {
	q := c.session(ctx).Model(&models.Car{})
	q = contains(q, "number", f.Number)
	q = contains(q, "brand", f.Brand)
	q = contains(q, "model", f.Model)
	q = contains(q, "color", f.Color)
	return c.view(ctx, q, Outcome{})
}

func (c *Cars) Add(ctx context.Context, in CarInput) CarsView {
	return c.view(ctx, c.session(ctx), c.report(ctx, "add", c.add(ctx, in)))
}

func (c *Cars) Edit(ctx context.Context, id *string, in CarInput) CarsView {
	return c.view(ctx, c.session(ctx), c.report(ctx, "edit", c.edit(ctx, id, in)))
}

func (c *Cars) Delete(ctx context.Context, id *string) CarsView {
	return c.view(ctx, c.session(ctx), c.report(ctx, "delete", c.delete(ctx, id)))
}

func (c *Cars) add(ctx context.Context, in CarInput) error {
	if in.Number == nil || in.Brand == nil || in.Model == nil || in.Color == nil {
		return missingParameter()
	}

	if n := utf8.RuneCountInString(*in.Number); n < 1 || n > maxNumberLen {
		return &Error{Kind: KindConstraintViolation, Category: storeerr.Check, Message: MsgInvalidNumber}
	}

	tx := c.session(ctx)
	taken, err := exists[models.Car](tx, "number", *in.Number)
	if err != nil {
		return err
	}
	if taken {
		return duplicate(MsgDuplicateCar)
	}

	car := models.Car{
		Number: *in.Number,
		Brand:  *in.Brand,
		Model:  *in.Model,
		Color:  *in.Color,
	}
	return carAddError(tx.Create(&car).Error)
}

func (c *Cars) edit(ctx context.Context, id *string, in CarInput) error {
	if id == nil {
		return notSpecified()
	}

	tx := c.session(ctx)
	car, err := find[models.Car](tx, "number", *id)
	if err != nil {
		return err
	}

	ch, ok := firstSet(
		field("number", in.Number),
		field("brand", in.Brand),
		field("model", in.Model),
		field("color", in.Color),
	)
	if !ok {
		return nil
	}
	return storeError(tx.Model(car).Update(ch.column, ch.value).Error, carEditMessages(ch.column))
}

func (c *Cars) delete(ctx context.Context, id *string) error {
	if id == nil {
		return notSpecified()
	}

	tx := c.session(ctx)
	car, err := find[models.Car](tx, "number", *id)
	if err != nil {
		return err
	}
	return storeError(tx.Delete(car).Error, carDeleteMessages)
}

func (c *Cars) view(ctx context.Context, q *gorm.DB, out Outcome) CarsView {
	v := CarsView{Cars: []models.Car{}, Brands: []models.Brand{}}
	out = c.list(ctx, q, "number", &v.Cars, out)
	v.Outcome = c.list(ctx, c.session(ctx), "title", &v.Brands, out)
	return v
}
