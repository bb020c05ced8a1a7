package records

import (
	"context"
	"math"
	"time"

	"fleet_registry/pkg/models"
	"fleet_registry/pkg/storeerr"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AccidentsView struct {
	Accidents []models.Accident `json:"accidents"`
	Outcome
}

type AccidentFilter struct {
	Number             *string
	Date               *time.Time
	Login              *string
	DepartureAddress   *string
	DestinationAddress *string
	Sum                *float64
}

type AccidentInput struct {
	Number             *string
	Date               *time.Time
	Login              *string
	DepartureAddress   *string
	DestinationAddress *string
	Sum                *float64
}

var accidentMessages = storeerr.Messages{
	storeerr.ForeignKey: MsgUnknownCar,
	storeerr.Check:      MsgInvalidValue,
}

type Accidents struct {
	controller
}

func NewAccidents(db *gorm.DB, log *zap.Logger) *Accidents {
	return &Accidents{controller: newController("accident", db, log)}
}

func (a *Accidents) Index(ctx context.Context) AccidentsView {
	return a.view(ctx, a.session(ctx), Outcome{})
}

func (a *Accidents) Fail(ctx context.Context, err error) AccidentsView {
	return a.view(ctx, a.session(ctx), a.report(ctx, "bind", err))
}

func (a *Accidents) Filter(ctx context.Context, f AccidentFilter) AccidentsView {
	q := a.session(ctx).Model(&models.Accident{})
	q = contains(q, "number", f.Number)
	q = equals(q, "date", f.Date)
	q = contains(q, "login", f.Login)
	q = contains(q, "departure_address", f.DepartureAddress)
	q = contains(q, "destination_address", f.DestinationAddress)
	q = equals(q, "sum", f.Sum)
	return a.view(ctx, q, Outcome{})
}

func (a *Accidents) Add(ctx context.Context, in AccidentInput) AccidentsView {
	return a.view(ctx, a.session(ctx), a.report(ctx, "add", a.add(ctx, in)))
}

func (a *Accidents) Edit(ctx context.Context, id *uint, in AccidentInput) AccidentsView {
	return a.view(ctx, a.session(ctx), a.report(ctx, "edit", a.edit(ctx, id, in)))
}

func (a *Accidents) Delete(ctx context.Context, id *uint) AccidentsView {
	return a.view(ctx, a.session(ctx), a.report(ctx, "delete", a.delete(ctx, id)))
}

func (a *Accidents) add(ctx context.Context, in AccidentInput) error {
	if in.Number == nil || in.Date == nil || in.Login == nil ||
		in.DepartureAddress == nil || in.DestinationAddress == nil || in.Sum == nil {
		return missingParameter()
	}
	if !finite(in.Sum) {
		return InvalidParameter("sum")
	}

	accident := models.Accident{
		CarNumber:          *in.Number,
		Date:               *in.Date,
		Login:              *in.Login,
		DepartureAddress:   *in.DepartureAddress,
		DestinationAddress: *in.DestinationAddress,
		Sum:                *in.Sum,
	}
	return storeError(a.session(ctx).Create(&accident).Error, accidentMessages)
}

func (a *Accidents) edit(ctx context.Context, id *uint, in AccidentInput) error {
	if id == nil {
		return notSpecified()
	}
	if !finite(in.Sum) {
		return InvalidParameter("sum")
	}

	tx := a.session(ctx)
	accident, err := find[models.Accident](tx, "id", *id)
	if err != nil {
		return err
	}

	// Like the other records, an edit writes only the first present field.
	ch, ok := firstSet(
		field("number", in.Number),
		field("date", in.Date),
		field("login", in.Login),
		field("departure_address", in.DepartureAddress),
		field("destination_address", in.DestinationAddress),
		field("sum", in.Sum),
	)
	if !ok {
		return nil
	}
	msgs := accidentMessages
	if ch.column == "number" {
		msgs = storeerr.Messages{storeerr.ForeignKey: MsgUnknownCar, storeerr.Check: MsgInvalidNumber}
	}
	return storeError(tx.Model(accident).Update(ch.column, ch.value).Error, msgs)
}

func (a *Accidents) delete(ctx context.Context, id *uint) error {
	if id == nil {
		return notSpecified()
	}

	tx := a.session(ctx)
	accident, err := find[models.Accident](tx, "id", *id)
	if err != nil {
		return err
	}
	return storeError(tx.Delete(accident).Error, storeerr.Messages{})
}

// finite rejects NaN and infinities, which the store accepts but JSON cannot
// encode.
func finite(v *float64) bool {
	return v == nil || !(math.IsNaN(*v) || math.IsInf(*v, 0))
}

func (a *Accidents) view(ctx context.Context, q *gorm.DB, out Outcome) AccidentsView {
	v := AccidentsView{Accidents: []models.Accident{}}
	v.Outcome = a.list(ctx, q, "id", &v.Accidents, out)
	return v
}
