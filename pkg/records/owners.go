package records

import (
	"context"

	"fleet_registry/pkg/models"
	"fleet_registry/pkg/storeerr"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OwnersView also carries the cars an owner may reference.
type OwnersView struct {
	Owners []models.Owner `json:"owners"`
	Cars   []models.Car   `json:"cars"`
	Outcome
}

type OwnerFilter struct {
	ID         *uint
	Number     *string
	Name       *string
	SecondName *string
	Surname    *string
	Login      *string
}

// OwnerInput: Number, Name and SecondName are required on Add.
type OwnerInput struct {
	Number     *string
	Name       *string
	SecondName *string
	Surname    *string
	Login      *string
}

var ownerMessages = storeerr.Messages{
	storeerr.ForeignKey: MsgUnknownCar,
	storeerr.Check:      MsgInvalidValue,
}

type Owners struct {
	controller
}

func NewOwners(db *gorm.DB, log *zap.Logger) *Owners {
	return &Owners{controller: newController("owner", db, log)}
}

func (o *Owners) Index(ctx context.Context) OwnersView {
	return o.view(ctx, o.session(ctx), Outcome{})
}

func (o *Owners) Fail(ctx context.Context, err error) OwnersView {
	return o.view(ctx, o.session(ctx), o.report(ctx, "bind", err))
}

func (o *Owners) Filter(ctx context.Context, f OwnerFilter) OwnersView {
	q := o.session(ctx).Model(&models.Owner{})
	q = equals(q, "id", f.ID)
	q = contains(q, "number", f.Number)
	q = contains(q, "name", f.Name)
	q = contains(q, "second_name", f.SecondName)
	q = contains(q, "surname", f.Surname)
	q = contains(q, "login", f.Login)
	return o.view(ctx, q, Outcome{})
}

func (o *Owners) Add(ctx context.Context, in OwnerInput) OwnersView {
	return o.view(ctx, o.session(ctx), o.report(ctx, "add", o.add(ctx, in)))
}

func (o *Owners) Edit(ctx context.Context, id *uint, in OwnerInput) OwnersView {
	return o.view(ctx, o.session(ctx), o.report(ctx, "edit", o.edit(ctx, id, in)))
}

func (o *Owners) Delete(ctx context.Context, id *uint) OwnersView {
	return o.view(ctx, o.session(ctx), o.report(ctx, "delete", o.delete(ctx, id)))
}

func (o *Owners) add(ctx context.Context, in OwnerInput) error {
	if in.Number == nil || in.Name == nil || in.SecondName == nil {
		return missingParameter()
	}

	owner := models.Owner{
		CarNumber:  *in.Number,
		Name:       *in.Name,
		SecondName: *in.SecondName,
		Surname:    in.Surname,
		Login:      in.Login,
	}
	return storeError(o.session(ctx).Create(&owner).Error, ownerMessages)
}

func (o *Owners) edit(ctx context.Context, id *uint, in OwnerInput) error {
	if id == nil {
		return notSpecified()
	}

	tx := o.session(ctx)
	owner, err := find[models.Owner](tx, "id", *id)
	if err != nil {
		return err
	}

	ch, ok := firstSet(
		field("number", in.Number),
		field("name", in.Name),
		field("second_name", in.SecondName),
		field("surname", in.Surname),
		field("login", in.Login),
	)
	if !ok {
		return nil
	}
	return storeError(tx.Model(owner).Update(ch.column, ch.value).Error, ownerMessages)
}

func (o *Owners) delete(ctx context.Context, id *uint) error {
	if id == nil {
		return notSpecified()
	}

	tx := o.session(ctx)
	owner, err := find[models.Owner](tx, "id", *id)
	if err != nil {
		return err
	}
	return storeError(tx.Delete(owner).Error, storeerr.Messages{})
}

func (o *Owners) view(ctx context.Context, q *gorm.DB, out Outcome) OwnersView {
	v := OwnersView{Owners: []models.Owner{}, Cars: []models.Car{}}
	out = o.list(ctx, q, "id", &v.Owners, out)
	v.Outcome = o.list(ctx, o.session(ctx), "number", &v.Cars, out)
	return v
}
