package records

import (
	"context"

	"fleet_registry/pkg/models"
	"fleet_registry/pkg/storeerr"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type BrandsView struct {
	Brands []models.Brand `json:"brands"`
	Outcome
}

type BrandFilter struct {
	Title     *string
	FullTitle *string
	Country   *string
}

// BrandInput carries the fields of Add and the optional overwrites of Edit.
type BrandInput struct {
	Title     *string
	FullTitle *string
	Country   *string
}

var (
	brandAddMessages = storeerr.Messages{
		storeerr.Unique: MsgDuplicateBrand,
		storeerr.Check:  MsgInvalidValue,
	}
	brandEditMessages = storeerr.Messages{
		storeerr.Unique:     MsgDuplicateBrand,
		storeerr.ForeignKey: MsgHasDependents,
		storeerr.Check:      MsgInvalidValue,
	}
	brandDeleteMessages = storeerr.Messages{
		storeerr.ForeignKey: MsgHasDependents,
	}
)

type Brands struct {
	controller
}

func NewBrands(db *gorm.DB, log *zap.Logger) *Brands {
	return &Brands{controller: newController("brand", db, log)}
}

func (b *Brands) Index(ctx context.Context) BrandsView {
	return b.view(ctx, b.session(ctx), Outcome{})
}

// Fail renders the full list with err, for requests rejected before reaching
// an operation.
func (b *Brands) Fail(ctx context.Context, err error) BrandsView {
	return b.view(ctx, b.session(ctx), b.report(ctx, "bind", err))
}

func (b *Brands) Filter(ctx context.Context, f BrandFilter) BrandsView {
	q := b.session(ctx).Model(&models.Brand{})
	q = contains(q, "title", f.Title)
	q = contains(q, "full_title", f.FullTitle)
	q = contains(q, "country", f.Country)
	return b.view(ctx, q, Outcome{})
}

func (b *Brands) Add(ctx context.Context, in BrandInput) BrandsView {
	return b.view(ctx, b.session(ctx), b.report(ctx, "add", b.add(ctx, in)))
}

func (b *Brands) Edit(ctx context.Context, id *string, in BrandInput) BrandsView {
	return b.view(ctx, b.session(ctx), b.report(ctx, "edit", b.edit(ctx, id, in)))
}

func (b *Brands) Delete(ctx context.Context, id *string) BrandsView {
	return b.view(ctx, b.session(ctx), b.report(ctx, "delete", b.delete(ctx, id)))
}

func (b *Brands) add(ctx context.Context, in BrandInput) error {
	if in.Title == nil || in.FullTitle == nil || in.Country == nil {
		return missingParameter()
	}

	tx := b.session(ctx)
	taken, err := exists[models.Brand](tx, "title", *in.Title)
	if err != nil {
		return err
	}
	if taken {
		return duplicate(MsgDuplicateBrand)
	}

	brand := models.Brand{
		Title:     *in.Title,
		FullTitle: *in.FullTitle,
		Country:   *in.Country,
	}
	return storeError(tx.Create(&brand).Error, brandAddMessages)
}

func (b *Brands) edit(ctx context.Context, id *string, in BrandInput) error {
	if id == nil {
		return notSpecified()
	}

	tx := b.session(ctx)
	brand, err := find[models.Brand](tx, "title", *id)
	if err != nil {
		return err
	}

	ch, ok := firstSet(
		field("title", in.Title),
		field("full_title", in.FullTitle),
		field("country", in.Country),
	)
	if !ok {
		return nil
	}
	return storeError(tx.Model(brand).Update(ch.column, ch.value).Error, brandEditMessages)
}

func (b *Brands) delete(ctx context.Context, id *string) error {
	if id == nil {
		return notSpecified()
	}

	tx := b.session(ctx)
	brand, err := find[models.Brand](tx, "title", *id)
	if err != nil {
		return err
	}
	return storeError(tx.Delete(brand).Error, brandDeleteMessages)
}

func (b *Brands) view(ctx context.Context, q *gorm.DB, out Outcome) BrandsView {
	v := BrandsView{Brands: []models.Brand{}}
	v.Outcome = b.list(ctx, q, "title", &v.Brands, out)
	return v
}
