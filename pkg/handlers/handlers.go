// Package handlers exposes the record controllers over HTTP with gin.
package handlers

import (
	"net/http"

	"fleet_registry/pkg/records"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler answers every record request with 200 and the refreshed view.
type Handler struct {
	brands    *records.Brands
	cars      *records.Cars
	owners    *records.Owners
	accidents *records.Accidents
}

func New(db *gorm.DB, log *zap.Logger) *Handler {
	return &Handler{
		brands:    records.NewBrands(db, log),
		cars:      records.NewCars(db, log),
		owners:    records.NewOwners(db, log),
		accidents: records.NewAccidents(db, log),
	}
}

func bind(c *gin.Context, form interface{}) error {
	if err := c.ShouldBindWith(form, binding.Form); err != nil {
		return records.InvalidParameter("form")
	}
	return nil
}

func (h *Handler) brandsIndex(c *gin.Context) {
	c.JSON(http.StatusOK, h.brands.Index(c.Request.Context()))
}

func (h *Handler) brandsFilter(c *gin.Context) {
	ctx := c.Request.Context()
	var f brandForm
	if err := bind(c, &f); err != nil {
		c.JSON(http.StatusOK, h.brands.Fail(ctx, err))
		return
	}
	c.JSON(http.StatusOK, h.brands.Filter(ctx, f.filter()))
}

func (h *Handler) brandsAdd(c *gin.Context) {
	ctx := c.Request.Context()
	var f brandForm
	if err := bind(c, &f); err != nil {
		c.JSON(http.StatusOK, h.brands.Fail(ctx, err))
		return
	}
	c.JSON(http.StatusOK, h.brands.Add(ctx, f.input()))
}

func (h *Handler) brandsEdit(c *gin.Context) {
	ctx := c.Request.Context()
	var f brandForm
	if err := bind(c, &f); err != nil {
		c.JSON(http.StatusOK, h.brands.Fail(ctx, err))
		return
	}
	c.JSON(http.StatusOK, h.brands.Edit(ctx, blank(f.ID), f.input()))
}

func (h *Handler) brandsDelete(c *gin.Context) {
	ctx := c.Request.Context()
	var f brandForm
	if err := bind(c, &f); err != nil {
		c.JSON(http.StatusOK, h.brands.Fail(ctx, err))
		return
	}
	c.JSON(http.StatusOK, h.brands.Delete(ctx, blank(f.ID)))
}

func (h *Handler) carsIndex(c *gin.Context) {
	c.JSON(http.StatusOK, h.cars.Index(c.Request.Context()))
}

func (h *Handler) carsFilter(c *gin.Context) {
	ctx := c.Request.Context()
	var f carFilterForm
	if err := bind(c, &f); err != nil {
		c.JSON(http.StatusOK, h.cars.Fail(ctx, err))
		return
	}
	c.JSON(http.StatusOK, h.cars.Filter(ctx, f.filter()))
}

func (h *Handler) carsAdd(c *gin.Context) {
	ctx := c.Request.Context()
	var f carForm
	if err := bind(c, &f); err != nil {
		c.JSON(http.StatusOK, h.cars.Fail(ctx, err))
		return
	}
	c.JSON(http.StatusOK, h.cars.Add(ctx, f.input(false)))
}

func (h *Handler) carsEdit(c *gin.Context) {
	ctx := c.Request.Context()
	var f carForm
	if err := bind(c, &f); err != nil {
		c.JSON(http.StatusOK, h.cars.Fail(ctx, err))
		return
	}
	c.JSON(http.StatusOK, h.cars.Edit(ctx, blank(f.ID), f.input(true)))
}

func (h *Handler) carsDelete(c *gin.Context) {
	ctx := c.Request.Context()
	var f carForm
	if err := bind(c, &f); err != nil {
		c.JSON(http.StatusOK, h.cars.Fail(ctx, err))
		return
	}
	c.JSON(http.StatusOK, h.cars.Delete(ctx, blank(f.ID)))
}

func (h *Handler) ownersIndex(c *gin.Context) {
	c.JSON(http.StatusOK, h.owners.Index(c.Request.Context()))
}

func (h *Handler) ownersFilter(c *gin.Context) {
	ctx := c.Request.Context()
	var f ownerFilterForm
	if err := bind(c, &f); err != nil {
		c.JSON(http.StatusOK, h.owners.Fail(ctx, err))
		return
	}
	filter, err := f.filter()
	if err != nil {
		c.JSON(http.StatusOK, h.owners.Fail(ctx, err))
		return
	}
	c.JSON(http.StatusOK, h.owners.Filter(ctx, filter))
}

func (h *Handler) ownersAdd(c *gin.Context) {
	ctx := c.Request.Context()
	var f ownerForm
	if err := bind(c, &f); err != nil {
		c.JSON(http.StatusOK, h.owners.Fail(ctx, err))
		return
	}
	c.JSON(http.StatusOK, h.owners.Add(ctx, f.input()))
}

func (h *Handler) ownersEdit(c *gin.Context) {
	ctx := c.Request.Context()
	var f ownerForm
	if err := bind(c, &f); err != nil {
		c.JSON(http.StatusOK, h.owners.Fail(ctx, err))
		return
	}
	id, err := parseID("id", f.ID)
	if err != nil {
		c.JSON(http.StatusOK, h.owners.Fail(ctx, err))
		return
	}
	c.JSON(http.StatusOK, h.owners.Edit(ctx, id, f.input()))
}

func (h *Handler) ownersDelete(c *gin.Context) {
	ctx := c.Request.Context()
	var f ownerForm
	if err := bind(c, &f); err != nil {
		c.JSON(http.StatusOK, h.owners.Fail(ctx, err))
		return
	}
	id, err := parseID("id", f.ID)
	if err != nil {
		c.JSON(http.StatusOK, h.owners.Fail(ctx, err))
		return
	}
	c.JSON(http.StatusOK, h.owners.Delete(ctx, id))
}

func (h *Handler) accidentsIndex(c *gin.Context) {
	c.JSON(http.StatusOK, h.accidents.Index(c.Request.Context()))
}

func (h *Handler) accidentsFilter(c *gin.Context) {
	ctx := c.Request.Context()
	var f accidentFilterForm
	if err := bind(c, &f); err != nil {
		c.JSON(http.StatusOK, h.accidents.Fail(ctx, err))
		return
	}
	filter, err := f.filter()
	if err != nil {
		c.JSON(http.StatusOK, h.accidents.Fail(ctx, err))
		return
	}
	c.JSON(http.StatusOK, h.accidents.Filter(ctx, filter))
}

func (h *Handler) accidentsAdd(c *gin.Context) {
	ctx := c.Request.Context()
	var f accidentForm
	if err := bind(c, &f); err != nil {
		c.JSON(http.StatusOK, h.accidents.Fail(ctx, err))
		return
	}
	in, err := f.input()
	if err != nil {
		c.JSON(http.StatusOK, h.accidents.Fail(ctx, err))
		return
	}
	c.JSON(http.StatusOK, h.accidents.Add(ctx, in))
}

func (h *Handler) accidentsEdit(c *gin.Context) {
	ctx := c.Request.Context()
	var f accidentForm
	if err := bind(c, &f); err != nil {
		c.JSON(http.StatusOK, h.accidents.Fail(ctx, err))
		return
	}
	id, err := parseID("id", f.ID)
	if err != nil {
		c.JSON(http.StatusOK, h.accidents.Fail(ctx, err))
		return
	}
	in, err := f.input()
	if err != nil {
		c.JSON(http.StatusOK, h.accidents.Fail(ctx, err))
		return
	}
	c.JSON(http.StatusOK, h.accidents.Edit(ctx, id, in))
}

func (h *Handler) accidentsDelete(c *gin.Context) {
	ctx := c.Request.Context()
	var f accidentForm
	if err := bind(c, &f); err != nil {
		c.JSON(http.StatusOK, h.accidents.Fail(ctx, err))
		return
	}
	id, err := parseID("id", f.ID)
	if err != nil {
		c.JSON(http.StatusOK, h.accidents.Fail(ctx, err))
		return
	}
	c.JSON(http.StatusOK, h.accidents.Delete(ctx, id))
}
