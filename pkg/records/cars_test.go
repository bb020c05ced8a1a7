package records

import (
	"errors"
	"testing"

	"fleet_registry/pkg/models"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarsAdd(t *testing.T) {
	db := setupTestDB(t)
	seedBrand(t, db, "Toyota")
	cars := NewCars(db, nil)

	view := cars.Add(ctx, CarInput{Number: str("A123BC"), Brand: str("Toyota"), Model: str("Corolla"), Color: str("red")})
	assert.Nil(t, view.Error)

	index := cars.Index(ctx)
	require.Len(t, index.Cars, 1)
	assert.Equal(t, models.Car{Number: "A123BC", Brand: "Toyota", Model: "Corolla", Color: "red"}, index.Cars[0])
	require.Len(t, index.Brands, 1)
}

func TestCarsAddMissingParameter(t *testing.T) {
	db := setupTestDB(t)
	seedBrand(t, db, "Toyota")

	view := NewCars(db, nil).Add(ctx, CarInput{Number: str("A123BC"), Brand: str("Toyota"), Model: str("Corolla")})

	require.NotNil(t, view.Error)
	assert.Equal(t, MsgMissingParameter, *view.Error)
	assert.Empty(t, view.Cars)
}

func TestCarsAddUnknownBrand(t *testing.T) {
	db := setupTestDB(t)
	seedBrand(t, db, "Toyota")

	view := NewCars(db, nil).Add(ctx, CarInput{Number: str("A123BC"), Brand: str("Tesla"), Model: str("3"), Color: str("white")})

	require.NotNil(t, view.Error)
	assert.Equal(t, MsgUnknownBrand, *view.Error)
	assert.Empty(t, view.Cars)
}

func TestCarsAddDuplicate(t *testing.T) {
	db := setupTestDB(t)
	seedBrand(t, db, "Toyota")
	seedCar(t, db, "A123BC", "Toyota")

	view := NewCars(db, nil).Add(ctx, CarInput{Number: str("A123BC"), Brand: str("Toyota"), Model: str("Camry"), Color: str("blue")})

	require.NotNil(t, view.Error)
	assert.Equal(t, MsgDuplicateCar, *view.Error)
	require.Len(t, view.Cars, 1)
	assert.Equal(t, "Corolla", view.Cars[0].Model)
}

func TestCarsAddInvalidNumber(t *testing.T) {
	db := setupTestDB(t)
	seedBrand(t, db, "Toyota")

	view := NewCars(db, nil).Add(ctx, CarInput{Number: str("A123BC-TOO-LONG-NUMBER"), Brand: str("Toyota"), Model: str("Corolla"), Color: str("red")})

	require.NotNil(t, view.Error)
	assert.Equal(t, MsgInvalidNumber, *view.Error)
	assert.Empty(t, view.Cars)
}

func TestCarsEdit(t *testing.T) {
	db := setupTestDB(t)
	seedBrand(t, db, "Toyota")
	seedBrand(t, db, "Lexus")
	seedCar(t, db, "A123BC", "Toyota")
	cars := NewCars(db, nil)

	t.Run("first present field wins", func(t *testing.T) {
		view := cars.Edit(ctx, str("A123BC"), CarInput{Brand: str("Lexus"), Color: str("black")})
		assert.Nil(t, view.Error)
		require.Len(t, view.Cars, 1)
		assert.Equal(t, "Lexus", view.Cars[0].Brand)
		assert.Equal(t, "red", view.Cars[0].Color)
	})

	t.Run("unknown brand", func(t *testing.T) {
		view := cars.Edit(ctx, str("A123BC"), CarInput{Brand: str("Tesla")})
		require.NotNil(t, view.Error)
		assert.Equal(t, MsgUnknownBrand, *view.Error)
		assert.Equal(t, "Lexus", view.Cars[0].Brand)
	})

	t.Run("missing key", func(t *testing.T) {
		view := cars.Edit(ctx, nil, CarInput{Color: str("green")})
		require.NotNil(t, view.Error)
		assert.Equal(t, MsgNotSpecified, *view.Error)
	})

	t.Run("unknown key", func(t *testing.T) {
		view := cars.Edit(ctx, str("Z999ZZ"), CarInput{Color: str("green")})
		require.NotNil(t, view.Error)
		assert.Equal(t, MsgNotFound, *view.Error)
		assert.Equal(t, "red", view.Cars[0].Color)
	})

	t.Run("renumber", func(t *testing.T) {
		view := cars.Edit(ctx, str("A123BC"), CarInput{Number: str("A124BC")})
		assert.Nil(t, view.Error)
		require.Len(t, view.Cars, 1)
		assert.Equal(t, "A124BC", view.Cars[0].Number)
	})
}

func TestCarsEditNumberWithOwners(t *testing.T) {
	db := setupTestDB(t)
	seedBrand(t, db, "Toyota")
	seedCar(t, db, "A123BC", "Toyota")
	seedOwner(t, db, "A123BC", "Ivan")

	view := NewCars(db, nil).Edit(ctx, str("A123BC"), CarInput{Number: str("A124BC")})

	require.NotNil(t, view.Error)
	assert.Equal(t, MsgHasDependents, *view.Error)
	assert.Equal(t, "A123BC", view.Cars[0].Number)
}

func TestCarsDelete(t *testing.T) {
	db := setupTestDB(t)
	seedBrand(t, db, "Toyota")
	seedCar(t, db, "A123BC", "Toyota")
	seedCar(t, db, "B456OP", "Toyota")
	seedOwner(t, db, "B456OP", "Anna")
	cars := NewCars(db, nil)

	t.Run("missing key leaves list unchanged", func(t *testing.T) {
		view := cars.Delete(ctx, nil)
		require.NotNil(t, view.Error)
		assert.Equal(t, MsgNotSpecified, *view.Error)
		assert.Len(t, view.Cars, 2)
	})

	t.Run("unknown key", func(t *testing.T) {
		view := cars.Delete(ctx, str("Z999ZZ"))
		require.NotNil(t, view.Error)
		assert.Equal(t, MsgNotFound, *view.Error)
		assert.Len(t, view.Cars, 2)
	})

	t.Run("car with owners", func(t *testing.T) {
		view := cars.Delete(ctx, str("B456OP"))
		require.NotNil(t, view.Error)
		assert.Equal(t, MsgHasDependents, *view.Error)
		assert.Len(t, view.Cars, 2)
	})

	t.Run("removes the car", func(t *testing.T) {
		view := cars.Delete(ctx, str("A123BC"))
		assert.Nil(t, view.Error)
		require.Len(t, view.Cars, 1)
		assert.Equal(t, "B456OP", view.Cars[0].Number)
	})
}

func TestCarsFilter(t *testing.T) {
	db := setupTestDB(t)
	seedBrand(t, db, "Toyota")
	seedBrand(t, db, "BMW")
	require.NoError(t, db.Create(&[]models.Car{
		{Number: "A123BC", Brand: "Toyota", Model: "Corolla", Color: "red"},
		{Number: "A777AA", Brand: "BMW", Model: "X5", Color: "red"},
		{Number: "K001KK", Brand: "Toyota", Model: "Camry", Color: "black"},
	}).Error)
	cars := NewCars(db, nil)

	all := cars.Filter(ctx, CarFilter{})
	assert.Equal(t, cars.Index(ctx).Cars, all.Cars)

	view := cars.Filter(ctx, CarFilter{Number: str("A"), Color: str("red")})
	require.Len(t, view.Cars, 2)

	view = cars.Filter(ctx, CarFilter{Number: str("A"), Color: str("red"), Brand: str("Toy")})
	require.Len(t, view.Cars, 1)
	assert.Equal(t, "A123BC", view.Cars[0].Number)

	for _, car := range cars.Index(ctx).Cars {
		matches := car.Brand == "Toyota" && car.Model == "Camry"
		filtered := cars.Filter(ctx, CarFilter{Brand: str("Toyota"), Model: str("Camry")})
		found := false
		for _, c := range filtered.Cars {
			if c.Number == car.Number {
				found = true
			}
		}
		assert.Equal(t, matches, found, car.Number)
	}
}

func TestCarAddErrorMessages(t *testing.T) {
	db := setupTestDB(t)
	seedBrand(t, db, "Toyota")

	var recErr *Error
	tooLong := db.Create(&models.Car{Number: "A123BC-TOO-LONG-NUMBER", Brand: "Toyota", Model: "Corolla", Color: "red"}).Error
	require.Error(t, tooLong)
	require.ErrorAs(t, carAddError(tooLong), &recErr)
	assert.Equal(t, MsgInvalidNumber, recErr.Message)

	cases := map[string]struct {
		err  error
		want string
	}{
		"number check":    {&pgconn.PgError{Code: "23514", ConstraintName: "chk_cars_number"}, MsgInvalidNumber},
		"model too long":  {&pgconn.PgError{Code: "22001"}, MsgInvalidValue},
		"not null":        {&pgconn.PgError{Code: "23502", ColumnName: "color"}, MsgInvalidValue},
		"unknown brand":   {&pgconn.PgError{Code: "23503", ConstraintName: "fk_cars_brand_ref"}, MsgUnknownBrand},
		"duplicate":       {&pgconn.PgError{Code: "23505"}, MsgDuplicateCar},
		"connection lost": {errors.New("connection reset"), MsgUnexpected},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var recErr *Error
			require.ErrorAs(t, carAddError(tc.err), &recErr)
			assert.Equal(t, tc.want, recErr.Message)
		})
	}
}
