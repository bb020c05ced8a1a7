package records

import (
	"math"
	"testing"
	"time"

	"fleet_registry/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func sum(v float64) *float64 { return &v }

func accidentInput(number string) AccidentInput {
	return AccidentInput{
		Number:             str(number),
		Date:               date(2024, time.March, 14),
		Login:              str("ipetrov"),
		DepartureAddress:   str("2nd Baumanskaya st., 5"),
		DestinationAddress: str("Tverskaya st., 1"),
		Sum:                sum(15000),
	}
}

func TestAccidentsAdd(t *testing.T) {
	db := setupTestDB(t)
	seedBrand(t, db, "Toyota")
	seedCar(t, db, "A123BC", "Toyota")
	accidents := NewAccidents(db, nil)

	view := accidents.Add(ctx, accidentInput("A123BC"))

	assert.Nil(t, view.Error)
	require.Len(t, view.Accidents, 1)
	got := view.Accidents[0]
	assert.Equal(t, "A123BC", got.CarNumber)
	assert.True(t, got.Date.Equal(*date(2024, time.March, 14)))
	assert.Equal(t, 15000.0, got.Sum)
}

func TestAccidentsAddFailures(t *testing.T) {
	db := setupTestDB(t)
	seedBrand(t, db, "Toyota")
	seedCar(t, db, "A123BC", "Toyota")
	accidents := NewAccidents(db, nil)

	in := accidentInput("A123BC")
	in.Sum = nil
	view := accidents.Add(ctx, in)
	require.NotNil(t, view.Error)
	assert.Equal(t, MsgMissingParameter, *view.Error)

	view = accidents.Add(ctx, accidentInput("Z999ZZ"))
	require.NotNil(t, view.Error)
	assert.Equal(t, MsgUnknownCar, *view.Error)

	in = accidentInput("A123BC")
	in.Sum = sum(-1)
	view = accidents.Add(ctx, in)
	require.NotNil(t, view.Error)
	assert.Equal(t, MsgInvalidValue, *view.Error)

	assert.Empty(t, view.Accidents)
}

func TestAccidentsEdit(t *testing.T) {
	db := setupTestDB(t)
	seedBrand(t, db, "Toyota")
	seedCar(t, db, "A123BC", "Toyota")
	accidents := NewAccidents(db, nil)
	require.Nil(t, accidents.Add(ctx, accidentInput("A123BC")).Error)
	var stored models.Accident
	require.NoError(t, db.First(&stored).Error)

	view := accidents.Edit(ctx, id(stored.ID), AccidentInput{Login: str("apetrova"), Sum: sum(1)})
	assert.Nil(t, view.Error)
	require.Len(t, view.Accidents, 1)
	assert.Equal(t, "apetrova", view.Accidents[0].Login)
	assert.Equal(t, 15000.0, view.Accidents[0].Sum)

	view = accidents.Edit(ctx, id(stored.ID), AccidentInput{Date: date(2024, time.April, 1)})
	assert.Nil(t, view.Error)
	assert.True(t, view.Accidents[0].Date.Equal(*date(2024, time.April, 1)))

	view = accidents.Edit(ctx, id(stored.ID), AccidentInput{Number: str("Z999ZZ")})
	require.NotNil(t, view.Error)
	assert.Equal(t, MsgUnknownCar, *view.Error)

	view = accidents.Edit(ctx, id(stored.ID), AccidentInput{Number: str("")})
	require.NotNil(t, view.Error)
	assert.Equal(t, MsgInvalidNumber, *view.Error)

	view = accidents.Edit(ctx, id(stored.ID+1), AccidentInput{Login: str("x")})
	require.NotNil(t, view.Error)
	assert.Equal(t, MsgNotFound, *view.Error)
	assert.Equal(t, "A123BC", view.Accidents[0].CarNumber)
}

func TestAccidentsDelete(t *testing.T) {
	db := setupTestDB(t)
	seedBrand(t, db, "Toyota")
	seedCar(t, db, "A123BC", "Toyota")
	accidents := NewAccidents(db, nil)
	require.Nil(t, accidents.Add(ctx, accidentInput("A123BC")).Error)
	var stored models.Accident
	require.NoError(t, db.First(&stored).Error)

	view := accidents.Delete(ctx, id(stored.ID+1))
	require.NotNil(t, view.Error)
	assert.Equal(t, MsgNotFound, *view.Error)
	assert.Len(t, view.Accidents, 1)

	view = accidents.Delete(ctx, id(stored.ID))
	assert.Nil(t, view.Error)
	assert.Empty(t, view.Accidents)
}

func TestAccidentsFilter(t *testing.T) {
	db := setupTestDB(t)
	seedBrand(t, db, "Toyota")
	seedCar(t, db, "A123BC", "Toyota")
	seedCar(t, db, "B456OP", "Toyota")
	accidents := NewAccidents(db, nil)

	first := accidentInput("A123BC")
	second := accidentInput("B456OP")
	second.Date = date(2024, time.May, 2)
	second.Sum = sum(2500.5)
	third := accidentInput("B456OP")
	third.Login = str("asmirnova")
	for _, in := range []AccidentInput{first, second, third} {
		require.Nil(t, accidents.Add(ctx, in).Error)
	}

	assert.Len(t, accidents.Filter(ctx, AccidentFilter{}).Accidents, 3)

	view := accidents.Filter(ctx, AccidentFilter{Date: date(2024, time.March, 14)})
	assert.Len(t, view.Accidents, 2)

	view = accidents.Filter(ctx, AccidentFilter{Sum: sum(2500.5)})
	require.Len(t, view.Accidents, 1)
	assert.Equal(t, "B456OP", view.Accidents[0].CarNumber)

	view = accidents.Filter(ctx, AccidentFilter{Number: str("B456"), Login: str("smirn")})
	require.Len(t, view.Accidents, 1)
	assert.Equal(t, "asmirnova", view.Accidents[0].Login)

	view = accidents.Filter(ctx, AccidentFilter{DestinationAddress: str("Tverskaya"), Date: date(2025, time.January, 1)})
	assert.Empty(t, view.Accidents)
}

func TestAccidentsRejectNonFiniteSum(t *testing.T) {
	db := setupTestDB(t)
	seedBrand(t, db, "Toyota")
	seedCar(t, db, "A123BC", "Toyota")
	accidents := NewAccidents(db, nil)
	require.Nil(t, accidents.Add(ctx, accidentInput("A123BC")).Error)
	var stored models.Accident
	require.NoError(t, db.First(&stored).Error)

	for _, bad := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		in := accidentInput("A123BC")
		in.Sum = sum(bad)
		view := accidents.Add(ctx, in)
		require.NotNil(t, view.Error)
		assert.Equal(t, `parameter "sum" has an invalid value`, *view.Error)
		assert.Len(t, view.Accidents, 1)

		view = accidents.Edit(ctx, id(stored.ID), AccidentInput{Sum: sum(bad)})
		require.NotNil(t, view.Error)
		assert.Equal(t, `parameter "sum" has an invalid value`, *view.Error)
		assert.Equal(t, 15000.0, view.Accidents[0].Sum)
	}
}
