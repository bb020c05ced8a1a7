package handlers

import (
	"math"
	"strconv"
	"time"

	"fleet_registry/pkg/records"
)

const dateLayout = "2006-01-02"

type brandForm struct {
	ID        *string `form:"id"`
	Title     *string `form:"title"`
	FullTitle *string `form:"fullTitle"`
	Country   *string `form:"country"`
}

type carFilterForm struct {
	Number *string `form:"searchNumber"`
	Brand  *string `form:"searchBrand"`
	Model  *string `form:"searchModel"`
	Color  *string `form:"searchColor"`
}

// carForm serves add and edit. Edit takes the new number as newNumber.
type carForm struct {
	ID        *string `form:"id"`
	Number    *string `form:"number"`
	NewNumber *string `form:"newNumber"`
	Brand     *string `form:"brand"`
	Model     *string `form:"model"`
	Color     *string `form:"color"`
}

type ownerFilterForm struct {
	ID         *string `form:"searchId"`
	Number     *string `form:"searchNumber"`
	Name       *string `form:"searchName"`
	SecondName *string `form:"searchSecondName"`
	Surname    *string `form:"searchSurname"`
	Login      *string `form:"searchLogin"`
}

type ownerForm struct {
	ID         *string `form:"id"`
	Number     *string `form:"number"`
	Name       *string `form:"name"`
	SecondName *string `form:"secondName"`
	Surname    *string `form:"surname"`
	Login      *string `form:"login"`
}

type accidentFilterForm struct {
	Number             *string `form:"searchNumber"`
	Date               *string `form:"searchDate"`
	Login              *string `form:"searchLogin"`
	DepartureAddress   *string `form:"searchDepartureAddress"`
	DestinationAddress *string `form:"searchDestinationAddress"`
	Sum                *string `form:"searchSum"`
}

type accidentForm struct {
	ID                 *string `form:"id"`
	Number             *string `form:"number"`
	Date               *string `form:"date"`
	Login              *string `form:"login"`
	DepartureAddress   *string `form:"departureAddress"`
	DestinationAddress *string `form:"destinationAddress"`
	Sum                *string `form:"sum"`
}

// blank treats an empty value the same as a missing one.
func blank(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func parseID(name string, s *string) (*uint, error) {
	if s = blank(s); s == nil {
		return nil, nil
	}
	n, err := strconv.ParseUint(*s, 10, 64)
	if err != nil {
		return nil, records.InvalidParameter(name)
	}
	id := uint(n)
	return &id, nil
}

func parseDate(name string, s *string) (*time.Time, error) {
	if s = blank(s); s == nil {
		return nil, nil
	}
	d, err := time.ParseInLocation(dateLayout, *s, time.UTC)
	if err != nil {
		return nil, records.InvalidParameter(name)
	}
	return &d, nil
}

func parseSum(name string, s *string) (*float64, error) {
	if s = blank(s); s == nil {
		return nil, nil
	}
	v, err := strconv.ParseFloat(*s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, records.InvalidParameter(name)
	}
	return &v, nil
}

func (f brandForm) filter() records.BrandFilter {
	return records.BrandFilter{
		Title:     blank(f.Title),
		FullTitle: blank(f.FullTitle),
		Country:   blank(f.Country),
	}
}

func (f brandForm) input() records.BrandInput {
	return records.BrandInput{
		Title:     blank(f.Title),
		FullTitle: blank(f.FullTitle),
		Country:   blank(f.Country),
	}
}

func (f carFilterForm) filter() records.CarFilter {
	return records.CarFilter{
		Number: blank(f.Number),
		Brand:  blank(f.Brand),
		Model:  blank(f.Model),
		Color:  blank(f.Color),
	}
}

func (f carForm) input(edit bool) records.CarInput {
	number := f.Number
	if edit {
		number = f.NewNumber
	}
	return records.CarInput{
		Number: blank(number),
		Brand:  blank(f.Brand),
		Model:  blank(f.Model),
		Color:  blank(f.Color),
	}
}

func (f ownerFilterForm) filter() (records.OwnerFilter, error) {
	id, err := parseID("searchId", f.ID)
	if err != nil {
		return records.OwnerFilter{}, err
	}
	return records.OwnerFilter{
		ID:         id,
		Number:     blank(f.Number),
		Name:       blank(f.Name),
		SecondName: blank(f.SecondName),
		Surname:    blank(f.Surname),
		Login:      blank(f.Login),
	}, nil
}

func (f ownerForm) input() records.OwnerInput {
	return records.OwnerInput{
		Number:     blank(f.Number),
		Name:       blank(f.Name),
		SecondName: blank(f.SecondName),
		Surname:    blank(f.Surname),
		Login:      blank(f.Login),
	}
}

func (f accidentFilterForm) filter() (records.AccidentFilter, error) {
	date, err := parseDate("searchDate", f.Date)
	if err != nil {
		return records.AccidentFilter{}, err
	}
	sum, err := parseSum("searchSum", f.Sum)
	if err != nil {
		return records.AccidentFilter{}, err
	}
	return records.AccidentFilter{
		Number:             blank(f.Number),
		Date:               date,
		Login:              blank(f.Login),
		DepartureAddress:   blank(f.DepartureAddress),
		DestinationAddress: blank(f.DestinationAddress),
		Sum:                sum,
	}, nil
}

func (f accidentForm) input() (records.AccidentInput, error) {
	date, err := parseDate("date", f.Date)
	if err != nil {
		return records.AccidentInput{}, err
	}
	sum, err := parseSum("sum", f.Sum)
	if err != nil {
		return records.AccidentInput{}, err
	}
	return records.AccidentInput{
		Number:             blank(f.Number),
		Date:               date,
		Login:              blank(f.Login),
		DepartureAddress:   blank(f.DepartureAddress),
		DestinationAddress: blank(f.DestinationAddress),
		Sum:                sum,
	}, nil
}
