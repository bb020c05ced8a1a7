package models

import (
	"time"
)

type Brand struct {
	Title     string `json:"title" gorm:"primaryKey;size:64"`
	FullTitle string `json:"fullTitle" gorm:"size:128;not null"`
	Country   string `json:"country" gorm:"size:64;not null"`
}

type Car struct {
	Number string `json:"number" gorm:"primaryKey;size:16;check:chk_cars_number,length(number) BETWEEN 1 AND 16"`
	Brand  string `json:"brand" gorm:"size:64;not null;index"`
	Model  string `json:"model" gorm:"size:64;not null"`
	Color  string `json:"color" gorm:"size:32;not null"`

	BrandRef *Brand `json:"-" gorm:"foreignKey:Brand;references:Title;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

type Owner struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	CarNumber  string  `json:"number" gorm:"column:number;size:16;not null;index;check:chk_owners_number,length(number) BETWEEN 1 AND 16"`
	Name       string  `json:"name" gorm:"size:64;not null"`
	SecondName string  `json:"secondName" gorm:"size:64;not null"`
	Surname    *string `json:"surname" gorm:"size:64"`
	Login      *string `json:"login" gorm:"size:64"`

	Car *Car `json:"-" gorm:"foreignKey:CarNumber;references:Number;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

type Accident struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	CarNumber          string    `json:"number" gorm:"column:number;size:16;not null;index;check:chk_accidents_number,length(number) BETWEEN 1 AND 16"`
	Date               time.Time `json:"date" gorm:"type:date;not null"`
	Login              string    `json:"login" gorm:"size:64;not null"`
	DepartureAddress   string    `json:"departureAddress" gorm:"size:256;not null"`
	DestinationAddress string    `json:"destinationAddress" gorm:"size:256;not null"`
	Sum                float64   `json:"sum" gorm:"type:numeric(12,2);not null;check:chk_accidents_sum,sum >= 0"`

	Car *Car `json:"-" gorm:"foreignKey:CarNumber;references:Number;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

// All lists every table in dependency order.
func All() []interface{} {
	return []interface{}{&Brand{}, &Car{}, &Owner{}, &Accident{}}
}
