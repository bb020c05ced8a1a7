package database

import (
	"fmt"
	"time"

	"fleet_registry/pkg/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Seed fills an empty database with sample records. It is safe to run twice.
func Seed(db *gorm.DB, log *zap.Logger) error {
	brands := []models.Brand{
		{Title: "Toyota", FullTitle: "Toyota Motor Corporation", Country: "Japan"},
		{Title: "BMW", FullTitle: "Bayerische Motoren Werke AG", Country: "Germany"},
		{Title: "Lada", FullTitle: "AvtoVAZ", Country: "Russia"},
	}
	cars := []models.Car{
		{Number: "A123BC", Brand: "Toyota", Model: "Corolla", Color: "red"},
		{Number: "B456OP", Brand: "BMW", Model: "X5", Color: "black"},
		{Number: "E789KX", Brand: "Lada", Model: "Vesta", Color: "white"},
	}
	surname := "Ivanovich"
	owners := []models.Owner{
		{CarNumber: "A123BC", Name: "Ivan", SecondName: "Petrov", Surname: &surname},
		{CarNumber: "B456OP", Name: "Anna", SecondName: "Smirnova"},
	}
	accidents := []models.Accident{
		{
			CarNumber:          "A123BC",
			Date:               time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC),
			Login:              "ipetrov",
			DepartureAddress:   "2nd Baumanskaya st., 5",
			DestinationAddress: "Tverskaya st., 1",
			Sum:                15000,
		},
	}

	for i := range brands {
		if err := db.Where(models.Brand{Title: brands[i].Title}).FirstOrCreate(&brands[i]).Error; err != nil {
			return fmt.Errorf("failed to seed brand %s: %w", brands[i].Title, err)
		}
	}
	for i := range cars {
		if err := db.Where(models.Car{Number: cars[i].Number}).FirstOrCreate(&cars[i]).Error; err != nil {
			return fmt.Errorf("failed to seed car %s: %w", cars[i].Number, err)
		}
	}

	var count int64
	if err := db.Model(&models.Owner{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count owners: %w", err)
	}
	if count == 0 {
		if err := db.Create(&owners).Error; err != nil {
			return fmt.Errorf("failed to seed owners: %w", err)
		}
	}

	if err := db.Model(&models.Accident{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count accidents: %w", err)
	}
	if count == 0 {
		if err := db.Create(&accidents).Error; err != nil {
			return fmt.Errorf("failed to seed accidents: %w", err)
		}
	}

	log.Info("Test data seeded")
	return nil
}
