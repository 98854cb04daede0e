// file: database/seed.go
package database

import (
	"log"

	"github.com/JB-05/gen-201-mbc/models"
	"gorm.io/gorm/clause"
)

// SeedDistricts upserts the district reference list. Safe to run on every
// boot; existing rows (including ones an operator deactivated) are left alone.
func SeedDistricts() {
	for _, name := range models.FallbackDistricts {
		d := models.District{Name: name, Active: true}
		if err := DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&d).Error; err != nil {
			log.Printf("Failed to seed district %q: %v", name, err)
		}
	}
	log.Println("District reference list seeded.")
}
