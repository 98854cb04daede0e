// file: database/migrate.go
package database

import (
	"log"

	"github.com/JB-05/gen-201-mbc/models"
)

func MigrateTables() {
	err := DB.AutoMigrate(
		&models.Team{},
		&models.TeamMember{},
		&models.TeacherVerification{},
		&models.ProjectPitch{},
		&models.Payment{},
		&models.TeamStatusLog{},
		&models.District{},
		&models.Admin{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	log.Println("Database migration completed.")
}
