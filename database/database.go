package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/patiponrmutl/SchoolPortal/config"
	"github.com/patiponrmutl/SchoolPortal/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		// surface unique violations as gorm.ErrDuplicatedKey for classification
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	// The unique indexes on attendances and results are the concurrency
	// control for the upsert pipelines; AutoMigrate must create them.
	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.Teacher{},
		&models.Student{},
		&models.Course{},
		&models.Enrollment{},
		&models.Attendance{},
		&models.Result{},
		&models.Notification{},
		&models.TimetableEntry{},
	); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}
