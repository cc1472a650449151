package database

import (
	"fmt"
	"log"

	"github.com/MrVulpesTech/hospital-quiz-bot/internal/config"
	"github.com/MrVulpesTech/hospital-quiz-bot/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	log.Println("database connected")
	return db
}

func AutoMigrate(db *gorm.DB) {
	// Earlier deployments stored answers as a JSON column on quiz_responses.
	db.Exec(`DO $$
	BEGIN
		IF EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name = 'quiz_responses' AND column_name = 'responses')
		THEN
			ALTER TABLE quiz_responses DROP COLUMN responses;
		END IF;
	END $$;`)

	// Language columns arrived after the first release; default everyone to Ukrainian.
	db.Exec(`DO $$
	BEGIN
		IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'participants')
		   AND NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name = 'participants' AND column_name = 'language')
		THEN
			ALTER TABLE participants ADD COLUMN language varchar(5) NOT NULL DEFAULT 'uk';
		END IF;
	END $$;`)

	err := db.AutoMigrate(
		&models.Clinician{},
		&models.Participant{},
		&models.QuizResponse{},
		&models.Answer{},
	)
	if err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}
	log.Println("database migrated")
}
