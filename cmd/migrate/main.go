package main

import (
	"log"
	"os"

	"ai-summarizer-be/internal/model"
	"ai-summarizer-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// 3. Extensions (Postgres only, ignored elsewhere)
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
			color.Yellow("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate
	models := model.AllModels()
	color.Cyan("Running AutoMigrate for %d tables...", len(models))
	for _, m := range models {
		if err := database.AutoMigrate(db, m); err != nil {
			color.Red("Failed: %T: %v", m, err)
			os.Exit(1)
		}
		color.Green("Migrated %T", m)
	}

	color.Green("Migration completed successfully")
}
