package main

import (
	"log"

	_ "github.com/abuabdirohman4/better-habit/docs" // Import generated docs
	"github.com/abuabdirohman4/better-habit/internal/app"
)

// @title Better Habit API
// @version 1.0
// @description Habit tracking API backed by spreadsheet rows
// @description Habits, daily completion logs and derived streak statistics

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Create and initialize the application
	application, err := app.New()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Run the application
	if err := application.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
