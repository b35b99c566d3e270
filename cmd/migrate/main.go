package main

import (
	"fintrack/internal/config"        // Custom import path (Config)
	"fintrack/internal/storage/mysql" // Custom import path (Store)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	mysql.Migrate(cfg.DSN())   // Run GORM auto migration
}
