// cmd/seed-admin/main.go - One-shot admin user provisioning
package main

import (
	"flag"
	"log"

	"hackreg/config"
	"hackreg/database"
	"hackreg/services"
)

func main() {
	email := flag.String("email", "", "admin email (defaults to ADMIN_EMAIL)")
	password := flag.String("password", "", "admin password (defaults to ADMIN_PASSWORD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	if *email != "" {
		cfg.AdminEmail = *email
	}
	if *password != "" {
		cfg.AdminPassword = *password
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Fatal("admin email and password are required (flags or ADMIN_EMAIL/ADMIN_PASSWORD)")
	}

	database.InitDB(cfg)
	defer database.CloseDB()

	authService := services.NewAuthService(database.GetDB(), cfg.JWTSecret)
	if err := authService.EnsureAdminUser(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("✗ Seed failed: %v", err)
	}

	log.Println("✓ Seed completed")
}
