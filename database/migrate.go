// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"hackreg/models"

	"gorm.io/gorm"
)

// Migrate runs schema migrations and creates the search indexes. Exported so
// tests can prepare a throwaway database the same way the server does.
func Migrate(db *gorm.DB) error {
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.Team{},
		&models.Payment{},
		&models.AdminUser{},
	); err != nil {
		return err
	}

	createSearchIndexes(db)

	log.Println("✅ Migrations completed")
	return nil
}

// createSearchIndexes backs the case-insensitive admin search. Expression
// indexes on LOWER() match the LOWER(...) LIKE queries the service issues.
func createSearchIndexes(db *gorm.DB) {
	db.Exec("CREATE INDEX IF NOT EXISTS idx_teams_team_name_lower ON teams(LOWER(team_name))")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_teams_college_name_lower ON teams(LOWER(college_name))")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_teams_registration_id_lower ON teams(LOWER(registration_id))")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_teams_created_at ON teams(created_at DESC)")
}
