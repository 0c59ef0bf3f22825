// testutil/testutil.go - Shared helpers for package test suites
package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"hackreg/database"
	"hackreg/validation"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB opens a throwaway sqlite database with the real schema applied.
// Each call gets its own file under t.TempDir, so suites never share state.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}

// ValidRegistration returns a registration payload that passes validation.
// n distinguishes the unique fields so one test can register several teams.
func ValidRegistration(n int) *validation.RegisterTeamInput {
	return &validation.RegisterTeamInput{
		TeamName:          fmt.Sprintf("Apex %d", n),
		CollegeName:       "X U",
		TeamSize:          "2",
		Participant1Name:  "A",
		Participant1Email: fmt.Sprintf("a%d@x.com", n),
		LeaderPhone:       fmt.Sprintf("98765432%02d", n%100),
		UTRID:             fmt.Sprintf("UTR%d", n),
		PaymentScreenshot: "https://drive.google.com/x",
		Confirmation:      true,
	}
}
