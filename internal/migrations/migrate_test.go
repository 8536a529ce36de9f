package migrations

import (
	"testing"

	"github.com/Anvoria/sessionly/internal/domain/session"
	"github.com/Anvoria/sessionly/internal/utils"
)

func TestRunMigrations(t *testing.T) {
	db := utils.SetupTestDB(t)

	if err := RunMigrations(db); err != nil {
		t.Fatalf("RunMigrations() unexpected error: %v", err)
	}

	if !db.Migrator().HasTable(&session.Session{}) {
		t.Errorf("RunMigrations() sessions table missing")
	}
	if !db.Migrator().HasTable(&session.RefreshLog{}) {
		t.Errorf("RunMigrations() session_refresh_logs table missing")
	}

	// Running again is a no-op
	if err := RunMigrations(db); err != nil {
		t.Errorf("RunMigrations() second run unexpected error: %v", err)
	}
}
