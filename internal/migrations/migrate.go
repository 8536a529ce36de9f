package migrations

import (
	"fmt"

	"github.com/Anvoria/sessionly/internal/domain/session"
	"gorm.io/gorm"
)

// RunMigrations runs all database migrations
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&session.Session{}, &session.RefreshLog{}); err != nil {
		return fmt.Errorf("failed to make migrations: %w", err)
	}
	return nil
}
