package session

import (
	"time"

	"github.com/Anvoria/sessionly/internal/database"
	"github.com/google/uuid"
)

// NeverRefreshed is the LastRefreshedAt value of a session that has not
// gone through a single refresh yet.
var NeverRefreshed = time.Unix(0, 0).UTC()

type Session struct {
	database.BaseModel

	UserID          string    `gorm:"column:user_id;type:uuid;not null;index"`
	ValidUntil      time.Time `gorm:"column:valid_until;not null"`
	Revoked         bool      `gorm:"column:revoked;default:false"`
	Authorization   string    `gorm:"column:authorization;type:text"` // opaque serialized claims, replaced wholesale or not at all
	LastRefreshedAt time.Time `gorm:"column:last_refreshed_at"`
}

func (Session) TableName() string {
	return "sessions"
}

// RefreshLog is one immutable entry of the append-only refresh audit trail.
// Entries outlive any later mutation of the session they reference.
type RefreshLog struct {
	database.BaseModel

	SessionID    uuid.UUID `gorm:"column:session_id;type:uuid;not null;index"`
	RefreshToken string    `gorm:"column:refresh_token;type:text;not null"`
	AccessToken  string    `gorm:"column:access_token;type:text;not null"`
}

func (RefreshLog) TableName() string {
	return "session_refresh_logs"
}
