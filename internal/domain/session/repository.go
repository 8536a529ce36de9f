package session

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(sess *Session) error
	FindByID(id uuid.UUID) (*Session, error)
	FindByUserID(userID string) ([]Session, error)
	Refresh(id uuid.UUID, newValidUntil, refreshedAt time.Time, entry *RefreshLog) (bool, error)
	Revoke(id uuid.UUID) (bool, error)
	RevokeAllByUserID(userID string) (int64, error)
	FindRefreshLogs(sessionID uuid.UUID) ([]RefreshLog, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(sess *Session) error {
	return r.db.Create(sess).Error
}

func (r *repository) FindByID(id uuid.UUID) (*Session, error) {
	var sess Session
	err := r.db.Where("id = ?", id).First(&sess).Error
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (r *repository) FindByUserID(userID string) ([]Session, error) {
	var sessions []Session
	err := r.db.Where("user_id = ?", userID).Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// Refresh applies the two-part refresh write in a single transaction: the
// session row is extended with a guarded UPDATE, then the audit entry is
// appended. The guard re-checks revocation and expiry so a session that
// died between the caller's validity read and this write stays dead. The
// returned bool reports whether the update was applied; false means the
// guard matched no row and nothing, including the log entry, was written.
func (r *repository) Refresh(id uuid.UUID, newValidUntil, refreshedAt time.Time, entry *RefreshLog) (bool, error) {
	applied := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Session{}).
			Where("id = ? AND revoked = ? AND valid_until >= ?", id, false, refreshedAt).
			Updates(map[string]any{
				"valid_until":       newValidUntil,
				"last_refreshed_at": refreshedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return nil
		}

		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		applied = true
		return nil
	})
	return applied, err
}

// Revoke flips the revoked flag with a conditional update so a concurrent
// refresh can never write it back. Returns whether a row changed; an
// already-revoked or missing session changes nothing.
func (r *repository) Revoke(id uuid.UUID) (bool, error) {
	res := r.db.Model(&Session{}).
		Where("id = ? AND revoked = ?", id, false).
		Update("revoked", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) RevokeAllByUserID(userID string) (int64, error) {
	res := r.db.Model(&Session{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) FindRefreshLogs(sessionID uuid.UUID) ([]RefreshLog, error) {
	var logs []RefreshLog
	err := r.db.Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
