package session

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no session exists for the identifier
	ErrNotFound = errors.New("session not found")
	// ErrExpired is returned when the session's validity window has passed
	ErrExpired = errors.New("session expired")
	// ErrRevoked is returned when the session was explicitly revoked
	ErrRevoked = errors.New("session revoked")
	// ErrConflict is returned when a conditional update lost a race
	ErrConflict = errors.New("session concurrently modified")
	// ErrStorageUnavailable is returned when the backing store is unreachable or erroring
	ErrStorageUnavailable = errors.New("session storage unavailable")
)

// Validity is the typed outcome of a validity check
type Validity int

const (
	ValidityValid Validity = iota
	ValidityNotFound
	ValidityExpired
	ValidityRevoked
)

func (v Validity) String() string {
	switch v {
	case ValidityValid:
		return "valid"
	case ValidityNotFound:
		return "not_found"
	case ValidityExpired:
		return "expired"
	case ValidityRevoked:
		return "revoked"
	default:
		return "unknown"
	}
}

// storageAttempts bounds retries of idempotent operations when the store errors.
// Refresh is not idempotent and never retries.
const storageAttempts = 3

// Service interface for session lifecycle operations
type Service interface {
	Create(userID, authorization string, ttl time.Duration) (*Session, error)
	Get(id uuid.UUID) (*Session, error)
	CheckValidity(id uuid.UUID) (Validity, error)
	Refresh(id uuid.UUID, refreshToken, accessToken string, newValidUntil time.Time) (*Session, error)
	Revoke(id uuid.UUID) error
	RevokeAll(userID string) (int64, error)
	RefreshLogs(id uuid.UUID) ([]RefreshLog, error)
}

type service struct {
	repo Repository
}

// NewService creates a session Service that uses the provided Repository.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// classify evaluates the validity invariant: a session is valid iff
// now <= ValidUntil and it has not been revoked. Revocation and expiry
// are independent and both checked on every read.
func classify(sess *Session, now time.Time) Validity {
	if sess.Revoked {
		return ValidityRevoked
	}
	if now.After(sess.ValidUntil) {
		return ValidityExpired
	}
	return ValidityValid
}

// withRetry runs op up to storageAttempts times, backing off between
// attempts. Missing records are a final answer, not a storage fault.
func withRetry(op func() error) error {
	var err error
	for attempt := 0; attempt < storageAttempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		time.Sleep(time.Duration(attempt+1) * 50 * time.Millisecond)
	}
	return err
}

// Create produces a new session with the full validity window ahead of it.
// Multiple concurrent sessions per user are permitted; no prior session is
// checked or touched.
func (s *service) Create(userID, authorization string, ttl time.Duration) (*Session, error) {
	now := time.Now().UTC()

	sess := &Session{
		UserID:          userID,
		ValidUntil:      now.Add(ttl),
		Authorization:   authorization,
		LastRefreshedAt: NeverRefreshed,
	}
	sess.ID = uuid.New()

	if err := s.repo.Create(sess); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return sess, nil
}

// Get loads the session record regardless of its state. Revoked and expired
// sessions stay readable for audit.
func (s *service) Get(id uuid.UUID) (*Session, error) {
	var sess *Session
	err := withRetry(func() error {
		var err error
		sess, err = s.repo.FindByID(id)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return sess, nil
}

// CheckValidity loads the session and reports its current state. Pure read,
// never mutates.
func (s *service) CheckValidity(id uuid.UUID) (Validity, error) {
	var sess *Session
	err := withRetry(func() error {
		var err error
		sess, err = s.repo.FindByID(id)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ValidityNotFound, nil
		}
		return ValidityNotFound, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return classify(sess, time.Now().UTC()), nil
}

// Refresh extends the session's validity window and appends the exchanged
// token pair to the audit log in one atomic write. A session that is not
// currently valid cannot be refreshed; a dead session stays dead.
//
// Refresh is not idempotent (a retry would double-append the log), so
// storage errors surface immediately instead of being retried here.
func (s *service) Refresh(id uuid.UUID, refreshToken, accessToken string, newValidUntil time.Time) (*Session, error) {
	sess, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	now := time.Now().UTC()
	switch classify(sess, now) {
	case ValidityRevoked:
		return nil, ErrRevoked
	case ValidityExpired:
		return nil, ErrExpired
	}

	entry := &RefreshLog{
		SessionID:    id,
		RefreshToken: refreshToken,
		AccessToken:  accessToken,
	}
	entry.ID = uuid.New()

	applied, err := s.repo.Refresh(id, newValidUntil, now, entry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if !applied {
		// The guarded update matched no row: someone revoked or the window
		// closed between our read and the write. Re-read for the reason.
		cur, err := s.repo.FindByID(id)
		if err != nil {
			return nil, ErrConflict
		}
		switch classify(cur, time.Now().UTC()) {
		case ValidityRevoked:
			return nil, ErrRevoked
		case ValidityExpired:
			return nil, ErrExpired
		}
		return nil, ErrConflict
	}

	sess.ValidUntil = newValidUntil
	sess.LastRefreshedAt = now
	return sess, nil
}

// Revoke marks the session revoked. Revoking an already-revoked session is
// a no-op success; the record is kept queryable for audit, never deleted.
func (s *service) Revoke(id uuid.UUID) error {
	var changed bool
	err := withRetry(func() error {
		var err error
		changed, err = s.repo.Revoke(id)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if changed {
		return nil
	}

	// Nothing changed: either already revoked (fine) or missing.
	if _, err := s.repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// RevokeAll revokes every not-yet-revoked session of the user in a single
// conditional update and returns how many were flipped. Safe against
// concurrent refreshes: a refresh on a session this write catches will
// fail its own guard.
func (s *service) RevokeAll(userID string) (int64, error) {
	var count int64
	err := withRetry(func() error {
		var err error
		count, err = s.repo.RevokeAllByUserID(userID)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	slog.Info("Revoked user sessions", "user_id", userID, "count", count)
	return count, nil
}

// RefreshLogs returns the session's audit trail, oldest first.
func (s *service) RefreshLogs(id uuid.UUID) ([]RefreshLog, error) {
	var logs []RefreshLog
	err := withRetry(func() error {
		var err error
		logs, err = s.repo.FindRefreshLogs(id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return logs, nil
}
