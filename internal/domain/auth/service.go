package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"time"

	"github.com/Anvoria/sessionly/internal/domain/challenge"
	"github.com/Anvoria/sessionly/internal/domain/session"
	"github.com/google/uuid"
)

// Service is the surface an authentication controller calls into: the
// challenge handshake plus session lifecycle orchestration with token
// minting. Credential verification (checking the proof itself) belongs to
// the caller; this service only manages the challenge and session state.
type Service struct {
	Sessions   session.Service
	Challenges *challenge.Store

	signer       *TokenSigner
	sessionTTL   time.Duration
	challengeTTL time.Duration
}

// NewService creates an auth service over the session lifecycle manager and
// the challenge store.
func NewService(sessions session.Service, challenges *challenge.Store, signer *TokenSigner, sessionTTL, challengeTTL time.Duration) *Service {
	return &Service{
		Sessions:     sessions,
		Challenges:   challenges,
		signer:       signer,
		sessionTTL:   sessionTTL,
		challengeTTL: challengeTTL,
	}
}

// generateOpaqueToken generates a random opaque token value
func generateOpaqueToken() (string, error) {
	b := make([]byte, 48)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.RawStdEncoding.EncodeToString(b), nil
}

// IssueChallenge generates a fresh challenge value for the user and stores
// it with the configured TTL, replacing any previous one.
func (s *Service) IssueChallenge(ctx context.Context, userID string) (string, error) {
	value, err := generateOpaqueToken()
	if err != nil {
		return "", err
	}

	if err := s.Challenges.Issue(ctx, userID, value, s.challengeTTL); err != nil {
		return "", err
	}

	return value, nil
}

// VerifyAndConsumeChallenge checks the submitted value against the user's
// live challenge. The stored value is deleted on every attempt, match or
// not, so a challenge is usable exactly once.
func (s *Service) VerifyAndConsumeChallenge(ctx context.Context, userID, submitted string) (bool, error) {
	stored, ok, err := s.Challenges.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if err := s.Challenges.Consume(ctx, userID); err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1, nil
}

// SessionTokens is what callers get back from session creation and refresh
type SessionTokens struct {
	SessionID    string    `json:"session_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ValidUntil   time.Time `json:"valid_until"`
}

// CreateSession produces a new session for the user carrying the opaque
// authorization payload, plus a signed access token and an opaque refresh
// token for it.
func (s *Service) CreateSession(userID, authorization string) (*SessionTokens, error) {
	sess, err := s.Sessions.Create(userID, authorization, s.sessionTTL)
	if err != nil {
		return nil, err
	}

	access, err := s.signer.Sign(userID, sess.ID.String())
	if err != nil {
		return nil, err
	}

	refresh, err := generateOpaqueToken()
	if err != nil {
		return nil, err
	}

	return &SessionTokens{
		SessionID:    sess.ID.String(),
		AccessToken:  access,
		RefreshToken: refresh,
		ValidUntil:   sess.ValidUntil,
	}, nil
}

// Refresh mints a fresh token pair and rotates the session through the
// lifecycle manager, which records the pair in the audit log. A fresh pair
// is generated per attempt; retrying a failed refresh never reuses tokens.
func (s *Service) Refresh(ctx context.Context, sessionID uuid.UUID) (*SessionTokens, error) {
	sess, err := s.Sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	access, err := s.signer.Sign(sess.UserID, sessionID.String())
	if err != nil {
		return nil, err
	}

	refresh, err := generateOpaqueToken()
	if err != nil {
		return nil, err
	}

	updated, err := s.Sessions.Refresh(sessionID, refresh, access, time.Now().UTC().Add(s.sessionTTL))
	if err != nil {
		return nil, err
	}

	return &SessionTokens{
		SessionID:    updated.ID.String(),
		AccessToken:  access,
		RefreshToken: refresh,
		ValidUntil:   updated.ValidUntil,
	}, nil
}
