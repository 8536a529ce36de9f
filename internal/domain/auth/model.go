package auth

// ChallengeRequest asks for a login challenge for a user
type ChallengeRequest struct {
	UserID string `json:"user_id"`
}

// LoginRequest completes the challenge handshake. Proof is the challenge
// value echoed back by the client in whatever proof form the caller's
// credential scheme uses; Authorization is the opaque claims payload the
// caller wants attached to the session.
type LoginRequest struct {
	UserID        string `json:"user_id"`
	Proof         string `json:"proof"`
	Authorization string `json:"authorization"`
}
