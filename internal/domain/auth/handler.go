package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Anvoria/sessionly/internal/domain/challenge"
	"github.com/Anvoria/sessionly/internal/domain/session"
	"github.com/Anvoria/sessionly/internal/utils"
)

type Handler struct {
	authService *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{authService: s}
}

// statusForError maps domain errors onto response codes and HTTP statuses
func statusForError(err error) (string, int) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return "session_not_found", fiber.StatusNotFound
	case errors.Is(err, session.ErrExpired):
		return "session_expired", fiber.StatusUnauthorized
	case errors.Is(err, session.ErrRevoked):
		return "session_revoked", fiber.StatusUnauthorized
	case errors.Is(err, session.ErrConflict):
		return "session_conflict", fiber.StatusConflict
	case errors.Is(err, session.ErrStorageUnavailable),
		errors.Is(err, challenge.ErrStorageUnavailable):
		return "storage_unavailable", fiber.StatusServiceUnavailable
	default:
		return "internal_error", fiber.StatusInternalServerError
	}
}

func (h *Handler) Challenge(c *fiber.Ctx) error {
	var req ChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "invalid_body", fiber.StatusBadRequest)
	}
	if req.UserID == "" {
		return utils.ErrorResponse(c, "missing_user_id", fiber.StatusBadRequest)
	}

	value, err := h.authService.IssueChallenge(c.Context(), req.UserID)
	if err != nil {
		code, status := statusForError(err)
		return utils.ErrorResponse(c, code, status)
	}

	return utils.SuccessResponse(c, fiber.Map{
		"challenge": value,
	}, "Challenge issued")
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "invalid_body", fiber.StatusBadRequest)
	}
	if req.UserID == "" {
		return utils.ErrorResponse(c, "missing_user_id", fiber.StatusBadRequest)
	}

	ok, err := h.authService.VerifyAndConsumeChallenge(c.Context(), req.UserID, req.Proof)
	if err != nil {
		code, status := statusForError(err)
		return utils.ErrorResponse(c, code, status)
	}
	if !ok {
		return utils.ErrorResponse(c, "invalid_challenge", fiber.StatusUnauthorized)
	}

	tokens, err := h.authService.CreateSession(req.UserID, req.Authorization)
	if err != nil {
		code, status := statusForError(err)
		return utils.ErrorResponse(c, code, status)
	}

	return utils.SuccessResponse(c, tokens, "Login successful")
}

func (h *Handler) Refresh(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, "invalid_session_id", fiber.StatusBadRequest)
	}

	tokens, err := h.authService.Refresh(c.Context(), sessionID)
	if err != nil {
		code, status := statusForError(err)
		return utils.ErrorResponse(c, code, status)
	}

	return utils.SuccessResponse(c, tokens, "Session refreshed")
}

func (h *Handler) Validity(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, "invalid_session_id", fiber.StatusBadRequest)
	}

	validity, err := h.authService.Sessions.CheckValidity(sessionID)
	if err != nil {
		code, status := statusForError(err)
		return utils.ErrorResponse(c, code, status)
	}

	return utils.SuccessResponse(c, fiber.Map{
		"validity": validity.String(),
	}, "Validity checked")
}

func (h *Handler) Revoke(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, "invalid_session_id", fiber.StatusBadRequest)
	}

	if err := h.authService.Sessions.Revoke(sessionID); err != nil {
		code, status := statusForError(err)
		return utils.ErrorResponse(c, code, status)
	}

	return utils.SuccessResponse(c, nil, "Session revoked")
}

func (h *Handler) RevokeAll(c *fiber.Ctx) error {
	userID := c.Params("id")
	if userID == "" {
		return utils.ErrorResponse(c, "missing_user_id", fiber.StatusBadRequest)
	}

	count, err := h.authService.Sessions.RevokeAll(userID)
	if err != nil {
		code, status := statusForError(err)
		return utils.ErrorResponse(c, code, status)
	}

	return utils.SuccessResponse(c, fiber.Map{
		"revoked": count,
	}, "Sessions revoked")
}

func (h *Handler) RefreshLogs(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, "invalid_session_id", fiber.StatusBadRequest)
	}

	logs, err := h.authService.Sessions.RefreshLogs(sessionID)
	if err != nil {
		code, status := statusForError(err)
		return utils.ErrorResponse(c, code, status)
	}

	return utils.SuccessResponse(c, fiber.Map{
		"logs": logs,
	}, "Refresh log")
}
