package handlers

import (
	"context"
	"net/http"
)

// AvatarTokenIssuer requests streaming-avatar session tokens.
type AvatarTokenIssuer interface {
	SessionToken(ctx context.Context) (string, error)
}

// AvatarHandler issues avatar session tokens to the browser.
type AvatarHandler struct {
	issuer AvatarTokenIssuer
}

// NewAvatarHandler creates an avatar handler.
func NewAvatarHandler(issuer AvatarTokenIssuer) *AvatarHandler {
	return &AvatarHandler{issuer: issuer}
}

// SessionTokenResponse is the reply for POST /v1/avatar/session.
type SessionTokenResponse struct {
	SessionToken string `json:"sessionToken"`
}

// CreateSession handles POST /v1/avatar/session.
func (h *AvatarHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	token, err := h.issuer.SessionToken(r.Context())
	if err != nil {
		RespondServiceUnavailable(w, "Avatar session service is temporarily unavailable")

		return
	}

	RespondSuccess(w, http.StatusOK, SessionTokenResponse{SessionToken: token})
}
