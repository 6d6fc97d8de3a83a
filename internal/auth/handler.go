package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schoolhub/schoolhub/internal/platform/httpx"
	"github.com/schoolhub/schoolhub/internal/shared"
)

// Handler exchanges long tokens for short session tokens.
type Handler struct {
	logger *slog.Logger
	tokens *Manager
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, tokens *Manager) *Handler {
	return &Handler{logger: logger, tokens: tokens}
}

// MountRoutes registers token routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.createShortToken)
}

func (h *Handler) createShortToken(w http.ResponseWriter, r *http.Request) {
	long := r.Header.Get(TokenHeader)
	if long == "" {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}
	p, err := h.tokens.VerifyLongToken(long)
	if err != nil {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}
	short, err := h.tokens.IssueShortToken(p)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("issue short token", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"shortToken": short})
}
