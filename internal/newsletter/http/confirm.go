package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/paperwing/newsletter/internal/newsletter/service"
	"github.com/paperwing/newsletter/pkg/slogx"
)

// ConfirmHandler serves GET /subscriptions/confirm.
type ConfirmHandler struct {
	Confirmation *service.ConfirmationService
}

// ServeHTTP godoc
//
//	@Summary		Confirm a pending subscription
//	@Description	Resolves the mailed confirmation token and marks the subscriber confirmed. Safe to repeat.
//	@Tags			Subscriptions
//	@Produce		json
//	@Param			subscription_token	query	string		true	"Opaque confirmation token from the welcome email"
//	@Success		200					"Subscription confirmed"
//	@Failure		400					{object}	APIError	"error, error_description"
//	@Failure		401					{object}	APIError	"error, error_description"
//	@Failure		500					{object}	APIError	"error, error_description"
//	@Router			/subscriptions/confirm [get].
func (h *ConfirmHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	token := r.URL.Query().Get("subscription_token")
	if token == "" {
		ErrMissingToken.WriteError(w)
		return
	}

	err := h.Confirmation.Confirm(ctx, token)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusOK)
	case errors.Is(err, service.ErrUnknownToken):
		// Do not reveal whether the token never existed or points nowhere.
		ErrUnauthorized.WriteError(w)
	default:
		l.Error("subscription confirmation failed", slog.Any("error", err))
		ErrUnexpected.WriteError(w)
	}
}
