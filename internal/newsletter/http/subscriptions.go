package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/paperwing/newsletter/internal/newsletter/domain"
	"github.com/paperwing/newsletter/internal/newsletter/service"
	"github.com/paperwing/newsletter/pkg/slogx"
)

// SubscriptionsHandler serves POST /subscriptions.
// Accepts application/x-www-form-urlencoded with name and email fields.
type SubscriptionsHandler struct {
	Registrar *service.RegistrarService
}

// ServeHTTP godoc
//
//	@Summary		Register a newsletter subscriber
//	@Description	Registers a new subscriber in pending state and emails them a confirmation link.
//	@Tags			Subscriptions
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			name	formData	string		true	"Subscriber display name"
//	@Param			email	formData	string		true	"Subscriber email address"
//	@Success		200		"Subscriber registered, confirmation email sent"
//	@Failure		400		{object}	APIError	"error, error_description"
//	@Failure		500		{object}	APIError	"error, error_description"
//	@Router			/subscriptions [post].
func (h *SubscriptionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		ErrInvalidContentType.WriteError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		ErrInvalidFormBody.WriteError(w)
		return
	}

	err := h.Registrar.Subscribe(ctx, r.Form.Get("name"), r.Form.Get("email"))
	switch {
	case err == nil:
		w.WriteHeader(http.StatusOK)
	case errors.Is(err, domain.ErrInvalidSubscriberName),
		errors.Is(err, domain.ErrInvalidSubscriberEmail):
		validationError(err.Error()).WriteError(w)
	default:
		l.Error("subscription registration failed", slog.Any("error", err))
		ErrUnexpected.WriteError(w)
	}
}
