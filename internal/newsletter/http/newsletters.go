package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/paperwing/newsletter/internal/newsletter/domain"
	"github.com/paperwing/newsletter/internal/newsletter/service"
	"github.com/paperwing/newsletter/pkg/httpx"
	"github.com/paperwing/newsletter/pkg/slogx"
)

// NewslettersHandler serves POST /newsletters.
// Requires HTTP Basic credentials of an operator account.
type NewslettersHandler struct {
	Credentials *service.CredentialService
	Publisher   *service.PublisherService
}

type publishRequest struct {
	Title   string `json:"title"`
	Content struct {
		HTML string `json:"html"`
		Text string `json:"text"`
	} `json:"content"`
}

// ServeHTTP godoc
//
//	@Summary		Publish a newsletter issue
//	@Description	Sends the issue to every confirmed subscriber. Requires Basic auth.
//	@Tags			Newsletters
//	@Accept			json
//	@Produce		json
//	@Param			issue	body	publishRequest	true	"Issue title plus HTML and text bodies"
//	@Success		200		"Issue delivered to all confirmed subscribers"
//	@Failure		400		{object}	APIError	"error, error_description"
//	@Failure		401		{object}	APIError	"error, error_description"
//	@Failure		500		{object}	APIError	"error, error_description"
//	@Security		BasicAuth
//	@Router			/newsletters [post].
func (h *NewslettersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	creds, err := httpx.ParseBasicAuth(r)
	if err != nil {
		writeBasicChallenge(w)
		return
	}

	userID, err := h.Credentials.ValidateCredentials(ctx, creds.Username, creds.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidCredentials):
		writeBasicChallenge(w)
		return
	default:
		l.Error("credential validation failed unexpectedly", slog.Any("error", err))
		ErrUnexpected.WriteError(w)
		return
	}

	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrInvalidJSONBody.WriteError(w)
		return
	}

	issue, err := domain.ParseIssue(req.Title, req.Content.HTML, req.Content.Text)
	if err != nil {
		validationError(err.Error()).WriteError(w)
		return
	}

	if err := h.Publisher.Publish(ctx, issue); err != nil {
		l.Error("newsletter publish failed",
			slog.String("user_id", userID.String()),
			slog.Any("error", err),
		)
		ErrUnexpected.WriteError(w)
		return
	}
	w.WriteHeader(http.StatusOK)
}
