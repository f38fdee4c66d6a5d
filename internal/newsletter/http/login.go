package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/paperwing/newsletter/internal/newsletter/service"
	"github.com/paperwing/newsletter/pkg/sessionx"
	"github.com/paperwing/newsletter/pkg/slogx"
)

// LoginHandler serves POST /login. On success it issues a session cookie and
// redirects to the admin dashboard.
type LoginHandler struct {
	Credentials *service.CredentialService
	Sessions    *sessionx.Manager
}

// ServeHTTP godoc
//
//	@Summary		Operator login
//	@Description	Validates operator credentials and issues a session cookie.
//	@Tags			Admin
//	@Accept			application/x-www-form-urlencoded
//	@Param			username	formData	string	true	"Operator username"
//	@Param			password	formData	string	true	"Operator password"
//	@Success		303			"Redirects to /admin/dashboard with session cookie set, or back to /login on bad credentials"
//	@Failure		400			{object}	APIError	"error, error_description"
//	@Failure		500			{object}	APIError	"error, error_description"
//	@Router			/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	username := r.Form.Get("username")
	userID, err := h.Credentials.ValidateCredentials(ctx, username, r.Form.Get("password"))
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidCredentials):
		// Bad credentials bounce back to the login form rather than
		// answering with an API error envelope.
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	default:
		l.Error("login failed unexpectedly", slog.Any("error", err))
		ErrUnexpected.WriteError(w)
		return
	}

	if err := h.Sessions.Issue(w, sessionx.Session{UserID: userID.String(), Username: username}); err != nil {
		l.Error("failed to issue session", slog.Any("error", err))
		ErrUnexpected.WriteError(w)
		return
	}

	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// LogoutHandler serves POST /admin/logout.
type LogoutHandler struct {
	Sessions *sessionx.Manager
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
