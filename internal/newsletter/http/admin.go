package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/paperwing/newsletter/internal/newsletter/service"
	"github.com/paperwing/newsletter/pkg/httpx"
	"github.com/paperwing/newsletter/pkg/sessionx"
	"github.com/paperwing/newsletter/pkg/slogx"
)

// SessionAuth gates the admin surface behind a valid session cookie and puts
// the session identity on the request context.
func SessionAuth(sessions *sessionx.Manager) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sessions.Verify(r)
			if err != nil {
				ErrUnauthorized.WriteError(w)
				return
			}
			ctx := httpx.ContextWithUser(r.Context(), sess.UserID, sess.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DashboardHandler serves GET /admin/dashboard.
type DashboardHandler struct{}

// ServeHTTP godoc
//
//	@Summary		Admin dashboard
//	@Description	Returns the logged-in operator identity.
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	map[string]string	"username"
//	@Failure		401	{object}	APIError			"error, error_description"
//	@Security		SessionCookie
//	@Router			/admin/dashboard [get].
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	username := httpx.UsernameFromContext(r.Context())
	if username == "" {
		ErrUnauthorized.WriteError(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"username": username})
}

// PasswordHandler serves POST /admin/password.
type PasswordHandler struct {
	Users *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Change operator password
//	@Description	Rotates the logged-in operator's password after re-validating the current one.
//	@Tags			Admin
//	@Accept			application/x-www-form-urlencoded
//	@Param			current_password	formData	string	true	"Current password"
//	@Param			new_password		formData	string	true	"New password (12 to 128 characters)"
//	@Param			new_password_check	formData	string	true	"New password, repeated"
//	@Success		200					"Password changed"
//	@Failure		400					{object}	APIError	"error, error_description"
//	@Failure		401					{object}	APIError	"error, error_description"
//	@Failure		500					{object}	APIError	"error, error_description"
//	@Security		SessionCookie
//	@Router			/admin/password [post].
func (h *PasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	username := httpx.UsernameFromContext(ctx)
	if username == "" {
		ErrUnauthorized.WriteError(w)
		return
	}

	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		ErrInvalidContentType.WriteError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		ErrInvalidFormBody.WriteError(w)
		return
	}

	err := h.Users.ChangePassword(ctx, username,
		r.Form.Get("current_password"),
		r.Form.Get("new_password"),
		r.Form.Get("new_password_check"),
	)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusOK)
	case errors.Is(err, service.ErrPasswordCheckMismatch):
		validationError("the two copies of the new password do not match").WriteError(w)
	case errors.Is(err, service.ErrPasswordLength):
		validationError("the new password must be between 12 and 128 characters").WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		ErrUnauthorized.WriteError(w)
	default:
		l.Error("password change failed", slog.Any("error", err))
		ErrUnexpected.WriteError(w)
	}
}
