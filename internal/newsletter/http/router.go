package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/paperwing/newsletter/internal/newsletter/service"
	"github.com/paperwing/newsletter/internal/newsletter/store"
	"github.com/paperwing/newsletter/pkg/httpx"
	"github.com/paperwing/newsletter/pkg/sessionx"
	"github.com/paperwing/newsletter/pkg/slogx"

	_ "github.com/paperwing/newsletter/api/newsletter" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	sessions     *sessionx.Manager

	store               store.Store
	RegistrarService    *service.RegistrarService
	ConfirmationService *service.ConfirmationService
	CredentialService   *service.CredentialService
	PublisherService    *service.PublisherService
	UserService         *service.UserService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	sessions *sessionx.Manager,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		sessions:     sessions,
		store:        st,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSubscriptions()
	r.registerNewsletters()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Newsletter Delivery Service API
//	@version		0.1.0
//	@description	Double-opt-in newsletter subscriptions with operator-published issue fan-out.
//	@description
//	@description	Subscribers register with a form post, receive a confirmation link by email,
//	@description	and only confirmed subscribers receive published issues.
//
//	@contact.name				Paperwing Team
//	@contact.url				https://github.com/paperwing/newsletter
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.basic	BasicAuth
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						newsletter_session
//	@description				Session cookie issued by POST /login.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSubscriptions() {
	// POST /subscriptions - moderate rate limit (public form endpoint)
	subscribeHandler := &SubscriptionsHandler{Registrar: r.RegistrarService}
	r.Mux.Handle("POST /subscriptions",
		httpx.Chain(subscribeHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /subscriptions/confirm - lenient limit, tokens gate the real work
	confirmHandler := &ConfirmHandler{Confirmation: r.ConfirmationService}
	r.Mux.Handle("GET /subscriptions/confirm",
		httpx.Chain(confirmHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerNewsletters() {
	// POST /newsletters - strict rate limit (authentication attempts)
	publishHandler := &NewslettersHandler{
		Credentials: r.CredentialService,
		Publisher:   r.PublisherService,
	}
	r.Mux.Handle("POST /newsletters",
		httpx.Chain(publishHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	// POST /login - strict rate limit by IP + username to slow brute force
	loginHandler := &LoginHandler{Credentials: r.CredentialService, Sessions: r.sessions}
	r.Mux.Handle("POST /login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "username"),
		),
	)

	sessionAuth := SessionAuth(r.sessions)

	r.Mux.Handle("GET /admin/dashboard",
		httpx.Chain(&DashboardHandler{},
			sessionAuth,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("POST /admin/password",
		httpx.Chain(&PasswordHandler{Users: r.UserService},
			sessionAuth,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /admin/logout",
		httpx.Chain(&LogoutHandler{Sessions: r.sessions},
			sessionAuth,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /health_check", HealthCheckHandler())
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
