package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/punchcard-hr/attendance-backend-go/internal/handler/http/middleware"
	"github.com/punchcard-hr/attendance-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	frontendURL string,
	authHandler AuthHandler,
	punchHandler PunchHandler,
	timesheetHandler TimesheetHandler,
	employeeHandler EmployeeHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "punchcard-hr"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", authHandler.LoginWithGoogle)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Put("/auth/password", authHandler.ChangePassword)

			r.Route("/punches", func(r chi.Router) {
				r.Post("/in", punchHandler.PunchIn)
				r.Post("/out", punchHandler.PunchOut)
				r.Get("/my", punchHandler.GetMyEvents)
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.Get("/my", timesheetHandler.GetMyTimesheet)

				// Manager or owner only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/employees/{id}", timesheetHandler.GetEmployeeTimesheet)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				// Owner only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireOwner)
					r.Post("/", employeeHandler.Create)
				})

				// Manager or owner only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", employeeHandler.List)
					r.Get("/{id}", employeeHandler.Get)
				})
			})
		})
	})
	return r
}
