package wire

import (
	"net/http"

	"cineticket/internal/adaptor"
	"cineticket/internal/data/repository"
	"cineticket/internal/usecase"
	"cineticket/pkg/middleware"
	"cineticket/pkg/telemetry"
	"cineticket/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the assembled HTTP router
type App struct {
	Router *chi.Mux
}

// guards are the per-route middlewares shared by the wire functions
type guards struct {
	auth      func(http.Handler) http.Handler
	admin     func(http.Handler) http.Handler
	rateLimit func(http.Handler) http.Handler
}

// Wiring builds services, handlers and the router for the API selected by config.App.API.
// rdb may be nil, rate limiting is then skipped.
func Wiring(repo *repository.Repository, integrations usecase.Integrations, rdb *redis.Client, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, integrations, config, logger)
	handler := adaptor.NewHandler(service, logger)

	var scripter redis.Scripter
	if rdb != nil {
		scripter = rdb
	}

	g := guards{
		auth:      middleware.Auth(integrations.Tokens, logger),
		admin:     middleware.Admin(logger),
		rateLimit: middleware.RateLimit(config.RateLimit, scripter, logger),
	}

	return &App{
		Router: setupRouter(handler, g, config, logger),
	}
}

func setupRouter(handler *adaptor.Handler, g guards, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recover(logger))
	r.Use(telemetry.Middleware)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))

	switch config.App.API {
	case utils.APIAdmin:
		r.Post("/api/auth/login", handler.Auth.Login)
		r.Route("/api/admin", func(r chi.Router) {
			r.Use(g.auth, g.admin)
			wireAdminCatalog(r, handler)
			wireAdminTheatre(r, handler.Theatre, handler.Hall)
			wireAdminBooking(r, handler.ShowTime, handler.Booking)
		})
	default:
		wireAuth(r, handler.Auth)
		wireCatalog(r, handler)
		wireTheatre(r, handler.Theatre)
		wireBooking(r, handler.ShowTime, handler.Booking, g)
		wireProfile(r, handler.Profile, handler.Watchlist, g)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
