package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/abuabdirohman4/better-habit/internal/domain/service"
	"github.com/abuabdirohman4/better-habit/internal/middleware"
)

// RouterOptions configures the cross-cutting middleware
type RouterOptions struct {
	Auth           *middleware.AuthMiddleware // nil disables auth
	RateLimiter    *middleware.RateLimiter    // nil disables rate limiting
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// Router sets up HTTP routes
type Router struct {
	habitHandler *HabitHandler
	logHandler   *LogHandler
	statsHandler *StatsHandler
	opts         RouterOptions
	log          *zap.Logger
}

// NewRouter creates a new router
func NewRouter(habitService service.HabitService, log *zap.Logger, opts RouterOptions) *Router {
	return &Router{
		habitHandler: NewHabitHandler(habitService, log),
		logHandler:   NewLogHandler(habitService, log),
		statsHandler: NewStatsHandler(habitService, log),
		opts:         opts,
		log:          log,
	}
}

// Setup configures all routes
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logging(rt.log))
	if rt.opts.RateLimiter != nil {
		r.Use(rt.opts.RateLimiter.Handler)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Group(func(r chi.Router) {
		if rt.opts.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(rt.opts.RequestTimeout))
		}
		if rt.opts.Auth != nil {
			r.Use(rt.opts.Auth.Auth)
		}

		r.Get("/icons", rt.habitHandler.ListIcons)

		r.Route("/habits", func(r chi.Router) {
			r.Get("/", rt.habitHandler.ListHabits)
			r.Post("/", rt.habitHandler.CreateHabit)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", rt.habitHandler.GetHabit)
				r.Put("/", rt.habitHandler.UpdateHabit)
				r.Delete("/", rt.habitHandler.DeleteHabit)
				r.Post("/archive", rt.habitHandler.ArchiveHabit)

				r.Get("/logs", rt.logHandler.ListHabitLogs)
				r.Post("/logs", rt.logHandler.CreateHabitLog)
				r.Post("/logs/toggle", rt.logHandler.ToggleLog)

				r.Get("/stats", rt.statsHandler.GetHabitStats)
				r.Get("/calendar", rt.statsHandler.GetCalendar)
				r.Get("/week", rt.statsHandler.GetWeek)
			})
		})

		r.Get("/habit-logs", rt.logHandler.ListLogs)
		r.Post("/habit-logs", rt.logHandler.CreateLog)
		r.Delete("/habit-logs", rt.logHandler.DeleteLogs)

		r.Get("/progress/weekly", rt.statsHandler.GetWeeklyProgress)
	})

	var handler http.Handler = r
	if len(rt.opts.AllowedOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins: rt.opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
		}).Handler(handler)
	}
	return handler
}
