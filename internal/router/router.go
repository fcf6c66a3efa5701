package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"child-care-tracker/internal/adapters/storage/memory"
	"child-care-tracker/internal/adapters/storage/sqlstore"
	_ "child-care-tracker/internal/docs"
	"child-care-tracker/internal/domain/activities"
	"child-care-tracker/internal/domain/caregivers"
	"child-care-tracker/internal/domain/children"
	"child-care-tracker/internal/domain/vaccinations"
	"child-care-tracker/internal/middleware"
	"child-care-tracker/internal/platform/i18n"
	"child-care-tracker/internal/platform/logger"
	"child-care-tracker/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa SQL (Postgres o SQLite). Si no, in-memory.
	DB *sql.DB

	Logger     logger.Logger
	Translator *i18n.Translator

	// Sync con el backend de cuidado. Backend nil => /children/sync responde 503.
	Backend children.BackendSource
	Cache   children.Cache
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	tr := opts.Translator
	if tr == nil {
		// locales embebidos: solo falla si el binario está roto; sin translator se devuelven las keys.
		tr, _ = i18n.New("en")
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestLog(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		childRepo      children.Repository
		grantsRepo     caregivers.Repository
		activityRepo   activities.Repository
		completionRepo vaccinations.CompletionRepository
	)

	if opts.DB != nil {
		childRepo = sqlstore.NewChildrenRepo(opts.DB)
		grantsRepo = sqlstore.NewGrantsRepo(opts.DB)
		activityRepo = sqlstore.NewActivitiesRepo(opts.DB)
		completionRepo = sqlstore.NewCompletionsRepo(opts.DB)
	} else {
		childRepo = memory.NewChildRepo()
		grantsRepo = memory.NewGrantRepo()
		activityRepo = memory.NewActivityRepo()
		completionRepo = memory.NewCompletionRepo()
	}

	cache := opts.Cache
	if cache == nil {
		cache = memory.NewChildrenCache()
	}

	// Services por módulo
	grantsSvc := caregivers.NewService(grantsRepo)
	childrenSvc := children.NewService(childRepo).WithSync(opts.Backend, cache, log.With(map[string]any{"module": "children"}))
	activitiesSvc := activities.NewService(activityRepo)
	vaccinationsSvc := vaccinations.NewService(childrenSvc, completionRepo, log.With(map[string]any{"module": "vaccinations"}))

	// Rutas por módulo
	children.RegisterRoutes(r, childrenSvc, grantsSvc)
	caregivers.RegisterRoutes(r, grantsSvc, childrenSvc)
	activities.RegisterRoutes(r, activitiesSvc, childrenSvc, grantsSvc)
	vaccinations.RegisterRoutes(r, vaccinationsSvc, grantsSvc, tr)

	return r
}
