package router

import (
	"database/sql"
	"net/http"
	"time"

	"pet-growth-diary/internal/adapters/images"
	"pet-growth-diary/internal/adapters/storage/csvfile"
	mem "pet-growth-diary/internal/adapters/storage/memory"
	sqlst "pet-growth-diary/internal/adapters/storage/sqlite"
	"pet-growth-diary/internal/domain/growthlog"
	"pet-growth-diary/internal/domain/healthlog"
	"pet-growth-diary/internal/domain/pages"
	"pet-growth-diary/internal/domain/photos"
	"pet-growth-diary/internal/domain/sessions"
	"pet-growth-diary/internal/middleware"
	"pet-growth-diary/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	Logger logger.Logger // puede ser nil; se crea uno desde env

	DataDir   string // directorio de los CSV (backend por defecto)
	ImagesDir string

	// Opcional: si viene, usa el almacenamiento embebido. Si no, CSV.
	DB *sql.DB

	// Primer día de la semana de la grilla del calendario.
	WeekStart time.Weekday
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}
	if opts.DataDir == "" {
		opts.DataDir = "data"
	}
	if opts.ImagesDir == "" {
		opts.ImagesDir = "images"
	}

	sessSvc := sessions.NewService(mem.NewSessionRepo())

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.SessionContext(sessSvc))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		pagesRepo  pages.Repository
		growthRepo growthlog.Repository
		healthRepo healthlog.Repository
	)

	if opts.DB != nil {
		pagesRepo = sqlst.NewPagesRepo(opts.DB)
		growthRepo = sqlst.NewGrowthLogRepo(opts.DB)
		healthRepo = sqlst.NewHealthLogRepo(opts.DB)
	} else {
		store, err := csvfile.NewStore(opts.DataDir)
		if err != nil {
			return nil, err
		}
		pagesRepo = csvfile.NewPagesRepo(store)
		growthRepo = csvfile.NewGrowthLogRepo(store)
		healthRepo = csvfile.NewHealthLogRepo(store)
	}

	imgStore, err := images.NewStore(opts.ImagesDir)
	if err != nil {
		return nil, err
	}

	// Services por módulo
	pagesSvc := pages.NewService(pagesRepo)
	growthSvc := growthlog.NewService(growthRepo, pagesSvc)
	healthSvc := healthlog.NewService(healthRepo)
	photosSvc := photos.NewService(imgStore)

	// Rutas por módulo
	sessions.RegisterRoutes(r, sessSvc)
	pages.RegisterRoutes(r, pagesSvc)
	growthlog.RegisterRoutes(r, growthSvc)
	healthlog.RegisterRoutes(r, healthSvc, opts.WeekStart)
	photos.RegisterRoutes(r, photosSvc)

	return r, nil
}
