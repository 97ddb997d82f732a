package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "vet-clinic/docs"
	mem "vet-clinic/internal/adapters/storage/memory"
	pg "vet-clinic/internal/adapters/storage/postgres"
	"vet-clinic/internal/middleware"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/ports/auth"
	"vet-clinic/internal/ports/notify"
	"vet-clinic/internal/ports/render"
	"vet-clinic/internal/ports/storage"
	"vet-clinic/internal/usecase"
	"vet-clinic/internal/usecase/appointments"
	"vet-clinic/internal/usecase/doctors"
	"vet-clinic/internal/usecase/lifecycle"
	"vet-clinic/internal/usecase/pets"
	"vet-clinic/internal/usecase/reports"
	"vet-clinic/internal/usecase/users"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	Issuer       auth.TokenIssuer  // nil => login sin token

	// Store tiene prioridad; si no, DB => Postgres; si no, in-memory.
	Store storage.Store
	DB    *sql.DB

	Logger    logger.Logger
	Publisher notify.Publisher
	Renderer  render.ReportRenderer // nil => /reports/{id}/document responde 501
}

// Services queda expuesto para que main pueda hacer el bootstrap del admin.
type Services struct {
	Users        *users.Service
	Doctors      *doctors.Service
	Pets         *pets.Service
	Appointments *appointments.Service
	Reports      *reports.Service
	Lifecycle    *lifecycle.Service
}

func NewServices(opts Options) Services {
	store := opts.Store
	if store == nil {
		if opts.DB != nil {
			store = pg.NewStore(opts.DB)
		} else {
			store = mem.NewStore()
		}
	}

	deps := usecase.Deps{
		Store:     store,
		Publisher: opts.Publisher,
		Log:       opts.Logger,
	}.Normalize()

	return Services{
		Users:        users.NewService(deps),
		Doctors:      doctors.NewService(deps),
		Pets:         pets.NewService(deps),
		Appointments: appointments.NewService(deps),
		Reports:      reports.NewService(deps, opts.Renderer),
		Lifecycle:    lifecycle.NewService(deps),
	}
}

func NewRouter(opts Options) http.Handler {
	return New(opts, NewServices(opts))
}

func New(opts Options, svc Services) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthContext(opts.AuthVerifier))

		// Rutas por módulo
		users.RegisterRoutes(r, svc.Users, opts.Issuer, lifecycle.UserRoutes(svc.Lifecycle))
		doctors.RegisterRoutes(r, svc.Doctors)
		pets.RegisterRoutes(r, svc.Pets, lifecycle.PetRoutes(svc.Lifecycle))
		appointments.RegisterRoutes(r, svc.Appointments)
		reports.RegisterRoutes(r, svc.Reports)
	})

	return r
}
