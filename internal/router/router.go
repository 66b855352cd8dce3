package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	"pet-care-tracker/internal/adapters/capabilities/plans"
	"pet-care-tracker/internal/adapters/storage/fixtures"
	mem "pet-care-tracker/internal/adapters/storage/memory"
	pg "pet-care-tracker/internal/adapters/storage/postgres"
	"pet-care-tracker/internal/domain/appointments"
	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/reminders"
	"pet-care-tracker/internal/domain/vaccinations"
	"pet-care-tracker/internal/domain/visits"
	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/platform/logger"
	"pet-care-tracker/internal/ports/auth"
	"pet-care-tracker/internal/ports/capabilities"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory
	// (con seed de fixtures si SEED_DIR está seteado).
	DB *sql.DB

	// Opcional: límite de mascotas por plan. nil => sin límite,
	// salvo que PLANS_BASE_URL esté configurado por env.
	Plans capabilities.PlanResolver

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		petRepo   pets.Repository
		apptRepo  appointments.Repository
		vaccRepo  vaccinations.Repository
		visitRepo visits.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Error("postgres open failed, falling back to memory", map[string]any{
					"err": err.Error(),
				})
			}
		}
	}

	if db != nil {
		petRepo = pg.NewPetsRepo(db)
		apptRepo = pg.NewAppointmentsRepo(db)
		vaccRepo = pg.NewVaccinationsRepo(db)
		visitRepo = pg.NewVisitsRepo(db)
	} else {
		petRepo = mem.NewPetRepo()
		apptRepo = mem.NewAppointmentRepo()
		vaccRepo = mem.NewVaccinationRepo()
		visitRepo = mem.NewVisitRepo()

		// Data set heredado (solo sobre memoria)
		if dir := os.Getenv("SEED_DIR"); dir != "" {
			loader := fixtures.NewLoader(petRepo, apptRepo, vaccRepo, visitRepo, log)
			if err := loader.Seed(context.Background(), dir); err != nil {
				log.Error("fixtures seed failed", map[string]any{
					"dir": dir,
					"err": err.Error(),
				})
			}
		}
	}

	planResolver := opts.Plans
	if planResolver == nil {
		if baseURL := os.Getenv("PLANS_BASE_URL"); baseURL != "" {
			client, err := plans.NewClient(plans.Config{
				BaseURL: baseURL,
				APIKey:  os.Getenv("PLANS_API_KEY"),
			})
			if err != nil {
				log.Error("plans client misconfigured", map[string]any{"err": err.Error()})
			} else {
				planResolver = plans.NewResolver(client)
			}
		}
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo, planResolver)
	apptsSvc := appointments.NewService(apptRepo)
	vaccsSvc := vaccinations.NewService(vaccRepo)
	visitsSvc := visits.NewService(visitRepo)
	remindersSvc := reminders.NewService(petsSvc, apptsSvc, vaccsSvc, log)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	appointments.RegisterRoutes(r, apptsSvc, petsSvc)
	vaccinations.RegisterRoutes(r, vaccsSvc, petsSvc)
	visits.RegisterRoutes(r, visitsSvc, petsSvc)
	reminders.RegisterRoutes(r, remindersSvc)

	return r
}
