package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/sitecrew/labortrack-backend-go/internal/domain/user"
	"github.com/sitecrew/labortrack-backend-go/internal/handler/http/middleware"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	clockHandler ClockSessionHandler,
	timesheetHandler TimesheetHandler,
	reviewHandler ReviewHandler,
	jobHandler JobHandler,
	masterHandler MasterHandler,
	workerHandler WorkerHandler,
	reportHandler ReportHandler,
	deviceLogHandler DeviceLogHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "labortrack"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
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

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Get("/profile", workerHandler.GetProfile)

			r.Route("/clock", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionSessionClockOwn))
				r.Post("/in", clockHandler.ClockIn)
				r.Post("/out", clockHandler.ClockOut)
				r.Get("/status", clockHandler.GetStatus)
			})

			r.With(middleware.RequirePermission(user.PermissionSessionViewAll)).
				Get("/sessions", clockHandler.List)

			r.Route("/timesheets", func(r chi.Router) {
				r.Get("/week", timesheetHandler.GetWeek)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionTimesheetSubmitOwn))
					r.Post("/day", timesheetHandler.UpsertDay)
					r.Post("/week", timesheetHandler.SubmitWeek)
				})

				r.With(middleware.RequirePermission(user.PermissionTimesheetViewAll)).
					Get("/entries", timesheetHandler.ListEntries)
				r.With(middleware.RequirePermission(user.PermissionTimesheetApprove)).
					Post("/approve", timesheetHandler.ApproveWeek)
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionTimesheetApprove))
				r.Post("/draft", reviewHandler.SaveDraft)
				r.Delete("/draft/{id}", reviewHandler.DeleteDraft)
				r.Get("/effective-time", reviewHandler.GetEffectiveTime)
				r.Post("/finalize", reviewHandler.Finalize)
			})

			r.Route("/jobs", func(r chi.Router) {
				r.Get("/my", jobHandler.ListMy)

				// Workers pick from a job's valid activities when clocking in
				r.Get("/{id}/activities", masterHandler.ListJobActivities)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSessionViewAll))
					r.Get("/", jobHandler.List)
					r.Get("/{id}", jobHandler.Get)
					r.Get("/{id}/crew", jobHandler.ListCrew)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionJobManage))
					r.Post("/", jobHandler.Create)
					r.Put("/{id}", jobHandler.Update)
					r.Post("/{id}/workers", jobHandler.AssignWorkers)
					r.Delete("/{id}/workers/{workerId}", jobHandler.RemoveWorker)
					r.Post("/{id}/trades", jobHandler.AssignTrades)
				})
			})

			r.Route("/catalog", func(r chi.Router) {
				r.Route("/trades", func(r chi.Router) {
					r.Get("/", masterHandler.ListTrades)
					r.Get("/{id}", masterHandler.GetTrade)
					r.Get("/{id}/activities", masterHandler.ListTradeActivities)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionCatalogManage))
						r.Post("/", masterHandler.CreateTrade)
						r.Put("/{id}", masterHandler.UpdateTrade)
					})
				})

				r.Route("/activities", func(r chi.Router) {
					r.Get("/", masterHandler.ListActivities)
					r.Get("/{id}", masterHandler.GetActivity)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionCatalogManage))
						r.Post("/", masterHandler.CreateActivity)
						r.Put("/{id}", masterHandler.UpdateActivity)
					})
				})
			})

			r.Route("/workers", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSessionViewAll))
					r.Get("/", workerHandler.List)
					r.Get("/{id}", workerHandler.Get)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionWorkerManage))
					r.Post("/", workerHandler.Create)
					r.Put("/{id}", workerHandler.Update)
					r.Delete("/{id}", workerHandler.Deactivate)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/payroll", reportHandler.Payroll)
				r.Get("/job-labor", reportHandler.JobLabor)
				r.Get("/worker-hours", reportHandler.WorkerHours)
				r.Get("/gps-compliance", reportHandler.GPSCompliance)

				r.With(middleware.RequirePermission(user.PermissionPayrollPush)).
					Post("/payroll/push", reportHandler.PushPayroll)
			})

			r.With(middleware.RequirePermission(user.PermissionDeviceLogsView)).
				Get("/device-logs", deviceLogHandler.List)
		})
	})
	return r
}
