package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sitecrew/labortrack-backend-go/internal/config"
	appHTTP "github.com/sitecrew/labortrack-backend-go/internal/handler/http"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/cron"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/database"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/jwt"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/payrollfeed"
	"github.com/sitecrew/labortrack-backend-go/internal/repository/postgresql"
	clockService "github.com/sitecrew/labortrack-backend-go/internal/service/clocksession"
	deviceLogService "github.com/sitecrew/labortrack-backend-go/internal/service/devicelog"
	jobService "github.com/sitecrew/labortrack-backend-go/internal/service/job"
	"github.com/sitecrew/labortrack-backend-go/internal/service/master"
	reportService "github.com/sitecrew/labortrack-backend-go/internal/service/report"
	reviewService "github.com/sitecrew/labortrack-backend-go/internal/service/review"
	timesheetService "github.com/sitecrew/labortrack-backend-go/internal/service/timesheet"
	userService "github.com/sitecrew/labortrack-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	tradeRepo := postgresql.NewTradeRepository(db)
	activityRepo := postgresql.NewActivityRepository(db)
	jobRepo := postgresql.NewJobRepository(db)
	assignmentRepo := postgresql.NewJobAssignmentRepository(db)
	sessionRepo := postgresql.NewClockSessionRepository(db)
	entryRepo := postgresql.NewTimeEntryRepository(db)
	lockRepo := postgresql.NewApprovalLockRepository(db)
	reviewedRepo := postgresql.NewReviewedTimeRepository(db)
	deviceLogRepo := postgresql.NewDeviceLogRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	feedClient := payrollfeed.NewClient(cfg.PayrollFeed)

	masterSvc := master.NewMasterService(db, tradeRepo, activityRepo)
	userSvc := userService.NewUserService(userRepo)
	jobSvc := jobService.NewJobService(db, jobRepo, assignmentRepo, userRepo, tradeRepo)
	clockSvc := clockService.NewClockSessionService(
		db,
		sessionRepo,
		userRepo,
		jobRepo,
		assignmentRepo,
		activityRepo,
		entryRepo,
		lockRepo,
		deviceLogRepo,
	)
	timesheetSvc := timesheetService.NewTimesheetService(db, entryRepo, lockRepo, userRepo, jobRepo)
	reviewSvc := reviewService.NewReviewService(db, reviewedRepo, entryRepo, lockRepo, jobRepo, timesheetSvc)
	reportSvc := reportService.NewReportService(reportRepo, userRepo, jobRepo, reviewSvc, feedClient)
	deviceLogSvc := deviceLogService.NewDeviceLogService(deviceLogRepo)

	if err := masterSvc.EnsureDefaultCatalog(context.Background()); err != nil {
		fmt.Println("Error seeding default catalog:", err)
		return
	}

	scheduler := cron.NewScheduler()
	sessionJobs := cron.NewClockSessionJobs(sessionRepo, entryRepo, lockRepo, deviceLogRepo, db, cfg.Sweep)
	sessionJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	clockHandler := appHTTP.NewClockSessionHandler(clockSvc)
	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc)
	reviewHandler := appHTTP.NewReviewHandler(reviewSvc)
	jobHandler := appHTTP.NewJobHandler(jobSvc)
	masterHandler := appHTTP.NewMasterHandler(masterSvc)
	workerHandler := appHTTP.NewWorkerHandler(userSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	deviceLogHandler := appHTTP.NewDeviceLogHandler(deviceLogSvc)

	router := appHTTP.NewRouter(
		JWTService,
		clockHandler,
		timesheetHandler,
		reviewHandler,
		jobHandler,
		masterHandler,
		workerHandler,
		reportHandler,
		deviceLogHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
