package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/attendance-tracker/internal"
	"github.com/frahmantamala/attendance-tracker/internal/attendance"
	attendancepg "github.com/frahmantamala/attendance-tracker/internal/attendance/postgres"
	"github.com/frahmantamala/attendance-tracker/internal/auth"
	authpg "github.com/frahmantamala/attendance-tracker/internal/auth/postgres"
	"github.com/frahmantamala/attendance-tracker/internal/core/events"
	"github.com/frahmantamala/attendance-tracker/internal/location"
	locationpg "github.com/frahmantamala/attendance-tracker/internal/location/postgres"
	"github.com/frahmantamala/attendance-tracker/internal/totp"
	"github.com/frahmantamala/attendance-tracker/internal/transport/rest"
	"github.com/frahmantamala/attendance-tracker/internal/user"
	userpg "github.com/frahmantamala/attendance-tracker/internal/user/postgres"
	"github.com/frahmantamala/attendance-tracker/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"), config.Observability.Logging.Level)
	log := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	tz, err := config.Attendance.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve timezone: %w", err)
	}

	eventBus := events.NewBus(log)
	events.RegisterAuditLog(eventBus)

	userRepo := userpg.NewUserRepository(gormDB)
	authRepo := authpg.NewRepository(gormDB)
	locationRepo := locationpg.NewLocationRepository(gormDB)
	attendanceRepo := attendancepg.NewAttendanceRepository(gormDB)

	userService := user.NewService(userRepo, config.Security.BCryptCost, log)
	locationService := location.NewService(locationRepo, log)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, tokenGen, config.Attendance.TOTPIssuer, config.Attendance.TOTPWindowSteps, log)

	attendanceService := attendance.NewService(
		attendanceRepo,
		userService,
		locationService,
		totp.Verify,
		config.Attendance.TOTPWindowSteps,
		tz,
		eventBus,
		log,
	)

	authHandler := auth.NewHandler(authService)
	guard := auth.NewRoleGuard(log)
	userHandler := user.NewHandler(userService, log)
	locationHandler := location.NewHandler(locationService, log)
	attendanceHandler := attendance.NewHandler(attendanceService, userService, log)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, authHandler, guard, userHandler, locationHandler, attendanceHandler, log)

	return &Dependencies{
		Config: config,
		DB:     db,
		Router: router,
		Logger: log,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm wraps the shared connection pool so the repositories and the
// health check use the same *sql.DB.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
}
