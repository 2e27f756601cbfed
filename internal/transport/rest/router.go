package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/attendance-tracker/internal/attendance"
	"github.com/frahmantamala/attendance-tracker/internal/auth"
	"github.com/frahmantamala/attendance-tracker/internal/location"
	"github.com/frahmantamala/attendance-tracker/internal/transport/middleware"
	"github.com/frahmantamala/attendance-tracker/internal/transport/swagger"
	"github.com/frahmantamala/attendance-tracker/internal/user"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, guard *auth.RoleGuard, userHandler *user.Handler, locationHandler *location.Handler, attendanceHandler *attendance.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
			})
		}

		// Kiosk routes. The TOTP code is the credential, no session needed.
		if attendanceHandler != nil {
			r.Post("/attendance/mark", attendanceHandler.Mark)
			r.Get("/attendance/status/{employeeID}", attendanceHandler.Status)
		}
		if locationHandler != nil {
			r.Get("/locations/active", locationHandler.ListActive)
		}

		if authHandler != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				// Authenticator enrollment
				pr.Post("/auth/totp/setup", authHandler.SetupTOTP)
				pr.Post("/auth/totp/verify", authHandler.VerifyTOTP)

				// Current user
				if userHandler != nil {
					pr.Get("/users/me", userHandler.GetCurrentUser)
				}

				// Own timesheet (managers/admins may pass ?user_id=)
				if attendanceHandler != nil {
					pr.Get("/attendance/timesheet", attendanceHandler.Timesheet)
					pr.Get("/attendance/timesheet/export", attendanceHandler.ExportTimesheet)
				}

				// Manager routes
				if userHandler != nil {
					pr.Group(func(mr chi.Router) {
						mr.Use(guard.RequireManager())
						mr.Get("/users/team", userHandler.ListTeam)
					})
				}

				// Admin routes
				pr.Group(func(ar chi.Router) {
					ar.Use(guard.RequireAdmin())

					if userHandler != nil {
						ar.Get("/users", userHandler.ListUsers)
						ar.Post("/users", userHandler.CreateUser)
						ar.Get("/users/managers", userHandler.ListManagers)
						ar.Patch("/users/{id}", userHandler.UpdateUser)
					}

					if locationHandler != nil {
						ar.Get("/locations", locationHandler.List)
						ar.Post("/locations", locationHandler.Create)
						ar.Patch("/locations/{id}", locationHandler.Update)
					}
				})
			})
		}
	})
}
