// This is the main entry point of the minblog application. It is responsible
// for initializing configuration, the database pool and migrations, the
// services and handlers, the HTTP router and middleware, and for starting the
// HTTP server with graceful shutdown.
//
// @title Minblog API
// @version 1.0
// @description A minimal blogging API: user registration plus CRUD for posts behind HTTP Basic authentication.
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /
// @securityDefinitions.basic BasicAuth
package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/minblog-go/apperror"
	"github.com/user/minblog-go/auth"
	"github.com/user/minblog-go/config"
	"github.com/user/minblog-go/db"
	_ "github.com/user/minblog-go/docs" // generated Swagger registration
	"github.com/user/minblog-go/posts"
	"github.com/user/minblog-go/users"
)

func main() {
	// .env loading is a development convenience; in production the variables
	// are set directly and the file is simply absent.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect before listen: the server must not accept requests it cannot
	// serve.
	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	// Migrations carry the schema, including the username uniqueness
	// constraint the registration flow relies on.
	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Manual dependency injection: services get the pool, handlers get the
	// services. The pool is the only shared state, and it is owned here.
	userService := users.NewUserService(pool)
	userHandlers := users.NewUserHandlers(userService)

	postService := posts.NewPostService(pool)
	postHandlers := posts.NewPostHandlers(postService)

	r := chi.NewRouter()

	// Global middleware. Chi requires all middleware to be registered before
	// any routes.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	// Request-level timeout: a stalled database round-trip cancels the one
	// request's context instead of wedging the server.
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Panic safety net: anything Recoverer would turn into a bare 500 gets
	// the standard JSON error shape instead.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Printf("Panic: %+v", rvr)
					apperror.WriteError(w, req, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(w, req)
		})
	})

	// Unmatched routes answer with the fixed not-found body.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		apperror.WriteJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Registration is the one write endpoint outside the authentication
	// gate: it is how credentials come to exist.
	r.Post("/users", userHandlers.HandleRegister())

	// Every post route re-authenticates via HTTP Basic on each request; the
	// user service doubles as the credential verifier.
	r.Route("/posts", func(r chi.Router) {
		r.Use(auth.BasicAuth(userService))
		postHandlers.RegisterRoutes(r)
	})

	addr := net.JoinHostPort("", cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine so the main goroutine can wait for
	// shutdown signals.
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown: finish in-flight requests, then disconnect. The
	// deferred pool.Close runs after the server has stopped accepting work.
	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}
