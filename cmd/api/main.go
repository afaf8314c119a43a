// cmd/api/main.go
// Main entry point for the application
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kritsanan1/thai-vid-match/internal/auth"
	"github.com/kritsanan1/thai-vid-match/internal/common/database"
	"github.com/kritsanan1/thai-vid-match/internal/common/utils"
	"github.com/kritsanan1/thai-vid-match/internal/config"
	"github.com/kritsanan1/thai-vid-match/internal/matching"
	"github.com/kritsanan1/thai-vid-match/internal/profile"
	"github.com/kritsanan1/thai-vid-match/internal/ratings"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting Thai Vid Match API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load and validate configuration
	log.Println("📋 Step 2: Loading configuration...")
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed:", err)
	}
	log.Println("✅ Configuration is valid")

	// 3. Connect to PostgreSQL
	log.Println("🗄️  Step 3: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL successfully")

	// 4. Connect to Redis (optional, score caching only)
	log.Println("📮 Step 4: Connecting to Redis...")
	redisClient, err := database.NewRedisClientFromURL(cfg.RedisURL)
	if err != nil {
		log.Printf("⚠️  Warning: Redis unavailable (%v), score caching disabled", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("✅ Connected to Redis successfully")
	}

	// 5. Run database migrations
	log.Println("🔨 Step 5: Running database migrations...")
	if err := runMigrations(db); err != nil {
		log.Fatal("❌ Failed to run migrations:", err)
	}
	log.Println("✅ Database migrations completed")

	// 6. Wire repositories and services
	log.Println("🔧 Step 6: Initializing services...")

	authRepo := auth.NewPostgresRepository(db)
	authService := auth.NewService(authRepo, cfg)
	authHandlers := auth.NewHandlers(authService)

	profileRepo := profile.NewPostgresRepository(db)
	profileService := profile.NewService(profileRepo, cfg)
	profileHandlers := profile.NewHandlers(profileService)

	matchingRepo := matching.NewPostgresRepository(db)
	matchingService := matching.NewService(matchingRepo, profileRepo, redisClient, cfg)
	matchingHandlers := matching.NewHandlers(matchingService)

	ratingsRepo := ratings.NewPostgresRepository(db)
	ratingsService := ratings.NewService(ratingsRepo, matchingService)
	ratingsHandlers := ratings.NewHandlers(ratingsService)

	log.Println("✅ Services initialized")

	// 7. Set up routes
	log.Println("🌐 Step 7: Registering routes...")
	router := mux.NewRouter()
	authMiddleware := auth.Middleware(authService)

	auth.RegisterRoutes(router, authHandlers, authMiddleware)
	profile.RegisterRoutes(router, profileHandlers, authMiddleware)
	matching.RegisterRoutes(router, matchingHandlers, authMiddleware)
	ratings.RegisterRoutes(router, ratingsHandlers, authMiddleware)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/health", healthCheck(db)).Methods(http.MethodGet)

	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)
	log.Println("✅ Routes registered")

	// 8. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("⚠️  Shutdown signal received...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown:", err)
	}

	log.Println("✅ Server exited gracefully")
}

// healthCheck reports server and database health
func healthCheck(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "healthy"
		code := http.StatusOK
		if err := db.PingContext(r.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		utils.RespondWithJSON(w, code, map[string]interface{}{
			"status":  status,
			"uptime":  time.Since(startTime).String(),
			"version": "1.0.0",
		})
	}
}

var startTime = time.Now()

// loggingMiddleware logs all requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("→ %s %s from %s", r.Method, r.RequestURI, r.RemoteAddr)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log.Printf("← %s %s [%d] %v", r.Method, r.RequestURI, wrapped.statusCode, duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// runMigrations creates the schema if it does not exist yet
func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS user_profiles (
			user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			full_name TEXT NOT NULL,
			display_name TEXT,
			age INT NOT NULL CHECK (age >= 18),
			gender TEXT NOT NULL,
			bio TEXT,
			interests TEXT[] NOT NULL DEFAULT '{}',
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			profile_images TEXT[] NOT NULL DEFAULT '{}',
			profile_video_url TEXT,
			verification_status TEXT NOT NULL DEFAULT 'unverified',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			last_active_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_user_profiles_last_active
			ON user_profiles(last_active_at DESC) WHERE is_active`,

		`CREATE TABLE IF NOT EXISTS user_preferences (
			user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			preferred_min_age INT NOT NULL DEFAULT 18,
			preferred_max_age INT NOT NULL DEFAULT 100,
			max_distance_km INT NOT NULL DEFAULT 100,
			show_on_discovery BOOLEAN NOT NULL DEFAULT TRUE,
			safe_mode_enabled BOOLEAN NOT NULL DEFAULT FALSE,
			safe_mode_activated_at TIMESTAMPTZ,
			safe_mode_reminder_days INT NOT NULL DEFAULT 7,
			last_safe_mode_reminder TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS swipe_actions (
			id UUID PRIMARY KEY,
			swiper_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			swiped_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			decision TEXT NOT NULL CHECK (decision IN ('like', 'pass')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (swiper_id, swiped_id),
			CHECK (swiper_id <> swiped_id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_swipe_actions_swiper ON swipe_actions(swiper_id)`,

		`CREATE TABLE IF NOT EXISTS matches (
			id UUID PRIMARY KEY,
			user1_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			user2_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			status TEXT NOT NULL DEFAULT 'matched',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user1_id, user2_id),
			CHECK (user1_id < user2_id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_matches_user1 ON matches(user1_id)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_user2 ON matches(user2_id)`,

		`CREATE TABLE IF NOT EXISTS date_ratings (
			id UUID PRIMARY KEY,
			match_id UUID NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
			rater_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			rated_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			overall INT NOT NULL CHECK (overall BETWEEN 1 AND 5),
			communication INT NOT NULL CHECK (communication BETWEEN 1 AND 5),
			chemistry INT NOT NULL CHECK (chemistry BETWEEN 1 AND 5),
			respectfulness INT NOT NULL CHECK (respectfulness BETWEEN 1 AND 5),
			would_meet_again BOOLEAN NOT NULL DEFAULT FALSE,
			comment TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (match_id, rater_id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_date_ratings_rated ON date_ratings(rated_id)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
