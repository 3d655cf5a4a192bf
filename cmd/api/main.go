// cmd/api/main.go
// Main entry point for the application.
// This file bootstraps all components and starts the server.

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lusotown/lusotown-backend/internal/auth"
	"github.com/lusotown/lusotown-backend/internal/common/database"
	"github.com/lusotown/lusotown-backend/internal/config"
	"github.com/lusotown/lusotown-backend/internal/connections"
	"github.com/lusotown/lusotown-backend/internal/matching"
	"github.com/lusotown/lusotown-backend/internal/notification"
	"github.com/lusotown/lusotown-backend/internal/profile"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting LusoTown Community API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load configuration
	log.Println("\n📋 Step 2: Loading configuration...")
	cfg := config.Load()
	log.Println("✅ Configuration loaded")

	// 3. Validate configuration
	log.Println("\n✔️  Step 3: Validating configuration...")
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed:", err)
	}
	log.Println("✅ Configuration is valid")

	// 4. Connect to PostgreSQL
	log.Println("\n🗄️  Step 4: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL successfully")

	// 5. Connect to Redis (optional)
	log.Println("\n📮 Step 5: Connecting to Redis...")
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable (%v), continuing without caching", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis successfully")
		}
	} else {
		log.Println("⚠️  Redis URL not configured, skipping Redis connection")
	}

	// 6. Run database migrations
	log.Println("\n🔨 Step 6: Running database migrations...")
	if err := runMigrations(db); err != nil {
		log.Fatal("❌ Failed to run migrations: ", err)
	}
	log.Println("✅ Database migrations completed")

	// 7. Initialize Auth system
	log.Println("\n🔐 Step 7: Initializing authentication system...")
	authRepo := auth.NewPostgresRepository(db)
	authService := auth.NewService(authRepo, &auth.Config{
		JWTSecret:          cfg.JWTSecret,
		AccessTokenExpiry:  cfg.AccessTokenExpiry,
		RefreshTokenExpiry: cfg.RefreshTokenExpiry,
		BCryptCost:         cfg.BCryptCost,
	})
	authHandler := auth.NewHandler(authService)
	authMiddleware := auth.NewMiddleware(authService)
	log.Println("✅ Authentication system initialized")

	// 8. Initialize Profile system
	log.Println("\n👤 Step 8: Initializing Profile system...")
	profileRepo := profile.NewPostgresRepository(db)

	var uploadService profile.UploadService
	if cfg.UseS3 {
		uploadService, err = profile.NewS3UploadService(cfg.S3Bucket, cfg.AWSRegion)
		if err != nil {
			log.Printf("⚠️  Failed to init S3, using local storage: %v", err)
			uploadService = profile.NewLocalUploadService(cfg.LocalUploadDir, cfg.BaseURL+"/uploads")
		} else {
			log.Println("   ✅ Using S3 for profile uploads")
		}
	} else {
		uploadService = profile.NewLocalUploadService(cfg.LocalUploadDir, cfg.BaseURL+"/uploads")
		log.Println("   ✅ Using local storage for profile uploads")
	}

	profileService := profile.NewService(profileRepo, uploadService)
	profileHandler := profile.NewHandler(profileService)
	log.Println("✅ Profile system initialized")

	// 9. Initialize Matching engine
	log.Println("\n🤝 Step 9: Initializing Matching engine...")
	extraPhrases, err := loadBlockedPhrases(cfg.BlockedPhrasesFile)
	if err != nil {
		log.Printf("⚠️  Could not load blocked phrases file: %v", err)
	}
	safety := matching.NewSafetyValidator(extraPhrases...).
		WithMinSafetyScore(cfg.MinSafetyScore)

	engine := matching.NewEngine(safety)
	matchingRepo := matching.NewPostgresRepository(db)
	matchingService := matching.NewService(matchingRepo, engine, redisClient, matching.ServiceConfig{
		CacheTTL:         cfg.MatchCacheTTL,
		DefaultLimit:     cfg.DefaultMatchLimit,
		MaxLimit:         cfg.MaxMatchLimit,
		PoolSize:         cfg.CandidatePoolSize,
		SearchRateMax:    cfg.SearchRateMax,
		SearchRateWindow: cfg.SearchRateWindow,
	})
	matchingHandler := matching.NewHandler(matchingService)
	log.Println("✅ Matching engine initialized")

	// 10. Initialize Notification services
	log.Println("\n🔔 Step 10: Initializing notification services...")

	var emailProvider notification.EmailProvider
	if cfg.EnableEmailNotifications && cfg.EmailProvider == "sendgrid" {
		emailProvider = notification.NewSendGridEmailProvider(cfg.SendGridAPIKey, cfg.EmailFrom, "LusoTown")
		log.Println("   ✅ Using SendGrid for emails")
	} else {
		emailProvider = notification.NewMockEmailProvider()
		log.Println("   ⚠️  Using mock email provider (development mode)")
	}

	var smsProvider notification.SMSProvider
	if cfg.EnableSMSNotifications && cfg.SMSProvider == "twilio" {
		smsProvider = notification.NewTwilioSMSProvider(
			cfg.TwilioAccountSID,
			cfg.TwilioAuthToken,
			cfg.TwilioPhoneNumber,
		)
		log.Println("   ✅ Using Twilio for SMS")
	} else {
		smsProvider = notification.NewMockSMSProvider()
		log.Println("   ⚠️  Using mock SMS provider (development mode)")
	}

	notifier := notification.NewService(emailProvider, smsProvider)
	log.Println("✅ Notification services initialized")

	// 11. Initialize Connections module
	log.Println("\n🔗 Step 11: Initializing Connections module...")
	connectionsHub := connections.NewHub()
	go connectionsHub.Run()

	connectionsRepo := connections.NewPostgresRepository(db)
	connectionsService := connections.NewService(connectionsRepo, notifier, connectionsHub)
	connectionsHandler := connections.NewHandler(connectionsService)
	log.Println("✅ Connections module initialized")

	// 12. Setup routes
	log.Println("\n🛣️  Step 12: Setting up routes...")
	router := mux.NewRouter()

	if !cfg.UseS3 {
		router.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/",
				http.FileServer(http.Dir(cfg.LocalUploadDir))))
		log.Println("   ✅ Static file server configured")
	}

	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	auth.RegisterRoutes(router, authHandler, authMiddleware)
	log.Println("   ✅ Auth routes registered")

	profileRouter := chi.NewRouter()
	profile.RegisterRoutes(profileRouter, profileHandler, authMiddleware)
	router.PathPrefix("/api/v1/profile").Handler(profileRouter)
	router.PathPrefix("/api/v1/members").Handler(profileRouter)
	log.Println("   ✅ Profile routes registered")

	matching.RegisterRoutes(router, matchingHandler, authMiddleware)
	log.Println("   ✅ Matching routes registered")

	connections.RegisterRoutes(router, connectionsHandler, connectionsHub, authMiddleware)
	log.Println("   ✅ Connections routes registered")

	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	// 13. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("\n========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n⚠️  Shutdown signal received...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown:", err)
	}

	log.Println("✅ Server exited gracefully")
}

// loadBlockedPhrases reads one phrase per line; blank lines and lines
// starting with # are skipped. An empty path is not an error.
func loadBlockedPhrases(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var phrases []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		phrases = append(phrases, line)
	}
	return phrases, scanner.Err()
}

var startTime = time.Now()

// healthCheck returns server health status
func healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

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

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// runMigrations executes database migrations
func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			username VARCHAR(100) UNIQUE NOT NULL,
			password_hash VARCHAR(255),
			phone VARCHAR(20),
			provider VARCHAR(50) DEFAULT 'local',
			provider_id VARCHAR(255),
			is_verified BOOLEAN DEFAULT FALSE,
			last_login_at TIMESTAMP WITH TIME ZONE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			refresh_token TEXT NOT NULL UNIQUE,
			expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS members (
			id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			display_name VARCHAR(100) NOT NULL,
			bio TEXT,
			date_of_birth DATE NOT NULL,
			city VARCHAR(100) NOT NULL,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			interests TEXT[] NOT NULL DEFAULT '{}',
			cultural_background TEXT[] NOT NULL DEFAULT '{}',
			language_skills JSONB NOT NULL DEFAULT '{}',
			profile_picture TEXT,
			is_verified BOOLEAN DEFAULT FALSE,
			is_active BOOLEAN DEFAULT TRUE,
			safety_score INTEGER DEFAULT 0,
			community_engagement INTEGER DEFAULT 0,
			last_active TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS connection_requests (
			id UUID PRIMARY KEY,
			sender_id UUID NOT NULL REFERENCES members(id) ON DELETE CASCADE,
			receiver_id UUID NOT NULL REFERENCES members(id) ON DELETE CASCADE,
			message TEXT,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			responded_at TIMESTAMP WITH TIME ZONE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_refresh_token ON sessions(refresh_token)`,
		`CREATE INDEX IF NOT EXISTS idx_members_last_active ON members(last_active DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_members_active ON members(is_active) WHERE is_active`,
		`CREATE INDEX IF NOT EXISTS idx_conn_requests_receiver ON connection_requests(receiver_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_conn_requests_sender ON connection_requests(sender_id, status)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			if !strings.Contains(err.Error(), "already exists") {
				return fmt.Errorf("migration %d failed: %w", i+1, err)
			}
		}
	}

	return nil
}
