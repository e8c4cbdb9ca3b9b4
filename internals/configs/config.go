package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	AppEnv    string
	AppPort   string
	AppTZ     *time.Location
	JWTSecret string
	TokenTTL  time.Duration

	CorsOrigins      []string
	RateLimitStorage string
	RedisURL         string

	UploadDriver     string
	UploadDir        string
	UploadPublicBase string
	S3Bucket         string
	S3Region         string

	AutoMigrate bool
	AutoSeed    bool

	CompletionSweepCron  string
	BlacklistCleanupCron string

	DefaultAdminUsername string
	DefaultAdminPassword string
	DefaultAdminName     string
	DefaultAdminEmail    string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	AppEnv = GetEnv("APP_ENV", "development")
	if AppEnv != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("[WARN] .env file not found, using system environment")
		} else {
			log.Println("[INFO] .env file loaded")
		}
	} else {
		log.Println("[INFO] running in production, using system environment")
	}

	AppPort = GetEnv("PORT", "5000")
	AppTZ = loadLocation(GetEnv("APP_TIMEZONE", "Local"))

	JWTSecret = strings.TrimSpace(GetEnv("JWT_SECRET"))
	TokenTTL = GetEnvDuration("TOKEN_TTL", 24*time.Hour)

	CorsOrigins = splitList(GetEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"))
	RateLimitStorage = GetEnv("RATE_LIMIT_STORAGE", "memory")
	RedisURL = GetEnv("REDIS_URL")

	UploadDriver = GetEnv("UPLOAD_DRIVER", "local")
	UploadDir = GetEnv("UPLOAD_DIR", "./uploads")
	UploadPublicBase = GetEnv("UPLOAD_PUBLIC_BASE", "/uploads")
	S3Bucket = GetEnv("S3_BUCKET")
	S3Region = GetEnv("S3_REGION", "ap-south-1")

	AutoMigrate = GetEnvBool("AUTO_MIGRATE", false)
	AutoSeed = GetEnvBool("AUTO_SEED", false)

	CompletionSweepCron = GetEnv("COMPLETION_SWEEP_CRON", "10 0 * * *")
	BlacklistCleanupCron = GetEnv("BLACKLIST_CLEANUP_CRON", "@every 6h")

	DefaultAdminUsername = GetEnv("DEFAULT_ADMIN_USERNAME", "admin")
	DefaultAdminPassword = GetEnv("DEFAULT_ADMIN_PASSWORD")
	DefaultAdminName = GetEnv("DEFAULT_ADMIN_NAME", "Administrator")
	DefaultAdminEmail = GetEnv("DEFAULT_ADMIN_EMAIL", "admin@college.local")

	if JWTSecret == "" {
		log.Println("[ERROR] JWT_SECRET is not set")
	} else {
		log.Println("[INFO] JWT_SECRET loaded")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("[WARN] %s=%q is not an integer, using %d", key, v, def)
	}
	return def
}

func GetEnvBool(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("[WARN] %s=%q is not a boolean, using %v", key, v, def)
	}
	return def
}

func GetEnvDuration(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("[WARN] %s=%q is not a duration, using %s", key, v, def)
	}
	return def
}

// Now returns the wall clock in the configured application timezone.
func Now() time.Time {
	if AppTZ == nil {
		return time.Now()
	}
	return time.Now().In(AppTZ)
}

func loadLocation(name string) *time.Location {
	if name == "" || name == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("[WARN] unknown APP_TIMEZONE %q, falling back to local time", name)
		return time.Local
	}
	return loc
}

func splitList(s string) []string {
	out := make([]string, 0, 4)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
