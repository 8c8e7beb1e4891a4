package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"taskhive/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	DB        *gorm.DB
	AppConfig Config
)

type RedisConfig struct {
	Enabled  bool   `json:"enabled"`
	Address  string `json:"address"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

type MediaStoreConfig struct {
	Endpoint  string `json:"endpoint"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"-"`
	Bucket    string `json:"bucket"`
	UseSSL    bool   `json:"use_ssl"`
	PublicURL string `json:"public_url"`
}

type Config struct {
	Environment    string           `json:"environment"`
	ServerPort     string           `json:"server_port"`
	AppURL         string           `json:"app_url"`
	JWTSecret      string           `json:"-"`
	DBHost         string           `json:"db_host"`
	DBPort         string           `json:"db_port"`
	DBUser         string           `json:"db_user"`
	DBPassword     string           `json:"-"`
	DBName         string           `json:"db_name"`
	DBSSLMode      string           `json:"db_ssl_mode"`
	DBMaxIdleConns int              `json:"db_max_idle_conns"`
	DBMaxOpenConns int              `json:"db_max_open_conns"`
	SMTPHost       string           `json:"smtp_host"`
	SMTPPort       int              `json:"smtp_port"`
	SMTPUsername   string           `json:"smtp_username"`
	SMTPPassword   string           `json:"-"`
	FromEmail      string           `json:"from_email"`
	FromName       string           `json:"from_name"`
	CronAPISecret  string           `json:"-"`
	OpenAIAPIKey   string           `json:"-"`
	SentryDSN      string           `json:"-"`
	Redis          RedisConfig      `json:"redis"`
	Media          MediaStoreConfig `json:"media"`

	RateLimitInvite int `json:"rate_limit_invite"`

	// Status literal excluded by the deadline sweep. The historical
	// value is "COMPLETED", which does not appear in the task status
	// vocabulary (todo/in-progress/done), so the default filter
	// excludes nothing. Kept configurable instead of silently changed.
	ReminderExcludedStatus string `json:"reminder_excluded_status"`
}

func init() {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()
}

func LoadConfig() error {
	AppConfig = Config{
		Environment:    getEnv("ENVIRONMENT", "development"),
		ServerPort:     getEnv("SERVER_PORT", "5000"),
		AppURL:         getEnv("APP_URL", "http://localhost:3000"),
		JWTSecret:      getEnv("AUTH_JWT_SECRET", ""),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "taskhive"),
		DBSSLMode:      getEnv("DB_SSL_MODE", "disable"),
		DBMaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 100),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		FromEmail:    getEnv("FROM_EMAIL", "no-reply@taskhive.app"),
		FromName:     getEnv("FROM_NAME", "TaskHive"),

		CronAPISecret: getEnv("CRON_API_SECRET", ""),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		SentryDSN:     getEnv("SENTRY_DSN", ""),

		Redis: RedisConfig{
			Enabled:  getEnv("REDIS_ADDRESS", "") != "",
			Address:  getEnv("REDIS_ADDRESS", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Media: MediaStoreConfig{
			Endpoint:  getEnv("MEDIA_ENDPOINT", ""),
			AccessKey: getEnv("MEDIA_ACCESS_KEY", ""),
			SecretKey: getEnv("MEDIA_SECRET_KEY", ""),
			Bucket:    getEnv("MEDIA_BUCKET", "taskhive-uploads"),
			UseSSL:    getEnv("MEDIA_USE_SSL", "true") == "true",
			PublicURL: getEnv("MEDIA_PUBLIC_URL", ""),
		},

		RateLimitInvite: getEnvAsInt("RATE_LIMIT_INVITE", 10),

		ReminderExcludedStatus: getEnv("REMINDER_EXCLUDED_STATUS", "COMPLETED"),
	}

	// Validate required configurations
	if AppConfig.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if AppConfig.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}
	if AppConfig.Environment == "production" {
		if AppConfig.CronAPISecret == "" {
			return fmt.Errorf("CRON_API_SECRET is required in production")
		}
		if AppConfig.SMTPHost == "" {
			return fmt.Errorf("SMTP credentials are required in production")
		}
	}

	logConfig()
	return nil
}

func ConnectDB() error {
	log.Println("Attempting to connect to database...")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		AppConfig.DBHost,
		AppConfig.DBPort,
		AppConfig.DBUser,
		AppConfig.DBPassword,
		AppConfig.DBName,
		AppConfig.DBSSLMode,
	)
	log.Println("Using connection string:", maskPassword(dsn))

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get DB instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(AppConfig.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(AppConfig.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	log.Println("✅ Successfully connected to the database")
	log.Println("🔄 Starting database migration...")
	if err := migrateDB(DB); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}
	log.Println("✅ Database migration completed")
	return nil
}

// Helper functions
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return fallback
	}
	return value
}

func maskPassword(dsn string) string {
	const passwordMarker = "password="
	startIdx := strings.Index(dsn, passwordMarker)
	if startIdx == -1 {
		return dsn
	}

	startIdx += len(passwordMarker)
	endIdx := strings.IndexAny(dsn[startIdx:], " ")
	if endIdx == -1 {
		return dsn[:startIdx] + "*****"
	}
	return dsn[:startIdx] + "*****" + dsn[startIdx+endIdx:]
}

func logConfig() {
	log.Println("🔧 Loaded configuration:")
	log.Printf("Environment: %s", AppConfig.Environment)
	log.Printf("Server Port: %s", AppConfig.ServerPort)
	log.Printf("Database: %s@%s:%s/%s",
		AppConfig.DBUser,
		AppConfig.DBHost,
		AppConfig.DBPort,
		AppConfig.DBName)
	log.Printf("Integrations: SMTP(%t), Media(%t), Redis(%t), OpenAI(%t)",
		AppConfig.SMTPHost != "",
		AppConfig.Media.Endpoint != "",
		AppConfig.Redis.Enabled,
		AppConfig.OpenAIAPIKey != "")
}

func migrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.Invitation{},
		&models.Project{},
		&models.ProjectFile{},
		&models.Task{},
		&models.TaskComment{},
		&models.TaskCommentAttachment{},
		&models.TaskCommentMention{},
	)
}
