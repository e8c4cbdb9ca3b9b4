package database

import (
	"fmt"
	"log"
	"net/url"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"campusevents_backend/internals/configs"
)

var DB *gorm.DB

// DSN builds the postgres URL from DB_* variables.
func DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(configs.GetEnv("DB_USER", "postgres"), configs.GetEnv("DB_PASSWORD", "postgres")),
		Host:   fmt.Sprintf("%s:%s", configs.GetEnv("DB_HOST", "localhost"), configs.GetEnv("DB_PORT", "5432")),
		Path:   "/" + configs.GetEnv("DB_NAME", "campusevents"),
	}
	q := url.Values{}
	q.Set("sslmode", configs.GetEnv("DB_SSLMODE", "disable"))
	q.Set("application_name", "campusevents")
	q.Set("options", fmt.Sprintf("-c statement_timeout=%d", configs.GetEnvInt("DB_STATEMENT_TIMEOUT_MS", 5000)))
	u.RawQuery = q.Encode()
	return u.String()
}

func ConnectDB() *gorm.DB {
	log.Println("[INFO] connecting to PostgreSQL...")

	var (
		db  *gorm.DB
		err error
	)
	for attempt := 1; attempt <= 5; attempt++ {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  DSN(),
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			Logger: configs.NewGormLogger(),
		})
		if err == nil {
			if err = ping(db); err == nil {
				break
			}
		}
		log.Printf("[WARN] db connect attempt %d/5 failed: %v, retrying in 2s", attempt, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatalf("[ERROR] database connection failed: %v", err)
	}

	DB = db
	log.Println("[INFO] DB connected.")
	return db
}

func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("[WARN] pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func Ping() error {
	if DB == nil {
		return fmt.Errorf("database not initialised")
	}
	return ping(DB)
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
