package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"rental-ledger/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "rental_ledger")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase ensures a default landlord account exists for fresh installs.
func SeedDatabase() {
	var count int64
	DB.Model(&models.Account{}).Count(&count)
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("SEED_LANDLORD_PASSWORD", "landlord123")), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("warning: failed to hash seed landlord password: %v", err)
		return
	}
	account := models.Account{
		FullName: "Default Landlord",
		Username: envOrDefault("SEED_LANDLORD_USERNAME", "landlord@rental.local"),
		Password: string(hash),
	}
	if err := DB.Create(&account).Error; err != nil {
		log.Printf("warning: failed to seed landlord account: %v", err)
		return
	}
	log.Println("Default landlord account seeded")
}

// ConnectDatabase opens the configured database (mysql by default,
// DB_DRIVER=sqlite for local runs), migrates the ledger schema and seeds it.
func ConnectDatabase() error {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	var (
		db  *gorm.DB
		err error
	)
	switch strings.ToLower(envOrDefault("DB_DRIVER", "mysql")) {
	case "sqlite":
		path := envOrDefault("SQLITE_PATH", "rental_ledger.db")
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{Logger: newLogger})
	default:
		var dsn string
		dsn, err = resolveMySQLDSN()
		if err != nil {
			return err
		}
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	}
	if err != nil {
		return err
	}

	DB = db

	if err := DB.AutoMigrate(
		&models.Account{},
		&models.Room{},
		&models.Agreement{},
		&models.LedgerEvent{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
