package database

import (
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite://"

func getLogger(level logger.LogLevel) logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true, // Don't include params in the SQL log
			Colorful:                  true,
		},
	)
}

// now keeps every auto timestamp in UTC at microsecond precision, which is
// what PostgreSQL stores. Message ordering relies on it.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func configureConnectionPool(db *gorm.DB, maxOpen int) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(min(10, maxOpen))
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return nil
}

func open(dialector gorm.Dialector, level logger.LogLevel, maxOpen int) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  getLogger(level),
		NowFunc: now,
	})
	if err != nil {
		return nil, err
	}

	if err := configureConnectionPool(db, maxOpen); err != nil {
		return nil, err
	}

	return db, nil
}

// NewGormDBFromDSN connects to PostgreSQL, or to a SQLite file when the DSN
// starts with "sqlite://" (local development only).
func NewGormDBFromDSN(dsn string) (*gorm.DB, error) {
	if path, ok := strings.CutPrefix(dsn, sqlitePrefix); ok {
		// SQLite serialises writers; a single connection avoids "database is locked".
		return open(sqlite.Open(path), logger.Warn, 1)
	}
	return open(postgres.Open(dsn), logger.Info, 100)
}

// NewInMemoryDB opens a private SQLite database that lives as long as the
// returned handle. Used by tests.
func NewInMemoryDB() (*gorm.DB, error) {
	return open(sqlite.Open("file::memory:"), logger.Silent, 1)
}

// AutoMigrate creates or updates the given tables.
func AutoMigrate(db *gorm.DB, models ...interface{}) error {
	return db.AutoMigrate(models...)
}
