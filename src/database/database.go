package database

import (
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/FinCube-23/transferPoC-sub001/pkg/logger"
	"github.com/FinCube-23/transferPoC-sub001/src/model"
)

var (
	db     *gorm.DB
	dbOnce sync.Once
)

func InitializeDatabaseConnection(connectionString string) {
	dbOnce.Do(func() {
		dbLogger := logger.Default()
		dbLogger.Infof("Establishing connection to database: %s", connectionString)

		conn, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			dbLogger.Fatal(err, "Cannot establish database connection")
		}

		db = conn
	})
}

func GetDatabaseConnection() *gorm.DB {
	if db == nil {
		panic("database connection not initialized: call InitializeDatabaseConnection() first")
	}
	return db
}

func AutoMigrate(conn *gorm.DB) error {
	logger.Default().Info("Running migrations for tables")
	return conn.AutoMigrate(
		&model.Organization{},
		&model.Batch{},
		&model.User{},
	)
}

// Ping reports whether the underlying connection is usable. Used by the
// health surface; never attempts to reconnect.
func Ping() bool {
	if db == nil {
		return false
	}
	sqlDB, err := db.DB()
	if err != nil {
		return false
	}
	return sqlDB.Ping() == nil
}

// Close releases the underlying pool. Call only after all workers drained.
func Close() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
