package config

import (
	"fmt"
	"time"

	"github.com/yeremiapane/parlor-billing/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteMaxConns bounds the sqlite pool. Readers share the WAL; writers
// queue on the database lock.
const SQLiteMaxConns = 4

// SQLiteDSN opens path in WAL mode with foreign keys on. Transactions begin
// IMMEDIATE, taking the write lock up front and waiting up to the busy
// timeout for it.
func SQLiteDSN(path string) string {
	return path + "?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_txlock=immediate"
}

// InitDB opens the configured store and sizes its connection pool.
func InitDB(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "mysql":
		dialector = mysql.Open(cfg.MySQLDSN())
	case "sqlite":
		dialector = sqlite.Open(SQLiteDSN(cfg.SQLitePath))
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(
			utils.InfoLogger,
			logger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver == "sqlite" {
		sqlDB.SetMaxOpenConns(SQLiteMaxConns)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	utils.InfoLogger.Printf("Connected to %s database", cfg.DBDriver)
	return db, nil
}
