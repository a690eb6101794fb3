package db

import (
	"fmt"
	"os"
	"path/filepath"

	conf "github.com/bartek5186/sahamit-tms/internal/config"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	cgosqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Handle to jawnie tworzony uchwyt do bazy przekazywany do każdej operacji.
type Handle struct {
	DB      *gorm.DB
	Path    string // plik SQLite albo DSN
	Driver  string
	Catalog *Catalog

	log zerolog.Logger
}

// Open wybiera dialekt gorm wg configu. Dla SQLite bez DSN baza ląduje w <dir>/data/tms.db,
// katalog tworzony jest tutaj, raz.
func Open(cfg conf.DatabaseConfig, dir string, log zerolog.Logger) (*Handle, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = conf.DriverSQLite
	}
	dsn := cfg.DSN

	var dialector gorm.Dialector
	switch driver {
	case conf.DriverSQLite, conf.DriverSQLiteCGO:
		if dsn == "" {
			dataDir := filepath.Join(dir, "data")
			if err := os.MkdirAll(dataDir, 0o755); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
			dsn = filepath.Join(dataDir, "tms.db")
		}
		if driver == conf.DriverSQLite {
			dialector = sqlite.Open(dsn)
		} else {
			dialector = cgosqlite.Open(dsn)
		}
	case conf.DriverMySQL:
		if dsn == "" {
			return nil, fmt.Errorf("driver %s wymaga database.dsn", driver)
		}
		dialector = mysql.Open(dsn)
	case conf.DriverPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("driver %s wymaga database.dsn", driver)
		}
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("nieznany driver bazy %q", driver)
	}

	level := logger.Silent
	if cfg.Verbose {
		level = logger.Info
	}
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}

	// SQLite otwiera plik leniwie, ping wymusza połączenie
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	cat, err := NewCatalog()
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return &Handle{DB: gdb, Path: dsn, Driver: driver, Catalog: cat, log: log}, nil
}

// OpenAt otwiera domyślną bazę SQLite w katalogu aplikacji.
func OpenAt(dir string, log zerolog.Logger) (*Handle, error) {
	return Open(conf.DatabaseConfig{Driver: conf.DriverSQLite}, dir, log)
}

func (h *Handle) Close() error {
	sqlDB, err := h.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
