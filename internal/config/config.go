// internal/config/config.go
package conf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Sterowniki bazy obsługiwane przez internal/db
const (
	DriverSQLite    = "sqlite"  // czysty Go (glebarez), domyślny
	DriverSQLiteCGO = "sqlite3" // mattn/go-sqlite3, wymaga cgo
	DriverMySQL     = "mysql"
	DriverPostgres  = "postgres"
)

type DatabaseConfig struct {
	Driver  string `json:"driver"`
	DSN     string `json:"dsn"`     // pusty = <appDir>/data/tms.db
	Verbose bool   `json:"verbose"` // logowanie SQL przez gorm
}

type ImportConfig struct {
	Encoding string `json:"encoding"` // etykieta charsetu dla CSV, pusta = autodetekcja
}

// Główny config aplikacji
type Config struct {
	DemoData   bool           `json:"demo_data"`
	Actor      string         `json:"actor"`
	Database   DatabaseConfig `json:"database"`
	Import     ImportConfig   `json:"import"`
	LogConsole bool           `json:"log_console"`
}

func Default() *Config {
	return &Config{
		DemoData: true,
		Actor:    "tms_user",
		Database: DatabaseConfig{Driver: DriverSQLite},
	}
}

// LoadOrCreate ładuje config z pliku lub tworzy domyślny.
// Drugi zwracany parametr mówi, czy plik został właśnie utworzony.
func LoadOrCreate(path string) (*Config, bool, error) {
	// upewnij się, że katalog istnieje
	_ = os.MkdirAll(filepath.Dir(path), 0o755)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(path, cfg); err != nil {
				return nil, false, fmt.Errorf("błąd zapisu domyślnego configa: %w", err)
			}
			cfg.applyEnv(filepath.Dir(path))
			cfg.normalize()
			return cfg, true, nil
		}
		return nil, false, fmt.Errorf("błąd otwierania configa: %w", err)
	}
	defer f.Close()

	cfg := Default()
	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return nil, false, fmt.Errorf("błąd parsowania configa: %w", err)
	}
	cfg.applyEnv(filepath.Dir(path))
	cfg.normalize()
	return cfg, false, nil
}

func Save(path string, cfg *Config) error {
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}

// applyEnv: .env z katalogu aplikacji albo bieżącego, potem zmienne TMS_* nadpisują plik
func (c *Config) applyEnv(appDir string) {
	_ = godotenv.Load(filepath.Join(appDir, ".env"))
	_ = godotenv.Load() // .env w katalogu roboczym, brak pliku to nie błąd

	if v := os.Getenv("TMS_DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("TMS_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("TMS_ACTOR"); v != "" {
		c.Actor = v
	}
	if v := os.Getenv("TMS_DEMO_DATA"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.DemoData = b
		}
	}
}

func (c *Config) normalize() {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	if strings.TrimSpace(c.Actor) == "" {
		c.Actor = "tms_user"
	}
}
