package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	conf "github.com/bartek5186/sahamit-tms/internal/config"
	"github.com/bartek5186/sahamit-tms/internal/db"
	logs "github.com/bartek5186/sahamit-tms/internal/logs"
	"github.com/bartek5186/sahamit-tms/internal/seed"
	"github.com/bartek5186/sahamit-tms/internal/tms"
)

// wersję możesz nadpisać przez: -ldflags "-X 'main.ver=1.0.1'"
var ver = "1.0.0"

const appName = "sahamit-tms"

type app struct {
	dir     string
	cfgPath string
	logPath string

	cfg    *conf.Config
	log    zerolog.Logger
	db     *db.Handle
	svc    *tms.Service
	seeder *seed.Seeder
}

// bootstrap: config, logi, baza i schemat. Niedostępna baza kończy proces.
func bootstrap(ctx context.Context, console bool) *app {
	a := &app{dir: mustAppDataDir(appName)}
	a.cfgPath = filepath.Join(a.dir, "config.json")
	a.logPath = filepath.Join(a.dir, "app.log")

	cfg, firstRun, err := conf.LoadOrCreate(a.cfgPath)
	if err != nil {
		panic(err)
	}
	a.cfg = cfg
	a.log = logs.New(a.logPath, console || cfg.LogConsole)
	if firstRun {
		a.log.Info().Msgf("Utworzono domyślną konfigurację: %s", a.cfgPath)
	}

	a.db, err = db.Open(cfg.Database, a.dir, a.log)
	if err != nil {
		a.log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("DB open error")
	}
	if err := a.db.Migrate(ctx); err != nil {
		a.log.Fatal().Err(err).Msg("DB migrate error")
	}
	a.log.Info().Str("db", a.db.Path).Str("driver", a.db.Driver).Msg("DB ready")

	a.svc = tms.New(a.db, a.log, cfg.Import.Encoding)
	a.seeder = seed.New(a.db, a.log)

	if cfg.DemoData {
		if _, err := a.seeder.Run(ctx); err != nil {
			a.log.Error().Err(err).Msg("seed danych demo nieudany")
		}
	}
	return a
}

func (a *app) reload() (*conf.Config, error) {
	cfg, _, err := conf.LoadOrCreate(a.cfgPath)
	if err != nil {
		return nil, err
	}
	a.cfg = cfg
	a.svc.SetEncoding(cfg.Import.Encoding)
	return cfg, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.log.Warn().Err(err).Msg("zamknięcie bazy")
	}
}

func mustAppDataDir(name string) string {
	base, err := os.UserConfigDir()
	if err != nil {
		panic(err)
	}
	p := filepath.Join(base, name)
	_ = os.MkdirAll(p, 0o755)
	return p
}
