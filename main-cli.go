//go:build !windows || dev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bartek5186/sahamit-tms/internal/console"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := bootstrap(ctx, false)
	defer a.close()

	log := a.log
	log.Info().Msg("Aplikacja (CLI) uruchomiona")
	if err := a.svc.RecordSession(ctx, a.cfg.Actor); err != nil {
		log.Warn().Err(err).Msg("nie zapisano sesji w shm_LoginLog")
	}

	// Prosta pętla poleceń w terminalu
	fmt.Println("Sahamit TMS CLI", ver)
	fmt.Println("Wpisz help, żeby zobaczyć komendy")

	c := console.New(a.svc, os.Stdout, log, console.Options{
		Actor:  a.cfg.Actor,
		Seeder: a.seeder,
		Reload: a.reload,
		Paths: []console.Path{
			{Label: "Logi", Value: a.logPath},
			{Label: "Config", Value: a.cfgPath},
			{Label: "Baza", Value: a.db.Path},
			{Label: "Dane", Value: filepath.Join(a.dir, "data")},
		},
	})
	if err := c.Run(ctx, os.Stdin); err != nil {
		log.Error().Err(err).Msg("błąd odczytu wejścia")
	}
	log.Info().Msg("Zamykanie")
}
