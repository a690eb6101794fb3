//go:build windows && !dev

package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/getlantern/systray"
)

// ścieżka w go:embed jest względna względem tego pliku
//
//go:embed assets/icon.ico
var iconData []byte

func main() {
	// kontekst sterujący życiem procesu (CTRL+C / zamknięcie sesji)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := bootstrap(ctx, false)
	defer a.close()
	log := a.log

	if err := a.svc.RecordSession(ctx, a.cfg.Actor); err != nil {
		log.Warn().Err(err).Msg("nie zapisano sesji w shm_LoginLog")
	}

	// jeśli proces dostanie sygnał – zamknij tray
	go func() {
		<-ctx.Done()
		systray.Quit()
	}()

	systray.Run(func() {
		// onReady
		if len(iconData) > 0 {
			systray.SetIcon(iconData)
		}
		systray.SetTooltip(fmt.Sprintf("Sahamit TMS %s", ver))

		mSeed := systray.AddMenuItem("Wczytaj dane demo", "Seed pustej bazy przykładowymi PO")
		mExport := systray.AddMenuItem("Eksport PO do Excela", "Zapisz shm_POHeader do xlsx i otwórz")

		systray.AddSeparator()
		mOpenLogs := systray.AddMenuItem("Otwórz logi", "Pokaż plik log")
		mOpenCfg := systray.AddMenuItem("Ustawienia (config.json)", "Otwórz plik konfiguracyjny")
		mOpenData := systray.AddMenuItem("Folder danych", "Otwórz katalog z bazą i eksportami")
		mReload := systray.AddMenuItem("Przeładuj konfigurację", "Wczytaj ponownie config.json")
		systray.AddSeparator()
		mAbout := systray.AddMenuItem(fmt.Sprintf("O programie (%s)", ver), "")
		mQuit := systray.AddMenuItem("Wyjście", "Zamknij aplikację")

		go func() {
			for {
				select {
				case <-mSeed.ClickedCh:
					res, err := a.seeder.Run(ctx)
					switch {
					case err != nil:
						systray.SetTooltip(fmt.Sprintf("Sahamit TMS %s: błąd seeda", ver))
					case res.Skipped:
						systray.SetTooltip(fmt.Sprintf("Sahamit TMS %s: baza ma już dane", ver))
					default:
						systray.SetTooltip(fmt.Sprintf("Sahamit TMS %s: dodano %d PO", ver, res.Orders))
					}

				case <-mExport.ClickedCh:
					name := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("20060102-150405"))
					path := filepath.Join(a.dir, "exports", name)
					if _, err := a.svc.ExportTable(ctx, "Order", path); err != nil {
						log.Error().Err(err).Msg("eksport PO nieudany")
						continue
					}
					openInExplorer(path)

				case <-mOpenLogs.ClickedCh:
					openInExplorer(a.logPath)

				case <-mOpenCfg.ClickedCh:
					openInExplorer(a.cfgPath)

				case <-mOpenData.ClickedCh:
					openInExplorer(filepath.Dir(a.db.Path))

				case <-mReload.ClickedCh:
					if _, err := a.reload(); err != nil {
						log.Error().Err(err).Msg("Błąd reloadu")
						continue
					}
					log.Info().Msg("Konfiguracja przeładowana")

				case <-mAbout.ClickedCh:
					log.Info().Msgf("Sahamit TMS %s | %s | db %s (%s)", ver, runtime.Version(), a.db.Path, a.db.Driver)

				case <-mQuit.ClickedCh:
					// łagodne zamykanie
					cancel()
					systray.Quit()
					return
				}
			}
		}()
	}, func() {
		// onExit: daj chwilę loggerowi na flush
		time.Sleep(50 * time.Millisecond)
	})
}

// przenośne otwieranie plików/katalogów w domyślnej aplikacji
func openInExplorer(path string) {
	switch runtime.GOOS {
	case "windows":
		// "start" musi być uruchomiony przez cmd /C, z pustym tytułem okna ""
		_ = exec.Command("cmd", "/C", "start", "", path).Start()
	case "darwin":
		_ = exec.Command("open", path).Start()
	default:
		_ = exec.Command("xdg-open", path).Start()
	}
}
