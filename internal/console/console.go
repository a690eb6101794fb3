// Package console to terminalowa pętla poleceń dashboardu: te same ekrany co w GUI,
// tylko jako komendy tekstowe z wynikiem w tabelkach.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	conf "github.com/bartek5186/sahamit-tms/internal/config"
	"github.com/bartek5186/sahamit-tms/internal/db"
	"github.com/bartek5186/sahamit-tms/internal/seed"
	"github.com/bartek5186/sahamit-tms/internal/tms"
	"github.com/bartek5186/sahamit-tms/internal/validation"
)

const usage = `Komendy:
  orders [search=..] [status=..] [division=..]       lista PO
  order po=.. supplier=.. [division=..] [status=..] [podate=..] [reqdate=..] [deldate=..] [qty=..]
  po <numer>                                          nagłówek i pozycje PO
  book po=.. transport=.. truck=.. [delivery=..] [truckno=..] [truckqty=..] [cost=..] [note=..]
  kpi [refresh]                                       raport i wykresy
  master <supplier|dc|product> [code=.. name=..]      dane referencyjne
  users | imports
  import <tabela> <plik.csv|plik.xlsx>                zastępuje całą tabelę
  export <tabela> <plik.csv|plik.xlsx>
  seed | paths | reload | help | quit`

// Options: zależności od procesu (config, ścieżki), których sam serwis nie zna.
type Options struct {
	Actor  string
	Seeder *seed.Seeder
	// Reload wczytuje ponownie config.json
	Reload func() (*conf.Config, error)
	Paths  []Path
}

type Path struct {
	Label string
	Value string
}

type Console struct {
	svc  *tms.Service
	out  io.Writer
	log  zerolog.Logger
	opts Options
}

func New(svc *tms.Service, out io.Writer, log zerolog.Logger, opts Options) *Console {
	return &Console{svc: svc, out: out, log: log, opts: opts}
}

// Run czyta polecenia aż do quit, końca wejścia albo anulowania kontekstu.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	errs := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errs <- sc.Err()
	}()

	for {
		fmt.Fprint(c.out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(c.out)
				return <-errs
			}
			if quit := c.Exec(ctx, line); quit {
				return nil
			}
		}
	}
}

// Exec wykonuje jedną linię; true oznacza koniec sesji.
func (c *Console) Exec(ctx context.Context, line string) bool {
	a, err := parseLine(line)
	if err != nil {
		c.fail(err)
		return false
	}

	switch a.cmd {
	case "":
		// enter – ignoruj
	case "orders":
		c.orders(ctx, a)
	case "order":
		c.saveOrder(ctx, a)
	case "po":
		c.showPO(ctx, a)
	case "book":
		c.book(ctx, a)
	case "kpi":
		c.kpi(ctx, a)
	case "master":
		c.master(ctx, a)
	case "users":
		c.users(ctx)
	case "imports":
		c.imports(ctx)
	case "import":
		c.importFile(ctx, a)
	case "export":
		c.exportFile(ctx, a)
	case "seed":
		c.seed(ctx)
	case "paths":
		for _, p := range c.opts.Paths {
			fmt.Fprintf(c.out, "%s: %s\n", p.Label, p.Value)
		}
	case "reload":
		c.reload()
	case "help", "?":
		fmt.Fprintln(c.out, usage)
	case "quit", "exit":
		return true
	default:
		fmt.Fprintln(c.out, "Nieznana komenda. Użyj: help")
	}
	return false
}

// fail drukuje błąd wg rodzaju; nic tutaj nie kończy sesji.
func (c *Console) fail(err error) {
	var ve *validation.Errors
	switch {
	case errors.As(err, &ve):
		fmt.Fprintln(c.out, "Popraw dane:")
		for _, f := range ve.Fields {
			fmt.Fprintf(c.out, "  - %s: %s\n", f.Field, f.Message)
		}
	case db.IsConstraintViolation(err):
		fmt.Fprintln(c.out, "Baza odrzuciła zapis:", err)
	default:
		fmt.Fprintln(c.out, "Błąd:", err)
	}
}

func (c *Console) seed(ctx context.Context) {
	if c.opts.Seeder == nil {
		fmt.Fprintln(c.out, "Seed niedostępny")
		return
	}
	res, err := c.opts.Seeder.Run(ctx)
	if err != nil {
		c.fail(err)
		return
	}
	if res.Skipped {
		fmt.Fprintln(c.out, "shm_POHeader ma już dane, seed pominięty")
		return
	}
	fmt.Fprintf(c.out, "Dodano %d PO, %d pozycji, %d dostawców, %d DC, %d produktów, %d użytkowników\n",
		res.Orders, res.Lines, res.Suppliers, res.DCs, res.Products, res.Users)
}

func (c *Console) reload() {
	if c.opts.Reload == nil {
		fmt.Fprintln(c.out, "Reload niedostępny")
		return
	}
	cfg, err := c.opts.Reload()
	if err != nil {
		c.log.Error().Err(err).Msg("błąd reloadu")
		fmt.Fprintln(c.out, "Błąd reloadu:", err)
		return
	}
	c.opts.Actor = cfg.Actor
	c.svc.SetEncoding(cfg.Import.Encoding)
	c.log.Info().Msg("konfiguracja przeładowana")
	fmt.Fprintln(c.out, "Konfiguracja przeładowana")
}
