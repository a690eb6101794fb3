// Package tms to logika ekranów dashboardu: monitor zamówień, szczegóły PO, rezerwacje transportu,
// raporty, dane referencyjne i import/eksport tabel. Filtry i agregaty liczone są w pamięci
// na migawce odczytanej z bazy; każdy zapis to jedno wywołanie warstwy db.
package tms

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/bartek5186/sahamit-tms/internal/db"
	"github.com/bartek5186/sahamit-tms/internal/validation"
)

type Service struct {
	db       *db.Handle
	log      zerolog.Logger
	encoding string
	now      func() time.Time
}

// New: encoding to domyślne kodowanie importowanych CSV (pusty = autodetekcja).
func New(h *db.Handle, log zerolog.Logger, encoding string) *Service {
	return &Service{db: h, log: log, encoding: encoding, now: time.Now}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) SetEncoding(encoding string) { s.encoding = encoding }

func (s *Service) today() string {
	return s.now().Format(validation.DateLayout)
}

// stamp: znacznik recorded-at, UTC z dokładnością do sekundy
func (s *Service) stamp() string {
	return s.now().UTC().Format(validation.TimestampLayout)
}
