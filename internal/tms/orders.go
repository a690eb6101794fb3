package tms

import (
	"context"
	"sort"
	"strings"

	"github.com/bartek5186/sahamit-tms/internal/db"
	"github.com/bartek5186/sahamit-tms/internal/validation"
)

// AllOption w filtrze oznacza brak ograniczenia.
const AllOption = "All"

// OrderFilter: wyszukiwanie po numerze PO albo dostawcy (podciąg, bez wielkości liter)
// oraz dokładne dopasowanie statusu i dywizji. Warunki łączone przez AND.
type OrderFilter struct {
	Search   string
	Status   string
	Division string
}

// Apply zwraca pasujące zamówienia posortowane po dacie dostawy malejąco.
func (f OrderFilter) Apply(orders []db.Order) []db.Order {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]db.Order, 0, len(orders))
	for _, o := range orders {
		if search != "" &&
			!strings.Contains(strings.ToLower(o.Number), search) &&
			!strings.Contains(strings.ToLower(o.SupplierName), search) {
			continue
		}
		if !matches(f.Status, o.Status) || !matches(f.Division, o.Division) {
			continue
		}
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DeliveryDate > out[j].DeliveryDate })
	return out
}

func matches(want, got string) bool {
	return want == "" || want == AllOption || want == got
}

type Metrics struct {
	Total      int
	Done       int
	Pending    int
	SlotBooked int
}

func Summarize(orders []db.Order) Metrics {
	m := Metrics{Total: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case "Done":
			m.Done++
		case "Pending":
			m.Pending++
		}
		if o.Booked() {
			m.SlotBooked++
		}
	}
	return m
}

// Orders zwraca pełną migawkę shm_POHeader (pusta, gdy tabeli jeszcze nie ma).
func (s *Service) Orders(ctx context.Context) []db.Order {
	var orders []db.Order
	s.db.ReadAllInto(ctx, "Order", &orders)
	return orders
}

// Order szuka zamówienia po numerze; ok = false gdy go nie ma.
func (s *Service) Order(ctx context.Context, number string) (db.Order, bool, error) {
	var rows []db.Order
	if err := s.db.ReadWhereInto(ctx, "Order", "shm_ponumber", strings.TrimSpace(number), "shm_ponumber", &rows); err != nil {
		return db.Order{}, false, err
	}
	if len(rows) == 0 {
		return db.Order{}, false, nil
	}
	return rows[0], true, nil
}

// Lines: pozycje zamówienia posortowane po kluczu pozycji.
func (s *Service) Lines(ctx context.Context, number string) ([]db.OrderLine, error) {
	var lines []db.OrderLine
	err := s.db.ReadWhereInto(ctx, "OrderLine", "shm_ponumber", strings.TrimSpace(number), "shm_podetailsindex", &lines)
	return lines, err
}

// OrderForm to formularz nagłówka PO.
type OrderForm struct {
	Number       string
	SupplierName string
	Division     string
	Status       string
	OrderDate    string
	RequestDate  string
	DeliveryDate string
	TotalQty     float64
}

// withDefaults: to, co formularz podpowiada przed edycją (dzisiejsze daty, Foods, Pending)
func (f OrderForm) withDefaults(today string) OrderForm {
	f.Number = strings.TrimSpace(f.Number)
	f.SupplierName = strings.TrimSpace(f.SupplierName)
	if f.Division == "" {
		f.Division = validation.Divisions[0]
	}
	if f.Status == "" {
		f.Status = "Pending"
	}
	for _, d := range []*string{&f.OrderDate, &f.RequestDate, &f.DeliveryDate} {
		if *d == "" {
			*d = today
		}
	}
	return f
}

func (f OrderForm) validate() error {
	var ve validation.Errors
	validation.RequireField(&ve, "po", f.Number)
	validation.RequireField(&ve, "supplier", f.SupplierName)
	validation.ValidateEnum(&ve, "division", f.Division, validation.Divisions)
	validation.ValidateEnum(&ve, "status", f.Status, validation.OrderStatuses)
	validation.ValidateDate(&ve, "podate", f.OrderDate)
	validation.ValidateDate(&ve, "reqdate", f.RequestDate)
	validation.ValidateDate(&ve, "deldate", f.DeliveryDate)
	validation.ValidateNonNegative(&ve, "qty", f.TotalQty)
	return ve.Err()
}

// SaveOrder tworzy albo nadpisuje nagłówek PO. Zapis dotyka tylko kolumn nagłówka i znacznika,
// więc pola rezerwacji edytowanego zamówienia zostają; nowe zamówienie dostaje je puste.
func (s *Service) SaveOrder(ctx context.Context, actor string, form OrderForm) (db.Order, error) {
	f := form.withDefaults(s.today())
	if err := f.validate(); err != nil {
		return db.Order{}, err
	}

	header := db.Record{
		"shm_suppliername":   f.SupplierName,
		"shm_podivision":     f.Division,
		"shm_deliverystatus": f.Status,
		"shm_podate":         f.OrderDate,
		"shm_requestdate":    f.RequestDate,
		"shm_deliverydate":   f.DeliveryDate,
		"shm_totalqty":       f.TotalQty,
		"shm_recorddate":     s.stamp(),
		"shm_recordby":       actor,
	}
	if err := s.db.PatchUpsert(ctx, "Order", f.Number, header); err != nil {
		return db.Order{}, err
	}

	o, _, err := s.Order(ctx, f.Number)
	return o, err
}
