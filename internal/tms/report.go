package tms

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bartek5186/sahamit-tms/internal/db"
	"github.com/bartek5186/sahamit-tms/internal/validation"
)

const recentDeliveries = 50

type DivisionCount struct {
	Division string
	Count    int
}

type Delivery struct {
	Date     string // surowa wartość z bazy
	Number   string
	TotalQty float64
}

type Report struct {
	Metrics
	ByDivision []DivisionCount
	Recent     []Delivery
}

// BuildReport liczy podsumowanie, liczbę PO na dywizję (alfabetycznie) i ostatnie dostawy
// po dacie malejąco. Daty, których nie da się sparsować, lądują na końcu.
func BuildReport(orders []db.Order) Report {
	r := Report{Metrics: Summarize(orders)}

	perDivision := map[string]int{}
	for _, o := range orders {
		perDivision[o.Division]++
	}
	for div, n := range perDivision {
		r.ByDivision = append(r.ByDivision, DivisionCount{Division: div, Count: n})
	}
	sort.Slice(r.ByDivision, func(i, j int) bool { return r.ByDivision[i].Division < r.ByDivision[j].Division })

	type dated struct {
		d  Delivery
		t  time.Time
		ok bool
	}
	all := make([]dated, 0, len(orders))
	for _, o := range orders {
		t, err := time.Parse(validation.DateLayout, strings.TrimSpace(o.DeliveryDate))
		all = append(all, dated{d: Delivery{Date: o.DeliveryDate, Number: o.Number, TotalQty: o.TotalQty}, t: t, ok: err == nil})
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].ok != all[j].ok {
			return all[i].ok
		}
		return all[i].t.After(all[j].t)
	})
	if len(all) > recentDeliveries {
		all = all[:recentDeliveries]
	}
	for _, a := range all {
		r.Recent = append(r.Recent, a.d)
	}
	return r
}

type KPIResult struct {
	Transports int
	Suppliers  int
}

// RefreshKPI przelicza migawki KPI z bieżących zamówień:
// shm_KPITransport = łączny koszt transportu per przewoźnik,
// shm_KPISupplier = procent zamówień Done per dostawca.
// Każdy wiersz to osobny upsert, bez transakcji obejmującej całość.
func (s *Service) RefreshKPI(ctx context.Context) (KPIResult, error) {
	orders := s.Orders(ctx)

	cost := map[string]float64{}
	type tally struct{ done, total int }
	suppliers := map[string]*tally{}
	for _, o := range orders {
		if o.TransportName != nil && strings.TrimSpace(*o.TransportName) != "" {
			c := 0.0
			if o.TransportCost != nil {
				c = *o.TransportCost
			}
			cost[*o.TransportName] += c
		}
		t := suppliers[o.SupplierName]
		if t == nil {
			t = &tally{}
			suppliers[o.SupplierName] = t
		}
		t.total++
		if o.Status == "Done" {
			t.done++
		}
	}

	var res KPIResult
	for _, name := range sortedKeys(cost) {
		rec := db.Record{"shm_kpitranref": name, "shm_name": name, "shm_value": cost[name]}
		if err := s.db.Upsert(ctx, "KPITransport", rec); err != nil {
			return res, fmt.Errorf("kpi transport %s: %w", name, err)
		}
		res.Transports++
	}
	for _, name := range sortedKeys(suppliers) {
		t := suppliers[name]
		pct := 100 * float64(t.done) / float64(t.total)
		rec := db.Record{"shm_kpisubref": name, "shm_name": name, "shm_value": pct}
		if err := s.db.Upsert(ctx, "KPISupplier", rec); err != nil {
			return res, fmt.Errorf("kpi supplier %s: %w", name, err)
		}
		res.Suppliers++
	}
	s.log.Info().Int("transports", res.Transports).Int("suppliers", res.Suppliers).Msg("kpi przeliczone")
	return res, nil
}

type KPIValue struct {
	Ref   string
	Name  string
	Value float64
}

// KPIs zwraca zapisane migawki KPI (przewoźnicy, dostawcy).
func (s *Service) KPIs(ctx context.Context) (transport, supplier []KPIValue) {
	var tr []db.KPITransport
	s.db.ReadAllInto(ctx, "KPITransport", &tr)
	for _, k := range tr {
		transport = append(transport, KPIValue{Ref: k.Ref, Name: deref(k.Name), Value: derefF(k.Value)})
	}
	var su []db.KPISupplier
	s.db.ReadAllInto(ctx, "KPISupplier", &su)
	for _, k := range su {
		supplier = append(supplier, KPIValue{Ref: k.Ref, Name: deref(k.Name), Value: derefF(k.Value)})
	}
	return transport, supplier
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefF(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
