package console

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/bartek5186/sahamit-tms/internal/tms"
)

const barWidth = 40

func (c *Console) table(header ...string) *tabwriter.Writer {
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	return w
}

func row(w io.Writer, cells ...string) {
	fmt.Fprintln(w, strings.Join(cells, "\t"))
}

func str(p *string) string {
	if p == nil {
		return "-"
	}
	return *p
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func numPtr(p *float64) string {
	if p == nil {
		return "-"
	}
	return num(*p)
}

func (c *Console) orders(ctx context.Context, a args) {
	all := c.svc.Orders(ctx)
	if len(all) == 0 {
		fmt.Fprintln(c.out, "Brak danych w shm_POHeader. Użyj `seed` albo `import`.")
		return
	}
	f := tms.OrderFilter{Search: a.kv["search"], Status: a.kv["status"], Division: a.kv["division"]}
	orders := f.Apply(all)
	m := tms.Summarize(orders)
	fmt.Fprintf(c.out, "Total PO: %d  Done: %d  Pending: %d  Slot Booked: %d\n", m.Total, m.Done, m.Pending, m.SlotBooked)

	w := c.table("PO", "Supplier", "Division", "Status", "PO Date", "Request", "Delivery", "Qty", "Transport", "Truck", "Slot")
	for _, o := range orders {
		row(w, o.Number, o.SupplierName, o.Division, o.Status, o.OrderDate, o.RequestDate, o.DeliveryDate,
			num(o.TotalQty), str(o.TransportName), str(o.TruckType), strconv.Itoa(o.SlotBooking))
	}
	w.Flush()
}

func (c *Console) saveOrder(ctx context.Context, a args) {
	qty, err := a.float("qty")
	if err != nil {
		c.fail(err)
		return
	}
	o, err := c.svc.SaveOrder(ctx, c.opts.Actor, tms.OrderForm{
		Number:       a.kv["po"],
		SupplierName: a.kv["supplier"],
		Division:     a.kv["division"],
		Status:       a.kv["status"],
		OrderDate:    a.kv["podate"],
		RequestDate:  a.kv["reqdate"],
		DeliveryDate: a.kv["deldate"],
		TotalQty:     qty,
	})
	if err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintf(c.out, "Zapisano %s\n", o.Number)
}

func (c *Console) showPO(ctx context.Context, a args) {
	if len(a.pos) == 0 {
		fmt.Fprintln(c.out, "Użycie: po <numer>")
		return
	}
	o, ok, err := c.svc.Order(ctx, a.pos[0])
	if err != nil {
		c.fail(err)
		return
	}
	if !ok {
		fmt.Fprintf(c.out, "Nie ma PO %s\n", a.pos[0])
		return
	}

	fmt.Fprintf(c.out, "Header: %s\n", o.Number)
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	for _, kv := range [][2]string{
		{"shm_suppliername", o.SupplierName},
		{"shm_podivision", o.Division},
		{"shm_deliverystatus", o.Status},
		{"shm_podate", o.OrderDate},
		{"shm_requestdate", o.RequestDate},
		{"shm_deliverydate", o.DeliveryDate},
		{"shm_totalqty", num(o.TotalQty)},
		{"shm_transportname", str(o.TransportName)},
		{"shm_trucktype", str(o.TruckType)},
		{"shm_slotbooking", strconv.Itoa(o.SlotBooking)},
		{"shm_truckno", str(o.TruckNo)},
		{"shm_truckqty", numPtr(o.TruckQty)},
		{"shm_transportcost", numPtr(o.TransportCost)},
		{"shm_scmnote", str(o.Note)},
		{"shm_recorddate", str(o.RecordedAt)},
		{"shm_recordby", str(o.RecordedBy)},
	} {
		row(w, "  "+kv[0], kv[1])
	}
	w.Flush()

	lines, err := c.svc.Lines(ctx, o.Number)
	if err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintf(c.out, "Lines (%d)\n", len(lines))
	if len(lines) == 0 {
		return
	}
	w = c.table("Line", "Item", "Qty", "UOM", "Remark")
	for _, l := range lines {
		row(w, l.Index, str(l.Item), num(l.Qty), str(l.UOM), str(l.Remark))
	}
	w.Flush()
}

func (c *Console) book(ctx context.Context, a args) {
	form := tms.BookingForm{
		Number:        a.kv["po"],
		TransportName: a.kv["transport"],
		TruckType:     a.kv["truck"],
		DeliveryDate:  a.kv["delivery"],
		TruckNo:       a.kv["truckno"],
		Note:          a.kv["note"],
	}
	var err error
	if form.TruckQty, err = a.float("truckqty"); err != nil {
		c.fail(err)
		return
	}
	if form.TransportCost, err = a.float("cost"); err != nil {
		c.fail(err)
		return
	}
	if err := c.svc.SaveBooking(ctx, c.opts.Actor, form); err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintf(c.out, "Rezerwacja zapisana dla %s\n", strings.TrimSpace(form.Number))
}

func (c *Console) kpi(ctx context.Context, a args) {
	if len(a.pos) > 0 && strings.EqualFold(a.pos[0], "refresh") {
		res, err := c.svc.RefreshKPI(ctx)
		if err != nil {
			c.fail(err)
			return
		}
		fmt.Fprintf(c.out, "KPI przeliczone: %d przewoźników, %d dostawców\n", res.Transports, res.Suppliers)
		c.storedKPI(ctx)
		return
	}

	orders := c.svc.Orders(ctx)
	if len(orders) == 0 {
		fmt.Fprintln(c.out, "Brak danych PO.")
		return
	}
	r := tms.BuildReport(orders)
	fmt.Fprintf(c.out, "Total: %d  Done: %d  Pending: %d  Slot Booking: %d\n", r.Total, r.Done, r.Pending, r.SlotBooked)

	fmt.Fprintln(c.out, "\nBy Division")
	maxCount := 0
	for _, d := range r.ByDivision {
		maxCount = max(maxCount, d.Count)
	}
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	for _, d := range r.ByDivision {
		row(w, "  "+d.Division, bar(float64(d.Count), float64(maxCount)), strconv.Itoa(d.Count))
	}
	w.Flush()

	fmt.Fprintln(c.out, "\nRecent Deliveries (Total Qty)")
	maxQty := 0.0
	for _, d := range r.Recent {
		maxQty = max(maxQty, d.TotalQty)
	}
	w = tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	for _, d := range r.Recent {
		row(w, "  "+d.Date, d.Number, bar(d.TotalQty, maxQty), num(d.TotalQty))
	}
	w.Flush()
}

func (c *Console) storedKPI(ctx context.Context) {
	transport, supplier := c.svc.KPIs(ctx)
	w := c.table("Przewoźnik", "Koszt")
	for _, k := range transport {
		row(w, k.Name, num(k.Value))
	}
	w.Flush()
	w = c.table("Dostawca", "Done %")
	for _, k := range supplier {
		row(w, k.Name, strconv.FormatFloat(k.Value, 'f', 1, 64))
	}
	w.Flush()
}

// bar: pasek proporcjonalny do max, co najmniej jeden znak dla wartości > 0
func bar(v, maxV float64) string {
	if v <= 0 || maxV <= 0 {
		return ""
	}
	n := int(v / maxV * barWidth)
	return strings.Repeat("#", max(n, 1))
}

func (c *Console) master(ctx context.Context, a args) {
	if len(a.pos) == 0 {
		fmt.Fprintln(c.out, "Użycie: master <supplier|dc|product> [code=.. name=..]")
		return
	}
	kind, err := tms.ParseRefKind(a.pos[0])
	if err != nil {
		c.fail(err)
		return
	}
	if code, ok := a.kv["code"]; ok {
		if err := c.svc.SaveReference(ctx, kind, code, a.kv["name"]); err != nil {
			c.fail(err)
			return
		}
		fmt.Fprintln(c.out, "Zapisano.")
	}

	refs, err := c.svc.References(ctx, kind)
	if err != nil {
		c.fail(err)
		return
	}
	w := c.table("Code", "Name")
	for _, r := range refs {
		row(w, r.Code, r.Name)
	}
	w.Flush()
}

func (c *Console) users(ctx context.Context) {
	w := c.table("Username", "Full name", "Class")
	for _, u := range c.svc.Users(ctx) {
		row(w, u.Username, str(u.FullName), strconv.Itoa(u.Class))
	}
	w.Flush()
}

func (c *Console) imports(ctx context.Context) {
	w := c.table("#", "Table", "File", "Rows", "At", "By", "SHA-256")
	for _, l := range c.svc.Imports(ctx) {
		row(w, strconv.FormatUint(uint64(l.ID), 10), l.Target, l.Filename, strconv.Itoa(l.Rows), l.ImportedAt, l.ImportedBy, shortHash(l.SHA256))
	}
	w.Flush()
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

func (c *Console) importFile(ctx context.Context, a args) {
	if len(a.pos) < 2 {
		fmt.Fprintf(c.out, "Użycie: import <tabela> <plik>\nTabele: %s\n", strings.Join(tms.ImportTargets, ", "))
		return
	}
	res, err := c.svc.ImportFile(ctx, c.opts.Actor, a.pos[0], a.pos[1])
	if err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintf(c.out, "Zaimportowano %d wierszy do %s (zastąpiono tabelę)\n", res.Rows, res.Table)
}

func (c *Console) exportFile(ctx context.Context, a args) {
	if len(a.pos) < 2 {
		fmt.Fprintln(c.out, "Użycie: export <tabela> <plik.csv|plik.xlsx>")
		return
	}
	n, err := c.svc.ExportTable(ctx, a.pos[0], a.pos[1])
	if err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintf(c.out, "Wyeksportowano %d wierszy do %s\n", n, a.pos[1])
}
