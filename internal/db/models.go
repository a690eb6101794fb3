// internal/db/models.go
package db

// shm_POHeader: nagłówek PO razem z polami rezerwacji transportu
type Order struct {
	Number        string   `gorm:"primaryKey;column:shm_ponumber"`
	SupplierName  string   `gorm:"column:shm_suppliername;not null"`
	Division      string   `gorm:"column:shm_podivision;not null"`
	Status        string   `gorm:"column:shm_deliverystatus;not null"`
	OrderDate     string   `gorm:"column:shm_podate;not null"`
	RequestDate   string   `gorm:"column:shm_requestdate;not null"`
	DeliveryDate  string   `gorm:"column:shm_deliverydate;not null"`
	TotalQty      float64  `gorm:"column:shm_totalqty;default:0"`
	TransportName *string  `gorm:"column:shm_transportname"`
	TruckType     *string  `gorm:"column:shm_trucktype"`
	SlotBooking   int      `gorm:"column:shm_slotbooking;default:0"` // 0/1
	TruckNo       *string  `gorm:"column:shm_truckno"`
	TruckQty      *float64 `gorm:"column:shm_truckqty"`
	TransportCost *float64 `gorm:"column:shm_transportcost"`
	Note          *string  `gorm:"column:shm_scmnote"`
	RecordedAt    *string  `gorm:"column:shm_recorddate"` // ISO-8601 UTC, sekundy
	RecordedBy    *string  `gorm:"column:shm_recordby"`
}

func (Order) TableName() string { return "shm_POHeader" }

// Record mapuje wszystkie kolumny; nil w polach wskaźnikowych to NULL.
func (o Order) Record() Record {
	return Record{
		"shm_ponumber":       o.Number,
		"shm_suppliername":   o.SupplierName,
		"shm_podivision":     o.Division,
		"shm_deliverystatus": o.Status,
		"shm_podate":         o.OrderDate,
		"shm_requestdate":    o.RequestDate,
		"shm_deliverydate":   o.DeliveryDate,
		"shm_totalqty":       o.TotalQty,
		"shm_transportname":  nullable(o.TransportName),
		"shm_trucktype":      nullable(o.TruckType),
		"shm_slotbooking":    o.SlotBooking,
		"shm_truckno":        nullable(o.TruckNo),
		"shm_truckqty":       nullable(o.TruckQty),
		"shm_transportcost":  nullable(o.TransportCost),
		"shm_scmnote":        nullable(o.Note),
		"shm_recorddate":     nullable(o.RecordedAt),
		"shm_recordby":       nullable(o.RecordedBy),
	}
}

func (o Order) Booked() bool { return o.SlotBooking == 1 }

// shm_PODetails
type OrderLine struct {
	Index       string  `gorm:"primaryKey;column:shm_podetailsindex"` // {po}-{n}
	OrderNumber string  `gorm:"column:shm_ponumber;not null"`
	Item        *string `gorm:"column:shm_item"`
	Qty         float64 `gorm:"column:shm_qty;default:0"`
	UOM         *string `gorm:"column:shm_uom"`
	Remark      *string `gorm:"column:shm_remark"`
}

func (OrderLine) TableName() string { return "shm_PODetails" }

// Dane referencyjne: trzy identyczne mini-tabele klucz -> nazwa
type Supplier struct {
	Code string  `gorm:"primaryKey;column:shm_suppliercode"`
	Name *string `gorm:"column:shm_name"`
}

func (Supplier) TableName() string { return "shm_Supplier" }

type DistributionCenter struct {
	Code string  `gorm:"primaryKey;column:shm_dccode"`
	Name *string `gorm:"column:shm_name"`
}

func (DistributionCenter) TableName() string { return "shm_DC" }

type Product struct {
	Item string  `gorm:"primaryKey;column:shm_shmitem"`
	Name *string `gorm:"column:shm_name"`
}

func (Product) TableName() string { return "shm_Product" }

type User struct {
	Username string  `gorm:"primaryKey;column:shm_username"`
	FullName *string `gorm:"column:shm_fullname"`
	Class    int     `gorm:"column:shm_userclass;default:2"`
}

func (User) TableName() string { return "shm_User" }

// jeden wiersz na start sesji konsoli
type LoginLog struct {
	ID      int64   `gorm:"primaryKey;autoIncrement;column:shm_logid"`
	User    *string `gorm:"column:shm_user"`
	LogDate *string `gorm:"column:shm_logdate"`
	LogTime *string `gorm:"column:shm_logtime"`
}

func (LoginLog) TableName() string { return "shm_LoginLog" }

// migawki KPI liczone przez `kpi refresh`
type KPITransport struct {
	Ref   string   `gorm:"primaryKey;column:shm_kpitranref"`
	Name  *string  `gorm:"column:shm_name"`
	Value *float64 `gorm:"column:shm_value"`
}

func (KPITransport) TableName() string { return "shm_KPITransport" }

type KPISupplier struct {
	Ref   string   `gorm:"primaryKey;column:shm_kpisubref"`
	Name  *string  `gorm:"column:shm_name"`
	Value *float64 `gorm:"column:shm_value"`
}

func (KPISupplier) TableName() string { return "shm_KPISupplier" }

// shm_ImportLog: jeden wiersz na każde zastąpienie tabeli plikiem
type ImportLog struct {
	ID         uint   `gorm:"primaryKey;autoIncrement;column:import_id"`
	Target     string `gorm:"column:target_table;not null;index"`
	Filename   string `gorm:"column:filename"`
	SHA256     string `gorm:"column:sha256"`
	Rows       int    `gorm:"column:row_count"`
	ImportedAt string `gorm:"column:imported_at"`
	ImportedBy string `gorm:"column:imported_by"`
}

func (ImportLog) TableName() string { return "shm_ImportLog" }

func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
