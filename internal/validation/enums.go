package validation

// Listy wyboru z formularzy dashboardu.
var (
	Divisions      = []string{"Foods", "NF", "PCB", "Import-Foods", "Import-NF"}
	OrderStatuses  = []string{"Done", "Pending", "Cancel", "Hold", "MOQ"}
	TruckTypes     = []string{"4W", "4WJ", "6W", "10W", "18W", "106W"}
	TransportNames = []string{"Supplier", "Shipping", "SHM", "KEL", "บราโว่", "เอกอนันต์", "ว.ศรีประเสริฐ", "TDM", "โวลท์เวฟ"}
)
