package tms

import (
	"context"
	"strings"

	"github.com/bartek5186/sahamit-tms/internal/db"
	"github.com/bartek5186/sahamit-tms/internal/validation"
)

// BookingForm: pola rezerwacji transportu nakładane na istniejący nagłówek PO.
type BookingForm struct {
	Number        string
	TransportName string
	TruckType     string
	DeliveryDate  string
	TruckNo       string
	TruckQty      float64
	TransportCost float64
	Note          string
}

func (f BookingForm) validate() error {
	var ve validation.Errors
	validation.RequireField(&ve, "po", f.Number)
	validation.RequireField(&ve, "transport", f.TransportName)
	validation.RequireField(&ve, "truck", f.TruckType)
	validation.ValidateEnum(&ve, "transport", f.TransportName, validation.TransportNames)
	validation.ValidateEnum(&ve, "truck", f.TruckType, validation.TruckTypes)
	validation.ValidateDate(&ve, "delivery", f.DeliveryDate)
	validation.ValidateNonNegative(&ve, "truckqty", f.TruckQty)
	validation.ValidateNonNegative(&ve, "cost", f.TransportCost)
	return ve.Err()
}

// SaveBooking zapisuje rezerwację i zawsze ustawia slot booking = 1. Pozostałe kolumny zamówienia
// zostają nietknięte. Dla nieistniejącego numeru PO baza odrzuci wiersz bez pól nagłówka
// (NOT NULL), a błąd ograniczenia wraca do wołającego.
func (s *Service) SaveBooking(ctx context.Context, actor string, form BookingForm) error {
	f := form
	f.Number = strings.TrimSpace(f.Number)
	if f.DeliveryDate == "" {
		f.DeliveryDate = s.today()
	}
	if err := f.validate(); err != nil {
		return err
	}

	patch := db.Record{
		"shm_transportname": f.TransportName,
		"shm_trucktype":     f.TruckType,
		"shm_slotbooking":   1,
		"shm_deliverydate":  f.DeliveryDate,
		"shm_truckno":       strings.TrimSpace(f.TruckNo),
		"shm_truckqty":      f.TruckQty,
		"shm_transportcost": f.TransportCost,
		"shm_scmnote":       f.Note,
		"shm_recorddate":    s.stamp(),
		"shm_recordby":      actor,
	}
	return s.db.PatchUpsert(ctx, "Order", f.Number, patch)
}
