package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// BookingInvoice carries the invoice components of a vehicle booking order.
type BookingInvoice struct {
	BookingID            string          `json:"booking_id"`
	Customer             string          `json:"customer,omitempty"`
	VehicleChassisNo     string          `json:"vehicle_chassis_no,omitempty"`
	VehicleEngineNo      string          `json:"vehicle_engine_no,omitempty"`
	VehicleLicensePlate  string          `json:"vehicle_license_plate,omitempty"`
	VehicleUnregistered  bool            `json:"vehicle_unregistered,omitempty"`
	OutstandingAmount    decimal.Decimal `json:"outstanding_amount"`
	VehicleAmount        decimal.Decimal `json:"vehicle_amount"`
	FNIAmount            decimal.Decimal `json:"fni_amount"`
	WithholdingTaxAmount decimal.Decimal `json:"withholding_tax_amount"`
	PaymentAdjustment    decimal.Decimal `json:"payment_adjustment"`
	Cancelled            bool            `json:"cancelled,omitempty"`
}

var whitespace = regexp.MustCompile(`\s+`)

// NormalizeIdentifier uppercases a vehicle identifier and strips all whitespace.
func NormalizeIdentifier(raw string) string {
	return whitespace.ReplaceAllString(strings.ToUpper(raw), "")
}

// FormatVehicleFields normalizes the vehicle identifiers in place.
// An unregistered vehicle has no license plate.
func (b *BookingInvoice) FormatVehicleFields() {
	if b.VehicleUnregistered {
		b.VehicleLicensePlate = ""
	}
	b.VehicleChassisNo = NormalizeIdentifier(b.VehicleChassisNo)
	b.VehicleEngineNo = NormalizeIdentifier(b.VehicleEngineNo)
	b.VehicleLicensePlate = NormalizeIdentifier(b.VehicleLicensePlate)
}
