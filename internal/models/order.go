package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRecord is one line-item row of the transactions table. An order may
// span several rows, so OrderID is not unique.
type OrderRecord struct {
	OrderID                    string          `json:"order_id"`
	CustomerID                 string          `json:"customer_id"`
	CustomerCity               string          `json:"customer_city"`
	Price                      decimal.Decimal `json:"price"`
	OrderApprovedAt            *time.Time      `json:"order_approved_at,omitempty"`
	OrderEstimatedDeliveryDate *time.Time      `json:"order_estimated_delivery_date,omitempty"`
}

// Approved reports whether the row carries an approval timestamp.
func (o OrderRecord) Approved() bool {
	return o.OrderApprovedAt != nil
}

// DeliveryDays returns the estimated delivery duration in fractional days.
// ok is false when either timestamp is missing.
func (o OrderRecord) DeliveryDays() (days float64, ok bool) {
	if o.OrderApprovedAt == nil || o.OrderEstimatedDeliveryDate == nil {
		return 0, false
	}
	return o.OrderEstimatedDeliveryDate.Sub(*o.OrderApprovedAt).Seconds() / SecondsPerDay, true
}
