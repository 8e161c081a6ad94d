package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidDate = errors.New("invalid date")

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: Day(start), End: Day(end)}
}

// ParseDateRange parses two YYYY-MM-DD values. Empty values fall back to the
// matching bound of def.
func ParseDateRange(start, end string, def DateRange) (DateRange, error) {
	r := def
	if s := strings.TrimSpace(start); s != "" {
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: start %q", ErrInvalidDate, start)
		}
		r.Start = t
	}
	if s := strings.TrimSpace(end); s != "" {
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: end %q", ErrInvalidDate, end)
		}
		r.End = t
	}
	return NewDateRange(r.Start, r.End), nil
}

// Normalize swaps inverted bounds.
func (r DateRange) Normalize() DateRange {
	if Day(r.Start).After(Day(r.End)) {
		return DateRange{Start: Day(r.End), End: Day(r.Start)}
	}
	return DateRange{Start: Day(r.Start), End: Day(r.End)}
}

// Contains compares the calendar day of t against the bounds, ignoring the
// time of day.
func (r DateRange) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(Day(r.Start)) && !d.After(Day(r.End))
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

// Day truncates t to midnight of its calendar day, as UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthlyBucket summarises one calendar month.
type MonthlyBucket struct {
	Month      time.Time       `json:"month"`
	OrderCount int             `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

func (b MonthlyBucket) MonthName() string {
	return b.Month.Month().String()
}

type CityCount struct {
	City      string `json:"city"`
	Customers int    `json:"customers"`
}

// DeliveryTimeStat is the mean estimated delivery duration in days over
// Samples rows.
type DeliveryTimeStat struct {
	Days    float64 `json:"days"`
	Samples int     `json:"samples"`
}

func (s DeliveryTimeStat) Valid() bool {
	return s.Samples > 0
}

// ViewModel is everything the dashboard shows for one rerun.
type ViewModel struct {
	Range               DateRange        `json:"range"`
	RecordCount         int              `json:"record_count"`
	TotalOrders         int              `json:"total_orders"`
	AverageDeliveryTime DeliveryTimeStat `json:"average_delivery_time"`
	DeliveryTimeLabel   string           `json:"delivery_time_label"`
	MonthlyOrders       []MonthlyBucket  `json:"monthly_orders"`
	Cities              []CityCount      `json:"cities"`
	TopCities           []CityCount      `json:"top_cities"`
}
