package factories

import (
	"math/rand"
	"time"

	"github.com/chrisdamba/ecomdash/internal/models"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"github.com/shopspring/decimal"
)

type Customer struct {
	ID   string
	City string
}

// OrderFactory generates line-item rows shaped like the transactions table.
type OrderFactory struct {
	Start time.Time
	End   time.Time
	// UnapprovedRatio is the share of orders left without an approval timestamp.
	UnapprovedRatio float64

	fake      faker.Faker
	cities    []string
	customers []Customer
}

func NewOrderFactory(seed int64, start, end time.Time, cityCount, customerCount int) *OrderFactory {
	if cityCount < 1 {
		cityCount = 1
	}
	if customerCount < 1 {
		customerCount = 1
	}
	f := &OrderFactory{
		Start:           start,
		End:             end,
		UnapprovedRatio: 0.01,
		fake:            faker.NewWithSeed(rand.NewSource(seed)),
	}
	f.cities = f.createCities(cityCount)
	for i := 0; i < customerCount; i++ {
		f.customers = append(f.customers, f.CreateCustomer())
	}
	return f
}

func (f *OrderFactory) createCities(n int) []string {
	seen := make(map[string]bool, n)
	cities := make([]string, 0, n)
	for attempts := 0; len(cities) < n && attempts < n*20; attempts++ {
		city := f.fake.Address().City()
		if seen[city] {
			continue
		}
		seen[city] = true
		cities = append(cities, city)
	}
	return cities
}

// CreateCustomer skews the city pick towards the head of the pool so a few
// cities dominate, as they do in real order data.
func (f *OrderFactory) CreateCustomer() Customer {
	r := f.fake.Float64(4, 0, 1)
	idx := int(r * r * float64(len(f.cities)))
	if idx >= len(f.cities) {
		idx = len(f.cities) - 1
	}
	return Customer{ID: cuid.New(), City: f.cities[idx]}
}

// CreateOrder returns the line items of one order for a random customer.
func (f *OrderFactory) CreateOrder() []models.OrderRecord {
	customer := f.customers[f.fake.IntBetween(0, len(f.customers)-1)]
	orderID := cuid.New()

	var approved, estimated *time.Time
	placed := f.fake.Time().TimeBetween(f.Start, f.End).UTC().Truncate(time.Second)
	if f.fake.Float64(4, 0, 1) >= f.UnapprovedRatio {
		a := placed.Add(time.Duration(f.fake.IntBetween(0, 48*60)) * time.Minute)
		approved = &a
	}
	e := placed.Add(time.Duration(f.fake.IntBetween(7*24, 45*24)) * time.Hour)
	estimated = &e

	items := f.fake.IntBetween(1, 3)
	records := make([]models.OrderRecord, 0, items)
	for i := 0; i < items; i++ {
		records = append(records, models.OrderRecord{
			OrderID:                    orderID,
			CustomerID:                 customer.ID,
			CustomerCity:               customer.City,
			Price:                      decimal.NewFromFloat(f.fake.Float64(2, 5, 500)).Round(2),
			OrderApprovedAt:            approved,
			OrderEstimatedDeliveryDate: estimated,
		})
	}
	return records
}

// CreateOrders returns the rows of n orders.
func (f *OrderFactory) CreateOrders(n int) []models.OrderRecord {
	var records []models.OrderRecord
	for i := 0; i < n; i++ {
		records = append(records, f.CreateOrder()...)
	}
	return records
}
