package report

import (
	"math/rand"
	"testing"
	"time"

	"github.com/chrisdamba/ecomdash/internal/dataset"
	"github.com/chrisdamba/ecomdash/internal/factories"
	"github.com/chrisdamba/ecomdash/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(s string) *time.Time {
	t, err := time.Parse(models.TimestampLayout, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func row(order, customer, city, price, approved, estimated string) models.OrderRecord {
	r := models.OrderRecord{
		OrderID:      order,
		CustomerID:   customer,
		CustomerCity: city,
		Price:        decimal.RequireFromString(price),
	}
	if approved != "" {
		r.OrderApprovedAt = at(approved)
	}
	if estimated != "" {
		r.OrderEstimatedDeliveryDate = at(estimated)
	}
	return r
}

func day(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWorkedExample(t *testing.T) {
	records := []models.OrderRecord{
		row("A", "c1", "SP", "10.00", "2017-03-01 00:00:00", "2017-03-10 00:00:00"),
		row("B", "c2", "SP", "15.50", "2017-03-05 00:00:00", "2017-03-12 00:00:00"),
	}

	monthly := MonthlyOrders(records)
	require.Len(t, monthly, 1)
	assert.Equal(t, time.March, monthly[0].Month.Month())
	assert.Equal(t, 2, monthly[0].OrderCount)
	assert.True(t, decimal.RequireFromString("25.50").Equal(monthly[0].Revenue))

	assert.Equal(t, []models.CityCount{{City: "SP", Customers: 2}}, CustomerCityCount(records))

	stat := AverageDeliveryTime(records)
	assert.InDelta(t, 8.0, stat.Days, 1e-9)
	assert.Equal(t, 2, stat.Samples)
	assert.Equal(t, "8.00 days", FormatDeliveryTime(stat, "days"))
}

func TestFilter(t *testing.T) {
	records := []models.OrderRecord{
		row("A", "c1", "SP", "1", "2017-03-01 00:00:00", ""),
		row("B", "c1", "SP", "1", "2017-03-05 23:59:59", ""),
		row("C", "c1", "SP", "1", "2017-03-06 00:00:00", ""),
		row("D", "c1", "SP", "1", "", ""),
	}

	tests := []struct {
		name string
		rng  models.DateRange
		want []string
	}{
		{"end day is inclusive regardless of time", models.NewDateRange(day("2017-03-01"), day("2017-03-05")), []string{"A", "B"}},
		{"single day", models.NewDateRange(day("2017-03-06"), day("2017-03-06")), []string{"C"}},
		{"inverted range is swapped", models.NewDateRange(day("2017-03-05"), day("2017-03-01")), []string{"A", "B"}},
		{"no match", models.NewDateRange(day("2018-01-01"), day("2018-12-31")), []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, r := range Filter(records, tt.rng) {
				got = append(got, r.OrderID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonthlyOrders(t *testing.T) {
	records := []models.OrderRecord{
		row("A", "c1", "SP", "10", "2017-05-02 10:00:00", ""),
		row("A", "c1", "SP", "5", "2017-05-02 10:00:00", ""),
		row("B", "c2", "RJ", "7", "2017-01-20 10:00:00", ""),
		row("C", "c3", "RJ", "3", "2017-05-31 23:00:00", ""),
		row("D", "c4", "RJ", "100", "2016-12-31 23:00:00", ""),
		row("E", "c5", "RJ", "100", "2018-01-01 00:00:00", ""),
		row("F", "c6", "RJ", "100", "", ""),
	}

	monthly := MonthlyOrders(records)
	require.Len(t, monthly, 2)

	assert.Equal(t, "January", monthly[0].MonthName())
	assert.Equal(t, 1, monthly[0].OrderCount)
	assert.True(t, decimal.NewFromInt(7).Equal(monthly[0].Revenue))

	// March has no rows and is not zero-filled
	assert.Equal(t, "May", monthly[1].MonthName())
	assert.Equal(t, 2, monthly[1].OrderCount)
	assert.True(t, decimal.NewFromInt(18).Equal(monthly[1].Revenue))

	assert.Empty(t, MonthlyOrders(nil))
}

func TestAverageDeliveryTime(t *testing.T) {
	records := []models.OrderRecord{
		// 1.005 days rounds to 1.00
		row("A", "c1", "SP", "1", "2017-01-01 00:00:00", "2017-01-02 00:07:12"),
		row("B", "c1", "SP", "1", "2017-01-01 00:00:00", "2017-01-04 00:00:00"),
		row("C", "c1", "SP", "1", "", "2017-01-04 00:00:00"),
		row("D", "c1", "SP", "1", "2017-01-01 00:00:00", ""),
	}

	stat := AverageDeliveryTime(records)
	assert.Equal(t, 2, stat.Samples)
	assert.InDelta(t, 2.0, stat.Days, 1e-9)
	assert.True(t, stat.Valid())

	empty := AverageDeliveryTime(nil)
	assert.False(t, empty.Valid())
	assert.Equal(t, 0.0, empty.Days)
	assert.Equal(t, "0.00 days", FormatDeliveryTime(empty, "days"))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 9.0, round2(9.0))
	assert.Equal(t, 7.12, round2(7.123))
	assert.Equal(t, 2.5, round2(2.499999))
	assert.Equal(t, -1.25, round2(-1.2534))
}

func TestCustomerCityCount(t *testing.T) {
	records := []models.OrderRecord{
		row("A", "c1", "SP", "1", "2017-01-01 00:00:00", ""),
		row("B", "c1", "SP", "1", "2017-01-01 00:00:00", ""),
		row("C", "c2", "SP", "1", "2017-01-01 00:00:00", ""),
		row("D", "c3", "RJ", "1", "2017-01-01 00:00:00", ""),
		row("E", "c4", "BH", "1", "2017-01-01 00:00:00", ""),
	}

	assert.Equal(t, []models.CityCount{
		{City: "SP", Customers: 2},
		{City: "BH", Customers: 1},
		{City: "RJ", Customers: 1},
	}, CustomerCityCount(records))
	assert.Empty(t, CustomerCityCount(nil))
}

func TestRender(t *testing.T) {
	var records []models.OrderRecord
	for i := 0; i < 12; i++ {
		city := string(rune('A' + i))
		records = append(records, row(city, "c"+city, city, "1", "2017-02-01 00:00:00", "2017-02-03 00:00:00"))
	}
	records = append(records, row("X", "cX", "A", "1", "2016-02-01 00:00:00", "2016-02-03 00:00:00"))
	rng := models.NewDateRange(day("2016-01-01"), day("2017-12-31"))

	vm := Render(Filter(records, rng), rng, "days")

	assert.Equal(t, 13, vm.RecordCount)
	// 2016 rows fall outside the trend year
	assert.Equal(t, 12, vm.TotalOrders)
	assert.Len(t, vm.Cities, 12)
	assert.Len(t, vm.TopCities, TopCityLimit)
	assert.Equal(t, "A", vm.TopCities[0].City)
	assert.Equal(t, "2.00 days", vm.DeliveryTimeLabel)
	assert.Equal(t, rng, vm.Range)
}

func TestRun_EmptyRange(t *testing.T) {
	records := []models.OrderRecord{
		row("A", "c1", "SP", "1", "2017-01-01 00:00:00", "2017-01-03 00:00:00"),
	}

	vm := Run(records, models.NewDateRange(day("2019-01-01"), day("2019-02-01")), "days")
	assert.Equal(t, 0, vm.RecordCount)
	assert.Equal(t, 0, vm.TotalOrders)
	assert.Empty(t, vm.MonthlyOrders)
	assert.Empty(t, vm.TopCities)
	assert.False(t, vm.AverageDeliveryTime.Valid())
}

func generated(t *testing.T) *dataset.Dataset {
	t.Helper()
	f := factories.NewOrderFactory(99, time.Date(2016, 9, 1, 0, 0, 0, 0, time.UTC), time.Date(2018, 8, 31, 0, 0, 0, 0, time.UTC), 15, 300)
	return dataset.New(f.CreateOrders(1500))
}

func TestProperties(t *testing.T) {
	ds := generated(t)
	full := ds.FullRange()

	t.Run("full range keeps every approved row", func(t *testing.T) {
		approved := 0
		for _, r := range ds.Records {
			if r.Approved() {
				approved++
			}
		}
		assert.Len(t, Filter(ds.Records, full), approved)
	})

	filtered := Filter(ds.Records, models.NewDateRange(day("2017-02-10"), day("2018-03-15")))
	require.NotEmpty(t, filtered)

	t.Run("monthly buckets are ordered and unique", func(t *testing.T) {
		monthly := MonthlyOrders(filtered)
		require.NotEmpty(t, monthly)
		for i := 1; i < len(monthly); i++ {
			assert.True(t, monthly[i-1].Month.Before(monthly[i].Month))
		}
	})

	t.Run("order counts tie back to distinct 2017 orders", func(t *testing.T) {
		distinct := make(map[string]struct{})
		for _, r := range filtered {
			if r.OrderApprovedAt.Year() == TrendYear {
				distinct[r.OrderID] = struct{}{}
			}
		}
		total := 0
		for _, b := range MonthlyOrders(filtered) {
			total += b.OrderCount
		}
		assert.Equal(t, len(distinct), total)
	})

	t.Run("city counts are non-increasing and sum to distinct customers", func(t *testing.T) {
		cities := CustomerCityCount(filtered)
		sum := 0
		for i, c := range cities {
			sum += c.Customers
			if i > 0 {
				assert.GreaterOrEqual(t, cities[i-1].Customers, c.Customers)
			}
		}
		customers := make(map[string]struct{})
		for _, r := range filtered {
			customers[r.CustomerID] = struct{}{}
		}
		assert.Equal(t, len(customers), sum)
	})

	t.Run("average delivery time ignores row order", func(t *testing.T) {
		shuffled := make([]models.OrderRecord, len(filtered))
		copy(shuffled, filtered)
		rand.New(rand.NewSource(3)).Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		a, b := AverageDeliveryTime(filtered), AverageDeliveryTime(shuffled)
		assert.Equal(t, a.Samples, b.Samples)
		assert.InDelta(t, a.Days, b.Days, 1e-9)
	})
}
